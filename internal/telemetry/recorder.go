// Package telemetry writes per-frame scene statistics and splash events to
// CSV files for offline inspection.
package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/iburimskiy/color-splash/internal/config"
)

// Frame is one sampled tick.
type Frame struct {
	Tick       uint64  `csv:"tick"`
	Mode       string  `csv:"mode"`
	Splashes   int     `csv:"splashes"`
	Attractors int     `csv:"attractors"`
	MeanSpeed  float64 `csv:"mean_speed"`
	Phase      float64 `csv:"phase"`
	Level      float64 `csv:"audio_level"`
}

// Event kinds.
const (
	EventSpawn  = "spawn"
	EventEvict  = "evict"
	EventReset  = "reset"
	EventReject = "reject"
)

// Event is one change to the splash collection.
type Event struct {
	Tick   uint64 `csv:"tick"`
	Kind   string `csv:"kind"`
	ID     uint64 `csv:"id"`
	Color  string `csv:"color"`
	Count  int    `csv:"count"`
	Detail string `csv:"detail"`
}

// Recorder appends rows to frames.csv and events.csv in one directory.
// A nil *Recorder discards everything.
type Recorder struct {
	dir         string
	framesFile  *os.File
	eventsFile  *os.File
	sampleEvery uint64

	framesHeaderWritten bool
	eventsHeaderWritten bool
}

// Open creates dir and the CSV files inside it. An empty dir returns a nil
// Recorder and no error.
func Open(dir string, cfg config.TelemetryConfig) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	frames, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	events, err := os.Create(filepath.Join(dir, "events.csv"))
	if err != nil {
		frames.Close()
		return nil, fmt.Errorf("creating events.csv: %w", err)
	}

	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}
	return &Recorder{
		dir:         dir,
		framesFile:  frames,
		eventsFile:  events,
		sampleEvery: uint64(every),
	}, nil
}

// Dir is the output directory.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// WriteConfig snapshots the running configuration as config.yaml.
func (r *Recorder) WriteConfig(cfg *config.Config) error {
	if r == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// Due reports whether tick should be sampled.
func (r *Recorder) Due(tick uint64) bool {
	return r != nil && tick%r.sampleEvery == 0
}

// WriteFrame appends a row to frames.csv.
func (r *Recorder) WriteFrame(f Frame) error {
	if r == nil {
		return nil
	}
	if err := writeRows(r.framesFile, []Frame{f}, &r.framesHeaderWritten); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// WriteEvent appends a row to events.csv.
func (r *Recorder) WriteEvent(e Event) error {
	if r == nil {
		return nil
	}
	if err := writeRows(r.eventsFile, []Event{e}, &r.eventsHeaderWritten); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// writeRows marshals rows, emitting the header only on the first call.
func writeRows(f *os.File, rows any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(rows, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, f)
}

// Close flushes and closes both files.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return errors.Join(r.framesFile.Close(), r.eventsFile.Close())
}
