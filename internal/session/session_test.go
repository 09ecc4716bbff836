package session

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/iburimskiy/color-splash/internal/config"
	"github.com/iburimskiy/color-splash/internal/splash"
	"github.com/iburimskiy/color-splash/internal/telemetry"
)

func newTestSession(t *testing.T, dir string) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Telemetry.SampleEvery = 1
	rec, err := telemetry.Open(dir, cfg.Telemetry)
	if err != nil {
		t.Fatalf("telemetry.Open: %v", err)
	}
	world := splash.NewWorld(cfg, 800, 600, rand.New(rand.NewSource(1)))
	return New(world, nil, rec)
}

func readEvents(t *testing.T, dir string) []telemetry.Event {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var events []telemetry.Event
	if err := gocsv.UnmarshalFile(f, &events); err != nil {
		t.Fatalf("unmarshal events: %v", err)
	}
	return events
}

func TestPickHexUpdatesPicker(t *testing.T) {
	s := newTestSession(t, "")
	if err := s.PickHex("#102030"); err != nil {
		t.Fatalf("PickHex: %v", err)
	}
	if s.Picker != (splash.RGB{R: 0x10, G: 0x20, B: 0x30}) {
		t.Errorf("Picker = %v", s.Picker)
	}
	if err := s.PickColor("rgb(1,2,3)"); err != nil {
		t.Fatalf("PickColor: %v", err)
	}
	if s.Picker != (splash.RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("Picker = %v", s.Picker)
	}
	sp := s.Random()
	if s.Picker != sp.Color {
		t.Errorf("random color should move the picker: %v vs %v", s.Picker, sp.Color)
	}
	if s.World.Splashes().Len() != 3 {
		t.Errorf("Len = %d, want 3", s.World.Splashes().Len())
	}
}

func TestRejectedInputIsRecorded(t *testing.T) {
	dir := t.TempDir()
	s := newTestSession(t, dir)

	s.Random()
	before := s.Picker
	err := s.PickHex("#12345")
	if !errors.Is(err, splash.ErrInvalidHex) {
		t.Fatalf("PickHex error = %v", err)
	}
	if s.Picker != before || s.World.Splashes().Len() != 1 {
		t.Error("rejected input must not change the scene")
	}
	s.Reset()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	events := readEvents(t, dir)
	kinds := make([]string, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	want := []string{telemetry.EventSpawn, telemetry.EventReject, telemetry.EventReset}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
	if events[2].Count != 1 {
		t.Errorf("reset count = %d, want 1", events[2].Count)
	}
}

func TestEvictionIsRecorded(t *testing.T) {
	dir := t.TempDir()
	s := newTestSession(t, dir)
	for i := 0; i < 31; i++ {
		s.Random()
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	var evicts []telemetry.Event
	for _, e := range readEvents(t, dir) {
		if e.Kind == telemetry.EventEvict {
			evicts = append(evicts, e)
		}
	}
	if len(evicts) != 1 || evicts[0].ID != 1 {
		t.Errorf("evictions = %+v, want splash 1 only", evicts)
	}
}

func TestStepWritesFrames(t *testing.T) {
	dir := t.TempDir()
	s := newTestSession(t, dir)

	for i := 0; i < 15; i++ {
		s.Random()
	}
	if m := s.Step(1); m != splash.ModeFormation {
		t.Errorf("mode = %v, want formation", m)
	}
	s.Step(1)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var frames []telemetry.Frame
	if err := gocsv.UnmarshalBytes(data, &frames); err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	if frames[0].Mode != "formation" || frames[0].Splashes != 15 || frames[1].Tick != 2 {
		t.Errorf("frames = %+v", frames)
	}
}
