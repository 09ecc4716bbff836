// Package session ties a splash world to its side channels (chimes,
// telemetry, logs) so every driver handles input the same way.
package session

import (
	"log/slog"

	"github.com/iburimskiy/color-splash/internal/audio"
	"github.com/iburimskiy/color-splash/internal/splash"
	"github.com/iburimskiy/color-splash/internal/telemetry"
)

// Session is driven from a single goroutine: input methods and Step must
// not run concurrently.
type Session struct {
	World    *splash.World
	Player   *audio.Player
	Recorder *telemetry.Recorder

	// Picker is the last chosen color, the value a picker dialog opens with.
	Picker splash.RGB
}

// New wires the world hooks to the player and recorder. Either may be nil.
func New(world *splash.World, player *audio.Player, rec *telemetry.Recorder) *Session {
	s := &Session{
		World:    world,
		Player:   player,
		Recorder: rec,
		Picker:   splash.RGB{R: 255, G: 255, B: 255},
	}
	world.SetHooks(splash.Hooks{
		Spawned: s.spawned,
		Evicted: s.evicted,
		Cleared: s.cleared,
	})
	return s
}

func (s *Session) spawned(sp *splash.Splash) {
	slog.Debug("splash spawned",
		"id", sp.ID,
		"color", sp.Color.Hex(),
		"energy", sp.Color.Energy(),
		"sides", sp.Sides,
		"count", s.World.Splashes().Len(),
	)
	s.Player.Chime(audio.PitchFor(sp.Color.Energy()))
	s.event(telemetry.Event{
		Kind:  telemetry.EventSpawn,
		ID:    sp.ID,
		Color: sp.Color.Hex(),
		Count: s.World.Splashes().Len(),
	})
}

func (s *Session) evicted(sp *splash.Splash) {
	slog.Debug("splash evicted", "id", sp.ID, "color", sp.Color.Hex())
	s.event(telemetry.Event{
		Kind:  telemetry.EventEvict,
		ID:    sp.ID,
		Color: sp.Color.Hex(),
		Count: s.World.Splashes().Len(),
	})
}

func (s *Session) cleared(n int) {
	slog.Debug("splashes cleared", "count", n)
	s.Player.Clear()
	s.event(telemetry.Event{Kind: telemetry.EventReset, Count: n})
}

// PickHex handles a color picker value. Invalid input is logged, recorded
// and returned; the scene is left unchanged.
func (s *Session) PickHex(hex string) error {
	sp, err := s.World.AddHex(hex)
	if err != nil {
		s.reject(err)
		return err
	}
	s.Picker = sp.Color
	return nil
}

// PickColor handles a textual "rgb(r,g,b)" color.
func (s *Session) PickColor(text string) error {
	sp, err := s.World.AddColor(text)
	if err != nil {
		s.reject(err)
		return err
	}
	s.Picker = sp.Color
	return nil
}

// Random spawns a random splash and moves the picker to its color.
func (s *Session) Random() *splash.Splash {
	sp := s.World.AddRandom()
	s.Picker = sp.Color
	return sp
}

// Reset clears the scene.
func (s *Session) Reset() {
	s.World.Reset()
}

// Step advances one tick and samples telemetry when due.
func (s *Session) Step(dt float64) splash.Mode {
	prev := s.World.Mode()
	mode := s.World.Tick(dt)
	if mode != prev {
		slog.Info("mode changed", "from", prev.String(), "to", mode.String(), "splashes", s.World.Splashes().Len())
	}

	if s.Recorder.Due(s.World.Ticks()) {
		st := s.World.Stats()
		err := s.Recorder.WriteFrame(telemetry.Frame{
			Tick:       st.Tick,
			Mode:       st.Mode.String(),
			Splashes:   st.Count,
			Attractors: st.Attractors,
			MeanSpeed:  st.MeanSpeed,
			Phase:      st.Phase,
			Level:      s.Player.Level(),
		})
		if err != nil {
			s.dropRecorder(err)
		}
	}
	return mode
}

// Close releases the recorder and the speaker.
func (s *Session) Close() error {
	s.Player.Close()
	return s.Recorder.Close()
}

func (s *Session) reject(err error) {
	slog.Warn("rejected color input", "error", err)
	s.event(telemetry.Event{
		Kind:   telemetry.EventReject,
		Count:  s.World.Splashes().Len(),
		Detail: err.Error(),
	})
}

func (s *Session) event(e telemetry.Event) {
	e.Tick = s.World.Ticks()
	if err := s.Recorder.WriteEvent(e); err != nil {
		s.dropRecorder(err)
	}
}

// dropRecorder stops telemetry after the first write failure.
func (s *Session) dropRecorder(err error) {
	slog.Error("telemetry disabled", "dir", s.Recorder.Dir(), "error", err)
	if cerr := s.Recorder.Close(); cerr != nil {
		slog.Error("closing telemetry", "error", cerr)
	}
	s.Recorder = nil
}
