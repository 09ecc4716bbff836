// Package audio plays a short chime whenever a splash appears.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/color-splash/internal/config"
)

// Player mixes chimes onto the system speaker. A nil *Player is a valid
// silent player.
type Player struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	tap    *levelTap
	chime  time.Duration
	volume float64
}

// NewPlayer initializes the speaker and starts an endless mixer on it.
func NewPlayer(cfg config.AudioConfig) (*Player, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	p := newPlayer(cfg)
	speaker.Play(p.tap)
	return p, nil
}

// newPlayer builds the mixer chain without touching the speaker.
func newPlayer(cfg config.AudioConfig) *Player {
	mixer := &beep.Mixer{}
	return &Player{
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  mixer,
		tap:    newLevelTap(mixer, cfg.LevelRing),
		chime:  time.Duration(cfg.ChimeMillis) * time.Millisecond,
		volume: cfg.Volume,
	}
}

// Chime queues a tone at freq Hz.
func (p *Player) Chime(freq float64) {
	if p == nil {
		return
	}
	s := newChime(freq, p.chime, p.volume, p.rate)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Level is the recent output loudness in [0,1].
func (p *Player) Level() float64 {
	if p == nil {
		return 0
	}
	samples := p.tap.snapshot(p.rate.N(50 * time.Millisecond))
	return math.Min(1, math.Pow(rms(samples), 0.5))
}

// Clear silences pending chimes.
func (p *Player) Clear() {
	if p == nil {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// Close stops the speaker.
func (p *Player) Close() {
	if p == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}
