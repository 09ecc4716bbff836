package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// sine generates a pure tone for a fixed number of samples.
type sine struct {
	freq     float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSine(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sine{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v

		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// decay fades a stream out exponentially after a short linear attack.
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
}

func newDecay(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		attack:   rate.N(attack),
		total:    rate.N(duration),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var gain float64
		switch {
		case d.position < d.attack:
			gain = float64(d.position) / float64(d.attack)
		case d.total > d.attack:
			t := float64(d.position-d.attack) / float64(d.total-d.attack)
			gain = math.Exp(-5 * t)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume scales linearly; zero or below is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// PitchFor maps a color energy (0..765) onto two octaves above A3.
func PitchFor(energy int) float64 {
	e := math.Max(0, math.Min(765, float64(energy)))
	return 220 * math.Pow(2, 2*e/765)
}

// newChime is a root note plus a quieter fifth, both decaying.
func newChime(freq float64, duration time.Duration, vol float64, rate beep.SampleRate) beep.Streamer {
	attack := 5 * time.Millisecond
	root := newDecay(newSine(freq, duration, rate), duration, attack, rate)
	fifth := newDecay(newSine(freq*1.5, duration, rate), duration, attack, rate)

	mixer := &beep.Mixer{}
	mixer.Add(withVolume(root, 0.6), withVolume(fifth, 0.3))
	return withVolume(beep.Take(rate.N(duration), mixer), vol)
}
