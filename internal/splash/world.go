package splash

import (
	"image/color"
	"math/rand"

	"github.com/iburimskiy/color-splash/internal/config"
)

// Hooks are optional callbacks fired synchronously from the World's
// event methods.
type Hooks struct {
	Spawned func(s *Splash)
	Evicted func(s *Splash)
	Cleared func(n int)
}

// Stats is a per-tick summary for telemetry and the HUD.
type Stats struct {
	Tick       uint64
	Mode       Mode
	Count      int
	Attractors int
	MeanSpeed  float64
	Phase      float64
}

// World owns the splash collection and the canvas size and advances both
// regimes. It is not safe for concurrent use; drivers serialize input
// events with ticks.
type World struct {
	splashes *Collection
	width    float64
	height   float64

	threshold int
	motion    motionParams
	spawn     spawnParams
	style     Style

	phase  float64
	tick   uint64
	mode   Mode
	nextID uint64

	rng   *rand.Rand
	hooks Hooks
}

// NewWorld builds an empty scene of the given size.
func NewWorld(cfg *config.Config, width, height float64, rng *rand.Rand) *World {
	return &World{
		splashes:  NewCollection(cfg.Cap()),
		width:     width,
		height:    height,
		threshold: cfg.Physics.FormationThreshold,
		motion:    newMotionParams(cfg.Physics),
		spawn: spawnParams{
			margin:      cfg.Spawn.Margin,
			minRadius:   cfg.Spawn.MinRadius,
			radiusRange: cfg.Spawn.RadiusRange,
			baseSpeed:   cfg.Physics.BaseSpeed,
			minSides:    cfg.Physics.MinPolygonSides,
		},
		style: Style{
			Glow:      cfg.Render.GlowBlur,
			RingColor: color.NRGBA{R: 255, G: 255, B: 255, A: cfg.Render.RingAlpha},
		},
		rng: rng,
	}
}

// SetHooks replaces the event callbacks.
func (w *World) SetHooks(h Hooks) { w.hooks = h }

// Splashes exposes the collection for read-only iteration.
func (w *World) Splashes() *Collection { return w.splashes }

// Size returns the canvas dimensions.
func (w *World) Size() (float64, float64) { return w.width, w.height }

// Ticks counts calls to Tick.
func (w *World) Ticks() uint64 { return w.tick }

// Mode is the regime of the last tick.
func (w *World) Mode() Mode { return w.mode }

// Resize changes the canvas; splashes are pulled back in on the next tick.
func (w *World) Resize(width, height float64) {
	w.width, w.height = width, height
}

// AddRGB spawns a splash of color c.
func (w *World) AddRGB(c RGB) *Splash {
	s := newSplash(w.rng, c, w.width, w.height, w.spawn)
	w.nextID++
	s.ID = w.nextID

	if evicted := w.splashes.Insert(s); evicted != nil && w.hooks.Evicted != nil {
		w.hooks.Evicted(evicted)
	}
	if w.hooks.Spawned != nil {
		w.hooks.Spawned(s)
	}
	return s
}

// AddColor spawns a splash from a textual color such as "rgb(1,2,3)".
// Malformed input leaves the scene untouched.
func (w *World) AddColor(text string) (*Splash, error) {
	c, err := ParseColor(text)
	if err != nil {
		return nil, err
	}
	return w.AddRGB(c), nil
}

// AddHex spawns a splash from a picker value such as "#ff8800".
// Malformed input leaves the scene untouched.
func (w *World) AddHex(hex string) (*Splash, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	return w.AddRGB(c), nil
}

// AddRandom spawns a splash of a uniformly random color.
func (w *World) AddRandom() *Splash {
	return w.AddRGB(RandomColor(w.rng))
}

// Reset removes every splash; the next Draw shows an empty canvas.
func (w *World) Reset() {
	n := w.splashes.Reset()
	w.phase = 0
	w.mode = ModeFree
	if w.hooks.Cleared != nil {
		w.hooks.Cleared(n)
	}
}

// Tick advances the scene by dt frames (1 = one 60 Hz frame). The mode is
// derived once from the collection size and applies to every splash.
func (w *World) Tick(dt float64) Mode {
	w.tick++
	items := w.splashes.view()
	w.mode = ModeFor(len(items), w.threshold)

	switch w.mode {
	case ModeFormation:
		w.phase += w.motion.phaseStep * dt
		stepFormation(items, w.width, w.height, w.phase, w.motion, dt)
	default:
		stepFree(items, w.width, w.height, w.motion, dt)
	}
	return w.mode
}

// Draw renders the scene as of the last tick.
func (w *World) Draw(cv Canvas) {
	render(cv, w.splashes.view(), w.mode, w.style)
}

// Stats summarizes the current scene.
func (w *World) Stats() Stats {
	st := Stats{
		Tick:  w.tick,
		Mode:  w.mode,
		Count: w.splashes.Len(),
		Phase: w.phase,
	}
	var speed float64
	for _, s := range w.splashes.All() {
		if s.Color.Energy() > w.motion.gravityThreshold {
			st.Attractors++
		}
		speed += s.Speed()
	}
	if st.Count > 0 {
		st.MeanSpeed = speed / float64(st.Count)
	}
	return st
}
