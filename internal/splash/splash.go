// Package splash implements the color splash scene: the colored particles,
// their bounded collection, the two motion regimes and the renderer.
//
// Nothing here knows about windows or terminals. A driver feeds input
// events into a World, calls Tick once per frame and hands Draw a Canvas.
package splash

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Mode is the motion and render regime shared by every splash in a tick.
type Mode int

const (
	// ModeFree: attraction between energetic splashes and edge bouncing.
	ModeFree Mode = iota
	// ModeFormation: splashes ride a rotating ring as spinning polygons.
	ModeFormation
)

func (m Mode) String() string {
	switch m {
	case ModeFree:
		return "free"
	case ModeFormation:
		return "formation"
	default:
		return "unknown"
	}
}

// ModeFor derives the regime from the collection size.
func ModeFor(count, threshold int) Mode {
	if count >= threshold {
		return ModeFormation
	}
	return ModeFree
}

// Splash is a single animated particle.
type Splash struct {
	ID       uint64
	Pos      r2.Vec
	Vel      r2.Vec
	Radius   float64
	Color    RGB
	Sides    int
	Rotation float64 // polygon spin, radians
	Orbit    float64 // current angle on the formation ring, radians
}

// SideCount ties the polygon shape to the blue channel.
func SideCount(blue uint8, min int) int {
	return max(min, int(blue)%10)
}

// newSplash places a splash of color c at a random spot in a width x height
// area, keeping margin pixels clear of the edges when there is room.
func newSplash(rng *rand.Rand, c RGB, width, height float64, p spawnParams) *Splash {
	return &Splash{
		Pos: r2.Vec{
			X: spawnCoord(rng, width, p.margin),
			Y: spawnCoord(rng, height, p.margin),
		},
		Vel: r2.Vec{
			X: (rng.Float64() - 0.5) * p.baseSpeed,
			Y: (rng.Float64() - 0.5) * p.baseSpeed,
		},
		Radius: float64(rng.Intn(p.radiusRange) + p.minRadius),
		Color:  c,
		Sides:  SideCount(c.B, p.minSides),
	}
}

func spawnCoord(rng *rand.Rand, dim, margin float64) float64 {
	span := dim - 2*margin
	if span <= 0 {
		return dim / 2
	}
	return rng.Float64()*span + margin
}

type spawnParams struct {
	margin      float64
	minRadius   int
	radiusRange int
	baseSpeed   float64
	minSides    int
}

// Speed is the velocity magnitude.
func (s *Splash) Speed() float64 {
	return r2.Norm(s.Vel)
}

// attract accumulates the pull of every energetic neighbour within range.
func (s *Splash) attract(others []*Splash, p motionParams, dt float64) {
	for _, o := range others {
		if o == s || o.Color.Energy() <= p.gravityThreshold {
			continue
		}
		d := r2.Sub(o.Pos, s.Pos)
		dist := r2.Norm(d)
		if dist == 0 || dist >= p.gravityRadius {
			continue
		}
		s.Vel = r2.Add(s.Vel, r2.Scale(p.gravityMultiplier*dt/dist, d))
	}
}

// integrate moves the splash and resolves collisions with the canvas edges.
func (s *Splash) integrate(width, height float64, p motionParams, dt float64) {
	s.Pos = r2.Add(s.Pos, r2.Scale(dt, s.Vel))

	if s.Pos.X+s.Radius > width || s.Pos.X-s.Radius < 0 {
		s.Vel.X *= -p.restitution
	}
	if s.Pos.Y+s.Radius > height || s.Pos.Y-s.Radius < 0 {
		s.Vel.Y *= -p.restitution
	}

	s.Pos.X = clampEdge(s.Pos.X, s.Radius, width)
	s.Pos.Y = clampEdge(s.Pos.Y, s.Radius, height)
}

// clampEdge keeps v within [r, dim-r]; r wins when the canvas is too small.
func clampEdge(v, r, dim float64) float64 {
	return math.Max(r, math.Min(dim-r, v))
}

// orbit places the splash at slot index of count on the formation ring.
func (s *Splash) orbit(center r2.Vec, phase float64, index, count int, p motionParams, dt float64) {
	s.Orbit = phase + float64(index)*(2*math.Pi/float64(count))
	s.Pos = r2.Add(center, r2.Vec{
		X: p.formationRadius * math.Cos(s.Orbit),
		Y: p.formationRadius * math.Sin(s.Orbit),
	})
	s.Rotation += p.rotationSpeed * dt
}
