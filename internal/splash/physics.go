package splash

import (
	"github.com/iburimskiy/color-splash/internal/config"
	"gonum.org/v1/gonum/spatial/r2"
)

// motionParams is the hot-path copy of config.PhysicsConfig.
type motionParams struct {
	gravityThreshold  int
	gravityMultiplier float64
	gravityRadius     float64
	restitution       float64
	phaseStep         float64
	formationRadius   float64
	rotationSpeed     float64
}

func newMotionParams(p config.PhysicsConfig) motionParams {
	return motionParams{
		gravityThreshold:  p.GravityThreshold,
		gravityMultiplier: p.GravityMultiplier,
		gravityRadius:     p.GravityRadius,
		restitution:       p.Restitution,
		phaseStep:         p.StreamlineSpeed * config.StreamlineScale,
		formationRadius:   p.FormationRadius,
		rotationSpeed:     p.RotationSpeed,
	}
}

// stepFree advances every splash in order. Later splashes feel the
// already-moved positions of earlier ones.
func stepFree(splashes []*Splash, width, height float64, p motionParams, dt float64) {
	for _, s := range splashes {
		s.attract(splashes, p, dt)
		s.integrate(width, height, p, dt)
	}
}

// stepFormation spaces the splashes evenly around the canvas center.
// Slots follow the live collection index, so a mutation mid-formation
// reshuffles them.
func stepFormation(splashes []*Splash, width, height, phase float64, p motionParams, dt float64) {
	center := r2.Vec{X: width / 2, Y: height / 2}
	for i, s := range splashes {
		s.orbit(center, phase, i, len(splashes), p, dt)
	}
}
