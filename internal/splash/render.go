package splash

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Canvas is the drawing surface a driver provides. Coordinates are in
// canvas pixels; glow is a blur radius in the fill color, 0 for none.
type Canvas interface {
	Clear()
	StrokeRing(points []r2.Vec, c color.NRGBA)
	FillCircle(center r2.Vec, radius float64, c color.NRGBA, glow float64)
	FillPolygon(vertices []r2.Vec, c color.NRGBA, glow float64)
}

// Style holds the renderer constants.
type Style struct {
	Glow      float64
	RingColor color.NRGBA
}

// PolygonVertices returns the corners of a regular polygon with the given
// circumradius; the first corner sits at angle rotation.
func PolygonVertices(center r2.Vec, radius float64, sides int, rotation float64) []r2.Vec {
	out := make([]r2.Vec, sides)
	for k := range out {
		a := rotation + float64(k)*2*math.Pi/float64(sides)
		out[k] = r2.Vec{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return out
}

// render clears the canvas and draws one frame. In formation the ring
// goes under the splashes.
func render(cv Canvas, splashes []*Splash, mode Mode, st Style) {
	cv.Clear()

	if mode == ModeFormation && len(splashes) > 1 {
		ring := make([]r2.Vec, len(splashes))
		for i, s := range splashes {
			ring[i] = s.Pos
		}
		cv.StrokeRing(ring, st.RingColor)
	}

	for _, s := range splashes {
		fill := s.Color.NRGBA()
		if mode == ModeFormation {
			cv.FillPolygon(PolygonVertices(s.Pos, s.Radius, s.Sides, s.Rotation), fill, st.Glow)
		} else {
			cv.FillCircle(s.Pos, s.Radius, fill, st.Glow)
		}
	}
}
