package splash

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

type drawCall struct {
	op     string
	points []r2.Vec
	center r2.Vec
	radius float64
	color  color.NRGBA
	glow   float64
}

// recordingCanvas captures draw calls in order.
type recordingCanvas struct {
	calls []drawCall
}

func (r *recordingCanvas) Clear() {
	r.calls = append(r.calls, drawCall{op: "clear"})
}

func (r *recordingCanvas) StrokeRing(points []r2.Vec, c color.NRGBA) {
	r.calls = append(r.calls, drawCall{op: "ring", points: points, color: c})
}

func (r *recordingCanvas) FillCircle(center r2.Vec, radius float64, c color.NRGBA, glow float64) {
	r.calls = append(r.calls, drawCall{op: "circle", center: center, radius: radius, color: c, glow: glow})
}

func (r *recordingCanvas) FillPolygon(vertices []r2.Vec, c color.NRGBA, glow float64) {
	r.calls = append(r.calls, drawCall{op: "polygon", points: vertices, color: c, glow: glow})
}

func (r *recordingCanvas) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func TestPolygonVertices(t *testing.T) {
	center := r2.Vec{X: 50, Y: 60}
	for sides := 3; sides <= 9; sides++ {
		v := PolygonVertices(center, 20, sides, 0.3)
		if len(v) != sides {
			t.Fatalf("%d sides: got %d vertices", sides, len(v))
		}
		for k, p := range v {
			if d := r2.Norm(r2.Sub(p, center)); math.Abs(d-20) > 1e-9 {
				t.Errorf("%d sides: vertex %d at distance %g", sides, k, d)
			}
		}
		first := r2.Sub(v[0], center)
		if a := math.Atan2(first.Y, first.X); math.Abs(a-0.3) > 1e-9 {
			t.Errorf("%d sides: first vertex angle %g, want 0.3", sides, a)
		}
	}
}

var testStyle = Style{Glow: 15, RingColor: color.NRGBA{R: 255, G: 255, B: 255, A: 51}}

func TestRenderFree(t *testing.T) {
	splashes := []*Splash{
		{Pos: r2.Vec{X: 10, Y: 10}, Radius: 5, Color: RGB{1, 2, 3}, Sides: 3},
		{Pos: r2.Vec{X: 20, Y: 20}, Radius: 6, Color: RGB{4, 5, 6}, Sides: 6},
	}
	cv := &recordingCanvas{}
	render(cv, splashes, ModeFree, testStyle)

	if cv.calls[0].op != "clear" {
		t.Fatalf("first call %q, want clear", cv.calls[0].op)
	}
	if cv.count("ring") != 0 || cv.count("polygon") != 0 {
		t.Error("free mode must draw circles only")
	}
	if cv.count("circle") != 2 {
		t.Fatalf("circles = %d, want 2", cv.count("circle"))
	}
	c := cv.calls[2]
	if c.center != splashes[1].Pos || c.radius != 6 || c.color != (color.NRGBA{R: 4, G: 5, B: 6, A: 255}) || c.glow != 15 {
		t.Errorf("unexpected circle %+v", c)
	}
}

func TestRenderFormation(t *testing.T) {
	splashes := []*Splash{
		{Pos: r2.Vec{X: 10, Y: 10}, Radius: 5, Color: RGB{1, 2, 3}, Sides: 3},
		{Pos: r2.Vec{X: 20, Y: 20}, Radius: 6, Color: RGB{4, 5, 6}, Sides: 6, Rotation: 1},
		{Pos: r2.Vec{X: 30, Y: 10}, Radius: 7, Color: RGB{7, 8, 9}, Sides: 9},
	}
	cv := &recordingCanvas{}
	render(cv, splashes, ModeFormation, testStyle)

	ops := make([]string, len(cv.calls))
	for i, c := range cv.calls {
		ops[i] = c.op
	}
	want := []string{"clear", "ring", "polygon", "polygon", "polygon"}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", ops, want)
		}
	}

	ring := cv.calls[1]
	if ring.color != testStyle.RingColor {
		t.Errorf("ring color %v", ring.color)
	}
	for i, p := range ring.points {
		if p != splashes[i].Pos {
			t.Errorf("ring point %d = %v, want %v", i, p, splashes[i].Pos)
		}
	}
	if n := len(cv.calls[3].points); n != 6 {
		t.Errorf("second polygon has %d vertices, want 6", n)
	}
}

func TestRenderEmpty(t *testing.T) {
	cv := &recordingCanvas{}
	render(cv, nil, ModeFormation, testStyle)
	if len(cv.calls) != 1 || cv.calls[0].op != "clear" {
		t.Errorf("empty scene should only clear, got %+v", cv.calls)
	}
}
