package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	glowStrength = 0.45
	ringRune     = '·'
	glowRune     = ' '
)

var background = colorful.Color{R: 8 / 255.0, G: 8 / 255.0, B: 14 / 255.0}

// cellCanvas rasterises splash frames onto terminal cells. Each cell stands
// for a cellW x cellH block of world pixels and is lit when its center falls
// inside a shape. The background of every cell is tracked so translucent
// layers blend over what is already there.
type cellCanvas struct {
	screen       tcell.Screen
	cellW, cellH float64
	cols, rows   int

	bg   []colorful.Color
	mark []rune
	fg   []colorful.Color
}

func newCellCanvas(screen tcell.Screen, cellW, cellH int) *cellCanvas {
	return &cellCanvas{
		screen: screen,
		cellW:  float64(cellW),
		cellH:  float64(cellH),
	}
}

// resize sets the drawable grid, which may be smaller than the screen.
func (c *cellCanvas) resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	n := c.cols * c.rows
	c.bg = make([]colorful.Color, n)
	c.mark = make([]rune, n)
	c.fg = make([]colorful.Color, n)
}

// worldSize is the pixel size the world should use for this grid.
func (c *cellCanvas) worldSize() (float64, float64) {
	return float64(c.cols) * c.cellW, float64(c.rows) * c.cellH
}

func (c *cellCanvas) center(col, row int) r2.Vec {
	return r2.Vec{X: (float64(col) + 0.5) * c.cellW, Y: (float64(row) + 0.5) * c.cellH}
}

// cells returns the clamped cell range covering a world-space box.
func (c *cellCanvas) cells(minX, minY, maxX, maxY float64) (c0, r0, c1, r1 int) {
	c0 = max(int(math.Floor(minX/c.cellW)), 0)
	r0 = max(int(math.Floor(minY/c.cellH)), 0)
	c1 = min(int(math.Ceil(maxX/c.cellW)), c.cols-1)
	r1 = min(int(math.Ceil(maxY/c.cellH)), c.rows-1)
	return c0, r0, c1, r1
}

func (c *cellCanvas) Clear() {
	for i := range c.bg {
		c.bg[i] = background
		c.mark[i] = ' '
	}
}

func (c *cellCanvas) StrokeRing(points []r2.Vec, col color.NRGBA) {
	if len(points) < 2 || c.cols == 0 || c.rows == 0 {
		return
	}
	step := min(c.cellW, c.cellH) / 2
	tint := toColorful(col)
	alpha := float64(col.A) / 255
	for i, p := range points {
		q := points[(i+1)%len(points)]
		d := r2.Sub(q, p)
		n := max(int(r2.Norm(d)/step), 1)
		for k := 0; k <= n; k++ {
			v := r2.Add(p, r2.Scale(float64(k)/float64(n), d))
			idx, ok := c.index(v)
			if !ok {
				continue
			}
			c.mark[idx] = ringRune
			c.fg[idx] = c.bg[idx].BlendRgb(tint, min(alpha*4, 1))
		}
	}
}

func (c *cellCanvas) FillCircle(center r2.Vec, radius float64, col color.NRGBA, glow float64) {
	reach := radius + glow
	c0, r0, c1, r1 := c.cells(center.X-reach, center.Y-reach, center.X+reach, center.Y+reach)
	fill := toColorful(col)
	for row := r0; row <= r1; row++ {
		for cc := c0; cc <= c1; cc++ {
			d := r2.Norm(r2.Sub(c.center(cc, row), center))
			switch {
			case d <= radius:
				c.set(cc, row, fill)
			case glow > 0 && d <= reach:
				c.blend(cc, row, fill, glowStrength*(1-(d-radius)/glow))
			}
		}
	}
}

func (c *cellCanvas) FillPolygon(vertices []r2.Vec, col color.NRGBA, glow float64) {
	if len(vertices) < 3 {
		return
	}
	minV, maxV := vertices[0], vertices[0]
	var centroid r2.Vec
	for _, v := range vertices {
		minV.X, minV.Y = min(minV.X, v.X), min(minV.Y, v.Y)
		maxV.X, maxV.Y = max(maxV.X, v.X), max(maxV.Y, v.Y)
		centroid = r2.Add(centroid, v)
	}
	centroid = r2.Scale(1/float64(len(vertices)), centroid)
	radius := r2.Norm(r2.Sub(vertices[0], centroid))

	c0, r0, c1, r1 := c.cells(minV.X-glow, minV.Y-glow, maxV.X+glow, maxV.Y+glow)
	fill := toColorful(col)
	for row := r0; row <= r1; row++ {
		for cc := c0; cc <= c1; cc++ {
			p := c.center(cc, row)
			if insidePolygon(p, vertices) {
				c.set(cc, row, fill)
				continue
			}
			d := r2.Norm(r2.Sub(p, centroid))
			if glow > 0 && d <= radius+glow {
				c.blend(cc, row, fill, glowStrength*(1-max(d-radius, 0)/glow))
			}
		}
	}
}

// flush copies the grid to the screen.
func (c *cellCanvas) flush() {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			style := tcell.StyleDefault.Background(toTcell(c.bg[i]))
			r := c.mark[i]
			if r == ringRune {
				style = style.Foreground(toTcell(c.fg[i]))
			}
			c.screen.SetContent(col, row, r, nil, style)
		}
	}
}

func (c *cellCanvas) index(p r2.Vec) (int, bool) {
	col, row := int(math.Floor(p.X/c.cellW)), int(math.Floor(p.Y/c.cellH))
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, false
	}
	return row*c.cols + col, true
}

func (c *cellCanvas) set(col, row int, fill colorful.Color) {
	i := row*c.cols + col
	c.bg[i] = fill
	c.mark[i] = ' '
}

func (c *cellCanvas) blend(col, row int, tint colorful.Color, t float64) {
	if t <= 0 {
		return
	}
	i := row*c.cols + col
	c.bg[i] = c.bg[i].BlendRgb(tint, min(t, 1)).Clamped()
	if c.mark[i] != ringRune {
		c.mark[i] = glowRune
	}
}

// insidePolygon is the even-odd rule.
func insidePolygon(p r2.Vec, poly []r2.Vec) bool {
	in := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
