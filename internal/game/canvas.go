package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

const glowLayers = 6

var background = color.RGBA{R: 8, G: 8, B: 14, A: 255}

var whiteSubImage *ebiten.Image

// whiteTexture is the 1x1 source for colored DrawTriangles fills, created
// on first use so nothing touches the GPU before the game starts.
func whiteTexture() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// screenCanvas draws splash frames onto an ebiten image.
type screenCanvas struct {
	dst *ebiten.Image

	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

func (c *screenCanvas) Clear() {
	c.dst.Fill(background)
}

func (c *screenCanvas) StrokeRing(points []r2.Vec, col color.NRGBA) {
	for i, p := range points {
		q := points[(i+1)%len(points)]
		vector.StrokeLine(c.dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 1, col, true)
	}
}

func (c *screenCanvas) FillCircle(center r2.Vec, radius float64, col color.NRGBA, glow float64) {
	c.glow(center, radius, glow, col)
	vector.DrawFilledCircle(c.dst, float32(center.X), float32(center.Y), float32(radius), col, true)
}

func (c *screenCanvas) FillPolygon(vertices []r2.Vec, col color.NRGBA, glow float64) {
	if len(vertices) < 3 {
		return
	}
	var center r2.Vec
	for _, v := range vertices {
		center = r2.Add(center, v)
	}
	center = r2.Scale(1/float64(len(vertices)), center)
	c.glow(center, r2.Norm(r2.Sub(vertices[0], center)), glow, col)

	c.path = vector.Path{}
	c.path.MoveTo(float32(vertices[0].X), float32(vertices[0].Y))
	for _, v := range vertices[1:] {
		c.path.LineTo(float32(v.X), float32(v.Y))
	}
	c.path.Close()

	c.vertices, c.indices = c.path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	r, g, b, a := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255
	for i := range c.vertices {
		c.vertices[i].SrcX = 1
		c.vertices[i].SrcY = 1
		c.vertices[i].ColorR = r
		c.vertices[i].ColorG = g
		c.vertices[i].ColorB = b
		c.vertices[i].ColorA = a
	}
	c.dst.DrawTriangles(c.vertices, c.indices, whiteTexture(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// glow fakes a canvas shadow blur with translucent discs, widest first.
func (c *screenCanvas) glow(center r2.Vec, radius, blur float64, col color.NRGBA) {
	if blur <= 0 {
		return
	}
	for i := glowLayers; i >= 1; i-- {
		f := float64(i) / glowLayers
		halo := col
		halo.A = uint8(float64(col.A) * 0.18 * (1 - f*0.8))
		vector.DrawFilledCircle(c.dst, float32(center.X), float32(center.Y), float32(radius+blur*f), halo, true)
	}
}
