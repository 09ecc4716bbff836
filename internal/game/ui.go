package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/color-splash/internal/config"
)

var (
	buttonBase   = color.RGBA{R: 100, G: 120, B: 160, A: 255}
	buttonBorder = color.RGBA{R: 150, G: 170, B: 200, A: 255}
)

type buttonSpec struct {
	label  string
	action func()
}

type button struct {
	label      string
	x, y, w, h int
	action     func()

	hovered bool
	pressed bool
}

// newButtonBar lays buttons out left to right under the status line.
func newButtonBar(specs ...buttonSpec) []*button {
	out := make([]*button, len(specs))
	x := config.ButtonX
	for i, s := range specs {
		out[i] = &button{
			label:  s.label,
			x:      x,
			y:      config.ButtonY,
			w:      config.ButtonWidth,
			h:      config.ButtonHeight,
			action: s.action,
		}
		x += config.ButtonWidth + config.ButtonSpacing
	}
	return out
}

func (b *button) contains(x, y int) bool {
	return x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h
}

// update fires the action on a press and release inside the button.
func (b *button) update(mouseX, mouseY int) {
	b.hovered = b.contains(mouseX, mouseY)
	if b.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		b.pressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if b.pressed && b.hovered {
			b.action()
		}
		b.pressed = false
	}
}

func (b *button) draw(screen *ebiten.Image) {
	var bg color.Color = buttonBase
	switch {
	case b.pressed:
		bg = shade(buttonBase, -0.25)
	case b.hovered:
		bg = shade(buttonBase, -0.12)
	}
	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), bg, false)
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 2, buttonBorder, false)

	textWidth := len(b.label) * 6 // debug font glyph width
	ebitenutil.DebugPrintAt(screen, b.label, b.x+(b.w-textWidth)/2, b.y+(b.h-16)/2)
}

// drawSwatch shows the picker's current color right of the button bar.
func (g *Game) drawSwatch(screen *ebiten.Image) {
	last := g.buttons[len(g.buttons)-1]
	x := float32(last.x + last.w + config.ButtonSpacing)
	y := float32(last.y)
	size := float32(config.ButtonHeight)

	vector.DrawFilledRect(screen, x, y, size, size, g.session.Picker.NRGBA(), false)
	vector.StrokeRect(screen, x, y, size, size, 2, buttonBorder, false)
	ebitenutil.DebugPrintAt(screen, g.session.Picker.Hex(), int(x+size)+8, int(y)+8)
}

// drawLevelMeter is a thin bar showing how loud the chimes are right now.
func (g *Game) drawLevelMeter(screen *ebiten.Image) {
	if g.session.Player == nil {
		return
	}
	level := clamp01(g.session.Player.Level())
	x := float32(g.width - config.LevelMeterSize - config.ButtonX)
	y := float32(config.ButtonY + config.ButtonHeight/2 - 4)

	vector.DrawFilledRect(screen, x, y, config.LevelMeterSize, 8, color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	if level > 0 {
		fill := shade(g.session.Picker.NRGBA(), 0.1)
		vector.DrawFilledRect(screen, x, y, float32(level*config.LevelMeterSize), 8, fill, false)
	}
	vector.StrokeRect(screen, x, y, config.LevelMeterSize, 8, 1, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)
}
