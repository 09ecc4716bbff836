// Package game hosts the splash scene in an ebiten window with a small
// button bar and the native color picker.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/color-splash/internal/config"
	"github.com/iburimskiy/color-splash/internal/session"
	"github.com/iburimskiy/color-splash/internal/splash"
)

type pickResult struct {
	color color.Color
	err   error
}

// Game implements ebiten.Game.
type Game struct {
	cfg     *config.Config
	session *session.Session
	canvas  screenCanvas

	// picker dialog runs off the game loop and reports back here
	picks   chan pickResult
	picking bool

	buttons []*button

	width, height int
	started       time.Time
	maxTicks      int

	paused  bool
	lastErr error
}

// New returns a game for s. maxTicks > 0 ends the run after that many ticks.
func New(cfg *config.Config, s *session.Session, maxTicks int) *Game {
	g := &Game{
		cfg:      cfg,
		session:  s,
		picks:    make(chan pickResult, 1),
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
		started:  time.Now(),
		maxTicks: maxTicks,
	}
	g.buttons = newButtonBar(
		buttonSpec{"Pick Color", g.openPicker},
		buttonSpec{"Random", func() { g.session.Random() }},
		buttonSpec{"Reset", g.session.Reset},
	)
	return g
}

// Run opens the window and blocks until the game ends.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.Window.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	g.drainPicker()

	mouseX, mouseY := ebiten.CursorPosition()
	for _, b := range g.buttons {
		b.update(mouseX, mouseY)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.openPicker()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.session.Random()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.session.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	}

	if !g.paused {
		g.session.Step(1)
	}
	if g.maxTicks > 0 && g.session.World.Ticks() >= uint64(g.maxTicks) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.dst = screen
	g.session.World.Draw(&g.canvas)

	for _, b := range g.buttons {
		b.draw(screen)
	}
	g.drawSwatch(screen)
	g.drawLevelMeter(screen)

	world := g.session.World
	status := fmt.Sprintf("%d splashes, %s | %s | P: pick  R: random  C: reset  Space: pause",
		world.Splashes().Len(), world.Mode(), formatDuration(time.Since(g.started)))
	if g.picking {
		status += " | picking..."
	}
	if g.paused {
		status += " | paused"
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.session.World.Resize(float64(g.width), float64(g.height))
		slog.Debug("window resized", "width", g.width, "height", g.height)
	}
	return g.width, g.height
}

// openPicker shows the native color dialog without blocking the loop.
func (g *Game) openPicker() {
	if g.picking {
		return
	}
	g.picking = true
	current := g.session.Picker.NRGBA()
	go func() {
		c, err := zenity.SelectColor(
			zenity.Title("Pick a splash color"),
			zenity.Color(current),
		)
		g.picks <- pickResult{color: c, err: err}
	}()
}

// drainPicker applies a finished dialog between ticks.
func (g *Game) drainPicker() {
	select {
	case res := <-g.picks:
		g.picking = false
		switch {
		case errors.Is(res.err, zenity.ErrCanceled):
		case res.err != nil:
			slog.Warn("color picker failed", "error", res.err)
			g.lastErr = res.err
		default:
			if err := g.session.PickHex(splash.FromColor(res.color).Hex()); err != nil {
				g.lastErr = err
				return
			}
			g.lastErr = nil
		}
	default:
	}
}
