// Package term renders the splash scene in a terminal with tcell. Shapes
// are rasterised to cell backgrounds; the bottom row is a status line that
// doubles as the hex color prompt.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/color-splash/internal/config"
	"github.com/iburimskiy/color-splash/internal/session"
)

const hexDigits = 6

var (
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	promptStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	errorStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
)

type driver struct {
	screen  tcell.Screen
	session *session.Session
	canvas  *cellCanvas

	maxTicks int
	paused   bool

	// hex prompt, active while entry is true
	entry  bool
	buffer strings.Builder

	lastErr error
}

func newDriver(screen tcell.Screen, s *session.Session, cfg *config.Config, maxTicks int) *driver {
	d := &driver{
		screen:   screen,
		session:  s,
		canvas:   newCellCanvas(screen, cfg.Render.CellW, cfg.Render.CellH),
		maxTicks: maxTicks,
	}
	d.resize()
	return d
}

// Run drives s on an initialised screen until the user quits, ctx is done
// or maxTicks (when > 0) ticks have run. The caller owns screen.Fini.
func Run(ctx context.Context, screen tcell.Screen, s *session.Session, cfg *config.Config, maxTicks int) error {
	d := newDriver(screen, s, cfg, maxTicks)

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Window.TPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !d.handle(ev) {
				return nil
			}
		case <-ticker.C:
			if !d.tick() {
				return nil
			}
			d.draw()
		}
	}
}

// tick advances the scene and reports whether the run should continue.
func (d *driver) tick() bool {
	if !d.paused {
		d.session.Step(1)
	}
	return d.maxTicks <= 0 || d.session.World.Ticks() < uint64(d.maxTicks)
}

func (d *driver) resize() {
	cols, rows := d.screen.Size()
	d.canvas.resize(cols, rows-1)
	w, h := d.canvas.worldSize()
	d.session.World.Resize(w, h)
	slog.Debug("terminal resized", "cols", cols, "rows", rows, "width", w, "height", h)
}

// handle applies one input event. It returns false to quit.
func (d *driver) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.resize()
		d.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if d.entry {
			d.handleEntry(ev)
			return true
		}
		return d.handleKey(ev)
	}
	return true
}

func (d *driver) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case 'r', 'R':
		d.session.Random()
		d.lastErr = nil
	case 'c', 'C':
		d.session.Reset()
		d.lastErr = nil
	case ' ':
		d.paused = !d.paused
	case '#':
		d.entry = true
		d.buffer.Reset()
		d.buffer.WriteRune('#')
	}
	return true
}

func (d *driver) handleEntry(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		d.entry = false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if s := d.buffer.String(); len(s) > 1 {
			d.buffer.Reset()
			d.buffer.WriteString(s[:len(s)-1])
		}
	case tcell.KeyEnter:
		d.entry = false
		d.lastErr = d.session.PickHex(d.buffer.String())
	case tcell.KeyRune:
		if d.buffer.Len() <= hexDigits {
			d.buffer.WriteRune(ev.Rune())
		}
	}
}

func (d *driver) draw() {
	d.session.World.Draw(d.canvas)
	d.canvas.flush()
	d.drawStatus()
	d.screen.Show()
}

func (d *driver) drawStatus() {
	cols, rows := d.screen.Size()
	if rows < 1 {
		return
	}
	y := rows - 1
	for x := 0; x < cols; x++ {
		d.screen.SetContent(x, y, ' ', nil, statusStyle)
	}

	world := d.session.World
	var line string
	style := statusStyle
	switch {
	case d.entry:
		line = "color: " + d.buffer.String() + "_  (Enter: add  Esc: cancel)"
		style = promptStyle
	case d.lastErr != nil:
		line = "error: " + d.lastErr.Error()
		style = errorStyle
	default:
		line = fmt.Sprintf("%d splashes, %s | %s | r: random  c: reset  #: hex  space: pause  q: quit",
			world.Splashes().Len(), world.Mode(), d.session.Picker.Hex())
		if d.paused {
			line += " | paused"
		}
	}
	printAt(d.screen, 0, y, line, style)
}

func printAt(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	cols, _ := screen.Size()
	for _, r := range s {
		if x >= cols {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
