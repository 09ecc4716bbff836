package game

import (
	"image/color"
	"testing"
	"time"

	"github.com/iburimskiy/color-splash/internal/config"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{75*time.Minute + 3*time.Second, "75:03"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShade(t *testing.T) {
	base := color.RGBA{R: 100, G: 120, B: 160, A: 255}
	darker := shade(base, -0.2)
	if darker.B >= base.B {
		t.Errorf("shade(-0.2) = %v, want darker than %v", darker, base)
	}
	if got := shade(color.White, 0.5); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("brightening white should clamp, got %v", got)
	}
	if got := shade(color.Black, -0.5); got != (color.RGBA{A: 255}) {
		t.Errorf("darkening black should clamp, got %v", got)
	}
}

func TestButtonBarLayout(t *testing.T) {
	calls := 0
	bar := newButtonBar(
		buttonSpec{"A", func() { calls++ }},
		buttonSpec{"B", nil},
		buttonSpec{"C", nil},
	)
	if len(bar) != 3 {
		t.Fatalf("got %d buttons", len(bar))
	}
	for i := 1; i < len(bar); i++ {
		if bar[i].x != bar[i-1].x+config.ButtonWidth+config.ButtonSpacing {
			t.Errorf("button %d at x=%d", i, bar[i].x)
		}
		if bar[i].x <= bar[i-1].x+bar[i-1].w {
			t.Errorf("button %d overlaps its neighbour", i)
		}
	}
	first := bar[0]
	if !first.contains(first.x+1, first.y+1) || first.contains(first.x-1, first.y) {
		t.Error("contains() disagrees with the button rectangle")
	}
	first.action()
	if calls != 1 {
		t.Error("action not wired")
	}
}
