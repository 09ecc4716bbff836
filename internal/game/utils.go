package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// shade moves a color's HSV value by delta (negative darkens).
func shade(c color.Color, delta float64) color.RGBA {
	cf, _ := colorful.MakeColor(c)
	h, s, v := cf.Hsv()
	r, g, b := colorful.Hsv(h, s, clamp01(v+delta)).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
