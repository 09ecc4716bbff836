package splash

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrParseColor is returned when a color string has no numeric triple.
	ErrParseColor = errors.New("splash: malformed color")
	// ErrInvalidHex is returned for anything but six hex digits with an optional '#'.
	ErrInvalidHex = errors.New("splash: invalid hex color")
)

var (
	numberToken = regexp.MustCompile(`\d+`)
	hexPattern  = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)
)

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Energy is the channel sum; splashes above the gravity threshold attract others.
func (c RGB) Energy() int {
	return int(c.R) + int(c.G) + int(c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// NRGBA returns the opaque image/color value.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex is shorthand for RGBToHex(c).
func (c RGB) Hex() string {
	return RGBToHex(c)
}

// ParseColor reads the first three decimal numbers out of s,
// e.g. "rgb(12, 200, 7)".
func ParseColor(s string) (RGB, error) {
	tokens := numberToken.FindAllString(s, 3)
	if len(tokens) < 3 {
		return RGB{}, fmt.Errorf("%w: %q has %d numbers, need 3", ErrParseColor, s, len(tokens))
	}
	var ch [3]uint8
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 10, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: channel %q out of range in %q", ErrParseColor, tok, s)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// RandomColor samples each channel uniformly from [0,255].
func RandomColor(rng *rand.Rand) RGB {
	return RGB{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
	}
}

// HexToRGB parses "#rrggbb" or "rrggbb", case-insensitive.
func HexToRGB(hex string) (RGB, error) {
	if !hexPattern.MatchString(hex) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	c, err := colorful.Hex("#" + strings.ToLower(strings.TrimPrefix(hex, "#")))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// RGBToHex formats c as lower-case "#rrggbb".
func RGBToHex(c RGB) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// FromColor converts any image/color value, e.g. one returned by a picker dialog.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}
