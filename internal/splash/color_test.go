package splash

import (
	"errors"
	"image/color"
	"math/rand"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	channel := func(yield func(uint8) bool) {
		for v := 0; v < 256; v += 15 {
			if !yield(uint8(v)) {
				return
			}
		}
		for _, v := range []uint8{1, 127, 128, 254, 255} {
			if !yield(v) {
				return
			}
		}
	}
	for r := range channel {
		for g := range channel {
			for b := range channel {
				want := RGB{R: r, G: g, B: b}
				hex := RGBToHex(want)
				got, err := HexToRGB(hex)
				if err != nil {
					t.Fatalf("HexToRGB(%q): %v", hex, err)
				}
				if got != want {
					t.Fatalf("round trip %v -> %q -> %v", want, hex, got)
				}
			}
		}
	}
}

func TestRGBToHex(t *testing.T) {
	tests := []struct {
		in   RGB
		want string
	}{
		{RGB{0, 0, 0}, "#000000"},
		{RGB{255, 255, 255}, "#ffffff"},
		{RGB{255, 136, 0}, "#ff8800"},
		{RGB{1, 2, 3}, "#010203"},
	}
	for _, tt := range tests {
		if got := RGBToHex(tt.in); got != tt.want {
			t.Errorf("RGBToHex(%v) = %q, want %q", tt.in, got, tt.want)
		}
		if got := tt.in.Hex(); got != tt.want {
			t.Errorf("%v.Hex() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#ff8800", RGB{255, 136, 0}, false},
		{"ff8800", RGB{255, 136, 0}, false},
		{"#FF8800", RGB{255, 136, 0}, false},
		{"#0a0B0c", RGB{10, 11, 12}, false},
		{"", RGB{}, true},
		{"#fff", RGB{}, true},
		{"#ff88001", RGB{}, true},
		{"##ff8800", RGB{}, true},
		{"#gg8800", RGB{}, true},
		{" #ff8800", RGB{}, true},
		{"rgb(1,2,3)", RGB{}, true},
	}
	for _, tt := range tests {
		got, err := HexToRGB(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidHex) {
				t.Errorf("HexToRGB(%q) error = %v, want ErrInvalidHex", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("HexToRGB(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("HexToRGB(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"rgb(12,200,7)", RGB{12, 200, 7}, false},
		{"rgb( 0, 0 , 255 )", RGB{0, 0, 255}, false},
		{"10 20 30 40", RGB{10, 20, 30}, false},
		{"rgba(1,2,3,0.5)", RGB{1, 2, 3}, false},
		{"rgb(1,2)", RGB{}, true},
		{"", RGB{}, true},
		{"red", RGB{}, true},
		{"rgb(256,0,0)", RGB{}, true},
		{"rgb(99999999999999999999,0,0)", RGB{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrParseColor) {
				t.Errorf("ParseColor(%q) error = %v, want ErrParseColor", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorString(t *testing.T) {
	c := RGB{R: 4, G: 5, B: 6}
	got, err := ParseColor(c.String())
	if err != nil {
		t.Fatalf("ParseColor(%q): %v", c.String(), err)
	}
	if got != c {
		t.Errorf("got %v, want %v", got, c)
	}
}

func TestEnergy(t *testing.T) {
	if e := (RGB{100, 0, 0}).Energy(); e != 100 {
		t.Errorf("Energy = %d, want 100", e)
	}
	if e := (RGB{255, 255, 255}).Energy(); e != 765 {
		t.Errorf("Energy = %d, want 765 (no uint8 overflow)", e)
	}
}

func TestRandomColorCoversRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var lo, hi bool
	for i := 0; i < 20000; i++ {
		c := RandomColor(rng)
		if c.R == 0 || c.G == 0 || c.B == 0 {
			lo = true
		}
		if c.R == 255 || c.G == 255 || c.B == 255 {
			hi = true
		}
	}
	if !lo || !hi {
		t.Errorf("expected both channel extremes to appear (lo=%v hi=%v)", lo, hi)
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	if got != (RGB{10, 20, 30}) {
		t.Errorf("FromColor = %v", got)
	}
}
