package imaging

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Pixel is one 8-bit RGBA sample read from a Buffer.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGBA implements color.Color. The stored channels are non-premultiplied.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// colorful returns the opaque RGB part of p in go-colorful's 0-1 space.
func (p Pixel) colorful() colorful.Color {
	return colorful.Color{
		R: float64(p.R) / 255,
		G: float64(p.G) / 255,
		B: float64(p.B) / 255,
	}
}

// Hex returns the lowercase "#rrggbb" form of p. Alpha is not included.
func (p Pixel) Hex() string {
	return p.colorful().Hex()
}

// Alpha returns the alpha channel as a 0-1 fraction.
func (p Pixel) Alpha() float64 {
	return float64(p.A) / 255
}

// ColorFormat selects how a readout renders a pixel.
type ColorFormat string

const (
	// FormatHex renders "#rrggbb", with " (<alpha>)" appended when the pixel
	// is not fully opaque.
	FormatHex ColorFormat = "hex"

	// FormatRGBA renders "rgba(r, g, b, <alpha>)".
	FormatRGBA ColorFormat = "rgba"
)

// ParseColorFormat accepts "hex" or "rgba" in any case.
func ParseColorFormat(s string) (ColorFormat, error) {
	switch f := ColorFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHex, FormatRGBA:
		return f, nil
	default:
		return "", fmt.Errorf("unknown color format %q (want hex or rgba)", s)
	}
}

// Readout formats p the way the color swatch displays it.
func (p Pixel) Readout(format ColorFormat) string {
	alpha := strconv.FormatFloat(p.Alpha(), 'f', -1, 64)
	if format == FormatRGBA {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", p.R, p.G, p.B, alpha)
	}
	if p.A == 0xff {
		return p.Hex()
	}
	return p.Hex() + " (" + alpha + ")"
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex     string   `json:"hex"`     // "#rrggbb" (no alpha)
	Readout string   `json:"readout"` // swatch text in the configured format
	RGB     RGBColor `json:"rgb"`
	RGBA    Pixel    `json:"rgba"`
	HSL     HSLColor `json:"hsl"`
}

// SampleColor extracts the color at (x, y) in multiple formats.
//
// Returns an error if the coordinates are outside the buffer.
func SampleColor(buf *Buffer, x, y int, format ColorFormat) (*ColorResult, error) {
	p, err := buf.PixelAt(x, y)
	if err != nil {
		return nil, err
	}

	h, s, l := p.colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorResult{
		Hex:     p.Hex(),
		Readout: p.Readout(format),
		RGB:     RGBColor{R: p.R, G: p.G, B: p.B},
		RGBA:    p,
		HSL: HSLColor{
			H: int(h),
			S: int(s * 100),
			L: int(l * 100),
		},
	}, nil
}

// ParseHexColor parses a hex color string like "#FF0000" or "#FF000080".
func ParseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
