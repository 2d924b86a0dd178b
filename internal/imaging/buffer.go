package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Point represents a 2D pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ImagePoint converts p to an image.Point.
func (p Point) ImagePoint() image.Point { return image.Point{X: p.X, Y: p.Y} }

// Buffer is a decoded image normalized to a zero-origin *image.NRGBA.
//
// Samples are read straight from the non-premultiplied Pix slice, so a pixel
// with partial alpha reports the same R, G, B bytes the source file stored.
type Buffer struct {
	img *image.NRGBA
}

// NewBuffer copies src into a new Buffer. The copy is rebased so that the
// top-left pixel of src is at (0,0).
func NewBuffer(src image.Image) *Buffer {
	return &Buffer{img: imaging.Clone(src)}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.img.Rect.Dx() }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// Image returns the underlying raster. Callers must not modify it.
func (b *Buffer) Image() *image.NRGBA { return b.img }

// Contains reports whether (x, y) addresses a pixel of the buffer.
func (b *Buffer) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width() && y < b.Height()
}

// At returns the pixel at (x, y). Coordinates must be inside the buffer.
func (b *Buffer) At(x, y int) Pixel {
	i := b.img.PixOffset(x, y)
	p := b.img.Pix[i : i+4 : i+4]
	return Pixel{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// PixelAt is the bounds-checked form of At.
func (b *Buffer) PixelAt(x, y int) (Pixel, error) {
	if !b.Contains(x, y) {
		return Pixel{}, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, b.Width(), b.Height())
	}
	return b.At(x, y), nil
}

// Clamp moves p to the nearest pixel inside the buffer.
func (b *Buffer) Clamp(p Point) Point {
	return Point{
		X: min(max(p.X, 0), b.Width()-1),
		Y: min(max(p.Y, 0), b.Height()-1),
	}
}

// HasAlpha reports whether any pixel is not fully opaque.
func (b *Buffer) HasAlpha() bool {
	pix := b.img.Pix
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0xff {
			return true
		}
	}
	return false
}
