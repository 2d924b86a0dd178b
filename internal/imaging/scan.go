package imaging

import "fmt"

// Threshold is the Dissimilarity above which a pixel ends a region.
const Threshold = 0.02

// Bounds is the inclusive extent of a scanned region.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (inclusive)
	Y2 int `json:"y2"` // Bottom edge (inclusive)
}

// Width is the horizontal extent reported on crosshair labels (X2 - X1).
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height is the vertical extent reported on crosshair labels (Y2 - Y1).
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// Dissimilarity scores how far b is from a on a 0-1 scale.
//
// The signed red, green and blue differences are reduced to their minimum
// and maximum; the score is the largest of |min|, max and |min-max|, divided
// by 255. Alpha is ignored. The result is symmetric in a and b.
func Dissimilarity(a, b Pixel) float64 {
	dR := int(a.R) - int(b.R)
	dG := int(a.G) - int(b.G)
	dB := int(a.B) - int(b.B)

	dMin := min(dR, dG, dB)
	dMax := max(dR, dG, dB)
	distance := abs(dMin - dMax)

	return float64(max(abs(dMin), dMax, distance)) / 255
}

// Scan measures the same-color run through (x, y) along its row and column.
//
// The origin color is sampled once and every step is compared against it,
// not against the previous pixel. Each of the four walks stops on the last
// pixel whose score is within Threshold, or on the buffer edge.
func Scan(buf *Buffer, x, y int) (Bounds, error) {
	origin, err := buf.PixelAt(x, y)
	if err != nil {
		return Bounds{}, fmt.Errorf("scan origin: %w", err)
	}

	return Bounds{
		X1: buf.walk(origin, x, y, -1, 0),
		X2: buf.walk(origin, x, y, 1, 0),
		Y1: buf.walk(origin, x, y, 0, -1),
		Y2: buf.walk(origin, x, y, 0, 1),
	}, nil
}

// walk steps from (x, y) by (dx, dy) and returns the last in-range
// coordinate on the moving axis.
func (b *Buffer) walk(origin Pixel, x, y, dx, dy int) int {
	for {
		nx, ny := x+dx, y+dy
		if !b.Contains(nx, ny) {
			break
		}
		if Dissimilarity(origin, b.At(nx, ny)) > Threshold {
			break
		}
		x, y = nx, ny
	}
	if dx != 0 {
		return x
	}
	return y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
