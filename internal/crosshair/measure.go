package crosshair

import (
	"math"

	"github.com/ironsheep/crosshair-mcp/internal/imaging"
)

// Measurement relates two crosshairs: how far apart their anchors are and
// how much empty space separates their scanned bounds.
type Measurement struct {
	DistancePixels float64 `json:"distance_pixels"`
	DeltaX         int     `json:"delta_x"`
	DeltaY         int     `json:"delta_y"`
	AngleDegrees   float64 `json:"angle_degrees"`

	// GapX and GapY count the pixels strictly between the two bounds along
	// each axis. Touching or overlapping extents give 0.
	GapX    int  `json:"gap_x"`
	GapY    int  `json:"gap_y"`
	Overlap bool `json:"overlap"`

	// Span is the smallest region holding both bounds.
	Span       imaging.Bounds `json:"span"`
	SpanWidth  int            `json:"span_width"`
	SpanHeight int            `json:"span_height"`
}

// Measure compares from against to. Deltas and the angle run from the first
// anchor to the second; 0 degrees points right and 90 points down.
func Measure(from, to Crosshair) Measurement {
	dx := to.Point.X - from.Point.X
	dy := to.Point.Y - from.Point.Y

	distance := math.Hypot(float64(dx), float64(dy))
	angle := math.Atan2(float64(dy), float64(dx)) * 180 / math.Pi

	a, b := from.Bounds, to.Bounds
	span := imaging.Bounds{
		X1: min(a.X1, b.X1),
		Y1: min(a.Y1, b.Y1),
		X2: max(a.X2, b.X2),
		Y2: max(a.Y2, b.Y2),
	}
	gapX := gap(a.X1, a.X2, b.X1, b.X2)
	gapY := gap(a.Y1, a.Y2, b.Y1, b.Y2)

	return Measurement{
		DistancePixels: math.Round(distance*100) / 100,
		DeltaX:         dx,
		DeltaY:         dy,
		AngleDegrees:   math.Round(angle*10) / 10,
		GapX:           gapX,
		GapY:           gapY,
		Overlap:        a.X1 <= b.X2 && b.X1 <= a.X2 && a.Y1 <= b.Y2 && b.Y1 <= a.Y2,
		Span:           span,
		SpanWidth:      span.Width(),
		SpanHeight:     span.Height(),
	}
}

// gap returns the pixels strictly between inclusive ranges [a1,a2] and [b1,b2].
func gap(a1, a2, b1, b2 int) int {
	switch {
	case b1 > a2:
		return b1 - a2 - 1
	case a1 > b2:
		return a1 - b2 - 1
	default:
		return 0
	}
}
