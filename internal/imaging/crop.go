package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// MaxZoomPixels caps the pixel count of a zoomed image. Larger requests are
// served at the biggest integer scale that fits.
const MaxZoomPixels = 1 << 24

// CropResult contains a zoomed region encoded as base64 PNG.
type CropResult struct {
	X1          int    `json:"x1"`
	Y1          int    `json:"y1"`
	X2          int    `json:"x2"`
	Y2          int    `json:"y2"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Scale       int    `json:"scale"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Zoom crops the inclusive bounds, grown by padding on every side and
// clamped to the buffer, and enlarges the crop by an integer scale.
//
// Enlarging uses nearest-neighbor sampling so that every source pixel
// becomes a crisp scale x scale block. The scale is reduced, down to 1,
// until the output fits in MaxZoomPixels; CropResult.Scale reports the
// scale used.
func Zoom(buf *Buffer, bounds Bounds, padding, scale int) (*CropResult, error) {
	if padding < 0 {
		return nil, fmt.Errorf("padding must be >= 0, got %d", padding)
	}
	if scale < 1 {
		return nil, fmt.Errorf("scale must be >= 1, got %d", scale)
	}
	if !buf.Contains(bounds.X1, bounds.Y1) || !buf.Contains(bounds.X2, bounds.Y2) ||
		bounds.X1 > bounds.X2 || bounds.Y1 > bounds.Y2 {
		return nil, fmt.Errorf("zoom region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			bounds.X1, bounds.Y1, bounds.X2, bounds.Y2, buf.Width(), buf.Height())
	}

	// Any padding past the larger dimension already reaches every edge.
	padding = min(padding, max(buf.Width(), buf.Height()))

	tl := buf.Clamp(Point{X: bounds.X1 - padding, Y: bounds.Y1 - padding})
	br := buf.Clamp(Point{X: bounds.X2 + padding, Y: bounds.Y2 + padding})

	cropped := imaging.Crop(buf.Image(), image.Rect(tl.X, tl.Y, br.X+1, br.Y+1))
	scale = fitScale(cropped.Bounds().Dx(), cropped.Bounds().Dy(), scale)
	if scale > 1 {
		cropped = imaging.Resize(cropped, cropped.Bounds().Dx()*scale, cropped.Bounds().Dy()*scale, imaging.NearestNeighbor)
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, cropped, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode zoomed image: %w", err)
	}

	return &CropResult{
		X1:          tl.X,
		Y1:          tl.Y,
		X2:          br.X,
		Y2:          br.Y,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		Scale:       scale,
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// fitScale returns the largest scale <= want at which a width x height
// crop stays within MaxZoomPixels, and never less than 1.
func fitScale(width, height, want int) int {
	area := int64(width) * int64(height)
	scale := int64(want)
	if limit := int64(math.Sqrt(float64(MaxZoomPixels) / float64(area))); scale > limit {
		scale = limit
	}
	for scale > 1 && area*scale*scale > MaxZoomPixels {
		scale--
	}
	return int(max(scale, 1))
}
