package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// ImageInfo contains metadata about a loaded image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif" or "unknown".
	// Files are classified by extension, data URLs by their media type.
	Format string `json:"format"`

	// HasAlpha is true when at least one pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// SizeBytes is the size of the encoded source in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// Source is the file path, or "data-url" for inline images.
	Source string `json:"source"`
}

// Load decodes the image file at path into a Buffer.
//
// PNG, JPEG and GIF are supported. JPEG EXIF orientation is applied so the
// buffer matches what an image viewer displays.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG, JPEG, or GIF image
//   - Returns ErrEmptyImage for zero-sized images
func Load(path string) (*Buffer, *ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	buf, err := newCheckedBuffer(img)
	if err != nil {
		return nil, nil, err
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	return buf, buildInfo(buf, format, stat.Size(), path), nil
}

// LoadDataURL decodes an inline "data:<mime>;base64,<payload>" image.
func LoadDataURL(url string) (*Buffer, *ImageInfo, error) {
	header, payload, ok := strings.Cut(url, ",")
	if !ok || !strings.HasPrefix(header, "data:") {
		return nil, nil, fmt.Errorf("invalid data URL: missing data: header")
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, nil, fmt.Errorf("invalid data URL: only base64 payloads are supported")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid data URL payload: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	buf, err := newCheckedBuffer(img)
	if err != nil {
		return nil, nil, err
	}

	format := "unknown"
	switch strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64") {
	case "image/png":
		format = "png"
	case "image/jpeg", "image/jpg":
		format = "jpeg"
	case "image/gif":
		format = "gif"
	}

	return buf, buildInfo(buf, format, int64(len(raw)), "data-url"), nil
}

func newCheckedBuffer(img image.Image) (*Buffer, error) {
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return NewBuffer(img), nil
}

func buildInfo(buf *Buffer, format string, size int64, source string) *ImageInfo {
	return &ImageInfo{
		Width:     buf.Width(),
		Height:    buf.Height(),
		Format:    format,
		HasAlpha:  buf.HasAlpha(),
		SizeBytes: size,
		Source:    source,
	}
}
