package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := createInMemoryImage(width, height, c)

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

// encodeDataURL returns img as a base64 PNG data URL.
func encodeDataURL(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestLoad(t *testing.T) {
	path := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})
	defer os.Remove(path)

	buf, info, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if buf.Width() != 100 || buf.Height() != 80 {
		t.Errorf("buffer size: got %dx%d, want 100x80", buf.Width(), buf.Height())
	}
	if info.Width != 100 || info.Height != 80 {
		t.Errorf("info size: got %dx%d, want 100x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.HasAlpha {
		t.Error("HasAlpha: got true for an opaque image")
	}
	if info.SizeBytes <= 0 {
		t.Errorf("SizeBytes: got %d, want > 0", info.SizeBytes)
	}
	if info.Source != path {
		t.Errorf("Source: got %s, want %s", info.Source, path)
	}
	if got := buf.At(50, 40); got != (Pixel{255, 0, 0, 255}) {
		t.Errorf("At(50,40): got %+v, want red", got)
	}
}

func TestLoad_TransparentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{200, 100, 50, 128})

	dir := t.TempDir()
	path := filepath.Join(dir, "alpha.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	f.Close()

	buf, info, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !info.HasAlpha {
		t.Error("HasAlpha: got false, want true")
	}
	if got := buf.At(1, 1); got != (Pixel{200, 100, 50, 128}) {
		t.Errorf("At(1,1): got %+v, want non-premultiplied {200 100 50 128}", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, _, err := Load("/nonexistent/path/image.png"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bogus.png")
		if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if _, _, err := Load(path); err == nil {
			t.Error("expected error for invalid image data")
		}
	})
}

func TestLoad_FormatByExtension(t *testing.T) {
	src := createTestImage(t, 3, 3, color.White)
	defer os.Remove(src)
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	// PNG bytes behind a .gif name still decode; the label follows the name.
	path := filepath.Join(t.TempDir(), "image.GIF")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, info, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if info.Format != "gif" {
		t.Errorf("Format: got %s, want gif", info.Format)
	}
}

func TestLoadDataURL(t *testing.T) {
	url := encodeDataURL(t, createPatternImage(20, 10))

	buf, info, err := LoadDataURL(url)
	if err != nil {
		t.Fatalf("LoadDataURL failed: %v", err)
	}
	if buf.Width() != 20 || buf.Height() != 10 {
		t.Errorf("size: got %dx%d, want 20x10", buf.Width(), buf.Height())
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.Source != "data-url" {
		t.Errorf("Source: got %s, want data-url", info.Source)
	}
	if got := buf.At(15, 8); got != (Pixel{255, 255, 255, 255}) {
		t.Errorf("At(15,8): got %+v, want white", got)
	}
}

func TestLoadDataURL_Errors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no comma", "data:image/png;base64"},
		{"wrong scheme", "http://example.com/a.png,abc"},
		{"not base64", "data:image/png,rawbytes"},
		{"bad payload", "data:image/png;base64,!!!"},
		{"not an image", "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := LoadDataURL(tt.url); err == nil {
				t.Errorf("LoadDataURL(%q) expected error", tt.url)
			}
		})
	}
}

func TestNewBuffer_Rebases(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 14, 23))
	img.Set(10, 20, color.RGBA{1, 2, 3, 255})

	buf := NewBuffer(img)
	if buf.Width() != 4 || buf.Height() != 3 {
		t.Fatalf("size: got %dx%d, want 4x3", buf.Width(), buf.Height())
	}
	if got := buf.At(0, 0); got != (Pixel{1, 2, 3, 255}) {
		t.Errorf("At(0,0): got %+v, want {1 2 3 255}", got)
	}
}

func TestBuffer_Clamp(t *testing.T) {
	buf := NewBuffer(createInMemoryImage(10, 5, color.White))

	tests := []struct {
		in, want Point
	}{
		{Point{3, 2}, Point{3, 2}},
		{Point{-4, 2}, Point{0, 2}},
		{Point{3, -1}, Point{3, 0}},
		{Point{12, 9}, Point{9, 4}},
	}
	for _, tt := range tests {
		if got := buf.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuffer_PixelAt(t *testing.T) {
	buf := NewBuffer(createInMemoryImage(2, 2, color.Black))

	if _, err := buf.PixelAt(1, 1); err != nil {
		t.Errorf("PixelAt(1,1) unexpected error: %v", err)
	}
	if _, err := buf.PixelAt(2, 0); err == nil {
		t.Error("PixelAt(2,0) expected error")
	}
}

func TestNewCheckedBuffer_Empty(t *testing.T) {
	_, err := newCheckedBuffer(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}
