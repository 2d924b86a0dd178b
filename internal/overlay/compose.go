package overlay

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// Compose flattens layer over base with source-over alpha. A nil layer
// yields a copy of base. Both images are expected to share the same bounds.
//
// layer is premultiplied; imaging.Overlay converts it to straight alpha
// before blending.
func Compose(base image.Image, layer *image.RGBA) image.Image {
	if layer == nil {
		return clone.AsRGBA(base)
	}
	return imaging.Overlay(base, layer, image.Pt(0, 0), 1)
}

// EncodePNG encodes img as PNG and returns it base64 encoded.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode frame: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
