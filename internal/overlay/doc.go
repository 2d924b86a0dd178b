// Package overlay draws crosshairs onto a transparent layer that sits above
// the decoded image.
//
// A Renderer owns the font face and style. Overlay produces a fresh layer on
// every call, so drawing the same inputs twice yields identical pixels; the
// frame loop relies on this to redraw the whole layer each frame.
//
// Labels are rasterized with freetype using the Go regular font. Each label
// is stroked in the outline color first and filled in the text color on top,
// which keeps it legible over arbitrary image content.
package overlay
