// Package imaging provides the pixel-level operations behind the crosshair tool.
//
// A decoded image is held in a Buffer, a zero-origin non-premultiplied RGBA
// raster that is read-only once loaded. Everything else in the package reads
// from a Buffer: color sampling and readout formatting, the directional
// region scanner, zoomed crops and anchor-to-anchor measurement.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Scanner bounds are
// inclusive on both ends: a single-pixel region has X1 == X2 and Y1 == Y2.
//
// # Region Scanning
//
// Scan walks outward from an origin in the four cardinal directions and stops
// each walk before the first pixel whose Dissimilarity to the origin color
// exceeds Threshold. The four walks are independent; this is not a flood fill
// and a region with a hole or notch is measured along the origin's row and
// column only.
//
// # Color Representation
//
// Colors are reported as:
//   - Hex: lowercase "#rrggbb" (alpha excluded)
//   - Readout: hex with an alpha fraction suffix, or a functional rgba() string
//   - RGB / RGBA: 8-bit components
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Thread Safety
//
// A Buffer is never mutated after construction and may be read concurrently.
package imaging
