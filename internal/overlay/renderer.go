package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/crosshair-mcp/internal/crosshair"
)

// DPI at which font sizes are interpreted. At 72 DPI one point is one pixel.
const DPI = 72

// Style controls how crosshairs are drawn.
type Style struct {
	// Line is the color of the measurement lines.
	Line color.Color

	// Outline is the label stroke color, drawn underneath the text.
	Outline color.Color

	// Text is the label fill color.
	Text color.Color

	// OutlineWidth is the stroke width of the label outline in pixels.
	OutlineWidth int

	// FontSize is the label size in pixels.
	FontSize float64

	// LabelOffset is added to the anchor to get the label baseline origin.
	LabelOffset image.Point
}

// DefaultStyle returns black lines with white-outlined black 16px labels
// placed 10px right of and 10px above the anchor.
func DefaultStyle() Style {
	return Style{
		Line:         color.Black,
		Outline:      color.White,
		Text:         color.Black,
		OutlineWidth: 2,
		FontSize:     16,
		LabelOffset:  image.Pt(10, -10),
	}
}

// Renderer draws crosshairs in a fixed Style.
//
// A Renderer is not safe for concurrent use; the font face keeps a glyph
// cache. The frame loop calls it from a single goroutine.
type Renderer struct {
	style   Style
	face    font.Face
	outline []image.Point
}

// NewRenderer parses the embedded Go regular font and returns a Renderer.
func NewRenderer(style Style) (*Renderer, error) {
	if style.FontSize <= 0 {
		return nil, fmt.Errorf("font size must be > 0, got %g", style.FontSize)
	}

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    style.FontSize,
		DPI:     DPI,
		Hinting: font.HintingFull,
	})

	return &Renderer{
		style:   style,
		face:    face,
		outline: outlineOffsets(style.OutlineWidth / 2),
	}, nil
}

// Style returns the renderer's style.
func (r *Renderer) Style() Style { return r.style }

// Overlay returns a new transparent width x height layer with every saved
// crosshair drawn in order, followed by transient when it is non-nil.
func (r *Renderer) Overlay(width, height int, saved []crosshair.Crosshair, transient *crosshair.Crosshair) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for _, c := range saved {
		r.Draw(dst, c)
	}
	if transient != nil {
		r.Draw(dst, *transient)
	}
	return dst
}

// Draw renders one crosshair onto dst: the lines selected by its mode and
// its dimension label.
func (r *Renderer) Draw(dst *image.RGBA, c crosshair.Crosshair) {
	line := color.RGBAModel.Convert(r.style.Line).(color.RGBA)

	if c.Mode.ShowsHorizontal() {
		for x := c.Bounds.X1; x <= c.Bounds.X2; x++ {
			setPixel(dst, x, c.Point.Y, line)
		}
	}
	if c.Mode.ShowsVertical() {
		for y := c.Bounds.Y1; y <= c.Bounds.Y2; y++ {
			setPixel(dst, c.Point.X, y, line)
		}
	}

	r.drawLabel(dst, c.Label(), c.Point.ImagePoint().Add(r.style.LabelOffset))
}

// LabelBounds returns the pixel rectangle a label for c would cover,
// including its outline.
func (r *Renderer) LabelBounds(c crosshair.Crosshair) image.Rectangle {
	origin := c.Point.ImagePoint().Add(r.style.LabelOffset)
	b, _ := font.BoundString(r.face, c.Label())
	rect := image.Rect(
		b.Min.X.Floor(), b.Min.Y.Floor(),
		b.Max.X.Ceil(), b.Max.Y.Ceil(),
	).Add(origin)
	pad := r.style.OutlineWidth / 2
	return rect.Inset(-pad)
}

func (r *Renderer) drawLabel(dst *image.RGBA, text string, origin image.Point) {
	d := &font.Drawer{
		Dst:  dst,
		Face: r.face,
	}

	d.Src = image.NewUniform(r.style.Outline)
	for _, off := range r.outline {
		d.Dot = fixed.P(origin.X+off.X, origin.Y+off.Y)
		d.DrawString(text)
	}

	d.Src = image.NewUniform(r.style.Text)
	d.Dot = fixed.P(origin.X, origin.Y)
	d.DrawString(text)
}

// outlineOffsets returns the ring of offsets used to stroke a label by
// redrawing it shifted in every direction.
func outlineOffsets(radius int) []image.Point {
	if radius < 1 {
		radius = 1
	}
	var offs []image.Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			offs = append(offs, image.Pt(dx, dy))
		}
	}
	return offs
}

func setPixel(dst *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{x, y}).In(dst.Rect) {
		dst.SetRGBA(x, y, c)
	}
}
