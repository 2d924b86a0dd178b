// Package crosshair defines the measurement marker captured by the scanner
// and the display modes it can be drawn in.
package crosshair

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ironsheep/crosshair-mcp/internal/imaging"
)

// Mode selects which axes of a crosshair are drawn and labelled.
type Mode int

const (
	// Both draws the horizontal and vertical lines.
	Both Mode = iota
	// Horizontal draws only the line along the anchor's row.
	Horizontal
	// Vertical draws only the line along the anchor's column.
	Vertical
)

var modeNames = [...]string{
	Both:       "both",
	Horizontal: "horizontal",
	Vertical:   "vertical",
}

var modeSymbols = [...]string{
	Both:       "⊹",
	Horizontal: "—",
	Vertical:   "❘",
}

// Next returns the following mode in the cycle both -> horizontal -> vertical.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Symbol returns the glyph shown on the mode toggle control.
func (m Mode) Symbol() string {
	if m < 0 || int(m) >= len(modeSymbols) {
		return "?"
	}
	return modeSymbols[m]
}

// ShowsHorizontal reports whether the row line and width are drawn.
func (m Mode) ShowsHorizontal() bool { return m == Both || m == Horizontal }

// ShowsVertical reports whether the column line and height are drawn.
func (m Mode) ShowsVertical() bool { return m == Both || m == Vertical }

// ParseMode accepts a mode name or its symbol.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for i := range modeNames {
		if strings.EqualFold(s, modeNames[i]) || s == modeSymbols[i] {
			return Mode(i), nil
		}
	}
	return Both, fmt.Errorf("unknown crosshair mode %q", s)
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Crosshair is a scanner result anchored at a point, with the display mode
// that was active when it was captured.
type Crosshair struct {
	Point  imaging.Point  `json:"point"`
	Bounds imaging.Bounds `json:"bounds"`
	Mode   Mode           `json:"mode"`
}

// Capture scans the region under (x, y) and stamps the result with mode.
func Capture(buf *imaging.Buffer, x, y int, mode Mode) (Crosshair, error) {
	bounds, err := imaging.Scan(buf, x, y)
	if err != nil {
		return Crosshair{}, err
	}
	return Crosshair{
		Point:  imaging.Point{X: x, Y: y},
		Bounds: bounds,
		Mode:   mode,
	}, nil
}

// Width is X2 - X1 of the scanned bounds.
func (c Crosshair) Width() int { return c.Bounds.Width() }

// Height is Y2 - Y1 of the scanned bounds.
func (c Crosshair) Height() int { return c.Bounds.Height() }

// Label is the text drawn next to the anchor.
func (c Crosshair) Label() string {
	switch c.Mode {
	case Horizontal:
		return fmt.Sprintf("w:%d", c.Width())
	case Vertical:
		return fmt.Sprintf("h:%d", c.Height())
	default:
		return fmt.Sprintf("w:%d h:%d", c.Width(), c.Height())
	}
}
