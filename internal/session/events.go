package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/ironsheep/crosshair-mcp/internal/crosshair"
	"github.com/ironsheep/crosshair-mcp/internal/imaging"
)

// EventKind identifies a user input.
type EventKind int

const (
	// PointerMove moves the cursor to (X, Y).
	PointerMove EventKind = iota
	// PointerClick is a completed click of Button.
	PointerClick
	// PointerRelease is the release of Button.
	PointerRelease
	// ContextMenu is a request to open the context menu on the surface.
	ContextMenu
	// KeyUp is the release of Key.
	KeyUp
	// ToggleMode is the mode toggle control.
	ToggleMode
	// ClearSaved is the clear control.
	ClearSaved
)

var eventNames = [...]string{
	PointerMove:    "move",
	PointerClick:   "click",
	PointerRelease: "release",
	ContextMenu:    "contextmenu",
	KeyUp:          "keyup",
	ToggleMode:     "toggle",
	ClearSaved:     "clear",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventNames[k]
}

// Button identifies a pointer button.
type Button int

const (
	Primary Button = iota
	Secondary
	Auxiliary
)

// ParseButton accepts "primary"/"left" and "secondary"/"right".
func ParseButton(s string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "primary", "left":
		return Primary, nil
	case "secondary", "right":
		return Secondary, nil
	case "auxiliary", "middle":
		return Auxiliary, nil
	default:
		return Primary, fmt.Errorf("unknown pointer button %q", s)
	}
}

// ToggleKey is the key that cycles the display mode.
const ToggleKey = "Space"

// IsToggleKey reports whether key names the mode toggle key.
func IsToggleKey(key string) bool {
	return key == " " || strings.EqualFold(key, ToggleKey)
}

// Event is one user input.
type Event struct {
	Kind   EventKind
	Button Button
	Key    string
	X, Y   int
}

// Outcome describes the state after an event was handled.
type Outcome struct {
	Event        string               `json:"event"`
	Cursor       imaging.Point        `json:"cursor"`
	Mode         crosshair.Mode       `json:"mode"`
	SavedCount   int                  `json:"saved_count"`
	Captured     *crosshair.Crosshair `json:"captured,omitempty"`
	Cleared      int                  `json:"cleared,omitempty"`
	Copied       string               `json:"copied,omitempty"`
	Notification *Notification        `json:"notification,omitempty"`
	Suppressed   bool                 `json:"suppressed,omitempty"`
	Ignored      bool                 `json:"ignored,omitempty"`
}

// Handle applies ev to the session.
//
// A failed clipboard copy is reported through a notification and never as
// an error. The only error is ErrNoImage before an image is loaded.
func (s *Session) Handle(ev Event, now time.Time) (*Outcome, error) {
	if !s.Loaded() {
		return nil, ErrNoImage
	}

	out := &Outcome{Event: ev.Kind.String()}

	switch ev.Kind {
	case PointerMove:
		s.cursor = s.buf.Clamp(imaging.Point{X: ev.X, Y: ev.Y})

	case PointerClick:
		if ev.Button != Primary {
			out.Ignored = true
			break
		}
		c, err := s.Transient()
		if err != nil {
			return nil, err
		}
		s.saved = append(s.saved, c)
		out.Captured = &c

	case PointerRelease:
		if ev.Button != Secondary {
			out.Ignored = true
			break
		}
		note, copied := s.copyColor(now)
		out.Notification = &note
		out.Copied = copied

	case ContextMenu:
		out.Suppressed = true

	case KeyUp:
		if !IsToggleKey(ev.Key) {
			out.Ignored = true
			break
		}
		s.mode = s.mode.Next()

	case ToggleMode:
		s.mode = s.mode.Next()

	case ClearSaved:
		out.Cleared = len(s.saved)
		s.saved = nil

	default:
		return nil, fmt.Errorf("unknown event kind %v", ev.Kind)
	}

	out.Cursor = s.cursor
	out.Mode = s.mode
	out.SavedCount = len(s.saved)
	return out, nil
}

// copyColor puts the hex of the pixel under the cursor on the clipboard and
// posts the matching notification. It returns the copied text, empty when
// the copy failed.
func (s *Session) copyColor(now time.Time) (Notification, string) {
	hex := s.buf.At(s.cursor.X, s.cursor.Y).Hex()
	if err := s.clip.WriteText(hex); err != nil {
		return s.notes.Post(CopyFailedText, true, now), ""
	}
	return s.notes.Post(CopiedText, false, now), hex
}
