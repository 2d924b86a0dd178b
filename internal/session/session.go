// Package session holds the state of one measurement session and maps user
// input onto it.
//
// A Session is not safe for concurrent use. It is owned by the frame loop,
// which serializes every event and every frame on one goroutine.
package session

import (
	"errors"
	"time"

	"github.com/ironsheep/crosshair-mcp/internal/clipboard"
	"github.com/ironsheep/crosshair-mcp/internal/crosshair"
	"github.com/ironsheep/crosshair-mcp/internal/imaging"
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("no image loaded")

// Notification texts for the secondary-click copy.
const (
	CopiedText     = "Color has been copied"
	CopyFailedText = "Oops, unable to copy"
)

// Options configures a Session.
type Options struct {
	// Format selects the color readout variant. Defaults to FormatHex.
	Format imaging.ColorFormat

	// Clipboard receives copied colors. Defaults to clipboard.Disabled.
	Clipboard clipboard.Writer

	// NotifyDelay is how long notifications stay visible.
	NotifyDelay time.Duration
}

// Session is the state tied to one loaded image: the pixel buffer, the saved
// crosshairs, the active display mode and the cursor.
type Session struct {
	buf    *imaging.Buffer
	info   *imaging.ImageInfo
	saved  []crosshair.Crosshair
	mode   crosshair.Mode
	cursor imaging.Point

	format imaging.ColorFormat
	clip   clipboard.Writer
	notes  *Notifier
}

// Readout is the color swatch for the pixel under the cursor.
type Readout struct {
	Color      imaging.Pixel `json:"color"`
	Hex        string        `json:"hex"`
	Text       string        `json:"text"`
	Background string        `json:"background"`
}

// New returns an empty Session. No image is loaded.
func New(opts Options) *Session {
	if opts.Format == "" {
		opts.Format = imaging.FormatHex
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.Disabled{}
	}
	return &Session{
		format: opts.Format,
		clip:   opts.Clipboard,
		notes:  NewNotifier(opts.NotifyDelay),
	}
}

// Reset installs a fully decoded image and discards all state derived from
// the previous one.
func (s *Session) Reset(buf *imaging.Buffer, info *imaging.ImageInfo) {
	s.buf = buf
	s.info = info
	s.saved = nil
	s.mode = crosshair.Both
	s.cursor = imaging.Point{}
	s.notes.Clear()
}

// Loaded reports whether an image is installed.
func (s *Session) Loaded() bool { return s.buf != nil }

// Info returns metadata for the loaded image, or nil.
func (s *Session) Info() *imaging.ImageInfo { return s.info }

// Buffer returns the loaded pixel buffer, or nil.
func (s *Session) Buffer() *imaging.Buffer { return s.buf }

// Format returns the color readout variant.
func (s *Session) Format() imaging.ColorFormat { return s.format }

// Cursor returns the tracked pointer position.
func (s *Session) Cursor() imaging.Point { return s.cursor }

// Mode returns the display mode applied to new captures.
func (s *Session) Mode() crosshair.Mode { return s.mode }

// Saved returns a copy of the saved crosshairs in capture order.
func (s *Session) Saved() []crosshair.Crosshair {
	return append([]crosshair.Crosshair(nil), s.saved...)
}

// Transient scans at the cursor with the active mode without saving.
func (s *Session) Transient() (crosshair.Crosshair, error) {
	if !s.Loaded() {
		return crosshair.Crosshair{}, ErrNoImage
	}
	return crosshair.Capture(s.buf, s.cursor.X, s.cursor.Y, s.mode)
}

// Readout returns the swatch for the pixel under the cursor.
func (s *Session) Readout() (Readout, error) {
	if !s.Loaded() {
		return Readout{}, ErrNoImage
	}
	p := s.buf.At(s.cursor.X, s.cursor.Y)
	return Readout{
		Color:      p,
		Hex:        p.Hex(),
		Text:       p.Readout(s.format),
		Background: p.Hex(),
	}, nil
}

// Notifications returns the notifications still visible at now.
func (s *Session) Notifications(now time.Time) []Notification {
	return s.notes.Active(now)
}

// FrameState is everything the renderer needs to draw one frame.
type FrameState struct {
	Width         int
	Height        int
	Base          *imaging.Buffer
	Saved         []crosshair.Crosshair
	Transient     crosshair.Crosshair
	Cursor        imaging.Point
	Mode          crosshair.Mode
	Readout       Readout
	Notifications []Notification
}

// FrameState snapshots the session for drawing at now.
func (s *Session) FrameState(now time.Time) (FrameState, error) {
	transient, err := s.Transient()
	if err != nil {
		return FrameState{}, err
	}
	readout, err := s.Readout()
	if err != nil {
		return FrameState{}, err
	}
	return FrameState{
		Width:         s.buf.Width(),
		Height:        s.buf.Height(),
		Base:          s.buf,
		Saved:         s.Saved(),
		Transient:     transient,
		Cursor:        s.cursor,
		Mode:          s.mode,
		Readout:       readout,
		Notifications: s.notes.Active(now),
	}, nil
}
