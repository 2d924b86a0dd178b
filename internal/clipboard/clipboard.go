// Package clipboard copies color strings to the system clipboard.
//
// The system implementation wraps golang.design/x/clipboard, which needs a
// display server (X11 on Linux) and cgo on non-Windows platforms. When either
// is missing every copy fails with ErrUnavailable; callers report that as a
// transient notification rather than an error.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	// ErrUnavailable is returned when the platform offers no clipboard.
	ErrUnavailable = errors.New("clipboard unavailable")

	// ErrRejected is returned when the platform accepted the write but the
	// clipboard does not hold the copied text afterwards.
	ErrRejected = errors.New("clipboard rejected the copy")
)

// Writer places text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

var (
	initOnce sync.Once
	initErr  error
)

// System writes to the operating system clipboard.
type System struct{}

// NewSystem returns a Writer for the operating system clipboard.
func NewSystem() *System {
	return &System{}
}

// WriteText copies text and verifies it by reading the clipboard back.
func (*System) WriteText(text string) error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, initErr)
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	if got := clipboard.Read(clipboard.FmtText); string(got) != text {
		return ErrRejected
	}
	return nil
}

// Memory keeps copied text in process. It is used when no system clipboard
// is wanted and by tests.
type Memory struct {
	mu      sync.Mutex
	last    string
	history []string
}

// NewMemory returns an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// WriteText records text as the clipboard content.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = text
	m.history = append(m.history, text)
	return nil
}

// Text returns the last copied text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// History returns every copied text in order.
func (m *Memory) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...)
}

// Disabled fails every copy with ErrUnavailable.
type Disabled struct{}

// WriteText always returns ErrUnavailable.
func (Disabled) WriteText(string) error {
	return ErrUnavailable
}

// New returns the Writer for a configuration mode: "system", "memory" or
// "off".
func New(mode string) (Writer, error) {
	switch mode {
	case "", "system":
		return NewSystem(), nil
	case "memory":
		return NewMemory(), nil
	case "off":
		return Disabled{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard mode %q (want system, memory or off)", mode)
	}
}
