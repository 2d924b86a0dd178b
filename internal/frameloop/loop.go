// Package frameloop runs the measurement session on a single goroutine and
// redraws its overlay on every frame tick.
//
// Every read and write of the session goes through the loop. Callers submit
// work with Do; the loop interleaves that work with frame draws, so the
// session needs no locks. Frames carry no state of their own: each one is a
// full redraw of the current session, and a tick that is missed loses
// nothing. Ticks that arrive while the session is idle draw nothing.
package frameloop

import (
	"context"
	"errors"
	"image"
	"sync/atomic"
	"time"

	"github.com/ironsheep/crosshair-mcp/internal/overlay"
	"github.com/ironsheep/crosshair-mcp/internal/session"
)

var (
	// ErrStopped is returned by Do once the loop has exited.
	ErrStopped = errors.New("frame loop stopped")

	// ErrRunning is returned by Run when the loop is already running.
	ErrRunning = errors.New("frame loop already running")
)

// Frame is one completed redraw.
type Frame struct {
	Seq           uint64                 `json:"seq"`
	At            time.Time              `json:"at"`
	Overlay       *image.RGBA            `json:"-"`
	Readout       session.Readout        `json:"readout"`
	Notifications []session.Notification `json:"notifications"`
	Crosshairs    int                    `json:"crosshairs"`
}

// Render is the draw step: it turns a session snapshot into a frame. It has
// no side effects and may be called with synthetic state.
func Render(r *overlay.Renderer, st session.FrameState, at time.Time) *Frame {
	transient := st.Transient
	return &Frame{
		At:            at,
		Overlay:       r.Overlay(st.Width, st.Height, st.Saved, &transient),
		Readout:       st.Readout,
		Notifications: st.Notifications,
		Crosshairs:    len(st.Saved) + 1,
	}
}

// Options configures a Loop.
type Options struct {
	// Interval between frame ticks. Zero disables the ticker; frames are
	// then drawn only on RequestFrame.
	Interval time.Duration

	// Ticks replaces the ticker with an external tick source.
	Ticks <-chan time.Time

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

type request struct {
	fn   func(*session.Session) error
	done chan error
}

// Loop owns a Session and a Renderer.
type Loop struct {
	sess     *session.Session
	renderer *overlay.Renderer
	opts     Options

	requests chan request
	redraw   chan struct{}
	stopped  chan struct{}
	running  atomic.Bool

	seq    uint64
	latest atomic.Pointer[Frame]

	// gen counts completed Do requests; drawn is the gen of the latest frame.
	gen, drawn uint64
}

// New returns a Loop for sess. The loop does nothing until Run is called.
func New(sess *session.Session, r *overlay.Renderer, opts Options) *Loop {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Loop{
		sess:     sess,
		renderer: r,
		opts:     opts,
		requests: make(chan request),
		redraw:   make(chan struct{}, 1),
		stopped:  make(chan struct{}),
	}
}

// Run processes requests and frame ticks until ctx is done. It returns nil
// on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(l.stopped)

	ticks := l.opts.Ticks
	if ticks == nil && l.opts.Interval > 0 {
		ticker := time.NewTicker(l.opts.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-l.requests:
			err := req.fn(l.sess)
			l.gen++
			req.done <- err
		case <-ticks:
			l.drawFrame()
		case <-l.redraw:
			l.drawFrame()
		}
	}
}

// Do runs fn on the loop goroutine and returns its error. After fn returns
// a redraw is requested so the next frame reflects the change.
func (l *Loop) Do(ctx context.Context, fn func(*session.Session) error) error {
	req := request{fn: fn, done: make(chan error, 1)}

	select {
	case l.requests <- req:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.done:
		l.RequestFrame()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestFrame asks for a redraw without waiting for it. Requests made
// before the loop gets to them are merged.
func (l *Loop) RequestFrame() {
	select {
	case l.redraw <- struct{}{}:
	default:
	}
}

// Latest returns the most recently drawn frame, or nil before the first.
func (l *Loop) Latest() *Frame {
	return l.latest.Load()
}

// Draw renders a frame from the current session. It must be called on the
// loop goroutine, from inside Do. It returns session.ErrNoImage before a
// load.
func (l *Loop) Draw(sess *session.Session) (*Frame, error) {
	now := l.opts.Now()
	st, err := sess.FrameState(now)
	if err != nil {
		return nil, err
	}
	return Render(l.renderer, st, now), nil
}

// drawFrame publishes a new frame. Frames are skipped until an image is
// loaded, and while the session is unchanged since the latest frame.
func (l *Loop) drawFrame() {
	if !l.sess.Loaded() || !l.stale() {
		return
	}
	frame, err := l.Draw(l.sess)
	if err != nil {
		return
	}
	l.seq++
	frame.Seq = l.seq
	l.drawn = l.gen
	l.latest.Store(frame)
}

// stale reports whether the latest frame may differ from a fresh draw.
// Between requests only notification expiry changes what a frame shows.
func (l *Loop) stale() bool {
	prev := l.latest.Load()
	return prev == nil || l.drawn != l.gen || len(prev.Notifications) > 0
}
