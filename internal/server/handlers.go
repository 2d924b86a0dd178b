package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/crosshair-mcp/internal/clipboard"
	"github.com/ironsheep/crosshair-mcp/internal/crosshair"
	"github.com/ironsheep/crosshair-mcp/internal/frameloop"
	"github.com/ironsheep/crosshair-mcp/internal/imaging"
	"github.com/ironsheep/crosshair-mcp/internal/overlay"
	"github.com/ironsheep/crosshair-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "crosshair_load", "crosshair_move").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Handlers that read or change the session do so through the frame loop,
// which owns it. Expensive work on the immutable pixel buffer (encoding,
// zooming) happens after the loop has handed the data back.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image
	case "crosshair_load":
		return s.handleLoad(ctx, args)

	// Pointer and keyboard input
	case "crosshair_move":
		return s.handleMove(ctx, args)
	case "crosshair_click":
		return s.handleClick(ctx, args)
	case "crosshair_context_menu":
		return s.handleEvent(ctx, session.Event{Kind: session.ContextMenu})
	case "crosshair_key":
		return s.handleKey(ctx, args)
	case "crosshair_toggle_mode":
		return s.handleEvent(ctx, session.Event{Kind: session.ToggleMode})
	case "crosshair_clear":
		return s.handleEvent(ctx, session.Event{Kind: session.ClearSaved})

	// Inspection
	case "crosshair_list":
		return s.handleList(ctx)
	case "crosshair_scan":
		return s.handleScan(ctx, args)
	case "crosshair_sample_color":
		return s.handleSampleColor(ctx, args)
	case "crosshair_render":
		return s.handleRender(ctx, args)
	case "crosshair_zoom":
		return s.handleZoom(ctx, args)
	case "crosshair_distance":
		return s.handleDistance(ctx, args)
	case "crosshair_status":
		return s.handleStatus(ctx)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Handlers ===

type loadArgs struct {
	Path    string `json:"path"`
	DataURL string `json:"data_url"`
}

type loadResult struct {
	Image *imaging.ImageInfo `json:"image"`
	Mode  crosshair.Mode     `json:"mode"`
}

func (s *Server) handleLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a loadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	// Decode fully before the loop sees the buffer, so no frame can sample
	// a partially loaded image.
	var (
		buf  *imaging.Buffer
		info *imaging.ImageInfo
		err  error
	)
	switch {
	case a.Path != "":
		buf, info, err = imaging.Load(a.Path)
	case a.DataURL != "":
		buf, info, err = imaging.LoadDataURL(a.DataURL)
	default:
		return nil, fmt.Errorf("either path or data_url is required")
	}
	if err != nil {
		return nil, err
	}

	var mode crosshair.Mode
	if err := s.loop.Do(ctx, func(sess *session.Session) error {
		sess.Reset(buf, info)
		mode = sess.Mode()
		return nil
	}); err != nil {
		return nil, err
	}

	s.debugf("loaded %s (%dx%d)", info.Source, info.Width, info.Height)
	return &loadResult{Image: info, Mode: mode}, nil
}

// === Input Handlers ===

type pointArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type moveResult struct {
	*session.Outcome
	Transient crosshair.Crosshair `json:"transient"`
	Label     string              `json:"label"`
	Readout   session.Readout     `json:"readout"`
}

func (s *Server) handleMove(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var res moveResult
	err := s.loop.Do(ctx, func(sess *session.Session) error {
		out, err := sess.Handle(session.Event{Kind: session.PointerMove, X: a.X, Y: a.Y}, time.Now())
		if err != nil {
			return err
		}
		res.Outcome = out
		if res.Transient, err = sess.Transient(); err != nil {
			return err
		}
		res.Readout, err = sess.Readout()
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Label = res.Transient.Label()
	return &res, nil
}

type clickArgs struct {
	Button string `json:"button"`
}

func (s *Server) handleClick(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a clickArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	button, err := session.ParseButton(a.Button)
	if err != nil {
		return nil, err
	}

	// The browser fires "click" for the primary button and the copy on the
	// secondary button's release.
	ev := session.Event{Kind: session.PointerClick, Button: button}
	if button == session.Secondary {
		ev.Kind = session.PointerRelease
	}
	return s.handleEvent(ctx, ev)
}

type keyArgs struct {
	Key string `json:"key"`
}

func (s *Server) handleKey(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a keyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.handleEvent(ctx, session.Event{Kind: session.KeyUp, Key: a.Key})
}

func (s *Server) handleEvent(ctx context.Context, ev session.Event) (interface{}, error) {
	var out *session.Outcome
	err := s.loop.Do(ctx, func(sess *session.Session) error {
		var err error
		out, err = sess.Handle(ev, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// === Inspection Handlers ===

type crosshairEntry struct {
	Index int `json:"index"`
	crosshair.Crosshair
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"`
}

func newEntry(i int, c crosshair.Crosshair) crosshairEntry {
	return crosshairEntry{
		Index:     i,
		Crosshair: c,
		Width:     c.Width(),
		Height:    c.Height(),
		Label:     c.Label(),
	}
}

type listResult struct {
	Crosshairs []crosshairEntry `json:"crosshairs"`
	Mode       crosshair.Mode   `json:"mode"`
	ModeSymbol string           `json:"mode_symbol"`
	Cursor     imaging.Point    `json:"cursor"`
}

func (s *Server) handleList(ctx context.Context) (interface{}, error) {
	res := listResult{Crosshairs: []crosshairEntry{}}
	err := s.loop.Do(ctx, func(sess *session.Session) error {
		if !sess.Loaded() {
			return session.ErrNoImage
		}
		for i, c := range sess.Saved() {
			res.Crosshairs = append(res.Crosshairs, newEntry(i, c))
		}
		res.Mode = sess.Mode()
		res.Cursor = sess.Cursor()
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.ModeSymbol = res.Mode.Symbol()
	return &res, nil
}

// buffer fetches the loaded pixel buffer and readout format from the loop.
func (s *Server) buffer(ctx context.Context) (*imaging.Buffer, imaging.ColorFormat, error) {
	var (
		buf    *imaging.Buffer
		format imaging.ColorFormat
	)
	err := s.loop.Do(ctx, func(sess *session.Session) error {
		if !sess.Loaded() {
			return session.ErrNoImage
		}
		buf = sess.Buffer()
		format = sess.Format()
		return nil
	})
	return buf, format, err
}

type scanResult struct {
	Point     imaging.Point  `json:"point"`
	Bounds    imaging.Bounds `json:"bounds"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Color     string         `json:"color"`
	Threshold float64        `json:"threshold"`
}

func (s *Server) handleScan(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, format, err := s.buffer(ctx)
	if err != nil {
		return nil, err
	}

	bounds, err := imaging.Scan(buf, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &scanResult{
		Point:     imaging.Point{X: a.X, Y: a.Y},
		Bounds:    bounds,
		Width:     bounds.Width(),
		Height:    bounds.Height(),
		Color:     buf.At(a.X, a.Y).Readout(format),
		Threshold: imaging.Threshold,
	}, nil
}

func (s *Server) handleSampleColor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a pointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, format, err := s.buffer(ctx)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(buf, a.X, a.Y, format)
}

type renderArgs struct {
	Layer string `json:"layer"`
}

type renderResult struct {
	Layer       string          `json:"layer"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Crosshairs  int             `json:"crosshairs"`
	Readout     session.Readout `json:"readout"`
	ImageBase64 string          `json:"image_base64"`
	MimeType    string          `json:"mime_type"`
}

func (s *Server) handleRender(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Layer == "" {
		a.Layer = "composite"
	}
	switch a.Layer {
	case "composite", "overlay", "base":
	default:
		return nil, fmt.Errorf("unknown layer: %s", a.Layer)
	}

	var (
		frame *frameloop.Frame
		buf   *imaging.Buffer
	)
	err := s.loop.Do(ctx, func(sess *session.Session) error {
		var err error
		if frame, err = s.loop.Draw(sess); err != nil {
			return err
		}
		buf = sess.Buffer()
		return nil
	})
	if err != nil {
		return nil, err
	}

	var img image.Image = frame.Overlay
	switch a.Layer {
	case "composite":
		img = overlay.Compose(buf.Image(), frame.Overlay)
	case "base":
		img = overlay.Compose(buf.Image(), nil)
	}

	b64, err := overlay.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	return &renderResult{
		Layer:       a.Layer,
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Crosshairs:  frame.Crosshairs,
		Readout:     frame.Readout,
		ImageBase64: b64,
		MimeType:    "image/png",
	}, nil
}

type zoomArgs struct {
	Index   *int `json:"index"`
	Padding *int `json:"padding"`
	Scale   *int `json:"scale"`
}

func (s *Server) handleZoom(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a zoomArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	index, padding, scale := -1, 4, 8
	if a.Index != nil {
		index = *a.Index
	}
	if a.Padding != nil {
		padding = *a.Padding
	}
	if a.Scale != nil {
		scale = *a.Scale
	}

	var (
		buf    *imaging.Buffer
		target crosshair.Crosshair
	)
	err := s.loop.Do(ctx, func(sess *session.Session) error {
		c, err := pickCrosshair(sess, index)
		if err != nil {
			return err
		}
		buf, target = sess.Buffer(), c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return imaging.Zoom(buf, target.Bounds, padding, scale)
}

// pickCrosshair returns saved crosshair index, or the transient one for -1.
func pickCrosshair(sess *session.Session, index int) (crosshair.Crosshair, error) {
	if index == -1 {
		return sess.Transient()
	}
	if !sess.Loaded() {
		return crosshair.Crosshair{}, session.ErrNoImage
	}
	saved := sess.Saved()
	if index < 0 || index >= len(saved) {
		return crosshair.Crosshair{}, fmt.Errorf("crosshair index %d out of range (%d saved)", index, len(saved))
	}
	return saved[index], nil
}

type distanceArgs struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) handleDistance(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a distanceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var result crosshair.Measurement
	err := s.loop.Do(ctx, func(sess *session.Session) error {
		if a.From < 0 || a.To < 0 {
			return fmt.Errorf("crosshair indices must be >= 0")
		}
		from, err := pickCrosshair(sess, a.From)
		if err != nil {
			return err
		}
		to, err := pickCrosshair(sess, a.To)
		if err != nil {
			return err
		}
		result = crosshair.Measure(from, to)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type statusResult struct {
	Loaded        bool                   `json:"loaded"`
	Image         *imaging.ImageInfo     `json:"image,omitempty"`
	Mode          crosshair.Mode         `json:"mode"`
	ModeSymbol    string                 `json:"mode_symbol"`
	Cursor        imaging.Point          `json:"cursor"`
	Saved         int                    `json:"saved"`
	Frame         *frameloop.Frame       `json:"frame,omitempty"`
	Notifications []session.Notification `json:"notifications"`
	Clipboard     string                 `json:"clipboard,omitempty"`
}

func (s *Server) handleStatus(ctx context.Context) (interface{}, error) {
	var res statusResult
	err := s.loop.Do(ctx, func(sess *session.Session) error {
		res.Loaded = sess.Loaded()
		res.Image = sess.Info()
		res.Mode = sess.Mode()
		res.Cursor = sess.Cursor()
		res.Saved = len(sess.Saved())
		res.Notifications = sess.Notifications(time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.ModeSymbol = res.Mode.Symbol()
	res.Frame = s.loop.Latest()
	if mem, ok := s.clip.(*clipboard.Memory); ok {
		res.Clipboard = mem.Text()
	}
	if res.Notifications == nil {
		res.Notifications = []session.Notification{}
	}
	return &res, nil
}
