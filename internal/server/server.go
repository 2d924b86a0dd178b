package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/crosshair-mcp/internal/clipboard"
	"github.com/ironsheep/crosshair-mcp/internal/config"
	"github.com/ironsheep/crosshair-mcp/internal/frameloop"
	"github.com/ironsheep/crosshair-mcp/internal/imaging"
	"github.com/ironsheep/crosshair-mcp/internal/overlay"
	"github.com/ironsheep/crosshair-mcp/internal/session"
)

// Server handles MCP protocol communication
type Server struct {
	cfg  *config.Config
	clip clipboard.Writer
	loop *frameloop.Loop
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance from cfg. The frame loop starts
// with Serve.
func New(cfg *config.Config) (*Server, error) {
	format, err := imaging.ParseColorFormat(cfg.ColorFormat)
	if err != nil {
		return nil, err
	}

	clip, err := clipboard.New(cfg.Clipboard)
	if err != nil {
		return nil, err
	}

	style := overlay.DefaultStyle()
	style.FontSize = cfg.FontSize
	if cfg.LineColor != "" {
		line, err := imaging.ParseHexColor(cfg.LineColor)
		if err != nil {
			return nil, fmt.Errorf("invalid line color %q: %w", cfg.LineColor, err)
		}
		style.Line = line
	}
	renderer, err := overlay.NewRenderer(style)
	if err != nil {
		return nil, err
	}

	sess := session.New(session.Options{
		Format:      format,
		Clipboard:   clip,
		NotifyDelay: cfg.NotifyDelay,
	})

	return &Server{
		cfg:  cfg,
		clip: clip,
		loop: frameloop.New(sess, renderer, frameloop.Options{Interval: cfg.FrameInterval()}),
	}, nil
}

// Run serves MCP on stdin/stdout until stdin closes or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve starts the frame loop and answers newline-delimited JSON-RPC
// requests read from r, writing responses to w.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopDone := make(chan error, 1)
	go func() { loopDone <- s.loop.Run(ctx) }()
	defer func() {
		cancel()
		<-loopDone
	}()

	scanner := bufio.NewScanner(r)
	// Increase buffer size for large requests (data URLs)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 64*1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			resp = s.errorResponse(nil, -32700, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(ctx, &req)
		}
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(ctx context.Context, req *MCPRequest) *MCPResponse {
	s.debugf("request %v: %s", req.ID, req.Method)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "crosshair-mcp",
				"version": "0.1.0",
			},
		},
	}
}

func (s *Server) debugf(format string, args ...interface{}) {
	if s.cfg.Debug() {
		log.Printf("[debug] "+format, args...)
	}
}
