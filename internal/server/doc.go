// Package server implements the MCP (Model Context Protocol) server for the
// crosshair measurement tool.
//
// The server reads newline-delimited JSON-RPC 2.0 requests from stdin and
// writes responses to stdout. One client drives one measurement session:
// it loads an image, moves the cursor, clicks to save crosshairs and asks
// for rendered frames.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image:
//   - crosshair_load: Load an image from a path or data URL
//
// Pointer and keyboard input:
//   - crosshair_move: Move the cursor and report the live crosshair
//   - crosshair_click: Save a crosshair (primary) or copy the color (secondary)
//   - crosshair_context_menu: Suppressed context menu
//   - crosshair_key: Key release; Space cycles the display mode
//   - crosshair_toggle_mode: Cycle the display mode
//   - crosshair_clear: Remove saved crosshairs
//
// Inspection:
//   - crosshair_list: Saved crosshairs with labels
//   - crosshair_scan: Same-color run through a point
//   - crosshair_sample_color: Color at a pixel
//   - crosshair_render: Composite, overlay or base layer as PNG
//   - crosshair_zoom: Enlarged crop around a crosshair
//   - crosshair_distance: Distance between two saved anchors
//   - crosshair_status: Session summary and the latest frame
//
// # Session Ownership
//
// The session lives on the frame loop goroutine (see package frameloop).
// Handlers never touch it directly; they submit closures through Loop.Do.
// Images are decoded before they reach the loop, so frames only ever see a
// complete buffer.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32700 for a line that is not
//     valid JSON (answered with a null id) or other standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// A failed clipboard copy is not an error: it shows up as a notification in
// the tool result.
//
// # Usage
//
//	srv, err := server.New(config.Load())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
