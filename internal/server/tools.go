package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func noArgsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func pointSchema(xDesc, yDesc string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x": map[string]interface{}{
				"type":        "integer",
				"description": xDesc,
			},
			"y": map[string]interface{}{
				"type":        "integer",
				"description": yDesc,
			},
		},
		"required": []string{"x", "y"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "crosshair_load",
			Description: "Load an image to measure, from a file path or a base64 data URL. Replaces the current image and clears all saved crosshairs.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a PNG, JPEG or GIF file",
					},
					"data_url": map[string]interface{}{
						"type":        "string",
						"description": "Inline image as data:<mime>;base64,<payload>. Used when path is empty.",
					},
				},
			},
		},

		// Pointer and keyboard input
		{
			Name:        "crosshair_move",
			Description: "Move the cursor. Returns the live crosshair (the same-color run through the cursor along its row and column) and the color under the cursor.",
			InputSchema: pointSchema("Cursor X (0-based, clamped to the image)", "Cursor Y (0-based, clamped to the image)"),
		},
		{
			Name:        "crosshair_click",
			Description: "Click at the cursor. A primary click saves the live crosshair with the active display mode. A secondary click copies the hex color under the cursor to the clipboard and shows a notification for about a second.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"button": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"primary", "secondary"},
						"description": "Pointer button. Default primary",
						"default":     "primary",
					},
				},
			},
		},
		{
			Name:        "crosshair_context_menu",
			Description: "Open the context menu on the measuring surface. Always suppressed; reported for completeness.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "crosshair_key",
			Description: "Press and release a key. Space cycles the display mode (both, horizontal, vertical); other keys are ignored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Key name, e.g. \"Space\"",
					},
				},
				"required": []string{"key"},
			},
		},
		{
			Name:        "crosshair_toggle_mode",
			Description: "Cycle the display mode used by the live crosshair and future captures: both -> horizontal -> vertical -> both. Saved crosshairs keep their own mode.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "crosshair_clear",
			Description: "Remove all saved crosshairs. The image stays loaded.",
			InputSchema: noArgsSchema(),
		},

		// Inspection
		{
			Name:        "crosshair_list",
			Description: "List saved crosshairs in capture order with their bounds, mode and width/height labels.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "crosshair_scan",
			Description: "Measure the same-color run through a point without moving the cursor or saving anything.",
			InputSchema: pointSchema("X coordinate (0-based)", "Y coordinate (0-based)"),
		},
		{
			Name:        "crosshair_sample_color",
			Description: "Get the exact color at a pixel as hex, RGB, RGBA, HSL and the swatch readout text.",
			InputSchema: pointSchema("X coordinate (0-based, from left)", "Y coordinate (0-based, from top)"),
		},
		{
			Name:        "crosshair_render",
			Description: "Draw a frame now and return it as base64 PNG: the image with crosshairs on top, the crosshair layer alone, or the bare image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"layer": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"composite", "overlay", "base"},
						"description": "Which layer to return. Default composite",
						"default":     "composite",
					},
				},
			},
		},
		{
			Name:        "crosshair_zoom",
			Description: "Return an enlarged, pixel-exact crop around a crosshair's measured region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Saved crosshair index, or -1 for the live crosshair. Default -1",
						"default":     -1,
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels of context around the region. Default 4",
						"default":     4,
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer enlargement factor. Default 8",
						"default":     8,
					},
				},
			},
		},
		{
			Name:        "crosshair_distance",
			Description: "Measure the distance and angle between the anchors of two saved crosshairs, and the gap between their scanned bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"from": map[string]interface{}{
						"type":        "integer",
						"description": "Index of the first saved crosshair",
					},
					"to": map[string]interface{}{
						"type":        "integer",
						"description": "Index of the second saved crosshair",
					},
				},
				"required": []string{"from", "to"},
			},
		},
		{
			Name:        "crosshair_status",
			Description: "Report the loaded image, active mode, cursor, latest frame readout and any visible notifications.",
			InputSchema: noArgsSchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
