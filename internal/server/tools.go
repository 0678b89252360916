package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "dartboard_load_image",
			Description: "Load a dartboard photo and start a new calibration. The photo is scaled to the render size; calibration points are given in that scaled frame.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG or GIF)",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Re-read the file even if it was loaded before. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "dartboard_reset",
			Description: "Discard all calibration points and the transform. The loaded photo is kept.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "dartboard_status",
			Description: "Report the calibration phase, the points collected so far and the transform once calibrated.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the photo with the collected points marked in green. Default false",
						"default":     false,
					},
				},
			},
		},

		// Calibration
		{
			Name:        "dartboard_add_point",
			Description: "Add the next calibration point. Mark, in order, the outer edge of the double ring at the top, right, bottom and left of the board. The fourth point computes the transform; a collinear set fails and requires dartboard_reset.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "number",
						"description": "X coordinate in the loaded photo (0-based, render size)",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Y coordinate in the loaded photo (0-based, render size)",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "dartboard_rectify",
			Description: "Warp the photo so the board is a front-on circle of canonical size and return it as base64 PNG, with the ring and sector overlay drawn for verification.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw rings, spokes and sector numbers. Default true",
						"default":     true,
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path (.png or .jpg) to also save the image to",
					},
					"interpolation": map[string]interface{}{
						"type":        "string",
						"description": "Sampling: 'bilinear' (default) or 'nearest'",
						"enum":        []string{"bilinear", "nearest"},
					},
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Overlay line colour in hex. Default #000000",
					},
				},
			},
		},

		// Scoring
		{
			Name:        "dartboard_score",
			Description: "Score a dart position given in rectified-image coordinates. Returns the score, ring, sector, multiplier, distance from centre and angle.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "number",
						"description": "X coordinate in the rectified image",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Y coordinate in the rectified image",
					},
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the rectified image with the hit and score drawn in red. Default false",
						"default":     false,
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "dartboard_overlay",
			Description: "Return the overlay geometry: six ring circles, twenty sector spokes and the sector label positions.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "dartboard_measure",
			Description: "Measure the distance between two rectified-image points in pixels and board millimetres.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x1": map[string]interface{}{
						"type":        "number",
						"description": "First point X coordinate",
					},
					"y1": map[string]interface{}{
						"type":        "number",
						"description": "First point Y coordinate",
					},
					"x2": map[string]interface{}{
						"type":        "number",
						"description": "Second point X coordinate",
					},
					"y2": map[string]interface{}{
						"type":        "number",
						"description": "Second point Y coordinate",
					},
				},
				"required": []string{"x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "dartboard_geometry",
			Description: "Return the board layout: render size, pixels per mm, centre, ring radii, calibration anchors and sector table.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Verification
		{
			Name:        "dartboard_check_orientation",
			Description: "OCR the number printed at the top of the rectified board and check it matches the sector scored straight up. Requires a build with Tesseract support.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default 'eng'",
						"default":     "eng",
					},
				},
			},
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
