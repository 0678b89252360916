// Package server implements the MCP (Model Context Protocol) server for
// dartboard calibration and scoring.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Workflow
//
// A client loads a photo, marks the top, right, bottom and left of the double
// ring, checks the rectified board with its overlay and then scores dart
// positions in rectified coordinates:
//
//	dartboard_load_image → dartboard_add_point ×4 → dartboard_rectify → dartboard_score
//
// dartboard_reset starts the calibration over on the same photo. The other
// tools (status, overlay, measure, geometry, check_orientation) are
// read-only.
//
// # State
//
// The server holds one session: one photo and one calibration. Decoded
// photos are cached by path for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
