package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/dartboard-mcp/internal/board"
	"github.com/ironsheep/dartboard-mcp/internal/calibration"
	"github.com/ironsheep/dartboard-mcp/internal/geometry"
	"github.com/ironsheep/dartboard-mcp/internal/homography"
	"github.com/ironsheep/dartboard-mcp/internal/imaging"
	"github.com/ironsheep/dartboard-mcp/internal/ocr"
	"github.com/ironsheep/dartboard-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "dartboard_add_point").
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
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Session
	case "dartboard_load_image":
		return s.handleLoadImage(args)
	case "dartboard_reset":
		return s.handleReset(args)
	case "dartboard_status":
		return s.handleStatus(args)

	// Calibration
	case "dartboard_add_point":
		return s.handleAddPoint(args)
	case "dartboard_rectify":
		return s.handleRectify(args)

	// Scoring
	case "dartboard_score":
		return s.handleScore(args)
	case "dartboard_overlay":
		return s.geom.Overlay(), nil
	case "dartboard_measure":
		return s.handleMeasure(args)
	case "dartboard_geometry":
		return s.geom.Summary(), nil

	// Verification
	case "dartboard_check_orientation":
		return s.handleCheckOrientation(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Session Handlers ===

type loadImageArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

type loadImageResult struct {
	Image        *imaging.ImageInfo `json:"image"`
	RenderWidth  int                `json:"render_width"`
	RenderHeight int                `json:"render_height"`
	Next         calibration.Role   `json:"next"`
}

func (s *Server) handleLoadImage(args json.RawMessage) (interface{}, error) {
	var a loadImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Reload {
		s.cache.Evict(a.Path)
	}

	img, info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	info.Resized = s.session.LoadImage(img)

	return &loadImageResult{
		Image:        info,
		RenderWidth:  s.geom.Width(),
		RenderHeight: s.geom.Height(),
		Next:         calibration.RoleTop,
	}, nil
}

func (s *Server) handleReset(json.RawMessage) (interface{}, error) {
	s.session.Reset()
	return map[string]interface{}{"phase": calibration.PhaseEmpty}, nil
}

type statusArgs struct {
	Preview bool `json:"preview"`
}

type statusResult struct {
	Phase       calibration.Phase          `json:"phase"`
	ImageLoaded bool                       `json:"image_loaded"`
	Count       int                        `json:"count"`
	Points      []calibration.LabeledPoint `json:"points"`
	Next        *calibration.Role          `json:"next,omitempty"`
	Transform   *[3][3]float64             `json:"transform,omitempty"`
	Preview     *imaging.ImageResult       `json:"preview,omitempty"`
}

func (s *Server) handleStatus(args json.RawMessage) (interface{}, error) {
	var a statusArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	st := s.session.State()
	res := &statusResult{
		Phase:       st.Phase(),
		ImageLoaded: s.session.HasImage(),
		Points:      []calibration.LabeledPoint{},
	}
	switch v := st.(type) {
	case calibration.Collecting:
		res.Points = v.Points
	case calibration.Calibrated:
		res.Points = v.Points[:]
		rows := v.Transform.Rows()
		res.Transform = &rows
	}
	res.Count = len(res.Points)
	if res.Count < calibration.PointCount {
		next := calibration.Role(res.Count)
		res.Next = &next
	}

	if a.Preview {
		if !s.session.HasImage() {
			return nil, fmt.Errorf("cannot preview: %w", session.ErrNoImage)
		}
		marked := clone.AsRGBA(s.session.Source())
		imaging.DrawCalibrationMarkers(marked, s.session.CalibrationPoints())
		enc, err := imaging.EncodePNG(marked)
		if err != nil {
			return nil, err
		}
		res.Preview = enc
	}
	return res, nil
}

// === Calibration Handlers ===

type addPointArgs struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type addPointResult struct {
	calibration.Progress
	Transform *[3][3]float64 `json:"transform,omitempty"`
}

func (s *Server) handleAddPoint(args json.RawMessage) (interface{}, error) {
	var a addPointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.X == nil || a.Y == nil {
		return nil, fmt.Errorf("x and y are required")
	}

	prog, err := s.session.AddCalibrationPoint(*a.X, *a.Y)
	if err != nil {
		if errors.Is(err, homography.ErrDegenerateConfiguration) {
			return nil, fmt.Errorf("%w; call dartboard_reset and select the points again", err)
		}
		return nil, err
	}

	res := &addPointResult{Progress: prog}
	if h, err := s.session.Transform(); err == nil {
		rows := h.Rows()
		res.Transform = &rows
	}
	return res, nil
}

type rectifyArgs struct {
	Overlay       *bool  `json:"overlay"`
	OutputPath    string `json:"output_path"`
	Interpolation string `json:"interpolation"`
	LineColor     string `json:"line_color"`
}

type rectifyResult struct {
	*imaging.ImageResult
	SavedTo string `json:"saved_to,omitempty"`
}

func (s *Server) handleRectify(args json.RawMessage) (interface{}, error) {
	var a rectifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var opts imaging.RectifyOptions
	switch a.Interpolation {
	case "", "bilinear":
	case "nearest":
		opts.Interpolation = imaging.Nearest
	default:
		return nil, fmt.Errorf("unknown interpolation %q: use 'bilinear' or 'nearest'", a.Interpolation)
	}
	s.session.SetRectifyOptions(opts)

	rectified, err := s.session.Rectify()
	if err != nil {
		return nil, err
	}

	// The session's copy is cached; draw on a private one.
	out := clone.AsRGBA(rectified)
	if a.Overlay == nil || *a.Overlay {
		style := imaging.DefaultOverlayStyle()
		if a.LineColor != "" {
			if _, err := imaging.ParseColor(a.LineColor); err != nil {
				return nil, err
			}
			style.LineColor = a.LineColor
		}
		imaging.RenderOverlay(out, s.geom.Overlay(), style)
	}

	res := &rectifyResult{}
	if a.OutputPath != "" {
		if err := imaging.SaveImage(out, a.OutputPath); err != nil {
			return nil, err
		}
		res.SavedTo = a.OutputPath
	}

	enc, err := imaging.EncodePNG(out)
	if err != nil {
		return nil, err
	}
	res.ImageResult = enc
	return res, nil
}

// === Scoring Handlers ===

type scoreArgs struct {
	X        *float64 `json:"x"`
	Y        *float64 `json:"y"`
	Annotate bool     `json:"annotate"`
}

type scoreResult struct {
	board.Hit
	Annotated *imaging.ImageResult `json:"annotated,omitempty"`
}

func (s *Server) handleScore(args json.RawMessage) (interface{}, error) {
	var a scoreArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.X == nil || a.Y == nil {
		return nil, fmt.Errorf("x and y are required")
	}

	hit, err := s.session.ScoreAt(*a.X, *a.Y)
	if err != nil {
		return nil, err
	}
	res := &scoreResult{Hit: hit}

	if a.Annotate {
		rectified, err := s.session.Rectify()
		if err != nil {
			return nil, err
		}
		annotated := imaging.AnnotateScore(rectified, geometry.NewPoint2D(*a.X, *a.Y), hit.Score)
		enc, err := imaging.EncodePNG(annotated)
		if err != nil {
			return nil, err
		}
		res.Annotated = enc
	}
	return res, nil
}

type measureArgs struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (s *Server) handleMeasure(args json.RawMessage) (interface{}, error) {
	var a measureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.geom.Measure(geometry.NewPoint2D(a.X1, a.Y1), geometry.NewPoint2D(a.X2, a.Y2)), nil
}

// === Verification Handlers ===

type checkOrientationArgs struct {
	Language string `json:"language"`
}

func (s *Server) handleCheckOrientation(args json.RawMessage) (interface{}, error) {
	var a checkOrientationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	rectified, err := s.session.Rectify()
	if err != nil {
		return nil, err
	}
	return ocr.CheckOrientation(rectified, s.geom, a.Language)
}
