package calibration

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ironsheep/dartboard-mcp/internal/geometry"
	"github.com/ironsheep/dartboard-mcp/internal/homography"
)

var anchors = [PointCount]geometry.Point2D{
	{X: 640, Y: 89},
	{X: 911, Y: 360},
	{X: 640, Y: 631},
	{X: 369, Y: 360},
}

var photo = [PointCount]geometry.Point2D{
	{X: 612, Y: 140},
	{X: 880, Y: 372},
	{X: 655, Y: 590},
	{X: 402, Y: 340},
}

func TestCollector_AddPoint(t *testing.T) {
	var c Collector

	for i, p := range photo {
		role, ok := c.NextRole()
		if !ok || role != Role(i) {
			t.Fatalf("NextRole before point %d: got %v,%v", i, role, ok)
		}
		count, ready := c.AddPoint(p)
		if count != i+1 {
			t.Errorf("count: got %d, want %d", count, i+1)
		}
		if ready != (i == 3) {
			t.Errorf("ready after %d points: got %v", count, ready)
		}
	}

	// A fifth point is ignored.
	count, ready := c.AddPoint(geometry.Point2D{X: 1, Y: 1})
	if count != 4 || !ready {
		t.Errorf("fifth add: got %d,%v", count, ready)
	}
	if _, ok := c.NextRole(); ok {
		t.Error("NextRole should report false when complete")
	}

	pts, err := c.Points()
	if err != nil {
		t.Fatalf("Points failed: %v", err)
	}
	for i, lp := range pts {
		if lp.Role != Role(i) || lp.Point != photo[i] {
			t.Errorf("point %d: got %+v", i, lp)
		}
	}
}

func TestCollector_IncompletePoints(t *testing.T) {
	var c Collector
	c.AddPoint(photo[0])
	c.AddPoint(photo[1])

	if _, err := c.Points(); !errors.Is(err, ErrIncompleteCalibration) {
		t.Errorf("Points: expected ErrIncompleteCalibration, got %v", err)
	}
	if _, err := c.Raw(); !errors.Is(err, ErrIncompleteCalibration) {
		t.Errorf("Raw: expected ErrIncompleteCalibration, got %v", err)
	}
	if got := len(c.Collected()); got != 2 {
		t.Errorf("Collected: got %d points, want 2", got)
	}
}

func TestCollector_ResetIdempotent(t *testing.T) {
	var c Collector
	c.AddPoint(photo[0])
	c.Reset()
	c.Reset()

	if c.Len() != 0 || c.Ready() {
		t.Errorf("after reset: len=%d ready=%v", c.Len(), c.Ready())
	}
	if role, ok := c.NextRole(); !ok || role != RoleTop {
		t.Errorf("NextRole after reset: got %v,%v", role, ok)
	}
}

func TestRole_String(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleTop, "top"},
		{RoleRight, "right"},
		{RoleBottom, "bottom"},
		{RoleLeft, "left"},
		{Role(7), "role(7)"},
	}
	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Errorf("Role(%d).String() = %q, want %q", int(tt.role), got, tt.want)
		}
	}

	data, err := json.Marshal(LabeledPoint{Role: RoleLeft})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["role"] != "left" {
		t.Errorf("role in JSON: got %v", decoded["role"])
	}
}

func TestCalibrator_FullFlow(t *testing.T) {
	c := NewCalibrator(anchors)

	if _, ok := c.State().(Empty); !ok {
		t.Fatalf("initial state: got %T", c.State())
	}
	if _, err := c.Transform(); !errors.Is(err, ErrIncompleteCalibration) {
		t.Errorf("Transform before points: got %v", err)
	}

	for i, p := range photo {
		prog, err := c.AddPoint(p)
		if err != nil {
			t.Fatalf("AddPoint %d failed: %v", i, err)
		}
		if prog.Count != i+1 {
			t.Errorf("count: got %d, want %d", prog.Count, i+1)
		}
		if i < 3 {
			if prog.Ready || prog.Next == nil || *prog.Next != Role(i+1) {
				t.Errorf("progress after %d: %+v", i+1, prog)
			}
			st, ok := c.State().(Collecting)
			if !ok || st.N != i+1 {
				t.Errorf("state after %d points: %#v", i+1, c.State())
			}
		}
	}

	if !c.IsComplete() {
		t.Fatal("expected calibrator to be complete")
	}
	st, ok := c.State().(Calibrated)
	if !ok {
		t.Fatalf("state: got %T, want Calibrated", c.State())
	}
	if st.Phase() != PhaseCalibrated {
		t.Errorf("phase: got %q", st.Phase())
	}

	h, err := c.Transform()
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if h != st.Transform {
		t.Error("State and Transform disagree")
	}
	for i := range photo {
		got, _ := h.Apply(photo[i])
		if got.Distance(anchors[i]) > 1e-6 {
			t.Errorf("anchor %d: got %+v, want %+v", i, got, anchors[i])
		}
	}

	// Adding after completion changes nothing.
	prog, err := c.AddPoint(geometry.Point2D{X: 5, Y: 5})
	if err != nil || prog.Count != 4 || !prog.Ready || prog.Next != nil {
		t.Errorf("fifth add: %+v, %v", prog, err)
	}
	if h2, _ := c.Transform(); h2 != h {
		t.Error("transform changed after a fifth point")
	}
}

func TestCalibrator_Degenerate(t *testing.T) {
	c := NewCalibrator(anchors)
	line := []geometry.Point2D{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 30}}

	var err error
	for _, p := range line {
		_, err = c.AddPoint(p)
	}
	if !errors.Is(err, homography.ErrDegenerateConfiguration) {
		t.Fatalf("expected ErrDegenerateConfiguration, got %v", err)
	}
	if c.IsComplete() {
		t.Error("degenerate set must not calibrate")
	}

	st, ok := c.State().(Collecting)
	if !ok || st.N != 4 {
		t.Errorf("state: got %#v, want Collecting{N: 4}", c.State())
	}
	if _, err := c.Transform(); !errors.Is(err, ErrIncompleteCalibration) {
		t.Errorf("Transform: expected ErrIncompleteCalibration, got %v", err)
	}

	// Further points are ignored until reset.
	if _, err := c.AddPoint(photo[0]); err != nil {
		t.Errorf("add after degenerate: %v", err)
	}
	if c.IsComplete() {
		t.Error("add after degenerate must not calibrate")
	}

	c.Reset()
	for _, p := range photo {
		if _, err := c.AddPoint(p); err != nil {
			t.Fatalf("AddPoint after reset failed: %v", err)
		}
	}
	if !c.IsComplete() {
		t.Error("expected calibration after reset")
	}
}

func TestCalibrator_ResetIdempotent(t *testing.T) {
	c := NewCalibrator(anchors)
	for _, p := range photo {
		c.AddPoint(p)
	}

	c.Reset()
	c.Reset()

	if _, ok := c.State().(Empty); !ok {
		t.Errorf("state after reset: %T", c.State())
	}
	if c.IsComplete() {
		t.Error("expected incomplete after reset")
	}
	if c.Anchors() != anchors {
		t.Error("reset must not touch anchors")
	}
}
