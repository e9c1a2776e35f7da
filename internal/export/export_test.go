package export

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/motionrender/internal/config"
	"github.com/san-kum/motionrender/internal/mocap"
	"github.com/san-kum/motionrender/internal/render"
)

func testCapture(t *testing.T, frames int) *mocap.Capture {
	t.Helper()
	return mocap.NewWalker().Capture(frames)
}

func TestEncodeJSON(t *testing.T) {
	c := testCapture(t, 5)
	c.Series.Frames[2][0] = mocap.Vec3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, c.Series, c.Graph, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Joints []string       `json:"joints"`
		Edges  [][2]int       `json:"edges"`
		Times  []float64      `json:"times"`
		Frames [][][]*float64 `json:"frames"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if len(doc.Joints) != c.Series.JointCount() {
		t.Errorf("expected %d joints, got %d", c.Series.JointCount(), len(doc.Joints))
	}
	if len(doc.Edges) != c.Graph.EdgeCount() {
		t.Errorf("expected %d edges, got %d", c.Graph.EdgeCount(), len(doc.Edges))
	}
	if len(doc.Frames) != 5 || len(doc.Times) != 5 {
		t.Fatalf("expected 5 frames and times, got %d and %d", len(doc.Frames), len(doc.Times))
	}
	if doc.Frames[2][0][0] != nil {
		t.Error("expected missing position to encode as null")
	}
	if doc.Frames[0][0][0] == nil {
		t.Error("expected finite position to encode as a number")
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	c := testCapture(t, 8)
	c.Series.Frames[3][1] = mocap.Vec3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
	path := filepath.Join(t.TempDir(), "clip.csv")

	if err := WriteCSV(c.Series, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := mocap.LoadTimeSeries(path)
	if err != nil {
		t.Fatalf("round trip load: %v", err)
	}
	if loaded.Len() != 8 {
		t.Fatalf("expected 8 frames, got %d", loaded.Len())
	}
	for j, name := range c.Series.Joints {
		if loaded.Joints[j] != name {
			t.Errorf("joint %d: expected %q, got %q", j, name, loaded.Joints[j])
		}
	}
	if !math.IsNaN(loaded.Frames[3][1].X) {
		t.Error("expected gap to survive the round trip")
	}
	got := loaded.Frames[5][2]
	want := c.Series.Frames[5][2]
	if math.Abs(got.X-want.X) > 1e-5 || math.Abs(got.Z-want.Z) > 1e-5 {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFrameSVG(t *testing.T) {
	c := testCapture(t, 4)
	cfg := config.DefaultConfig()
	cfg.Render.Width = 300
	cfg.Render.Height = 300

	r, err := render.New(c, cfg)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	svg, err := FrameSVG(r, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.Contains(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if !strings.Contains(svg, `width="300"`) {
		t.Error("expected configured width")
	}
	if got := strings.Count(svg, "<circle"); got != c.Series.JointCount() {
		t.Errorf("expected %d joint circles, got %d", c.Series.JointCount(), got)
	}
	if !strings.Contains(svg, "Time: 0") {
		t.Error("expected frame title")
	}

	if _, err := FrameSVG(r, 99); err == nil {
		t.Error("expected error for out of range frame")
	}
}
