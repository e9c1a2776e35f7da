package chart

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/motionrender/internal/mocap"
)

func testSeries() *mocap.TimeSeries {
	ts := &mocap.TimeSeries{
		Joints: []string{"head", "hand"},
		Times:  make([]float64, 20),
		Frames: make([][]mocap.Vec3, 20),
	}
	for i := range ts.Frames {
		t := float64(i)
		ts.Times[i] = t * 50
		ts.Frames[i] = []mocap.Vec3{
			{X: math.Sin(t / 3), Z: 150},
			{X: math.Cos(t / 3), Z: 120},
		}
	}
	return ts
}

func TestASCII(t *testing.T) {
	ts := testSeries()

	graph, err := ASCII(ts, []int{0, 1}, mocap.AxisX, 60, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if graph == "" {
		t.Fatal("expected non-empty graph")
	}
	if !strings.Contains(graph, "head") || !strings.Contains(graph, "hand") {
		t.Error("expected joint names in legend")
	}
	if !strings.Contains(graph, "x position over time") {
		t.Error("expected axis caption")
	}
}

func TestASCIIErrors(t *testing.T) {
	ts := testSeries()

	if _, err := ASCII(ts, nil, mocap.AxisX, 60, 10); !errors.Is(err, ErrNoTracks) {
		t.Errorf("expected ErrNoTracks, got %v", err)
	}
	if _, err := ASCII(ts, []int{5}, mocap.AxisX, 60, 10); err == nil {
		t.Error("expected error for out of range joint")
	}
}

func TestPNG(t *testing.T) {
	ts := testSeries()

	data, err := PNG(ts, []int{0, 1}, mocap.AxisZ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected decodable png, got %v", err)
	}
	b := img.Bounds()
	if b.Dx() != pngWidth || b.Dy() != pngHeight {
		t.Errorf("expected %dx%d chart, got %dx%d", pngWidth, pngHeight, b.Dx(), b.Dy())
	}
}

func TestPNGSkipsEmptyTracks(t *testing.T) {
	ts := testSeries()
	for i := range ts.Frames {
		ts.Frames[i][1] = mocap.Vec3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
	}

	if _, err := PNG(ts, []int{1}, mocap.AxisX); !errors.Is(err, ErrNoTracks) {
		t.Errorf("expected ErrNoTracks for all-gap track, got %v", err)
	}
	if _, err := PNG(ts, []int{0, 1}, mocap.AxisX); err != nil {
		t.Errorf("expected finite track to carry the chart, got %v", err)
	}
}

func TestFinitePoints(t *testing.T) {
	times := []float64{0, 50, 100, 150}
	track := []float64{1, math.NaN(), 3, math.Inf(1)}

	xs, ys := finitePoints(times, track)
	if len(xs) != 2 || len(ys) != 2 {
		t.Fatalf("expected 2 finite points, got %d", len(xs))
	}
	if xs[0] != 0 || xs[1] != 100 || ys[0] != 1 || ys[1] != 3 {
		t.Errorf("expected points (0,1) (100,3), got (%v,%v) (%v,%v)", xs[0], ys[0], xs[1], ys[1])
	}
}
