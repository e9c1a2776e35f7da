package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/motionrender/internal/mocap"
)

func TestSummarize(t *testing.T) {
	ts := &mocap.TimeSeries{
		Joints: []string{"head", "hand"},
		Times:  []float64{0, 1, 2},
		Frames: [][]mocap.Vec3{
			{{X: 0}, {Z: 5}},
			{{X: 1}, {X: math.NaN(), Y: math.NaN(), Z: math.NaN()}},
			{{X: 2}, {X: 3, Y: 4, Z: 5}},
		},
	}

	s := Summarize(ts)

	if s.Frames != 3 || s.JointCount != 2 {
		t.Fatalf("expected 3 frames of 2 joints, got %d of %d", s.Frames, s.JointCount)
	}
	if s.Duration != 2 {
		t.Errorf("expected duration 2, got %f", s.Duration)
	}
	if s.SampleInterval != 1 {
		t.Errorf("expected interval 1, got %f", s.SampleInterval)
	}
	if s.Min != (mocap.Vec3{}) {
		t.Errorf("expected min at origin, got %+v", s.Min)
	}
	if s.Max != (mocap.Vec3{X: 3, Y: 4, Z: 5}) {
		t.Errorf("expected max (3,4,5), got %+v", s.Max)
	}

	head := s.Joints[0]
	if head.Name != "head" {
		t.Errorf("expected joint head, got %q", head.Name)
	}
	if math.Abs(head.PathLength-2) > 1e-9 {
		t.Errorf("expected head path 2, got %f", head.PathLength)
	}
	if math.Abs(head.MeanSpeed-1) > 1e-9 {
		t.Errorf("expected head mean speed 1, got %f", head.MeanSpeed)
	}
	if math.Abs(head.MaxSpeed-1) > 1e-9 {
		t.Errorf("expected head max speed 1, got %f", head.MaxSpeed)
	}
	if head.Gaps != 0 {
		t.Errorf("expected no head gaps, got %d", head.Gaps)
	}

	// The hand is missing in the middle frame; the path bridges the gap
	// from (0,0,5) straight to (3,4,5) over two time units.
	hand := s.Joints[1]
	if hand.Gaps != 1 {
		t.Errorf("expected 1 hand gap, got %d", hand.Gaps)
	}
	if math.Abs(hand.PathLength-5) > 1e-9 {
		t.Errorf("expected hand path 5, got %f", hand.PathLength)
	}
	if math.Abs(hand.MeanSpeed-2.5) > 1e-9 {
		t.Errorf("expected hand mean speed 2.5, got %f", hand.MeanSpeed)
	}
	if math.Abs(hand.MaxSpeed-2.5) > 1e-9 {
		t.Errorf("expected hand max speed 2.5, got %f", hand.MaxSpeed)
	}
}

func TestSummarizeWalker(t *testing.T) {
	c := mocap.NewWalker().Capture(60)
	s := Summarize(c.Series)

	if s.Frames != 60 {
		t.Fatalf("expected 60 frames, got %d", s.Frames)
	}
	if s.JointCount != c.Series.JointCount() {
		t.Fatalf("expected %d joints, got %d", c.Series.JointCount(), s.JointCount)
	}
	for _, js := range s.Joints {
		if js.Gaps != 0 {
			t.Errorf("joint %s: expected no gaps, got %d", js.Name, js.Gaps)
		}
		if js.PathLength <= 0 {
			t.Errorf("joint %s: expected motion, got path %f", js.Name, js.PathLength)
		}
		if js.MaxSpeed < js.MeanSpeed {
			t.Errorf("joint %s: max speed %f below mean %f", js.Name, js.MaxSpeed, js.MeanSpeed)
		}
	}
}

func TestMotionTrace(t *testing.T) {
	ts := &mocap.TimeSeries{
		Joints: []string{"a", "b"},
		Times:  []float64{0, 50, 100},
		Frames: [][]mocap.Vec3{
			{{X: 0}, {X: 0}},
			{{X: 3}, {X: 1}},
			{{X: 3}, {X: math.NaN(), Y: math.NaN(), Z: math.NaN()}},
		},
	}

	motion := MotionTrace(ts)
	if motion[0] != 0 {
		t.Errorf("expected no motion at frame 0, got %f", motion[0])
	}
	if math.Abs(motion[1]-2) > 1e-9 {
		t.Errorf("expected mean displacement 2, got %f", motion[1])
	}
	// the joint with a gap is left out of the mean
	if motion[2] != 0 {
		t.Errorf("expected motion 0 with gap skipped, got %f", motion[2])
	}
}

func TestCadenceSine(t *testing.T) {
	const (
		n    = 64
		rate = 20.0 // samples per second
		freq = 2.5  // cycles per second, an exact bin
	)
	track := make([]float64, n)
	for i := range track {
		sec := float64(i) / rate
		track[i] = 10 + 3*math.Sin(2*math.Pi*freq*sec)
	}

	cad, err := Cadence(track, rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(cad-freq) > rate/n {
		t.Errorf("expected cadence near %f, got %f", freq, cad)
	}
}

func TestCadenceWithGaps(t *testing.T) {
	const (
		n    = 64
		rate = 20.0
		freq = 2.5
	)
	track := make([]float64, n)
	for i := range track {
		sec := float64(i) / rate
		track[i] = math.Sin(2 * math.Pi * freq * sec)
	}
	track[10] = math.NaN()
	track[37] = math.NaN()

	cad, err := Cadence(track, rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(cad-freq) > rate/n {
		t.Errorf("expected cadence near %f despite gaps, got %f", freq, cad)
	}
}

func TestCadenceErrors(t *testing.T) {
	if _, err := Cadence([]float64{1, 2, 3}, 20); !errors.Is(err, ErrShortTrack) {
		t.Errorf("expected ErrShortTrack for 3 samples, got %v", err)
	}
	if _, err := Cadence(make([]float64, 32), 0); !errors.Is(err, ErrShortTrack) {
		t.Errorf("expected ErrShortTrack for zero rate, got %v", err)
	}

	flat := make([]float64, 32)
	for i := range flat {
		flat[i] = 7
	}
	if _, err := Cadence(flat, 20); !errors.Is(err, ErrFlatTrack) {
		t.Errorf("expected ErrFlatTrack, got %v", err)
	}
}

func TestFillGaps(t *testing.T) {
	nan := math.NaN()
	got := fillGaps([]float64{nan, 1, nan, nan, 4})
	want := []float64{1, 1, 1, 1, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}
