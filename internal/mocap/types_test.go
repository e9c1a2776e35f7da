package mocap

import (
	"math"
	"testing"
)

func seriesOf(times ...float64) *TimeSeries {
	ts := &TimeSeries{Joints: []string{"a"}}
	for _, t := range times {
		ts.Times = append(ts.Times, t)
		ts.Frames = append(ts.Frames, []Vec3{{t, 2 * t, 3 * t}})
	}
	return ts
}

func TestSampleInterval(t *testing.T) {
	ts := seriesOf(0, 50, 100, 150, 400)
	if dt := ts.SampleInterval(); dt != 50 {
		t.Errorf("median interval should ignore the gap, got %f", dt)
	}
	if r := ts.Rate(); math.Abs(r-0.02) > 1e-12 {
		t.Errorf("expected rate 0.02, got %f", r)
	}

	if dt := seriesOf(10).SampleInterval(); dt != 0 {
		t.Errorf("single sample should have interval 0, got %f", dt)
	}
}

func TestIndexAtTime(t *testing.T) {
	ts := seriesOf(0, 50, 100)

	tests := []struct {
		t    float64
		want int
	}{
		{-10, 0},
		{0, 0},
		{24, 0},
		{26, 1},
		{50, 1},
		{99, 2},
		{500, 2},
	}
	for _, tt := range tests {
		if got := ts.IndexAtTime(tt.t); got != tt.want {
			t.Errorf("IndexAtTime(%f): expected %d, got %d", tt.t, tt.want, got)
		}
	}
}

func TestSliceAndStride(t *testing.T) {
	ts := seriesOf(0, 50, 100, 150, 200)

	s := ts.Slice(1, 3)
	if s.Len() != 2 || s.Times[0] != 50 {
		t.Errorf("unexpected slice: %v", s.Times)
	}
	s = ts.Slice(-5, 100)
	if s.Len() != 5 {
		t.Errorf("slice should clamp to range, got %d samples", s.Len())
	}

	st := ts.Stride(2)
	if st.Len() != 3 || st.Times[2] != 200 {
		t.Errorf("unexpected stride result: %v", st.Times)
	}
	if ts.Stride(0).Len() != ts.Len() {
		t.Error("stride below 1 should keep every sample")
	}
}

func TestTrack(t *testing.T) {
	ts := seriesOf(0, 50, 100)
	track := ts.Track(0, AxisY)
	if len(track) != 3 || track[2] != 200 {
		t.Errorf("unexpected track: %v", track)
	}
}

func TestIsMonotonic(t *testing.T) {
	if !seriesOf(0, 50, 100).IsMonotonic() {
		t.Error("increasing timestamps should be monotonic")
	}
	if seriesOf(0, 50, 50).IsMonotonic() {
		t.Error("repeated timestamps should not be monotonic")
	}
}

func TestParseAxis(t *testing.T) {
	for s, want := range map[string]Axis{"x": AxisX, "Y": AxisY, "z": AxisZ} {
		got, err := ParseAxis(s)
		if err != nil || got != want {
			t.Errorf("ParseAxis(%q): expected %v, got %v (%v)", s, want, got, err)
		}
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Error("expected error for unknown axis")
	}
}

func TestVec3IsValid(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsValid() {
		t.Error("finite vector should be valid")
	}
	if (Vec3{1, math.NaN(), 3}).IsValid() {
		t.Error("NaN vector should be invalid")
	}
	if (Vec3{math.Inf(1), 0, 0}).IsValid() {
		t.Error("Inf vector should be invalid")
	}
}
