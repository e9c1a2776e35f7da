package mocap

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
)

func TestLoadTimeSeries_Good(t *testing.T) {
	ts, err := LoadTimeSeries(filepath.Join("testdata", "good_time_series.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ts.Len() != 4 {
		t.Errorf("expected 4 samples, got %d", ts.Len())
	}
	if ts.JointCount() != 4 {
		t.Errorf("expected 4 joints, got %d", ts.JointCount())
	}

	want := []string{"head", "neck", "leftShoulder", "rightShoulder"}
	for i, name := range want {
		if ts.Joints[i] != name {
			t.Errorf("joint %d: expected %s, got %s", i, name, ts.Joints[i])
		}
	}

	if ts.Times[0] != 0 || ts.Times[3] != 150 {
		t.Errorf("unexpected timestamps: %v", ts.Times)
	}
	if ts.Frames[0][0] != (Vec3{1, 1, 1}) {
		t.Errorf("expected head at (1,1,1), got %v", ts.Frames[0][0])
	}
	if ts.Frames[3][3] != (Vec3{16, 16, 16}) {
		t.Errorf("expected rightShoulder at (16,16,16), got %v", ts.Frames[3][3])
	}
	if err := ts.Validate(); err != nil {
		t.Errorf("loaded series should validate: %v", err)
	}
}

func TestLoadTimeSeries_Errors(t *testing.T) {
	tests := []struct {
		file string
		want error
	}{
		{"bad_column_count.csv", ErrColumnCount},
		{"bad_triple_names.csv", ErrJointColumns},
		{"empty_series.csv", ErrEmptySeries},
	}

	for _, tt := range tests {
		_, err := LoadTimeSeries(filepath.Join("testdata", tt.file))
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.file, tt.want, err)
		}
	}
}

func TestLoadTimeSeries_BadValue(t *testing.T) {
	_, err := LoadTimeSeries(filepath.Join("testdata", "bad_value.csv"))
	if err == nil {
		t.Fatal("expected error for non-numeric cell")
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %T", err)
	}
	if le.Line != 2 {
		t.Errorf("expected error on line 2, got line %d", le.Line)
	}
}

func TestLoadTimeSeries_Gaps(t *testing.T) {
	ts, err := LoadTimeSeries(filepath.Join("testdata", "gap_series.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(ts.Frames[1][0].X) {
		t.Errorf("expected NaN for empty cell, got %v", ts.Frames[1][0].X)
	}

	min, max := ts.Bounds()
	if min != (Vec3{1, 1, 1}) || max != (Vec3{2, 2, 2}) {
		t.Errorf("bounds should skip NaN positions, got min=%v max=%v", min, max)
	}
}

func TestLoadTimeSeries_MissingFile(t *testing.T) {
	if _, err := LoadTimeSeries(filepath.Join("testdata", "no_such_file.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
