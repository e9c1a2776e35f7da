package mocap

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoad_Good(t *testing.T) {
	cap, err := Load(
		filepath.Join("testdata", "good_time_series.csv"),
		filepath.Join("testdata", "good_joint_graph.txt"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cap.Series.Len() != 4 {
		t.Errorf("expected 4 samples, got %d", cap.Series.Len())
	}
	if cap.Graph.EdgeCount() != 3 {
		t.Errorf("expected 3 edges, got %d", cap.Graph.EdgeCount())
	}
}

func TestLoad_JointCountMismatch(t *testing.T) {
	_, err := Load(
		filepath.Join("testdata", "good_time_series.csv"),
		filepath.Join("testdata", "extra_joint_graph.txt"),
	)
	if !errors.Is(err, ErrJointMismatch) {
		t.Errorf("expected ErrJointMismatch, got %v", err)
	}
}

func TestLoad_JointOrderMismatch(t *testing.T) {
	// same joint set, introduced in a different order
	_, err := Load(
		filepath.Join("testdata", "good_time_series.csv"),
		filepath.Join("testdata", "other_order_graph.txt"),
	)
	if !errors.Is(err, ErrJointMismatch) {
		t.Errorf("expected ErrJointMismatch, got %v", err)
	}
}
