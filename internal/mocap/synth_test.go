package mocap

import "testing"

func TestWalkerCapture(t *testing.T) {
	cap := NewWalker().Capture(40)

	if cap.Series.Len() != 40 {
		t.Errorf("expected 40 frames, got %d", cap.Series.Len())
	}
	if err := cap.Series.Validate(); err != nil {
		t.Fatalf("walker series should validate: %v", err)
	}
	if err := cap.Graph.Validate(); err != nil {
		t.Fatalf("walker graph should validate: %v", err)
	}
	if err := ValidateJoints(cap.Series, cap.Graph); err != nil {
		t.Fatalf("walker joints should match its graph: %v", err)
	}
	if !cap.Series.IsMonotonic() {
		t.Error("walker timestamps should increase")
	}

	for i, frame := range cap.Series.Frames {
		for j, p := range frame {
			if !p.IsValid() {
				t.Fatalf("frame %d joint %s: invalid position %v", i, cap.Series.Joints[j], p)
			}
		}
	}

	// head stays above the hip throughout the walk
	head, _ := cap.Series.JointIndex("head")
	hip, _ := cap.Series.JointIndex("hip")
	for i, frame := range cap.Series.Frames {
		if frame[head].Z <= frame[hip].Z {
			t.Fatalf("frame %d: head below hip", i)
		}
	}
}

func TestWalkerCapture_MinimumFrames(t *testing.T) {
	cap := NewWalker().Capture(0)
	if cap.Series.Len() != 1 {
		t.Errorf("expected at least 1 frame, got %d", cap.Series.Len())
	}
}
