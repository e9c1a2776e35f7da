package mocap

import (
	"errors"
	"fmt"
)

// Errors reported while loading and validating capture files.
var (
	// ErrColumnCount indicates a time series header without 1 + 3*N columns.
	ErrColumnCount = errors.New("mocap: expected a timestamp column plus X,Y,Z column triples")

	// ErrJointColumns indicates a coordinate column triple whose names do
	// not share one joint name.
	ErrJointColumns = errors.New("mocap: joint coordinate columns are misnamed")

	// ErrEmptySeries indicates a time series file with no data rows.
	ErrEmptySeries = errors.New("mocap: time series has no samples")

	// ErrGraphLine indicates a joint graph line that is not two names.
	ErrGraphLine = errors.New("mocap: malformed joint graph edge line")

	// ErrJointMismatch indicates the time series and joint graph disagree
	// on the tracked joints.
	ErrJointMismatch = errors.New("mocap: time series and joint graph joints do not match")

	// ErrUnknownJoint indicates a joint name absent from the series.
	ErrUnknownJoint = errors.New("mocap: unknown joint name")

	// ErrFrameRange indicates a frame index outside the series.
	ErrFrameRange = errors.New("mocap: frame index out of range")
)

// LoadError wraps a loader error with the file it came from and, when
// known, the 1-based line.
type LoadError struct {
	Path    string
	Line    int
	Wrapped error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Wrapped)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Wrapped)
}

func (e *LoadError) Unwrap() error {
	return e.Wrapped
}
