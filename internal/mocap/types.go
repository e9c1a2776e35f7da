package mocap

import (
	"fmt"
	"math"
	"sort"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vec3) Scale(factor float64) Vec3 {
	return Vec3{v.X * factor, v.Y * factor, v.Z * factor}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Dist(other Vec3) float64 {
	return v.Sub(other).Norm()
}

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

func (a Axis) Of(v Vec3) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	}
	return v.Z
}

func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return AxisX, fmt.Errorf("mocap: unknown axis %q (want x, y or z)", s)
}

// TimeSeries holds one motion capture recording: a list of tracked joint
// names and, per sample, a timestamp and one position per joint. Frames is
// sample-major; Frames[i][j] is the position of Joints[j] at Times[i].
type TimeSeries struct {
	Joints []string
	Times  []float64
	Frames [][]Vec3
}

func (ts *TimeSeries) Len() int {
	return len(ts.Times)
}

func (ts *TimeSeries) JointCount() int {
	return len(ts.Joints)
}

func (ts *TimeSeries) JointIndex(name string) (int, bool) {
	for i, n := range ts.Joints {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func (ts *TimeSeries) Duration() float64 {
	if len(ts.Times) < 2 {
		return 0
	}
	return ts.Times[len(ts.Times)-1] - ts.Times[0]
}

// SampleInterval estimates the capture interval as the median timestamp
// delta, which tolerates occasional dropped frames.
func (ts *TimeSeries) SampleInterval() float64 {
	if len(ts.Times) < 2 {
		return 0
	}
	deltas := make([]float64, 0, len(ts.Times)-1)
	for i := 1; i < len(ts.Times); i++ {
		deltas = append(deltas, ts.Times[i]-ts.Times[i-1])
	}
	sort.Float64s(deltas)
	return deltas[len(deltas)/2]
}

func (ts *TimeSeries) Rate() float64 {
	dt := ts.SampleInterval()
	if dt <= 0 {
		return 0
	}
	return 1 / dt
}

// IndexAtTime returns the index of the sample whose timestamp is nearest
// to t, clamped to the series range.
func (ts *TimeSeries) IndexAtTime(t float64) int {
	if len(ts.Times) == 0 {
		return 0
	}
	i := sort.SearchFloat64s(ts.Times, t)
	if i == 0 {
		return 0
	}
	if i >= len(ts.Times) {
		return len(ts.Times) - 1
	}
	if t-ts.Times[i-1] <= ts.Times[i]-t {
		return i - 1
	}
	return i
}

// Bounds returns the componentwise min and max over every finite joint
// position in the series.
func (ts *TimeSeries) Bounds() (min, max Vec3) {
	min = Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, frame := range ts.Frames {
		for _, p := range frame {
			if !p.IsValid() {
				continue
			}
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			min.Z = math.Min(min.Z, p.Z)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
			max.Z = math.Max(max.Z, p.Z)
		}
	}
	return min, max
}

// Track extracts one coordinate of one joint across every sample. Useful
// for charts and spectral analysis.
func (ts *TimeSeries) Track(joint int, axis Axis) []float64 {
	track := make([]float64, len(ts.Frames))
	for i, frame := range ts.Frames {
		track[i] = axis.Of(frame[joint])
	}
	return track
}

// Slice returns a view of samples [lo, hi). The joint list and the backing
// frame data are shared with the receiver.
func (ts *TimeSeries) Slice(lo, hi int) *TimeSeries {
	if lo < 0 {
		lo = 0
	}
	if hi > len(ts.Times) {
		hi = len(ts.Times)
	}
	if lo > hi {
		lo = hi
	}
	return &TimeSeries{
		Joints: ts.Joints,
		Times:  ts.Times[lo:hi],
		Frames: ts.Frames[lo:hi],
	}
}

// Stride returns a copy holding every nth sample, always including the
// first. A stride below 1 is treated as 1.
func (ts *TimeSeries) Stride(n int) *TimeSeries {
	if n < 1 {
		n = 1
	}
	out := &TimeSeries{Joints: ts.Joints}
	for i := 0; i < len(ts.Times); i += n {
		out.Times = append(out.Times, ts.Times[i])
		out.Frames = append(out.Frames, ts.Frames[i])
	}
	return out
}

func (ts *TimeSeries) Clone() *TimeSeries {
	c := &TimeSeries{
		Joints: append([]string(nil), ts.Joints...),
		Times:  append([]float64(nil), ts.Times...),
		Frames: make([][]Vec3, len(ts.Frames)),
	}
	for i, frame := range ts.Frames {
		c.Frames[i] = append([]Vec3(nil), frame...)
	}
	return c
}

// Validate checks the structural invariants: matching lengths between
// times and frames, and one position per joint in every frame.
func (ts *TimeSeries) Validate() error {
	if len(ts.Times) != len(ts.Frames) {
		return fmt.Errorf("mocap: %d timestamps but %d frames", len(ts.Times), len(ts.Frames))
	}
	for i, frame := range ts.Frames {
		if len(frame) != len(ts.Joints) {
			return fmt.Errorf("mocap: frame %d has %d positions, want %d", i, len(frame), len(ts.Joints))
		}
	}
	return nil
}

// IsMonotonic reports whether timestamps strictly increase. Capture files
// with clock glitches still load; callers that care can check.
func (ts *TimeSeries) IsMonotonic() bool {
	for i := 1; i < len(ts.Times); i++ {
		if ts.Times[i] <= ts.Times[i-1] {
			return false
		}
	}
	return true
}

// JointGraph is the static skeleton: the joints and the edges (bones)
// drawn between them. Edge endpoints index into Joints.
type JointGraph struct {
	Joints []string
	Edges  [][2]int
}

func (g *JointGraph) EdgeCount() int {
	return len(g.Edges)
}

func (g *JointGraph) JointIndex(name string) (int, bool) {
	for i, n := range g.Joints {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func (g *JointGraph) Validate() error {
	for i, e := range g.Edges {
		if e[0] < 0 || e[0] >= len(g.Joints) || e[1] < 0 || e[1] >= len(g.Joints) {
			return fmt.Errorf("mocap: edge %d (%d, %d) references a joint outside 0..%d", i, e[0], e[1], len(g.Joints)-1)
		}
	}
	return nil
}

// Capture pairs a loaded time series with its joint graph after the two
// have been validated against each other.
type Capture struct {
	Series *TimeSeries
	Graph  *JointGraph
}
