// Package mocap loads and validates motion capture recordings.
//
// A recording is two files: a CSV time series of timestamped 3D joint
// positions and a plain-text joint graph naming the skeleton's bones.
// The package defines the core types the rest of the tool works with:
//
//   - [TimeSeries]: timestamps plus one position per joint per sample
//   - [JointGraph]: joint names and the bone edges between them
//   - [Capture]: a validated series/graph pair
//   - [Walker]: a synthetic capture source for demos and tests
//
// # Example
//
//	cap, err := mocap.Load("walk.csv", "skeleton.txt")
//	if err != nil {
//		return err
//	}
//	fmt.Println(cap.Series.JointCount(), cap.Series.Len())
//
// # Validation
//
// Loading fails on structural problems: a header without X,Y,Z column
// triples, triples that disagree on the joint name, malformed graph
// lines, and a series and graph that name different joints or the same
// joints in a different order. Missing value cells load as NaN rather
// than failing, since markers drop out of real captures.
package mocap
