// Package stats aggregates motion statistics from capture recordings.
//
//   - [Summarize]: per-joint path length, speed and gap counts plus the
//     overall spatial and temporal extent of a series
//   - [MotionTrace]: per-frame mean joint displacement, an activity curve
//     for playback overlays
//   - [Cadence]: dominant oscillation frequency of a joint track via FFT
//
// # Gait Cadence
//
// Feeding Cadence the vertical track of a foot gives the step frequency
// of a walking capture. The returned frequency is in the units of the
// rate argument, so a 20 hz recording yields steps per second:
//
//	track := series.Track(foot, mocap.AxisZ)
//	cad, err := stats.Cadence(track, 20)
package stats
