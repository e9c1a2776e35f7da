package stats

import (
	"github.com/san-kum/motionrender/internal/mocap"
)

// Summary describes a loaded recording: its extent in time and space and
// the aggregate motion of every joint.
type Summary struct {
	Frames         int
	JointCount     int
	Duration       float64
	SampleInterval float64
	Min, Max       mocap.Vec3
	Joints         []JointStat
}

// JointStat aggregates the motion of a single joint. Speeds are in
// position units per time unit of the recording.
type JointStat struct {
	Name       string
	PathLength float64
	MeanSpeed  float64
	MaxSpeed   float64
	Gaps       int // samples with a missing position
}

// Summarize walks the series once and aggregates per-joint motion.
// Samples with missing positions are skipped; the path continues from
// the next finite sample.
func Summarize(ts *mocap.TimeSeries) Summary {
	s := Summary{
		Frames:         ts.Len(),
		JointCount:     ts.JointCount(),
		Duration:       ts.Duration(),
		SampleInterval: ts.SampleInterval(),
		Joints:         make([]JointStat, ts.JointCount()),
	}
	s.Min, s.Max = ts.Bounds()
	for j, name := range ts.Joints {
		s.Joints[j] = jointStat(ts, j, name, s.Duration)
	}
	return s
}

// MotionTrace returns, per frame, the mean displacement of the joints
// visible in both that frame and the one before it. The trace reads as an
// overall activity curve: near zero while the subject holds still, spiking
// on fast movement. Frame zero is always zero.
func MotionTrace(ts *mocap.TimeSeries) []float64 {
	motion := make([]float64, ts.Len())
	for i := 1; i < ts.Len(); i++ {
		sum := 0.0
		n := 0
		for j := range ts.Frames[i] {
			a, b := ts.Frames[i-1][j], ts.Frames[i][j]
			if a.IsValid() && b.IsValid() {
				sum += b.Dist(a)
				n++
			}
		}
		if n > 0 {
			motion[i] = sum / float64(n)
		}
	}
	return motion
}

func jointStat(ts *mocap.TimeSeries, j int, name string, duration float64) JointStat {
	st := JointStat{Name: name}
	var prev mocap.Vec3
	var prevT float64
	havePrev := false
	for i, frame := range ts.Frames {
		p := frame[j]
		if !p.IsValid() {
			st.Gaps++
			continue
		}
		if havePrev {
			d := p.Dist(prev)
			st.PathLength += d
			if dt := ts.Times[i] - prevT; dt > 0 {
				if v := d / dt; v > st.MaxSpeed {
					st.MaxSpeed = v
				}
			}
		}
		prev, prevT, havePrev = p, ts.Times[i], true
	}
	if duration > 0 {
		st.MeanSpeed = st.PathLength / duration
	}
	return st
}
