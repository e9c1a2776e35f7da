package mocap

import "math"

// Walker generates a synthetic capture of a figure walking in place
// while drifting forward. It exists so the tool can be demonstrated and
// tested without a recording: positions are centimeter-scale with the
// floor near z=100, matching typical depth-camera exports.
type Walker struct {
	Cadence  float64 // steps per second per leg
	Stride   float64 // peak limb swing in cm
	Speed    float64 // forward drift in cm/s
	Interval float64 // capture interval in ms
}

func NewWalker() *Walker {
	return &Walker{
		Cadence:  0.9,
		Stride:   14,
		Speed:    18,
		Interval: 50,
	}
}

var walkerEdges = [][2]string{
	{"head", "neck"},
	{"neck", "leftShoulder"},
	{"neck", "rightShoulder"},
	{"leftShoulder", "leftHand"},
	{"rightShoulder", "rightHand"},
	{"neck", "hip"},
	{"hip", "leftKnee"},
	{"hip", "rightKnee"},
	{"leftKnee", "leftFoot"},
	{"rightKnee", "rightFoot"},
}

// Capture renders the walker into a ready-made series and graph pair.
func (w *Walker) Capture(frames int) *Capture {
	if frames < 1 {
		frames = 1
	}
	graph := walkerGraph()
	series := &TimeSeries{
		Joints: graph.Joints,
		Times:  make([]float64, frames),
		Frames: make([][]Vec3, frames),
	}
	for i := 0; i < frames; i++ {
		t := float64(i) * w.Interval / 1000.0
		series.Times[i] = float64(i) * w.Interval
		series.Frames[i] = w.pose(t, graph.Joints)
	}
	return &Capture{Series: series, Graph: graph}
}

func walkerGraph() *JointGraph {
	ids := make(map[string]int)
	g := &JointGraph{}
	for _, e := range walkerEdges {
		g.Edges = append(g.Edges, [2]int{g.jointID(ids, e[0]), g.jointID(ids, e[1])})
	}
	return g
}

func (w *Walker) pose(t float64, joints []string) []Vec3 {
	phase := 2 * math.Pi * w.Cadence * t
	swing := math.Sin(phase)
	lift := math.Max(0, math.Sin(phase))
	counterLift := math.Max(0, -math.Sin(phase))

	x := -60 + w.Speed*t
	sway := 3 * math.Sin(phase)
	bob := 2 * math.Abs(math.Cos(phase))

	hip := Vec3{x, sway, 100 + bob}
	neck := Vec3{x, sway * 0.5, 145 + bob}

	pose := make([]Vec3, len(joints))
	for i, name := range joints {
		switch name {
		case "head":
			pose[i] = Vec3{neck.X, neck.Y, neck.Z + 18}
		case "neck":
			pose[i] = neck
		case "leftShoulder":
			pose[i] = Vec3{neck.X, neck.Y - 18, neck.Z - 3}
		case "rightShoulder":
			pose[i] = Vec3{neck.X, neck.Y + 18, neck.Z - 3}
		case "leftHand":
			// arms swing opposite their side's leg
			pose[i] = Vec3{neck.X + w.Stride*swing*0.6, neck.Y - 20, neck.Z - 35}
		case "rightHand":
			pose[i] = Vec3{neck.X - w.Stride*swing*0.6, neck.Y + 20, neck.Z - 35}
		case "hip":
			pose[i] = hip
		case "leftKnee":
			pose[i] = Vec3{hip.X - w.Stride*swing*0.7, hip.Y - 9, hip.Z - 25 + 4*lift}
		case "rightKnee":
			pose[i] = Vec3{hip.X + w.Stride*swing*0.7, hip.Y + 9, hip.Z - 25 + 4*counterLift}
		case "leftFoot":
			pose[i] = Vec3{hip.X - w.Stride*swing, hip.Y - 10, hip.Z - 48 + 8*lift}
		case "rightFoot":
			pose[i] = Vec3{hip.X + w.Stride*swing, hip.Y + 10, hip.Z - 48 + 8*counterLift}
		}
	}
	return pose
}
