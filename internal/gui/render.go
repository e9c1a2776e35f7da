package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/motionrender/internal/mocap"
)

// worldPoint maps a capture-space position into the view volume:
// recentered on the capture midpoint, scaled to viewSpan, and swizzled
// from the capture's Z-up into Raylib's Y-up.
func (a *App) worldPoint(p mocap.Vec3) rl.Vector3 {
	return rl.NewVector3(
		float32((p.X-a.Center.X)*a.Scale),
		float32((p.Z-a.Center.Z)*a.Scale),
		float32((p.Y-a.Center.Y)*a.Scale),
	)
}

func (a *App) RenderSkeleton() {
	frame := a.Series.Frames[a.Frame]

	for _, e := range a.Graph.Edges {
		pa, pb := frame[e[0]], frame[e[1]]
		if !pa.IsValid() || !pb.IsValid() {
			continue
		}
		rl.DrawLine3D(a.worldPoint(pa), a.worldPoint(pb), ColBone)
	}

	for j, p := range frame {
		if !p.IsValid() {
			continue
		}
		col := ColJoint
		if j == a.TrailJoint {
			col = ColSelect
		}
		rl.DrawSphere(a.worldPoint(p), jointRadius, col)
	}
}

// RenderBox draws the wireframe of the capture's spatial bounds.
func (a *App) RenderBox() {
	lo, hi := a.Series.Bounds()
	center := a.worldPoint(lo.Add(hi).Scale(0.5))
	size := hi.Sub(lo).Scale(a.Scale)
	rl.DrawCubeWires(center,
		float32(size.X), float32(size.Z), float32(size.Y),
		rl.ColorAlpha(rl.Gray, 0.5))
}

// RenderTrail draws the path of the selected joint over the frames
// leading up to the cursor, fading toward the older end.
func (a *App) RenderTrail() {
	lo := a.Frame - trailSpan
	if lo < 0 {
		lo = 0
	}
	for k := lo + 1; k <= a.Frame; k++ {
		pa := a.Series.Frames[k-1][a.TrailJoint]
		pb := a.Series.Frames[k][a.TrailJoint]
		if !pa.IsValid() || !pb.IsValid() {
			continue
		}
		age := float32(a.Frame-k) / float32(trailSpan)
		rl.DrawLine3D(a.worldPoint(pa), a.worldPoint(pb), rl.ColorAlpha(ColAccent, 1.0-0.85*age))
	}
}

func (a *App) drawGrid(slices int, spacing float32) {
	halfSize := float32(slices) * spacing / 2
	for i := -slices / 2; i <= slices/2; i++ {
		pos := float32(i) * spacing
		rl.DrawLine3D(rl.NewVector3(pos, a.FloorY, -halfSize), rl.NewVector3(pos, a.FloorY, halfSize), ColGrid)
		rl.DrawLine3D(rl.NewVector3(-halfSize, a.FloorY, pos), rl.NewVector3(halfSize, a.FloorY, pos), ColGrid)
	}
}

// drawLabels writes each visible joint's name next to its projected
// screen position. Runs outside the 3D mode block.
func (a *App) drawLabels() {
	frame := a.Series.Frames[a.Frame]
	for j, p := range frame {
		if !p.IsValid() {
			continue
		}
		screen := rl.GetWorldToScreen(a.worldPoint(p), a.Camera)
		if screen.X < 0 || screen.X > 1280 || screen.Y < 0 || screen.Y > 720 {
			continue
		}
		a.drawText(a.Series.Joints[j], int(screen.X)+8, int(screen.Y)-6, 12, ColText)
	}
}
