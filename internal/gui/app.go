package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/motionrender/internal/config"
	"github.com/san-kum/motionrender/internal/mocap"
	"github.com/san-kum/motionrender/internal/stats"
)

// Theme colors (monochrome).
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // deep black
	ColBone    = rl.NewColor(200, 200, 200, 255) // soft white
	ColJoint   = rl.NewColor(235, 235, 235, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255) // bright white
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColText    = rl.NewColor(140, 140, 140, 255) // neutral gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255) // barely visible grid
)

const (
	viewSpan        = 24.0 // world size the largest capture extent is mapped to
	jointRadius     = 0.35
	trailSpan       = 150
	telemetryWindow = 200
)

// App is the interactive viewer state: the recording being played, the
// playback cursor and a free camera with inertia.
type App struct {
	Series *mocap.TimeSeries
	Graph  *mocap.JointGraph
	Title  string

	Frame   int
	Playing bool
	Speed   float64
	Rate    float64 // capture frames per second
	Accum   float64 // wall-clock seconds not yet consumed by playback
	Quit    bool

	Camera       rl.Camera3D
	CamPosTarget rl.Vector3
	CamTgtTarget rl.Vector3

	ShowBox    bool
	ShowNames  bool
	TrailJoint int // -1 when off

	Motion []float64 // per-frame mean displacement for the activity strip
	Font   rl.Font

	// Capture-to-world mapping, fixed at load
	Center mocap.Vec3
	Scale  float64
	FloorY float32
}

// initWindow initializes the Raylib window with size 1280x720 and title
// "motionrender", sets the target FPS to 60, and disables the default exit
// key so Escape does not close the window.
func initWindow() {
	rl.InitWindow(1280, 720, "motionrender")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path and enables
// bilinear texture filtering. Raylib falls back to its built-in font when
// the file is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds a viewer for the capture: the recording is recentered on
// its midpoint and scaled into a fixed view volume, and the camera starts
// on the same orbit the offline renderer uses so the window opens on the
// view a rendered frame would show. Playback starts running, clocked at
// the configured frame rate.
func NewApp(c *mocap.Capture, cfg *config.Config, title string) *App {
	lo, hi := c.Series.Bounds()
	center := lo.Add(hi).Scale(0.5)
	extent := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
	scale := 1.0
	if extent > 0 {
		scale = viewSpan / extent
	}

	rate := float64(cfg.Render.FPS)
	if rate < 1 {
		rate = 1
	}

	app := &App{
		Series:     c.Series,
		Graph:      c.Graph,
		Title:      title,
		Playing:    true,
		Speed:      1,
		Rate:       rate,
		ShowBox:    cfg.Render.ShowBox,
		ShowNames:  cfg.Render.LabelJoints,
		TrailJoint: -1,
		Motion:     stats.MotionTrace(c.Series),
		Font:       loadFont(),
		Center:     center,
		Scale:      scale,
		FloorY:     float32((lo.Z - center.Z) * scale),
	}

	app.Camera = rl.NewCamera3D(
		startPosition(cfg),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
	app.CamPosTarget = app.Camera.Position
	app.CamTgtTarget = app.Camera.Target

	return app
}

func startPosition(cfg *config.Config) rl.Vector3 {
	el := cfg.View.Elevation * math.Pi / 180
	az := cfg.View.Azimuth * math.Pi / 180
	dist := viewSpan * 1.7
	if cfg.View.Zoom > 0 {
		dist /= cfg.View.Zoom
	}
	return rl.NewVector3(
		float32(dist*math.Cos(el)*math.Sin(az)),
		float32(dist*math.Sin(el)),
		float32(dist*math.Cos(el)*math.Cos(az)),
	)
}

// Run opens the viewer window for the capture and blocks until it is
// closed. Raylib owns the main thread for the duration.
func Run(c *mocap.Capture, cfg *config.Config, title string) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(c, cfg, title)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.Quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.Quit = true
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Playing = !a.Playing
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Frame = 0
		a.Accum = 0
		a.Playing = true
	}

	step := 1
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = 10
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		a.Playing = false
		a.Frame -= step
		if a.Frame < 0 {
			a.Frame = 0
		}
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		a.Playing = false
		a.Frame += step
		if a.Frame > a.Series.Len()-1 {
			a.Frame = a.Series.Len() - 1
		}
	}

	if rl.IsKeyPressed(rl.KeyComma) && a.Speed > 0.25 {
		a.Speed /= 2
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && a.Speed < 4 {
		a.Speed *= 2
	}

	if rl.IsKeyPressed(rl.KeyB) {
		a.ShowBox = !a.ShowBox
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.ShowNames = !a.ShowNames
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.TrailJoint++
		if a.TrailJoint >= a.Series.JointCount() {
			a.TrailJoint = -1
		}
	}

	if a.Playing && a.Series.Len() > 1 {
		a.Accum += float64(rl.GetFrameTime()) * a.Speed
		interval := 1.0 / a.Rate
		for a.Accum >= interval {
			a.Accum -= interval
			a.Frame = (a.Frame + 1) % a.Series.Len()
		}
	}

	// Input modifies the target, not the camera directly
	if rl.IsKeyDown(rl.KeyW) {
		a.CamPosTarget.Y += 0.3
	}
	if rl.IsKeyDown(rl.KeyS) {
		a.CamPosTarget.Y -= 0.3
	}
	if rl.IsKeyDown(rl.KeyA) {
		a.CamPosTarget.X -= 0.3
	}
	if rl.IsKeyDown(rl.KeyD) {
		a.CamPosTarget.X += 0.3
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.CamPosTarget.X -= delta.X * 0.1
		a.CamPosTarget.Y += delta.Y * 0.1
	}

	// Zoom
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		zoom := float32(wheel) * 2.0
		diff := rl.Vector3Subtract(a.CamTgtTarget, a.CamPosTarget)
		dist := rl.Vector3Length(diff)
		if dist > 5.0 || zoom < 0 {
			dir := rl.Vector3Normalize(diff)
			a.CamPosTarget = rl.Vector3Add(a.CamPosTarget, rl.Vector3Scale(dir, zoom))
		}
	}

	// Apply inertia (lerp)
	lerp := 5.0 * rl.GetFrameTime()
	if lerp > 1.0 {
		lerp = 1.0
	}
	a.Camera.Position = rl.Vector3Lerp(a.Camera.Position, a.CamPosTarget, lerp)
	a.Camera.Target = rl.Vector3Lerp(a.Camera.Target, a.CamTgtTarget, lerp)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawScene()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) drawScene() {
	rl.BeginMode3D(a.Camera)

	a.drawGrid(12, 4.0)
	if a.ShowBox {
		a.RenderBox()
	}
	if a.TrailJoint >= 0 {
		a.RenderTrail()
	}
	a.RenderSkeleton()

	rl.EndMode3D()

	if a.ShowNames {
		a.drawLabels()
	}
}

func (a *App) DrawHUD() {
	a.drawText("motionrender", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Title), 220, 34, 16, ColText)

	t := a.Series.Times[a.Frame]
	a.drawText(fmt.Sprintf("frame %d / %d   t %.2f   %gx", a.Frame+1, a.Series.Len(), t, a.Speed),
		30, 64, 14, ColText)
	if a.TrailJoint >= 0 {
		a.drawText(fmt.Sprintf("trail: %s", a.Series.Joints[a.TrailJoint]), 1020, 64, 14, ColAccent)
	}

	a.DrawTelemetry()

	status := "PLAYING"
	col := ColSelect
	if !a.Playing {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	a.drawText("[SPACE] PAUSE  [R] RESTART  [ARROWS] STEP  [B] BOX  [T] TRAIL  [Q] QUIT", 660, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
}

// DrawTelemetry plots the motion trace of the frames leading up to the
// cursor, normalized over the visible window.
func (a *App) DrawTelemetry() {
	if len(a.Motion) < 2 {
		return
	}
	lo := a.Frame - telemetryWindow
	if lo < 0 {
		lo = 0
	}
	window := a.Motion[lo : a.Frame+1]
	if len(window) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := window[0], window[0]
	for _, v := range window {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(window))
	for i, val := range window {
		px := float32(rectX) + (float32(i)/float32(len(window)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("v %.3f", window[len(window)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
