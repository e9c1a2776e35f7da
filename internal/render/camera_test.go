package render

import (
	"math"
	"testing"

	"github.com/san-kum/motionrender/internal/mocap"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProjectFrontView(t *testing.T) {
	c := NewCamera()

	x, y, depth, ok := c.Project(mocap.Vec3{})
	if !ok || !near(x, 0) || !near(y, 0) || !near(depth, 0) {
		t.Fatalf("expected origin at view center, got (%f, %f, %f, %v)", x, y, depth, ok)
	}

	// from the horizon, world x runs across and world z runs up
	x, y, _, ok = c.Project(mocap.Vec3{X: 1})
	if !ok || !near(x, 1) || !near(y, 0) {
		t.Errorf("expected +x at (1, 0), got (%f, %f)", x, y)
	}
	x, y, _, ok = c.Project(mocap.Vec3{Z: 1})
	if !ok || !near(x, 0) || !near(y, 1) {
		t.Errorf("expected +z at (0, 1), got (%f, %f)", x, y)
	}

	// world y runs away from the eye, so nearer points are scaled up
	_, _, depth, ok = c.Project(mocap.Vec3{Y: 1})
	if !ok || !near(depth, -1) {
		t.Errorf("expected +y a unit behind the subject, got depth %f", depth)
	}
	x, _, depth, ok = c.Project(mocap.Vec3{X: 1, Y: -1})
	if !ok || !near(depth, 1) {
		t.Errorf("expected -y a unit toward the eye, got depth %f", depth)
	}
	if want := 10.0 / 9.0; !near(x, want) {
		t.Errorf("expected perspective scale %f for a near point, got %f", want, x)
	}
}

func TestProjectAzimuthOrbit(t *testing.T) {
	c := NewCamera()
	c.Azimuth = 90

	// a quarter orbit swings +x onto the depth axis
	x, y, depth, ok := c.Project(mocap.Vec3{X: 1})
	if !ok || !near(x, 0) || !near(y, 0) || !near(depth, 1) {
		t.Errorf("expected +x toward the eye after 90 degree orbit, got (%f, %f, %f)", x, y, depth)
	}
}

func TestProjectTopDown(t *testing.T) {
	c := NewCamera()
	c.Elevation = 90

	x, y, _, ok := c.Project(mocap.Vec3{Y: 1})
	if !ok || !near(x, 0) || !near(y, 1) {
		t.Errorf("expected +y up the screen from above, got (%f, %f)", x, y)
	}
	_, _, depth, ok := c.Project(mocap.Vec3{Z: 1})
	if !ok || !near(depth, 1) {
		t.Errorf("expected +z toward the eye from above, got depth %f", depth)
	}
}

func TestProjectBehindEye(t *testing.T) {
	c := NewCamera()

	// a point at the eye plane cannot be projected
	if _, _, _, ok := c.Project(mocap.Vec3{Y: -9.6}); ok {
		t.Error("expected a point at the eye to be rejected")
	}
	if _, _, _, ok := c.Project(mocap.Vec3{Y: -9.4}); !ok {
		t.Error("expected a point just inside the clip plane to project")
	}
}

func TestProjectYUp(t *testing.T) {
	zup := NewCamera()
	yup := NewCamera()
	yup.YUp = true

	// the vertical axis of a y-up recording lands where z-up verticals do
	wx, wy, wd, _ := zup.Project(mocap.Vec3{Z: 1})
	gx, gy, gd, ok := yup.Project(mocap.Vec3{Y: 1})
	if !ok || !near(gx, wx) || !near(gy, wy) || !near(gd, wd) {
		t.Errorf("expected y-up vertical at (%f, %f, %f), got (%f, %f, %f)", wx, wy, wd, gx, gy, gd)
	}
}

func TestOrbitClamp(t *testing.T) {
	c := NewCamera()
	c.Orbit(370, 200)
	if !near(c.Azimuth, 10) {
		t.Errorf("expected azimuth to wrap to 10, got %f", c.Azimuth)
	}
	if c.Elevation != 90 {
		t.Errorf("expected elevation clamped to 90, got %f", c.Elevation)
	}
	c.Orbit(-20, -300)
	if !near(c.Azimuth, -10) {
		t.Errorf("expected azimuth -10, got %f", c.Azimuth)
	}
	if c.Elevation != -90 {
		t.Errorf("expected elevation clamped to -90, got %f", c.Elevation)
	}
}

func TestZoomBounds(t *testing.T) {
	c := NewCamera()
	for i := 0; i < 30; i++ {
		c.ZoomIn()
	}
	if c.Zoom != 10 {
		t.Errorf("expected zoom capped at 10, got %f", c.Zoom)
	}
	for i := 0; i < 60; i++ {
		c.ZoomOut()
	}
	if c.Zoom != 0.1 {
		t.Errorf("expected zoom floored at 0.1, got %f", c.Zoom)
	}
}
