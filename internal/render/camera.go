package render

import (
	"math"

	"github.com/san-kum/motionrender/internal/mocap"
)

// Camera projects normalized world points onto the image plane. The
// subject sits in a unit box around the origin; Elevation lifts the eye
// above the horizontal plane and Azimuth orbits it about the vertical
// axis, both in degrees. Distance is the eye distance in box units and
// sets how strong the perspective is.
type Camera struct {
	Elevation float64
	Azimuth   float64
	Distance  float64
	Zoom      float64
	YUp       bool
}

func NewCamera() *Camera {
	return &Camera{Distance: 10, Zoom: 1}
}

func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.Azimuth = math.Mod(c.Azimuth+dAzimuth, 360)
	c.Elevation = math.Max(-90, math.Min(90, c.Elevation+dElevation))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Project maps a normalized point to view coordinates. It returns the
// horizontal and vertical position in box units (the caller scales to
// pixels), the depth toward the viewer, and whether the point sits in
// front of the eye.
func (c *Camera) Project(p mocap.Vec3) (x, y, depth float64, ok bool) {
	// recordings with y as the vertical axis rotate into the z-up frame
	if c.YUp {
		p = mocap.Vec3{X: p.X, Y: -p.Z, Z: p.Y}
	}

	az := c.Azimuth * math.Pi / 180
	ca, sa := math.Cos(az), math.Sin(az)
	p.X, p.Y = p.X*ca+p.Y*sa, -p.X*sa+p.Y*ca

	// elevation 90 looks straight down, 0 from the horizon
	el := (c.Elevation - 90) * math.Pi / 180
	ce, se := math.Cos(el), math.Sin(el)
	p.Y, p.Z = p.Y*ce-p.Z*se, p.Y*se+p.Z*ce

	if p.Z >= c.Distance-0.5 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - p.Z) * c.Zoom
	return p.X * scale, p.Y * scale, p.Z, true
}
