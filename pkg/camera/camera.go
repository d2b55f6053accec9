// Package camera replaces the engine camera with a plain view/projection
// matrix pair and a screen dimension, exposing the single operation the
// indicator calculator needs: world position to viewport coordinates.
package camera

import (
	"math"

	"radarhud/pkg/geo"
)

// Viewport is a projection result in normalized 0-1 viewport coordinates.
// Depth is the view-space forward distance in meters; negative means the
// point is behind the camera plane.
type Viewport struct {
	X, Y  float64
	Depth float64
}

// Camera holds a perspective projection and a pose-derived view transform.
type Camera struct {
	width  int
	height int

	fovYDeg float64

	// View basis (right, up, forward) and eye position, world space.
	eye     geo.Vec3
	right   geo.Vec3
	up      geo.Vec3
	forward geo.Vec3
}

// New creates a camera with the given screen dimensions and vertical field
// of view in degrees. There is no depth clipping: the indicator range gate
// bounds the far side and behind-camera points are handled by the mirror
// rule, so near/far planes would never reject anything.
func New(width, height int, fovYDeg float64) *Camera {
	c := &Camera{
		width:   width,
		height:  height,
		fovYDeg: fovYDeg,
	}
	// Identity pose: at origin looking north (+Z), Y up.
	c.setBasis(geo.Vec3{}, 0, 0)
	return c
}

// Width returns the render target width in pixels.
func (c *Camera) Width() int { return c.width }

// Height returns the render target height in pixels.
func (c *Camera) Height() int { return c.height }

// SetScreen updates the render target dimensions.
func (c *Camera) SetScreen(width, height int) {
	c.width = width
	c.height = height
}

// FollowOwnship orients the camera like the cockpit view: positioned at the
// ownship (tangent-plane origin), yawed to the heading, pitched by pitchDeg.
func (c *Camera) FollowOwnship(headingDeg, pitchDeg float64) {
	c.setBasis(geo.Vec3{}, headingDeg, pitchDeg)
}

// setBasis derives the view basis from a yaw (compass heading, 0 = north = +Z,
// 90 = east = +X) and a pitch (positive nose-up).
func (c *Camera) setBasis(eye geo.Vec3, headingDeg, pitchDeg float64) {
	yaw := headingDeg * math.Pi / 180.0
	pitch := pitchDeg * math.Pi / 180.0

	fwd := geo.Vec3{
		X: math.Sin(yaw) * math.Cos(pitch),
		Y: math.Sin(pitch),
		Z: math.Cos(yaw) * math.Cos(pitch),
	}
	right := geo.Vec3{X: math.Cos(yaw), Y: 0, Z: -math.Sin(yaw)}
	up := cross(right, fwd)

	c.eye = eye
	c.forward = fwd
	c.right = right
	c.up = up
}

// WorldToViewport projects a tangent-plane world position into normalized
// viewport coordinates with a perspective divide. The result is total: points
// behind the camera return negative depth with the raw (un-mirrored)
// projected coordinates; mirroring is the indicator calculator's business.
func (c *Camera) WorldToViewport(world geo.Vec3) Viewport {
	rel := geo.Vec3{X: world.X - c.eye.X, Y: world.Y - c.eye.Y, Z: world.Z - c.eye.Z}

	// View-space coordinates.
	vx := dot(rel, c.right)
	vy := dot(rel, c.up)
	vz := dot(rel, c.forward)

	aspect := 1.0
	if c.height > 0 {
		aspect = float64(c.width) / float64(c.height)
	}
	f := 1.0 / math.Tan(c.fovYDeg*math.Pi/360.0)

	// Perspective divide. Use |vz| so behind-camera points still land on a
	// finite screen position for the mirror heuristic.
	den := math.Abs(vz)
	if den < 1e-9 {
		den = 1e-9
	}
	ndcX := (vx * f / aspect) / den
	ndcY := (vy * f) / den

	return Viewport{
		X:     ndcX*0.5 + 0.5,
		Y:     ndcY*0.5 + 0.5,
		Depth: vz,
	}
}

// ViewportToPixels converts viewport coordinates to pixel coordinates with
// the origin at the bottom-left.
func (c *Camera) ViewportToPixels(v Viewport) (x, y float64) {
	return v.X * float64(c.width), v.Y * float64(c.height)
}

func dot(a, b geo.Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b geo.Vec3) geo.Vec3 {
	return geo.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
