package camera

import (
	"math"
	"testing"

	"radarhud/pkg/geo"
)

func TestCenterProjection(t *testing.T) {
	cam := New(1000, 1000, 60)

	// Looking north, a point straight ahead lands at viewport center.
	v := cam.WorldToViewport(geo.Vec3{X: 0, Y: 0, Z: 1000})
	if math.Abs(v.X-0.5) > 1e-9 || math.Abs(v.Y-0.5) > 1e-9 {
		t.Errorf("straight ahead = (%f, %f), want (0.5, 0.5)", v.X, v.Y)
	}
	if v.Depth <= 0 {
		t.Errorf("depth = %f, want positive", v.Depth)
	}
}

func TestBehindCameraDepth(t *testing.T) {
	cam := New(1000, 1000, 60)

	v := cam.WorldToViewport(geo.Vec3{X: 0, Y: 0, Z: -500})
	if v.Depth >= 0 {
		t.Errorf("depth = %f, want negative for a point behind", v.Depth)
	}
}

func TestRightOfCenter(t *testing.T) {
	cam := New(1000, 1000, 60)

	// Looking north, east is to the right: X > 0.5, Y unchanged.
	v := cam.WorldToViewport(geo.Vec3{X: 200, Y: 0, Z: 1000})
	if v.X <= 0.5 {
		t.Errorf("east point X = %f, want > 0.5", v.X)
	}
	if math.Abs(v.Y-0.5) > 1e-9 {
		t.Errorf("east point Y = %f, want 0.5", v.Y)
	}
}

func TestAboveCenter(t *testing.T) {
	cam := New(1000, 1000, 60)

	v := cam.WorldToViewport(geo.Vec3{X: 0, Y: 200, Z: 1000})
	if v.Y <= 0.5 {
		t.Errorf("high point Y = %f, want > 0.5", v.Y)
	}
}

func TestFollowOwnshipHeading(t *testing.T) {
	cam := New(1000, 1000, 60)
	cam.FollowOwnship(90, 0) // facing east

	// Now an eastern point is straight ahead.
	v := cam.WorldToViewport(geo.Vec3{X: 1000, Y: 0, Z: 0})
	if math.Abs(v.X-0.5) > 1e-6 || v.Depth <= 0 {
		t.Errorf("east point after 90 heading = (%f, depth %f), want centered in front", v.X, v.Depth)
	}

	// And a northern point is off to the left.
	v = cam.WorldToViewport(geo.Vec3{X: 0, Y: 0, Z: 1000})
	if v.X >= 0.5 {
		t.Errorf("north point X = %f, want < 0.5 when facing east", v.X)
	}
}

func TestViewportToPixels(t *testing.T) {
	cam := New(1920, 1080, 60)

	x, y := cam.ViewportToPixels(Viewport{X: 0.5, Y: 0.5})
	if x != 960 || y != 540 {
		t.Errorf("center pixel = (%f, %f), want (960, 540)", x, y)
	}
}

func TestFovWidensProjection(t *testing.T) {
	narrow := New(1000, 1000, 40)
	wide := New(1000, 1000, 90)

	p := geo.Vec3{X: 300, Y: 0, Z: 1000}
	vn := narrow.WorldToViewport(p)
	vw := wide.WorldToViewport(p)

	// Same world offset lands closer to the center under a wider FOV.
	if math.Abs(vw.X-0.5) >= math.Abs(vn.X-0.5) {
		t.Errorf("wide FOV offset %f should be smaller than narrow %f", vw.X-0.5, vn.X-0.5)
	}
}
