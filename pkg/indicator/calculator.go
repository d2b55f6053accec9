// Package indicator converts projected target positions into screen-space
// indicator placements: on-screen markers at the projected point, off-screen
// markers clamped to the padded viewport edge with an arrow pointing at the
// target.
package indicator

import (
	"fmt"
	"math"

	"radarhud/pkg/camera"
	"radarhud/pkg/geo"
	"radarhud/pkg/model"
)

// EdgeConfig is the immutable placement configuration.
type EdgeConfig struct {
	// PaddingPx insets the clamping rectangle from the screen border.
	PaddingPx float64
	// IndicatorSizePx is the marker size, forwarded to the UI layer.
	IndicatorSizePx float64
	// MaxDisplayDistanceNM: targets farther than this are OutOfRange and
	// never projected.
	MaxDisplayDistanceNM float64
	// ShowDistanceLabel and ShowAltitude are display hints for the caller.
	ShowDistanceLabel bool
	ShowAltitude      bool
}

// Calculator computes indicator placements. It is stateless: every result is
// a pure function of (target, camera, config).
type Calculator struct {
	cfg EdgeConfig
}

// NewCalculator validates the configuration once so Calculate can stay total.
func NewCalculator(cfg EdgeConfig) (*Calculator, error) {
	if cfg.PaddingPx < 0 {
		return nil, fmt.Errorf("edge padding must be >= 0, got %f", cfg.PaddingPx)
	}
	if cfg.MaxDisplayDistanceNM <= 0 {
		return nil, fmt.Errorf("max display distance must be > 0, got %f", cfg.MaxDisplayDistanceNM)
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the active edge configuration.
func (c *Calculator) Config() EdgeConfig { return c.cfg }

// Calculate projects one target and classifies its visibility. Every input
// maps to exactly one result; out-of-range and behind-camera are ordinary
// outcomes, not errors.
func (c *Calculator) Calculate(t *model.Target, cam *camera.Camera, world geo.Vec3) model.IndicatorData {
	ind := model.IndicatorData{
		TargetID:   t.ID,
		Kind:       t.Kind,
		DistanceNM: t.DistanceNM,
		RelAltFt:   t.RelAltFt,
		Label:      t.DisplayName(),
		Color:      t.Color,
		Priority:   t.Priority,
	}

	// 1. Range gate. No projection is performed for out-of-range targets.
	if t.DistanceNM > c.cfg.MaxDisplayDistanceNM {
		ind.Visibility = model.OutOfRange
		ind.Active = false
		return ind
	}

	vp := cam.WorldToViewport(world)
	behind := vp.Depth < 0
	if behind {
		// Mirror so the indicator lands on the opposite edge. Crude but it
		// is the established behavior; kept for compatibility.
		vp.X = 1 - vp.X
		vp.Y = 1 - vp.Y
	}

	px, py := cam.ViewportToPixels(vp)
	w := float64(cam.Width())
	h := float64(cam.Height())
	pad := c.cfg.PaddingPx

	inside := px >= pad && px <= w-pad && py >= pad && py <= h-pad
	if inside && !behind {
		ind.Visibility = model.OnScreen
		ind.Active = true
		ind.ScreenX = px
		ind.ScreenY = py
		ind.ArrowRotationDeg = 0
		return ind
	}

	if behind {
		ind.Visibility = model.Behind
	} else {
		ind.Visibility = model.OffScreen
	}
	ind.Active = true

	cx, cy := w/2, h/2
	dx := px - cx
	dy := py - cy

	// Target effectively at screen center: nothing to clamp against.
	if math.Abs(dx) < 1e-9 && math.Abs(dy) < 1e-9 {
		ind.ScreenX = cx
		ind.ScreenY = cy
		ind.ArrowRotationDeg = 0
		return ind
	}

	ind.ScreenX, ind.ScreenY = clampToEdge(cx, cy, dx, dy, pad, w, h)
	ind.ArrowRotationDeg = arrowRotation(dx, dy)
	return ind
}

// clampToEdge walks the ray from screen center along (dx, dy) and stops at
// the first padded edge, whichever axis is reached first.
func clampToEdge(cx, cy, dx, dy, pad, w, h float64) (x, y float64) {
	tx := math.Inf(1)
	ty := math.Inf(1)

	if dx > 0 {
		tx = (w - pad - cx) / dx
	} else if dx < 0 {
		tx = (pad - cx) / dx
	}
	if dy > 0 {
		ty = (h - pad - cy) / dy
	} else if dy < 0 {
		ty = (pad - cy) / dy
	}

	t := math.Min(math.Abs(tx), math.Abs(ty))
	return cx + dx*t, cy + dy*t
}

// arrowRotation returns the indicator arrow angle in degrees: 0 points up
// (screen +Y), 90 points right, matching atan2(dx, dy).
func arrowRotation(dx, dy float64) float64 {
	return math.Atan2(dx, dy) * 180.0 / math.Pi
}
