package model

import "time"

// Visibility classifies where an indicator ended up.
type Visibility string

const (
	// OnScreen: the projected point lies inside the padded viewport.
	OnScreen Visibility = "on_screen"
	// OffScreen: in front of the camera but outside the viewport; the
	// indicator is clamped to the padded edge.
	OffScreen Visibility = "off_screen"
	// Behind: behind the camera; clamped to the edge via the mirror rule.
	Behind Visibility = "behind"
	// OutOfRange: beyond the display range, no indicator is shown.
	OutOfRange Visibility = "out_of_range"
)

// IndicatorData is one target's placement on screen for one frame.
type IndicatorData struct {
	TargetID   string     `json:"target_id"`
	Kind       TargetKind `json:"kind"`
	Visibility Visibility `json:"visibility"`
	// Active is false only for out-of-range targets.
	Active bool `json:"active"`

	// ScreenX/Y are pixel coordinates, origin bottom-left with Y up.
	// Consumers rendering in a top-left coordinate system must flip Y.
	ScreenX float64 `json:"screen_x"`
	ScreenY float64 `json:"screen_y"`
	// ArrowRotationDeg: 0 points up, 90 right. Only meaningful when the
	// indicator is clamped to an edge.
	ArrowRotationDeg float64 `json:"arrow_rotation_deg"`

	DistanceNM float64 `json:"distance_nm"`
	RelAltFt   float64 `json:"rel_alt_ft"`
	Label      string  `json:"label,omitempty"`
	Color      Color   `json:"color"`
	Priority   int     `json:"priority"`
}

// Frame is one complete render snapshot: the ownship pose plus every
// indicator, sorted by descending priority.
type Frame struct {
	ID         string          `json:"id"`
	Time       time.Time       `json:"time"`
	Ownship    Ownship         `json:"ownship"`
	Indicators []IndicatorData `json:"indicators"`
}
