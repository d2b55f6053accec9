// Package model holds the shared radar data types. It has no dependencies on
// other application packages so every layer can import it.
package model

import "time"

// TargetKind discriminates what a target represents.
type TargetKind string

const (
	KindTraffic  TargetKind = "traffic"
	KindWeather  TargetKind = "weather"
	KindWaypoint TargetKind = "waypoint"
)

// ThreatLevel is the TCAS-style traffic classification. The values are
// ordered: a higher level is always more urgent.
type ThreatLevel int

const (
	ThreatNone ThreatLevel = iota
	ThreatProximate
	ThreatTrafficAdvisory
	ThreatResolutionAdvisory
)

func (l ThreatLevel) String() string {
	switch l {
	case ThreatResolutionAdvisory:
		return "RA"
	case ThreatTrafficAdvisory:
		return "TA"
	case ThreatProximate:
		return "proximate"
	default:
		return "none"
	}
}

// Severity is the weather reflectivity band, ordered light to extreme.
type Severity int

const (
	SeverityLight Severity = iota
	SeverityModerate
	SeverityHeavy
	SeverityExtreme
)

func (s Severity) String() string {
	switch s {
	case SeverityExtreme:
		return "extreme"
	case SeverityHeavy:
		return "heavy"
	case SeverityModerate:
		return "moderate"
	default:
		return "light"
	}
}

// Color is an RGBA display color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Target is one tracked object: traffic, a weather cell, or a waypoint.
// The feed fills the raw fields; the engine computes the derived ones each
// frame relative to the current ownship position.
type Target struct {
	ID    string     `json:"id"`
	Kind  TargetKind `json:"kind"`
	Label string     `json:"label,omitempty"`

	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	AltFt float64 `json:"alt_ft"`

	HeadingDeg float64 `json:"heading_deg,omitempty"`
	HasHeading bool    `json:"has_heading,omitempty"`

	GroundKt    float64 `json:"ground_kt,omitempty"`
	VerticalFpm float64 `json:"vertical_fpm,omitempty"`

	// ReflectivityDBZ is only meaningful for weather targets.
	ReflectivityDBZ float64 `json:"reflectivity_dbz,omitempty"`

	// Derived per frame, relative to ownship.
	DistanceNM float64 `json:"distance_nm"`
	BearingDeg float64 `json:"bearing_deg"`
	RelAltFt   float64 `json:"rel_alt_ft"`

	Threat   ThreatLevel `json:"threat"`
	Severity Severity    `json:"severity"`
	Color    Color       `json:"color"`
	Priority int         `json:"priority"`

	LastSeen time.Time `json:"last_seen"`
}

// DisplayName returns the label, falling back to the ID.
func (t *Target) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return t.ID
}

// Ownship is the observer pose all derived target fields are relative to.
type Ownship struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	AltFt      float64 `json:"alt_ft"`
	HeadingDeg float64 `json:"heading_deg"`
	PitchDeg   float64 `json:"pitch_deg,omitempty"`
	GroundKt   float64 `json:"ground_kt,omitempty"`
}
