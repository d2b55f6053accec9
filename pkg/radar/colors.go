package radar

import "radarhud/pkg/model"

// Display palette. Traffic colors follow the TCAS convention (red RA, amber
// TA, cyan otherwise); weather colors follow the usual NEXRAD-style ramp.
var (
	colorRA        = model.Color{R: 0xE5, G: 0x1C, B: 0x23, A: 0xFF}
	colorTA        = model.Color{R: 0xFF, G: 0xB3, B: 0x00, A: 0xFF}
	colorProximate = model.Color{R: 0x00, G: 0xBC, B: 0xD4, A: 0xFF}
	colorOther     = model.Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xCC}

	colorWxLight    = model.Color{R: 0x4C, G: 0xAF, B: 0x50, A: 0xB3}
	colorWxModerate = model.Color{R: 0xFF, G: 0xEB, B: 0x3B, A: 0xCC}
	colorWxHeavy    = model.Color{R: 0xFF, G: 0x98, B: 0x00, A: 0xE6}
	colorWxExtreme  = model.Color{R: 0xD5, G: 0x00, B: 0x00, A: 0xFF}

	colorWaypoint = model.Color{R: 0xC0, G: 0x4C, B: 0xE8, A: 0xFF}
)

// ThreatColor returns the display color for a traffic threat level.
func ThreatColor(t model.ThreatLevel) model.Color {
	switch t {
	case model.ThreatResolutionAdvisory:
		return colorRA
	case model.ThreatTrafficAdvisory:
		return colorTA
	case model.ThreatProximate:
		return colorProximate
	default:
		return colorOther
	}
}

// SeverityColor returns the display color for a weather severity.
func SeverityColor(s model.Severity) model.Color {
	switch s {
	case model.SeverityExtreme:
		return colorWxExtreme
	case model.SeverityHeavy:
		return colorWxHeavy
	case model.SeverityModerate:
		return colorWxModerate
	default:
		return colorWxLight
	}
}

// WaypointColor returns the display color for waypoint targets.
func WaypointColor() model.Color { return colorWaypoint }

// Priority returns the frame sort priority for a target: higher values draw
// on top. Traffic outranks weather, weather outranks waypoints, and within
// each kind the ordinal classification decides.
func Priority(t *model.Target) int {
	switch t.Kind {
	case model.KindTraffic:
		return 100 + int(t.Threat)*10
	case model.KindWeather:
		return 50 + int(t.Severity)*10
	case model.KindWaypoint:
		return 10
	default:
		return 0
	}
}

// Decorate fills in a target's derived display fields (threat or severity,
// color, priority) from its metrics. Pure and total.
func Decorate(t *model.Target, th ThreatThresholds) {
	switch t.Kind {
	case model.KindTraffic:
		t.Threat = ClassifyTraffic(t.DistanceNM, t.RelAltFt, th)
		t.Color = ThreatColor(t.Threat)
	case model.KindWeather:
		t.Severity = ClassifyWeather(t.ReflectivityDBZ)
		t.Color = SeverityColor(t.Severity)
	case model.KindWaypoint:
		t.Color = WaypointColor()
	}
	t.Priority = Priority(t)
}
