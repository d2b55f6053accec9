// Package radar maps continuous target metrics onto the small ordinal
// classifications the display uses: traffic threat levels and weather
// severities, each with a display color and sort priority.
package radar

import (
	"math"

	"radarhud/pkg/model"
)

// ThreatThresholds are the distance/altitude separation gates for each
// traffic threat band. A band matches when the target is within BOTH its
// distance and altitude limits.
type ThreatThresholds struct {
	RADistNM   float64 `yaml:"ra_dist_nm"`
	RAAltFt    float64 `yaml:"ra_alt_ft"`
	TADistNM   float64 `yaml:"ta_dist_nm"`
	TAAltFt    float64 `yaml:"ta_alt_ft"`
	ProxDistNM float64 `yaml:"prox_dist_nm"`
	ProxAltFt  float64 `yaml:"prox_alt_ft"`
}

// DefaultThreatThresholds mirror TCAS II sensitivity-level descriptions.
func DefaultThreatThresholds() ThreatThresholds {
	return ThreatThresholds{
		RADistNM:   3.0,
		RAAltFt:    600,
		TADistNM:   6.0,
		TAAltFt:    850,
		ProxDistNM: 10.0,
		ProxAltFt:  1200,
	}
}

// ClassifyTraffic maps (distance, relative altitude) to a threat level.
// Total: anything outside the proximate band is ThreatNone.
func ClassifyTraffic(distNM, relAltFt float64, th ThreatThresholds) model.ThreatLevel {
	sep := math.Abs(relAltFt)
	switch {
	case distNM <= th.RADistNM && sep <= th.RAAltFt:
		return model.ThreatResolutionAdvisory
	case distNM <= th.TADistNM && sep <= th.TAAltFt:
		return model.ThreatTrafficAdvisory
	case distNM <= th.ProxDistNM && sep <= th.ProxAltFt:
		return model.ThreatProximate
	default:
		return model.ThreatNone
	}
}

// ClassifyWeather maps radar reflectivity to a severity band.
// Total: anything below moderate is light.
func ClassifyWeather(dbz float64) model.Severity {
	switch {
	case dbz >= 50:
		return model.SeverityExtreme
	case dbz >= 40:
		return model.SeverityHeavy
	case dbz >= 30:
		return model.SeverityModerate
	default:
		return model.SeverityLight
	}
}
