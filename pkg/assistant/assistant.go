// Package assistant turns the current traffic picture into a short spoken
// advisory via an LLM. The provider degrades gracefully: an unconfigured
// assistant answers every request with an error, never panics, and the rest
// of the system keeps running without it.
package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"radarhud/pkg/model"
)

// Provider defines the interface for the LLM backend.
type Provider interface {
	// GenerateText sends a prompt and returns the text response. The name
	// identifies the intent for logging.
	GenerateText(ctx context.Context, name, prompt string) (string, error)

	// Configured reports whether the provider can serve requests.
	Configured() bool

	// Close releases resources.
	Close()
}

// BuildPicture renders the traffic picture as a compact prompt. Targets are
// listed most urgent first; weather cells follow traffic. The output is
// deterministic for a given input so it can be tested and diffed.
func BuildPicture(own model.Ownship, targets []model.Target) string {
	sorted := make([]model.Target, len(targets))
	copy(sorted, targets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].DistanceNM < sorted[j].DistanceNM
	})

	var sb strings.Builder
	sb.WriteString("You are a concise traffic advisory assistant for a pilot. ")
	sb.WriteString("Summarize the radar picture below in at most three short sentences. ")
	sb.WriteString("Mention the most urgent traffic first, with clock position or bearing, ")
	sb.WriteString("distance and relative altitude. Do not use markdown.\n\n")

	fmt.Fprintf(&sb, "Ownship: alt %.0f ft, heading %.0f, ground speed %.0f kt\n\n",
		own.AltFt, own.HeadingDeg, own.GroundKt)

	var traffic, weather int
	for _, t := range sorted {
		switch t.Kind {
		case model.KindTraffic:
			traffic++
			fmt.Fprintf(&sb, "Traffic %s: %s, bearing %.0f, %.1f NM, %+.0f ft",
				t.DisplayName(), t.Threat, t.BearingDeg, t.DistanceNM, t.RelAltFt)
			if t.HasHeading {
				fmt.Fprintf(&sb, ", heading %.0f", t.HeadingDeg)
			}
			if t.VerticalFpm != 0 {
				fmt.Fprintf(&sb, ", %+.0f fpm", t.VerticalFpm)
			}
			sb.WriteString("\n")
		case model.KindWeather:
			weather++
			fmt.Fprintf(&sb, "Weather cell: %s (%.0f dBZ), bearing %.0f, %.1f NM\n",
				t.Severity, t.ReflectivityDBZ, t.BearingDeg, t.DistanceNM)
		}
	}

	if traffic == 0 && weather == 0 {
		sb.WriteString("No targets in range.\n")
	}
	return sb.String()
}

// Advisor couples a provider with the picture builder.
type Advisor struct {
	provider Provider
}

// NewAdvisor wraps a provider. A nil provider yields a disabled advisor.
func NewAdvisor(p Provider) *Advisor {
	return &Advisor{provider: p}
}

// Enabled reports whether advisories can be generated.
func (a *Advisor) Enabled() bool {
	return a.provider != nil && a.provider.Configured()
}

// Describe generates a spoken-style advisory for the given picture.
func (a *Advisor) Describe(ctx context.Context, own model.Ownship, targets []model.Target) (string, error) {
	if !a.Enabled() {
		return "", fmt.Errorf("assistant not configured")
	}
	prompt := BuildPicture(own, targets)
	text, err := a.provider.GenerateText(ctx, "advisory", prompt)
	if err != nil {
		return "", fmt.Errorf("advisory generation failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Close shuts down the underlying provider.
func (a *Advisor) Close() {
	if a.provider != nil {
		a.provider.Close()
	}
}
