package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"radarhud/pkg/model"
)

func samplePicture() (model.Ownship, []model.Target) {
	own := model.Ownship{AltFt: 4500, HeadingDeg: 270, GroundKt: 110}
	targets := []model.Target{
		{
			ID: "N123AB", Kind: model.KindTraffic,
			DistanceNM: 2.1, BearingDeg: 45, RelAltFt: -300,
			Threat: model.ThreatResolutionAdvisory, Priority: 130,
			HasHeading: true, HeadingDeg: 90,
		},
		{
			ID: "D-EZFX", Kind: model.KindTraffic,
			DistanceNM: 8.5, BearingDeg: 180, RelAltFt: 900,
			Threat: model.ThreatProximate, Priority: 110,
			VerticalFpm: -500,
		},
		{
			ID: "wx-1", Kind: model.KindWeather,
			DistanceNM: 12, BearingDeg: 300, ReflectivityDBZ: 52,
			Severity: model.SeverityExtreme, Priority: 80,
		},
	}
	return own, targets
}

func TestBuildPictureOrdersByUrgency(t *testing.T) {
	own, targets := samplePicture()
	// Shuffle: least urgent first.
	got := BuildPicture(own, []model.Target{targets[2], targets[1], targets[0]})

	ra := strings.Index(got, "N123AB")
	prox := strings.Index(got, "D-EZFX")
	wx := strings.Index(got, "Weather cell")
	if ra < 0 || prox < 0 || wx < 0 {
		t.Fatalf("missing entries in picture:\n%s", got)
	}
	if !(ra < prox && prox < wx) {
		t.Errorf("order wrong (RA=%d, prox=%d, wx=%d):\n%s", ra, prox, wx, got)
	}
}

func TestBuildPictureContent(t *testing.T) {
	own, targets := samplePicture()
	got := BuildPicture(own, targets)

	for _, want := range []string{
		"alt 4500 ft",
		"Traffic N123AB: RA, bearing 45, 2.1 NM, -300 ft, heading 90",
		"-500 fpm",
		"extreme (52 dBZ)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("picture missing %q:\n%s", want, got)
		}
	}
}

func TestBuildPictureEmpty(t *testing.T) {
	got := BuildPicture(model.Ownship{}, nil)
	if !strings.Contains(got, "No targets in range.") {
		t.Errorf("empty picture should say so:\n%s", got)
	}
}

func TestAdvisorDescribe(t *testing.T) {
	mock := NewMockProvider("  Traffic two o'clock, two miles, slightly low.  ")
	adv := NewAdvisor(mock)

	own, targets := samplePicture()
	got, err := adv.Describe(context.Background(), own, targets)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if got != "Traffic two o'clock, two miles, slightly low." {
		t.Errorf("got %q, want trimmed mock response", got)
	}
	if len(mock.Prompts) != 1 || !strings.Contains(mock.Prompts[0], "N123AB") {
		t.Error("provider should have received the rendered picture")
	}
}

func TestAdvisorDisabled(t *testing.T) {
	adv := NewAdvisor(nil)
	if adv.Enabled() {
		t.Error("nil provider must report disabled")
	}
	if _, err := adv.Describe(context.Background(), model.Ownship{}, nil); err == nil {
		t.Error("disabled advisor must error")
	}
}

func TestAdvisorProviderError(t *testing.T) {
	mock := NewMockProvider("")
	mock.Err = errors.New("quota exceeded")
	adv := NewAdvisor(mock)

	if _, err := adv.Describe(context.Background(), model.Ownship{}, nil); err == nil {
		t.Error("provider error must propagate")
	}
}
