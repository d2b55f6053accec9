// Package simfeed is a deterministic simulated feed: traffic orbiting the
// ownship, one crossing target, one stationary ground target, staggered
// dropouts to exercise stale-target eviction, and a pair of drifting weather
// cells. Everything derives from wall-clock phase, so two instances started
// at the same moment produce the same picture.
package simfeed

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"radarhud/pkg/feed"
	"radarhud/pkg/geo"
	"radarhud/pkg/model"
	"radarhud/pkg/weather"
)

// Config holds the simulation parameters.
type Config struct {
	CenterLat    float64
	CenterLon    float64
	OwnshipAltFt float64
	TrafficCount int
	RadiusNM     float64
	BaseAltFt    float64
	GroundKt     float64
	Period       time.Duration
	Interval     time.Duration
	Weather      bool
}

// Sim implements feed.Source with generated data.
type Sim struct {
	cfg     Config
	updates chan feed.Batch

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a simulated feed. Zero config fields get workable defaults.
func New(cfg Config) *Sim {
	if cfg.TrafficCount <= 0 {
		cfg.TrafficCount = 8
	}
	if cfg.RadiusNM <= 0 {
		cfg.RadiusNM = 8.0
	}
	if cfg.BaseAltFt <= 0 {
		cfg.BaseAltFt = 4500
	}
	if cfg.GroundKt <= 0 {
		cfg.GroundKt = 120
	}
	if cfg.Period <= 0 {
		cfg.Period = 90 * time.Second
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 500 * time.Millisecond
	}
	return &Sim{
		cfg:     cfg,
		updates: make(chan feed.Batch, 4),
		done:    make(chan struct{}),
	}
}

// Start launches the generator loop.
func (s *Sim) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
	return nil
}

// Updates returns the batch channel.
func (s *Sim) Updates() <-chan feed.Batch {
	return s.updates
}

// Close stops the generator.
func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		<-s.done
	}
	return nil
}

func (s *Sim) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.updates)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			batch := s.Generate(now)
			select {
			case s.updates <- batch:
			case <-ctx.Done():
				return
			default:
				// Consumer behind; skip, the next tick supersedes this one.
			}
		}
	}
}

// Generate produces the batch for a given instant. Exposed so tests and the
// mockfeed server can drive it without the ticker loop.
func (s *Sim) Generate(now time.Time) feed.Batch {
	phase := float64(now.UnixNano()%s.cfg.Period.Nanoseconds()) / float64(s.cfg.Period.Nanoseconds())
	baseTheta := 2 * math.Pi * phase
	center := geo.Point{Lat: s.cfg.CenterLat, Lon: s.cfg.CenterLon}

	batch := feed.Batch{
		Ownship: &model.Ownship{
			Lat:        s.cfg.CenterLat,
			Lon:        s.cfg.CenterLon,
			AltFt:      s.cfg.OwnshipAltFt,
			HeadingDeg: 0,
			GroundKt:   0,
		},
	}

	for i := 0; i < s.cfg.TrafficCount; i++ {
		if t, ok := s.trafficTarget(i, baseTheta, phase, center); ok {
			t.LastSeen = now
			batch.Targets = append(batch.Targets, t)
		}
	}

	if s.cfg.Weather {
		batch.Weather = s.weatherSamples(baseTheta, center)
	}

	return batch
}

func (s *Sim) trafficTarget(i int, baseTheta, phase float64, center geo.Point) (model.Target, bool) {
	// Staggered dropouts: every sixth target vanishes for 10% of the cycle
	// to exercise the store's stale-target handling.
	if i >= 2 && i%6 == 0 {
		p := math.Mod(phase+float64(i)*0.07, 1.0)
		if p >= 0.20 && p < 0.30 {
			return model.Target{}, false
		}
	}

	alt := s.cfg.BaseAltFt + float64(i-s.cfg.TrafficCount/2)*300

	id := fmt.Sprintf("SIM%03d", i)
	t := model.Target{
		ID:       id,
		Kind:     model.KindTraffic,
		Label:    id,
		AltFt:    alt,
		GroundKt: s.cfg.GroundKt,
	}

	switch i {
	case 0:
		// Stationary on-ground target near the center.
		pos := geo.DestinationPoint(center, 0.1*s.cfg.RadiusNM*geo.MetersPerNM, 0)
		t.Lat, t.Lon = pos.Lat, pos.Lon
		t.AltFt = s.cfg.OwnshipAltFt - 50
		t.GroundKt = 0
		t.HeadingDeg, t.HasHeading = 0, true
		return t, true
	case 1:
		// Straight-line west-east crossing through the center.
		x := math.Sin(baseTheta)
		dist := math.Abs(x) * s.cfg.RadiusNM * geo.MetersPerNM
		brg := 90.0
		if x < 0 {
			brg = 270.0
		}
		pos := geo.DestinationPoint(center, dist, brg)
		pos = geo.DestinationPoint(pos, 0.15*s.cfg.RadiusNM*geo.MetersPerNM, 180)
		t.Lat, t.Lon = pos.Lat, pos.Lon
		t.HeadingDeg, t.HasHeading = 90, true
		return t, true
	}

	// Orbiters with alternating direction and varied radius.
	offset := 2 * math.Pi * (float64(i) / float64(s.cfg.TrafficCount))
	dir := 1.0
	if i%2 == 0 {
		dir = -1.0
	}
	theta := dir*baseTheta + offset

	rScale := 0.6 + 0.4*math.Mod(float64(i)*0.37, 1.0)
	radiusM := s.cfg.RadiusNM * rScale * geo.MetersPerNM

	brg := math.Mod(theta*180/math.Pi+360*4, 360)
	pos := geo.DestinationPoint(center, radiusM, brg)
	t.Lat, t.Lon = pos.Lat, pos.Lon

	track := math.Mod(brg+90, 360)
	if dir < 0 {
		track = math.Mod(brg+270, 360)
	}
	t.HeadingDeg, t.HasHeading = track, true

	if i%5 == 0 {
		t.GroundKt = s.cfg.GroundKt * 0.5
	}
	return t, true
}

// weatherSamples paints two cells: a strong one drifting slowly east of the
// center and a weaker one to the northwest.
func (s *Sim) weatherSamples(baseTheta float64, center geo.Point) []weather.Sample {
	drift := 0.2 * math.Sin(baseTheta)

	strong := geo.DestinationPoint(center, (0.7+drift)*s.cfg.RadiusNM*geo.MetersPerNM, 90)
	weak := geo.DestinationPoint(center, 0.9*s.cfg.RadiusNM*geo.MetersPerNM, 315)

	return []weather.Sample{
		{Lat: strong.Lat, Lon: strong.Lon, DBZ: 52},
		{Lat: weak.Lat, Lon: weak.Lon, DBZ: 34},
	}
}
