// Package core drives the radar: it ingests feed batches, maintains the
// target picture, and renders indicator frames on a fixed heartbeat.
package core

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"radarhud/pkg/camera"
	"radarhud/pkg/feed"
	"radarhud/pkg/geo"
	"radarhud/pkg/indicator"
	"radarhud/pkg/logging"
	"radarhud/pkg/model"
	"radarhud/pkg/radar"
	"radarhud/pkg/store"
	"radarhud/pkg/tracker"
	"radarhud/pkg/weather"
)

// Engine owns the mutable radar state. All methods are safe for concurrent
// use. ApplyBatch and BuildFrame both run on the scheduler goroutine, which
// is what keeps a frame from seeing a half-applied batch; the mutex guards
// the pose and frame snapshots against the API layer's readers.
type Engine struct {
	thresholds radar.ThreatThresholds
	calc       *indicator.Calculator
	cam        *camera.Camera
	store      *store.TargetStore
	grid       *weather.Grid
	trk        *tracker.Tracker

	mu            sync.RWMutex
	ownship       model.Ownship
	hasOwnship    bool
	lastFrame     model.Frame
	hasFrame      bool
	lastTargets   []model.Target
	weatherHidden bool
}

// rangeSteps are the selectable display ranges, nearest to widest.
var rangeSteps = []float64{5, 10, 20, 40, 80}

// NewEngine wires the engine from its parts.
func NewEngine(th radar.ThreatThresholds, calc *indicator.Calculator, cam *camera.Camera,
	st *store.TargetStore, grid *weather.Grid, trk *tracker.Tracker) *Engine {
	return &Engine{
		thresholds: th,
		calc:       calc,
		cam:        cam,
		store:      st,
		grid:       grid,
		trk:        trk,
	}
}

// ApplyBatch folds one feed batch into the picture.
func (e *Engine) ApplyBatch(b feed.Batch, now time.Time) {
	e.mu.Lock()
	if b.Ownship != nil {
		e.ownship = *b.Ownship
		e.hasOwnship = true
	}
	e.mu.Unlock()

	if len(b.Targets) > 0 {
		e.store.UpsertAll(b.Targets)
		e.trk.TrackUpserts(len(b.Targets))
	}
	if len(b.Weather) > 0 {
		if err := e.grid.Ingest(b.Weather, now); err != nil {
			slog.Warn("weather ingest failed", "error", err)
		}
	}
	for _, id := range b.Removed {
		e.store.Remove(id)
	}
	e.trk.TrackBatch()
}

// BuildFrame renders the current picture into a frame. It returns false
// until the first ownship update arrives.
func (e *Engine) BuildFrame(now time.Time) (model.Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasOwnship {
		return model.Frame{}, false
	}
	own := e.ownship

	e.cam.FollowOwnship(own.HeadingDeg, own.PitchDeg)
	origin := geo.Point{Lat: own.Lat, Lon: own.Lon}
	plane := geo.NewTangentPlane(origin, own.AltFt)

	targets := e.store.Snapshot()
	if !e.weatherHidden {
		targets = append(targets, e.grid.Snapshot(now)...)
	}

	indicators := make([]model.IndicatorData, 0, len(targets))
	for i := range targets {
		t := &targets[i]
		pt := geo.Point{Lat: t.Lat, Lon: t.Lon}
		t.DistanceNM = geo.DistanceNM(origin, pt)
		t.BearingDeg = geo.Bearing(origin, pt)
		t.RelAltFt = t.AltFt - own.AltFt
		radar.Decorate(t, e.thresholds)

		world := plane.ToWorld(pt, t.AltFt)
		indicators = append(indicators, e.calc.Calculate(t, e.cam, world))
	}

	// Highest priority first so the UI can draw back to front by walking
	// the slice in reverse.
	sort.SliceStable(indicators, func(i, j int) bool {
		if indicators[i].Priority != indicators[j].Priority {
			return indicators[i].Priority > indicators[j].Priority
		}
		return indicators[i].DistanceNM < indicators[j].DistanceNM
	})

	frame := model.Frame{
		ID:         uuid.NewString(),
		Time:       now,
		Ownship:    own,
		Indicators: indicators,
	}
	e.lastFrame = frame
	e.hasFrame = true
	e.lastTargets = targets
	e.trk.TrackFrame()
	logging.Trace("frame built", "id", frame.ID, "indicators", len(indicators))
	return frame, true
}

// LastFrame returns the most recently built frame.
func (e *Engine) LastFrame() (model.Frame, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastFrame, e.hasFrame
}

// Picture returns the ownship pose and the decorated targets of the last
// frame, for the recorder and the assistant.
func (e *Engine) Picture() (model.Ownship, []model.Target) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	targets := make([]model.Target, len(e.lastTargets))
	copy(targets, e.lastTargets)
	return e.ownship, targets
}

// Ownship returns the current ownship pose.
func (e *Engine) Ownship() (model.Ownship, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ownship, e.hasOwnship
}

// MaxRange returns the active display range in NM.
func (e *Engine) MaxRange() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.calc.Config().MaxDisplayDistanceNM
}

// StepRange moves the display range one step up (wider) or down (narrower)
// and returns the new range. At either end of the scale it stays put.
func (e *Engine) StepRange(up bool) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.calc.Config()
	current := cfg.MaxDisplayDistanceNM

	next := current
	if up {
		for _, step := range rangeSteps {
			if step > current {
				next = step
				break
			}
		}
	} else {
		for i := len(rangeSteps) - 1; i >= 0; i-- {
			if rangeSteps[i] < current {
				next = rangeSteps[i]
				break
			}
		}
	}
	if next == current {
		return current
	}

	cfg.MaxDisplayDistanceNM = next
	calc, err := indicator.NewCalculator(cfg)
	if err != nil {
		// Cannot happen: the step table only holds positive ranges.
		slog.Error("range change rejected", "error", err)
		return current
	}
	e.calc = calc
	return next
}

// SetWeatherVisible toggles the weather layer in frame output.
func (e *Engine) SetWeatherVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.weatherHidden = !visible
}

// WeatherVisible reports whether weather targets are included in frames.
func (e *Engine) WeatherVisible() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.weatherHidden
}
