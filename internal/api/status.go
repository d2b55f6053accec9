package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"radarhud/pkg/core"
	"radarhud/pkg/geo"
	"radarhud/pkg/model"
	"radarhud/pkg/store"
	"radarhud/pkg/tracker"
)

type StatusHandler struct {
	tracker  *tracker.Tracker
	store    *store.TargetStore
	engine   *core.Engine
	provider string
}

func NewStatusHandler(t *tracker.Tracker, st *store.TargetStore, e *core.Engine, provider string) *StatusHandler {
	return &StatusHandler{tracker: t, store: st, engine: e, provider: provider}
}

type StatusResponse struct {
	FeedProvider string                   `json:"feed_provider"`
	HasOwnship   bool                     `json:"has_ownship"`
	Targets      map[model.TargetKind]int `json:"targets"`
	RangeRing    *RangeRing               `json:"range_ring,omitempty"`
	Stats        tracker.Stats            `json:"stats"`
}

// RangeRing is the geographic bound of the active display range, centered on
// the ownship. UI layers use it to draw the range ring and fetch map tiles.
type RangeRing struct {
	RadiusNM float64 `json:"radius_nm"`
	MinLat   float64 `json:"min_lat"`
	MinLon   float64 `json:"min_lon"`
	MaxLat   float64 `json:"max_lat"`
	MaxLon   float64 `json:"max_lon"`
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	own, hasOwnship := h.engine.Ownship()
	resp := StatusResponse{
		FeedProvider: h.provider,
		HasOwnship:   hasOwnship,
		Targets:      h.store.CountByKind(),
		Stats:        h.tracker.Snapshot(),
	}
	if hasOwnship {
		radius := h.engine.MaxRange()
		plane := geo.NewTangentPlane(geo.Point{Lat: own.Lat, Lon: own.Lon}, own.AltFt)
		b := plane.Bound(radius)
		resp.RangeRing = &RangeRing{
			RadiusNM: radius,
			MinLat:   b.Min.Lat(),
			MinLon:   b.Min.Lon(),
			MaxLat:   b.Max.Lat(),
			MaxLon:   b.Max.Lon(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode status response", "error", err)
	}
}
