package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"radarhud/pkg/feed"
	"radarhud/pkg/model"
	"radarhud/pkg/store"
	"radarhud/pkg/tracker"
)

func TestStatusHandler(t *testing.T) {
	trk := tracker.New()
	trk.TrackFrame()
	trk.TrackBatch()

	st := store.New(10 * time.Second)
	st.Upsert(model.Target{ID: "a", Kind: model.KindTraffic})
	st.Upsert(model.Target{ID: "b", Kind: model.KindWeather})

	h := NewStatusHandler(trk, st, newTestEngine(t), "sim")

	req := httptest.NewRequest("GET", "/api/status", http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp StatusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.FeedProvider != "sim" {
		t.Errorf("provider = %s", resp.FeedProvider)
	}
	if resp.HasOwnship {
		t.Error("no ownship was fed")
	}
	if resp.RangeRing != nil {
		t.Error("range ring needs an ownship position")
	}
	if resp.Targets[model.KindTraffic] != 1 || resp.Targets[model.KindWeather] != 1 {
		t.Errorf("targets = %v", resp.Targets)
	}
	if resp.Stats.FramesRendered != 1 {
		t.Errorf("frames = %d, want 1", resp.Stats.FramesRendered)
	}
}

func TestStatusRangeRing(t *testing.T) {
	engine := newTestEngine(t)
	engine.ApplyBatch(feed.Batch{
		Ownship: &model.Ownship{Lat: 51.0, Lon: 14.0, AltFt: 4500},
	}, time.Now())

	h := NewStatusHandler(tracker.New(), store.New(10*time.Second), engine, "sim")

	req := httptest.NewRequest("GET", "/api/status", http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp StatusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	ring := resp.RangeRing
	if ring == nil {
		t.Fatal("range ring missing with ownship known")
	}
	if ring.RadiusNM != engine.MaxRange() {
		t.Errorf("radius = %f, want %f", ring.RadiusNM, engine.MaxRange())
	}
	if ring.MinLat >= 51.0 || ring.MaxLat <= 51.0 {
		t.Errorf("latitude bound [%f, %f] must straddle the ownship", ring.MinLat, ring.MaxLat)
	}
	if ring.MinLon >= 14.0 || ring.MaxLon <= 14.0 {
		t.Errorf("longitude bound [%f, %f] must straddle the ownship", ring.MinLon, ring.MaxLon)
	}
	// At 51°N a degree of longitude is shorter than a degree of latitude,
	// so the bound must be wider in longitude.
	if (ring.MaxLon - ring.MinLon) <= (ring.MaxLat - ring.MinLat) {
		t.Error("longitude span should exceed latitude span at this latitude")
	}
}
