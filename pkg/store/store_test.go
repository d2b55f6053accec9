package store

import (
	"testing"
	"time"

	"radarhud/pkg/model"
)

func TestUpsertLastWriteWins(t *testing.T) {
	s := New(time.Minute)

	s.Upsert(model.Target{ID: "a", Kind: model.KindTraffic, AltFt: 1000})
	s.Upsert(model.Target{ID: "a", Kind: model.KindTraffic, AltFt: 2000})

	got, ok := s.Get("a")
	if !ok {
		t.Fatal("target a missing")
	}
	if got.AltFt != 2000 {
		t.Errorf("AltFt = %f, want 2000 (last write wins)", got.AltFt)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestUpsertIgnoresEmptyID(t *testing.T) {
	s := New(time.Minute)
	s.Upsert(model.Target{Kind: model.KindTraffic})
	if s.Len() != 0 {
		t.Error("targets without ID must be ignored")
	}
}

func TestEvict(t *testing.T) {
	s := New(30 * time.Second)
	now := time.Now()

	s.Upsert(model.Target{ID: "fresh", LastSeen: now})
	s.Upsert(model.Target{ID: "stale", LastSeen: now.Add(-time.Minute)})

	evicted := s.Evict(now)
	if evicted != 1 {
		t.Errorf("evicted = %d, want 1", evicted)
	}
	if _, ok := s.Get("stale"); ok {
		t.Error("stale target should be gone")
	}
	if _, ok := s.Get("fresh"); !ok {
		t.Error("fresh target should survive")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(time.Minute)
	s.Upsert(model.Target{ID: "a", AltFt: 1000})

	snap := s.Snapshot()
	snap[0].AltFt = 9999

	got, _ := s.Get("a")
	if got.AltFt != 1000 {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestCountByKind(t *testing.T) {
	s := New(time.Minute)
	s.UpsertAll([]model.Target{
		{ID: "t1", Kind: model.KindTraffic},
		{ID: "t2", Kind: model.KindTraffic},
		{ID: "w1", Kind: model.KindWeather},
	})

	counts := s.CountByKind()
	if counts[model.KindTraffic] != 2 || counts[model.KindWeather] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
