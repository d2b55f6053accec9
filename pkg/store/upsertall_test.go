package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"radarhud/pkg/model"
)

func TestUpsertAllMixedBatch(t *testing.T) {
	s := New(10 * time.Second)

	s.UpsertAll([]model.Target{
		{ID: "a", Kind: model.KindTraffic, AltFt: 1000},
		{ID: "", Kind: model.KindTraffic}, // dropped
		{ID: "b", Kind: model.KindWeather},
		{ID: "a", Kind: model.KindTraffic, AltFt: 2000}, // overwrites first
	})

	assert.Equal(t, 2, s.Len(), "empty IDs skipped, duplicates merged")

	got, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2000.0, got.AltFt, "last write in batch wins")
	assert.False(t, got.LastSeen.IsZero(), "LastSeen must be stamped")

	counts := s.CountByKind()
	assert.Equal(t, 1, counts[model.KindTraffic])
	assert.Equal(t, 1, counts[model.KindWeather])
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := New(10 * time.Second)
	s.Upsert(model.Target{ID: "a", Kind: model.KindTraffic})

	s.Remove("a")
	s.Remove("a")
	s.Remove("never-existed")

	assert.Equal(t, 0, s.Len())
}
