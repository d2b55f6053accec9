package core

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"radarhud/pkg/store"
	"radarhud/pkg/tracker"
)

// EvictionJob periodically drops targets the feed has stopped refreshing.
// The TTL lives in the store; the job only provides the heartbeat.
type EvictionJob struct {
	BaseJob
	store    *store.TargetStore
	trk      *tracker.Tracker
	interval time.Duration

	lastRunTime time.Time
}

func NewEvictionJob(st *store.TargetStore, trk *tracker.Tracker, interval time.Duration) *EvictionJob {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &EvictionJob{
		BaseJob:  NewBaseJob("Eviction"),
		store:    st,
		trk:      trk,
		interval: interval,
	}
}

func (j *EvictionJob) ShouldFire(now time.Time) bool {
	if atomic.LoadInt32(&j.running) == 1 {
		return false
	}
	return now.Sub(j.lastRunTime) >= j.interval
}

func (j *EvictionJob) Run(ctx context.Context, now time.Time) {
	if !j.TryLock() {
		return
	}
	defer j.Unlock()

	j.lastRunTime = now

	evicted := j.store.Evict(now)
	if evicted > 0 {
		j.trk.TrackEvictions(evicted)
		slog.Debug("Eviction Job Completed", "evicted", evicted, "remaining", j.store.Len())
	}
}
