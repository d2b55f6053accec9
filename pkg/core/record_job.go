package core

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"radarhud/pkg/track"
)

// RecordJob persists the current picture to the track database. It samples
// the frame stream instead of recording every frame; one observation per
// second is plenty for history trails.
type RecordJob struct {
	BaseJob
	engine   *Engine
	recorder *track.Recorder
	interval time.Duration

	lastRunTime time.Time
	lastFrameID string
}

func NewRecordJob(engine *Engine, recorder *track.Recorder, interval time.Duration) *RecordJob {
	if interval <= 0 {
		interval = time.Second
	}
	return &RecordJob{
		BaseJob:  NewBaseJob("Record"),
		engine:   engine,
		recorder: recorder,
		interval: interval,
	}
}

func (j *RecordJob) ShouldFire(now time.Time) bool {
	if atomic.LoadInt32(&j.running) == 1 {
		return false
	}
	return now.Sub(j.lastRunTime) >= j.interval
}

func (j *RecordJob) Run(ctx context.Context, now time.Time) {
	if !j.TryLock() {
		return
	}
	defer j.Unlock()

	j.lastRunTime = now

	frame, ok := j.engine.LastFrame()
	if !ok || frame.ID == j.lastFrameID {
		return
	}
	_, targets := j.engine.Picture()
	if err := j.recorder.RecordFrame(frame.ID, targets, frame.Time); err != nil {
		slog.Warn("frame recording failed", "frame", frame.ID, "error", err)
		return
	}
	j.lastFrameID = frame.ID
}

// NewPruneJob returns a job that trims recorded observations beyond the
// retention window. Runs hourly.
func NewPruneJob(recorder *track.Recorder, retain time.Duration) *TimeJob {
	return NewTimeJob("Prune", time.Hour, func(ctx context.Context, now time.Time) {
		deleted, err := recorder.Prune(retain)
		if err != nil {
			slog.Warn("history prune failed", "error", err)
			return
		}
		if deleted > 0 {
			slog.Debug("history pruned", "deleted", deleted)
		}
	})
}
