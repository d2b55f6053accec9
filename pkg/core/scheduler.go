package core

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"radarhud/pkg/feed"
	"radarhud/pkg/model"
)

// FrameSink is an interface for consumers of the high-frequency frame stream.
type FrameSink interface {
	Publish(f model.Frame)
}

// Scheduler manages the central heartbeat and scheduled jobs.
type Scheduler struct {
	interval time.Duration
	source   feed.Source
	engine   *Engine
	sink     FrameSink
	jobs     []Job
}

// NewScheduler creates a new Scheduler.
func NewScheduler(interval time.Duration, source feed.Source, engine *Engine, sink FrameSink) *Scheduler {
	return &Scheduler{
		interval: interval,
		source:   source,
		engine:   engine,
		sink:     sink,
		jobs:     []Job{},
	}
}

// AddJob registers a job.
func (s *Scheduler) AddJob(j Job) {
	s.jobs = append(s.jobs, j)
}

// Start runs the main loop. It blocks until context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	interval := s.interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("Scheduler started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	now := time.Now()

	// 1. Drain pending feed batches without blocking the heartbeat.
drain:
	for {
		select {
		case b, ok := <-s.source.Updates():
			if !ok {
				break drain
			}
			s.engine.ApplyBatch(b, now)
		default:
			break drain
		}
	}

	// 2. Render and broadcast.
	if frame, ok := s.engine.BuildFrame(now); ok && s.sink != nil {
		s.sink.Publish(frame)
	}

	// 3. Evaluate jobs.
	for _, job := range s.jobs {
		if job.ShouldFire(now) {
			// Fire and forget
			go job.Run(ctx, now)
		}
	}
}

// --- Jobs ---

// Job defines a scheduled task.
type Job interface {
	Name() string
	ShouldFire(now time.Time) bool
	Run(ctx context.Context, now time.Time)
}

// BaseJob provides atomic running state to prevent re-entry.
type BaseJob struct {
	name    string
	running int32 // 1 if running, 0 otherwise
}

func NewBaseJob(name string) BaseJob {
	return BaseJob{name: name}
}

func (b *BaseJob) Name() string {
	return b.name
}

// TryLock attempts to set running to 1. Returns true if successful.
func (b *BaseJob) TryLock() bool {
	return atomic.CompareAndSwapInt32(&b.running, 0, 1)
}

func (b *BaseJob) Unlock() {
	atomic.StoreInt32(&b.running, 0)
}

// TimeJob fires when time elapsed exceeds threshold.
type TimeJob struct {
	BaseJob
	lastTime  time.Time
	threshold time.Duration
	action    func(context.Context, time.Time)
	firstRun  bool
}

func NewTimeJob(name string, threshold time.Duration, action func(context.Context, time.Time)) *TimeJob {
	return &TimeJob{
		BaseJob:   NewBaseJob(name),
		threshold: threshold,
		action:    action,
		firstRun:  true,
	}
}

func (j *TimeJob) ShouldFire(now time.Time) bool {
	if atomic.LoadInt32(&j.running) == 1 {
		return false
	}

	if j.firstRun {
		return true
	}

	return now.Sub(j.lastTime) >= j.threshold
}

func (j *TimeJob) Run(ctx context.Context, now time.Time) {
	if !j.TryLock() {
		return
	}
	defer j.Unlock()

	j.lastTime = now
	j.firstRun = false

	j.action(ctx, now)
}
