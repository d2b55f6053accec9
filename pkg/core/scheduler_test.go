package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"radarhud/pkg/feed"
	"radarhud/pkg/model"
)

type stubSource struct {
	ch chan feed.Batch
}

func (s *stubSource) Start(ctx context.Context) error { return nil }
func (s *stubSource) Updates() <-chan feed.Batch      { return s.ch }
func (s *stubSource) Close() error                    { return nil }

type collectSink struct {
	mu     sync.Mutex
	frames []model.Frame
}

func (c *collectSink) Publish(f model.Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
}

func (c *collectSink) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func TestTickDrainsAndPublishes(t *testing.T) {
	e := newTestEngine(t)
	src := &stubSource{ch: make(chan feed.Batch, 8)}
	sink := &collectSink{}
	s := NewScheduler(100*time.Millisecond, src, e, sink)

	// No ownship yet: tick must not publish.
	s.tick(context.Background())
	if sink.count() != 0 {
		t.Fatal("no frame expected before ownship arrives")
	}

	src.ch <- feed.Batch{Ownship: &model.Ownship{Lat: 51, Lon: 14, AltFt: 4500}}
	src.ch <- feed.Batch{Targets: []model.Target{
		{ID: "a", Kind: model.KindTraffic, Lat: 51.01, Lon: 14.0, AltFt: 4500},
	}}

	s.tick(context.Background())
	if sink.count() != 1 {
		t.Fatalf("frames = %d, want 1", sink.count())
	}
	if e.store.Len() != 1 {
		t.Error("batch target not applied")
	}
}

func TestTickSurvivesClosedSource(t *testing.T) {
	e := newTestEngine(t)
	src := &stubSource{ch: make(chan feed.Batch)}
	close(src.ch)
	s := NewScheduler(100*time.Millisecond, src, e, nil)

	// Must not spin or panic on a closed updates channel.
	s.tick(context.Background())
}

type countJob struct {
	BaseJob
	mu   sync.Mutex
	runs int
}

func (j *countJob) ShouldFire(now time.Time) bool { return true }

func (j *countJob) Run(ctx context.Context, now time.Time) {
	if !j.TryLock() {
		return
	}
	defer j.Unlock()
	j.mu.Lock()
	j.runs++
	j.mu.Unlock()
}

func TestTickFiresJobs(t *testing.T) {
	e := newTestEngine(t)
	src := &stubSource{ch: make(chan feed.Batch, 1)}
	s := NewScheduler(100*time.Millisecond, src, e, nil)

	job := &countJob{BaseJob: NewBaseJob("count")}
	s.AddJob(job)

	s.tick(context.Background())

	// Jobs run on their own goroutine.
	deadline := time.After(time.Second)
	for {
		job.mu.Lock()
		runs := job.runs
		job.mu.Unlock()
		if runs >= 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("job never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSchedulerStartStops(t *testing.T) {
	e := newTestEngine(t)
	src := &stubSource{ch: make(chan feed.Batch, 1)}
	s := NewScheduler(time.Millisecond, src, e, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
}
