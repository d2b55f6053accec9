package core

import (
	"context"
	"testing"
	"time"

	"radarhud/pkg/feed"
	"radarhud/pkg/model"
	"radarhud/pkg/store"
	"radarhud/pkg/tracker"
)

func TestTimeJobFirstRunAndThreshold(t *testing.T) {
	runs := 0
	j := NewTimeJob("test", time.Minute, func(ctx context.Context, now time.Time) {
		runs++
	})

	now := time.Now()
	if !j.ShouldFire(now) {
		t.Fatal("first run should fire immediately")
	}
	j.Run(context.Background(), now)

	if j.ShouldFire(now.Add(30 * time.Second)) {
		t.Error("should not fire before threshold")
	}
	if !j.ShouldFire(now.Add(61 * time.Second)) {
		t.Error("should fire after threshold")
	}
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

func TestBaseJobReentry(t *testing.T) {
	b := NewBaseJob("test")
	if !b.TryLock() {
		t.Fatal("first TryLock should succeed")
	}
	if b.TryLock() {
		t.Error("second TryLock should fail while running")
	}
	b.Unlock()
	if !b.TryLock() {
		t.Error("TryLock should succeed after Unlock")
	}
}

func TestEvictionJob(t *testing.T) {
	st := store.New(10 * time.Second)
	trk := tracker.New()
	now := time.Now()

	st.Upsert(model.Target{ID: "fresh", LastSeen: now})
	st.Upsert(model.Target{ID: "stale", LastSeen: now.Add(-time.Minute)})

	j := NewEvictionJob(st, trk, 2*time.Second)
	if !j.ShouldFire(now) {
		t.Fatal("eviction should fire on first tick")
	}
	j.Run(context.Background(), now)

	if st.Len() != 1 {
		t.Errorf("targets = %d, want 1 after eviction", st.Len())
	}
	if trk.Snapshot().TargetsEvicted != 1 {
		t.Error("eviction not tracked")
	}
	if j.ShouldFire(now.Add(time.Second)) {
		t.Error("eviction should respect its interval")
	}
}

func TestRecordJobSkipsDuplicateFrames(t *testing.T) {
	e := newTestEngine(t)
	now := time.Now()
	e.ApplyBatch(feed.Batch{Ownship: &model.Ownship{Lat: 51, Lon: 14, AltFt: 4500}}, now)

	j := NewRecordJob(e, nil, time.Second)
	if !j.ShouldFire(now) {
		t.Fatal("record job should fire on first tick")
	}

	// No frame built yet: Run must be a no-op and must not touch the
	// recorder (nil here on purpose).
	j.Run(context.Background(), now)
	if j.lastFrameID != "" {
		t.Error("nothing should be recorded before the first frame")
	}
}
