// Package store holds the live target set. Updates are last-write-wins by
// target ID; targets not refreshed within the TTL are evicted.
package store

import (
	"sync"
	"time"

	"radarhud/pkg/model"
)

// TargetStore is the thread-safe live target set.
type TargetStore struct {
	mu      sync.RWMutex
	targets map[string]model.Target
	ttl     time.Duration
}

// New creates a store that evicts targets unseen for longer than ttl.
func New(ttl time.Duration) *TargetStore {
	return &TargetStore{
		targets: make(map[string]model.Target),
		ttl:     ttl,
	}
}

// Upsert merges a target by ID, last write wins. LastSeen is stamped if the
// caller left it zero.
func (s *TargetStore) Upsert(t model.Target) {
	if t.ID == "" {
		return
	}
	if t.LastSeen.IsZero() {
		t.LastSeen = time.Now()
	}
	s.mu.Lock()
	s.targets[t.ID] = t
	s.mu.Unlock()
}

// UpsertAll merges a batch of targets.
func (s *TargetStore) UpsertAll(targets []model.Target) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range targets {
		if t.ID == "" {
			continue
		}
		if t.LastSeen.IsZero() {
			t.LastSeen = now
		}
		s.targets[t.ID] = t
	}
}

// Remove deletes a target by ID.
func (s *TargetStore) Remove(id string) {
	s.mu.Lock()
	delete(s.targets, id)
	s.mu.Unlock()
}

// Evict removes targets whose LastSeen is older than the TTL and returns
// how many were dropped.
func (s *TargetStore) Evict(now time.Time) int {
	cutoff := now.Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, t := range s.targets {
		if t.LastSeen.Before(cutoff) {
			delete(s.targets, id)
			evicted++
		}
	}
	return evicted
}

// Snapshot returns a copy of all targets. Callers own the slice.
func (s *TargetStore) Snapshot() []model.Target {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Target, 0, len(s.targets))
	for _, t := range s.targets {
		out = append(out, t)
	}
	return out
}

// Get returns a target by ID.
func (s *TargetStore) Get(id string) (model.Target, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.targets[id]
	return t, ok
}

// Len returns the number of live targets.
func (s *TargetStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.targets)
}

// CountByKind returns the number of live targets per kind.
func (s *TargetStore) CountByKind() map[model.TargetKind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[model.TargetKind]int)
	for _, t := range s.targets {
		counts[t.Kind]++
	}
	return counts
}
