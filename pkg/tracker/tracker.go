// Package tracker collects runtime counters for the status API.
package tracker

import (
	"sync/atomic"
)

// Stats holds engine counters. Fields are accessed atomically.
type Stats struct {
	FramesRendered     int64 `json:"frames_rendered"`
	TargetsUpserted    int64 `json:"targets_upserted"`
	TargetsEvicted     int64 `json:"targets_evicted"`
	BatchesReceived    int64 `json:"batches_received"`
	BatchesDropped     int64 `json:"batches_dropped"`
	FeedReconnects     int64 `json:"feed_reconnects"`
	AssistantCalls     int64 `json:"assistant_calls"`
	AssistantFailures  int64 `json:"assistant_failures"`
	CommandsDispatched int64 `json:"commands_dispatched"`
}

// Tracker counts engine events.
type Tracker struct {
	stats Stats
}

// New creates a Tracker.
func New() *Tracker {
	return &Tracker{}
}

func (t *Tracker) TrackFrame()            { atomic.AddInt64(&t.stats.FramesRendered, 1) }
func (t *Tracker) TrackUpserts(n int)     { atomic.AddInt64(&t.stats.TargetsUpserted, int64(n)) }
func (t *Tracker) TrackEvictions(n int)   { atomic.AddInt64(&t.stats.TargetsEvicted, int64(n)) }
func (t *Tracker) TrackBatch()            { atomic.AddInt64(&t.stats.BatchesReceived, 1) }
func (t *Tracker) TrackBatchDropped()     { atomic.AddInt64(&t.stats.BatchesDropped, 1) }
func (t *Tracker) TrackFeedReconnect()    { atomic.AddInt64(&t.stats.FeedReconnects, 1) }
func (t *Tracker) TrackAssistantCall()    { atomic.AddInt64(&t.stats.AssistantCalls, 1) }
func (t *Tracker) TrackAssistantFailure() { atomic.AddInt64(&t.stats.AssistantFailures, 1) }
func (t *Tracker) TrackCommand()          { atomic.AddInt64(&t.stats.CommandsDispatched, 1) }

// Snapshot returns a copy of the current counters.
func (t *Tracker) Snapshot() Stats {
	return Stats{
		FramesRendered:     atomic.LoadInt64(&t.stats.FramesRendered),
		TargetsUpserted:    atomic.LoadInt64(&t.stats.TargetsUpserted),
		TargetsEvicted:     atomic.LoadInt64(&t.stats.TargetsEvicted),
		BatchesReceived:    atomic.LoadInt64(&t.stats.BatchesReceived),
		BatchesDropped:     atomic.LoadInt64(&t.stats.BatchesDropped),
		FeedReconnects:     atomic.LoadInt64(&t.stats.FeedReconnects),
		AssistantCalls:     atomic.LoadInt64(&t.stats.AssistantCalls),
		AssistantFailures:  atomic.LoadInt64(&t.stats.AssistantFailures),
		CommandsDispatched: atomic.LoadInt64(&t.stats.CommandsDispatched),
	}
}
