// Package feed defines the data-source boundary: a Source delivers batches
// of ownship pose, target updates, and weather samples. The engine never
// cares whether they came from a live link or the built-in simulation.
package feed

import (
	"context"

	"radarhud/pkg/model"
	"radarhud/pkg/weather"
)

// Batch is one feed message. All fields are optional; a batch with only an
// ownship update is common at high rates.
type Batch struct {
	Ownship *model.Ownship   `json:"ownship,omitempty"`
	Targets []model.Target   `json:"targets,omitempty"`
	Weather []weather.Sample `json:"weather,omitempty"`
	// Removed lists target IDs the source knows are gone (e.g. landed
	// traffic). Absent targets age out via the store TTL regardless.
	Removed []string `json:"removed,omitempty"`
}

// Source is a feed of radar data batches.
type Source interface {
	// Start begins delivery. It returns once the source is running;
	// delivery stops when ctx is cancelled.
	Start(ctx context.Context) error
	// Updates is the batch channel. It is closed when the source stops.
	Updates() <-chan Batch
	// Close releases resources. Safe to call more than once.
	Close() error
}
