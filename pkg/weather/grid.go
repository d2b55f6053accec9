// Package weather buckets point reflectivity samples into an H3 cell grid.
// The radar draws one weather target per occupied cell, so a noisy sample
// stream collapses into a stable set of cells that fade out as they age.
package weather

import (
	"fmt"
	"sync"
	"time"

	"github.com/uber/h3-go/v4"

	"radarhud/pkg/model"
)

// Sample is one point reflectivity observation.
type Sample struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	DBZ float64 `json:"dbz"`
}

type cell struct {
	dbz      float64
	lastSeen time.Time
}

// Grid aggregates samples per H3 cell, keeping the cell's maximum dBZ and
// decaying it exponentially between updates.
type Grid struct {
	mu    sync.RWMutex
	cells map[h3.Cell]*cell

	resolution int
	halfLife   time.Duration
	floorDBZ   float64
}

// NewGrid creates a grid. Resolution follows H3 conventions (5 gives cells
// of roughly 4.6 NM across, a reasonable radar paint size). Cells whose
// decayed value drops below floorDBZ are removed.
func NewGrid(resolution int, halfLife time.Duration, floorDBZ float64) (*Grid, error) {
	if resolution < 0 || resolution > 15 {
		return nil, fmt.Errorf("h3 resolution out of range: %d", resolution)
	}
	if halfLife <= 0 {
		return nil, fmt.Errorf("half life must be positive, got %v", halfLife)
	}
	return &Grid{
		cells:      make(map[h3.Cell]*cell),
		resolution: resolution,
		halfLife:   halfLife,
		floorDBZ:   floorDBZ,
	}, nil
}

// Ingest merges a batch of samples at the given observation time.
func (g *Grid) Ingest(samples []Sample, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, s := range samples {
		c, err := h3.LatLngToCell(h3.NewLatLng(s.Lat, s.Lon), g.resolution)
		if err != nil {
			return fmt.Errorf("weather sample (%f, %f): %w", s.Lat, s.Lon, err)
		}
		existing, ok := g.cells[c]
		if !ok {
			g.cells[c] = &cell{dbz: s.DBZ, lastSeen: now}
			continue
		}
		decayed := decay(existing.dbz, now.Sub(existing.lastSeen), g.halfLife)
		if s.DBZ > decayed {
			decayed = s.DBZ
		}
		existing.dbz = decayed
		existing.lastSeen = now
	}
	return nil
}

// Snapshot returns one synthetic weather target per live cell, positioned at
// the cell center. Cells decayed below the floor are dropped as a side
// effect.
func (g *Grid) Snapshot(now time.Time) []model.Target {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]model.Target, 0, len(g.cells))
	for c, entry := range g.cells {
		dbz := decay(entry.dbz, now.Sub(entry.lastSeen), g.halfLife)
		if dbz < g.floorDBZ {
			delete(g.cells, c)
			continue
		}
		center, err := h3.CellToLatLng(c)
		if err != nil {
			// A cell we created from a valid sample cannot fail here;
			// drop it rather than carry a corrupt entry.
			delete(g.cells, c)
			continue
		}
		out = append(out, model.Target{
			ID:              "wx-" + c.String(),
			Kind:            model.KindWeather,
			Lat:             center.Lat,
			Lon:             center.Lng,
			ReflectivityDBZ: dbz,
			LastSeen:        entry.lastSeen,
		})
	}
	return out
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cells)
}

// decay halves a value every halfLife of elapsed time.
func decay(dbz float64, elapsed, halfLife time.Duration) float64 {
	if elapsed <= 0 {
		return dbz
	}
	halves := float64(elapsed) / float64(halfLife)
	factor := 1.0
	for halves >= 1 {
		factor /= 2
		halves--
	}
	// Fractional remainder: linear interpolation is close enough for a
	// display fade and avoids math.Pow on the hot path.
	factor *= 1 - 0.5*halves
	return dbz * factor
}
