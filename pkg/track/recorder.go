// Package track persists per-frame target observations to SQLite so the UI
// can draw history trails and sessions can be replayed.
package track

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Register driver

	"radarhud/pkg/model"
)

// Recorder wraps the sql.DB connection.
type Recorder struct {
	db *sql.DB
}

// Observation is one recorded target sample.
type Observation struct {
	FrameID    string            `json:"frame_id"`
	TargetID   string            `json:"target_id"`
	Kind       model.TargetKind  `json:"kind"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	AltFt      float64           `json:"alt_ft"`
	DistanceNM float64           `json:"distance_nm"`
	Threat     model.ThreatLevel `json:"threat"`
	Time       time.Time         `json:"time"`
}

// Open opens the database and runs migrations.
func Open(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// WAL for concurrent reads; a single write connection avoids
	// SQLITE_BUSY during frame recording.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	db.SetMaxOpenConns(1)

	r := &Recorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return r, nil
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

func (r *Recorder) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS observations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			frame_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			lat REAL,
			lon REAL,
			alt_ft REAL,
			distance_nm REAL,
			threat INTEGER,
			observed_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_observations_target
			ON observations (target_id, observed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_observations_time
			ON observations (observed_at);`,
	}
	for _, q := range queries {
		if _, err := r.db.Exec(q); err != nil {
			return fmt.Errorf("failed to execute %q: %w", q[:40], err)
		}
	}
	return nil
}

// RecordFrame writes all observations of one frame in a single transaction.
func (r *Recorder) RecordFrame(frameID string, targets []model.Target, at time.Time) error {
	if len(targets) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO observations
		(frame_id, target_id, kind, lat, lon, alt_ft, distance_nm, threat, observed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	ts := at.UTC().Format("2006-01-02 15:04:05.000")
	for _, t := range targets {
		if _, err := stmt.Exec(frameID, t.ID, string(t.Kind), t.Lat, t.Lon,
			t.AltFt, t.DistanceNM, int(t.Threat), ts); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert observation for %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// History returns the most recent observations for a target, newest first.
func (r *Recorder) History(targetID string, limit int) ([]Observation, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(`SELECT frame_id, target_id, kind, lat, lon, alt_ft,
		distance_nm, threat, observed_at
		FROM observations WHERE target_id = ?
		ORDER BY observed_at DESC LIMIT ?`, targetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Observation
	for rows.Next() {
		var o Observation
		var kind string
		var threat int
		var ts string
		if err := rows.Scan(&o.FrameID, &o.TargetID, &kind, &o.Lat, &o.Lon,
			&o.AltFt, &o.DistanceNM, &threat, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		o.Kind = model.TargetKind(kind)
		o.Threat = model.ThreatLevel(threat)
		if parsed, err := time.Parse("2006-01-02 15:04:05.000", ts); err == nil {
			o.Time = parsed
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Prune removes observations older than the given retention window and
// returns the number deleted.
func (r *Recorder) Prune(olderThan time.Duration) (int64, error) {
	deadline := time.Now().Add(-olderThan).UTC().Format("2006-01-02 15:04:05.000")
	res, err := r.db.Exec("DELETE FROM observations WHERE observed_at < ?", deadline)
	if err != nil {
		return 0, fmt.Errorf("failed to prune observations: %w", err)
	}
	return res.RowsAffected()
}
