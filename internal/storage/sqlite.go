// Package storage provides SQLite-based persistence for layout diagnostics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only diagnostics are stored (how long a layout took, how well it spread).
// Layouts themselves are never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for diagnostics.
type Store struct {
	db *sql.DB
}

// Run is one recorded layout computation.
type Run struct {
	ID            int64
	RunID         string // Groups every row of one bench invocation
	Track         string // Track fingerprint
	Selection     string // Selection fingerprint
	Variant       string
	Move          int
	Kind          string
	Tokens        int
	Iterations    int
	Converged     bool
	RNGCalls      int64
	Energy        float64
	MinSeparation float64 // In token radii
	Overlaps      int
	Duration      time.Duration
	CreatedAt     time.Time
}

// VariantSummary aggregates the runs of one variant.
type VariantSummary struct {
	Variant        string
	Runs           int
	ConvergedRatio float64
	AvgIterations  float64
	AvgSeparation  float64
	TotalOverlaps  int
	AvgDuration    time.Duration
	LastRun        time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS layout_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			track TEXT NOT NULL,
			selection TEXT NOT NULL,
			variant TEXT NOT NULL,
			move INTEGER NOT NULL,
			kind TEXT NOT NULL,
			tokens INTEGER NOT NULL,
			iterations INTEGER NOT NULL DEFAULT 0,
			converged INTEGER NOT NULL DEFAULT 0,
			rng_calls INTEGER NOT NULL DEFAULT 0,
			energy REAL NOT NULL DEFAULT 0,
			min_separation REAL NOT NULL DEFAULT 0,
			overlaps INTEGER NOT NULL DEFAULT 0,
			duration_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_layout_runs_run_id ON layout_runs(run_id);
		CREATE INDEX IF NOT EXISTS idx_layout_runs_variant ON layout_runs(variant);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRuns records a batch of runs in one transaction.
func (s *Store) SaveRuns(runs []Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO layout_runs
		 (run_id, track, selection, variant, move, kind, tokens, iterations, converged,
		  rng_calls, energy, min_separation, overlaps, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range runs {
		if _, err := stmt.Exec(
			r.RunID, r.Track, r.Selection, r.Variant, r.Move, r.Kind, r.Tokens,
			r.Iterations, r.Converged, r.RNGCalls, r.Energy, r.MinSeparation,
			r.Overlaps, r.Duration.Microseconds(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit runs: %w", err)
	}
	return nil
}

// SaveRun records a single run and returns its row ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO layout_runs
		 (run_id, track, selection, variant, move, kind, tokens, iterations, converged,
		  rng_calls, energy, min_separation, overlaps, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Track, r.Selection, r.Variant, r.Move, r.Kind, r.Tokens,
		r.Iterations, r.Converged, r.RNGCalls, r.Energy, r.MinSeparation,
		r.Overlaps, r.Duration.Microseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const runColumns = `id, run_id, track, selection, variant, move, kind, tokens, iterations,
	converged, rng_calls, energy, min_separation, overlaps, duration_us, created_at`

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM layout_runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsFor retrieves every row of one bench invocation in insertion order.
func (s *Store) RunsFor(runID string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM layout_runs WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var micros int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.Track, &r.Selection, &r.Variant, &r.Move, &r.Kind,
			&r.Tokens, &r.Iterations, &r.Converged, &r.RNGCalls, &r.Energy,
			&r.MinSeparation, &r.Overlaps, &micros, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(micros) * time.Microsecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Summaries aggregates runs per variant, optionally restricted to one track.
// An empty track means every track.
func (s *Store) Summaries(track string) ([]VariantSummary, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), AVG(converged), AVG(iterations), AVG(min_separation),
		        SUM(overlaps), AVG(duration_us), MAX(created_at)
		 FROM layout_runs
		 WHERE ? = '' OR track = ?
		 GROUP BY variant
		 ORDER BY variant`,
		track, track,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	defer rows.Close()

	var out []VariantSummary
	for rows.Next() {
		var v VariantSummary
		var avgMicros float64
		var last any
		if err := rows.Scan(&v.Variant, &v.Runs, &v.ConvergedRatio, &v.AvgIterations,
			&v.AvgSeparation, &v.TotalOverlaps, &avgMicros, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}
		v.AvgDuration = time.Duration(avgMicros * float64(time.Microsecond))
		v.LastRun = parseTime(last)
		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LastRunID returns the run ID of the newest row, or "" when empty.
func (s *Store) LastRunID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT run_id FROM layout_runs ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query last run: %w", err)
	}
	return id, nil
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM layout_runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles the datetime column, which the driver may return as
// time.Time or as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
