// Package linesdb persists extraction runs and their segments in a sqlite
// database. Each run records the source cloud, the parameters it was
// extracted with, and its segments in discovery order, so results can be
// compared across parameter sweeps and re-rendered later.
package linesdb

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/edgelines/internal/lines"
	"github.com/banshee-data/edgelines/internal/monitoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps the sqlite connection with run/segment accessors.
type DB struct {
	*sql.DB
}

// Run describes one persisted extraction run.
type Run struct {
	ID              string
	Source          string
	Params          lines.Params
	RandomSeed      int64
	StartedAt       time.Time
	FinishedAt      time.Time
	InputPoints     int
	RemainingPoints int
	Iterations      int
	SegmentCount    int
}

// Open opens (creating if necessary) the database at path and applies any
// pending migrations.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{db}, nil
}

// runMigrations applies the embedded schema migrations.
// The migrate instance is not closed: closing it would close the underlying
// database connection.
func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	monitoring.Logf("linesdb: schema up to date")
	return nil
}

// SaveRun stores a run and its segments in one transaction and returns the
// run ID, generating a fresh UUID when run.ID is empty.
func (db *DB) SaveRun(run Run, segments []lines.Segment) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (
			id, source, neighborhood_radius, min_samples, inlier_threshold,
			max_iterations, random_seed, started_at_ns, finished_at_ns,
			input_points, remaining_points, iterations, segment_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source,
		run.Params.NeighborhoodRadius, run.Params.MinSamples,
		run.Params.InlierThreshold, run.Params.MaxIterations,
		run.RandomSeed, run.StartedAt.UnixNano(), run.FinishedAt.UnixNano(),
		run.InputPoints, run.RemainingPoints, run.Iterations, len(segments),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO segments (run_id, seq, x1, y1, z1, x2, y2, z2)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare segment insert: %w", err)
	}
	defer stmt.Close()

	for seq, s := range segments {
		if _, err := stmt.Exec(run.ID, seq,
			s.Start.X, s.Start.Y, s.Start.Z,
			s.End.X, s.End.Y, s.End.Z); err != nil {
			return "", fmt.Errorf("insert segment %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return run.ID, nil
}

// GetRun loads one run by ID.
func (db *DB) GetRun(id string) (Run, error) {
	row := db.QueryRow(`
		SELECT id, source, neighborhood_radius, min_samples, inlier_threshold,
		       max_iterations, random_seed, started_at_ns, finished_at_ns,
		       input_points, remaining_points, iterations, segment_count
		FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// LatestRun loads the most recently started run.
func (db *DB) LatestRun() (Run, error) {
	row := db.QueryRow(`
		SELECT id, source, neighborhood_radius, min_samples, inlier_threshold,
		       max_iterations, random_seed, started_at_ns, finished_at_ns,
		       input_points, remaining_points, iterations, segment_count
		FROM runs ORDER BY started_at_ns DESC LIMIT 1`)
	return scanRun(row)
}

// ListRuns returns up to limit runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	rows, err := db.Query(`
		SELECT id, source, neighborhood_radius, min_samples, inlier_threshold,
		       max_iterations, random_seed, started_at_ns, finished_at_ns,
		       input_points, remaining_points, iterations, segment_count
		FROM runs ORDER BY started_at_ns DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetSegments returns a run's segments in discovery order.
func (db *DB) GetSegments(runID string) ([]lines.Segment, error) {
	rows, err := db.Query(`
		SELECT x1, y1, z1, x2, y2, z2
		FROM segments WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	var segments []lines.Segment
	for rows.Next() {
		var s lines.Segment
		if err := rows.Scan(
			&s.Start.X, &s.Start.Y, &s.Start.Z,
			&s.End.X, &s.End.Y, &s.End.Z); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var startedNs, finishedNs int64
	err := row.Scan(
		&run.ID, &run.Source,
		&run.Params.NeighborhoodRadius, &run.Params.MinSamples,
		&run.Params.InlierThreshold, &run.Params.MaxIterations,
		&run.RandomSeed, &startedNs, &finishedNs,
		&run.InputPoints, &run.RemainingPoints, &run.Iterations, &run.SegmentCount,
	)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = time.Unix(0, startedNs)
	run.FinishedAt = time.Unix(0, finishedNs)
	return run, nil
}
