// Package history records dnacount runs in a SQLite database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/dendrascience/dnacount/count"
)

//go:embed schema.sql
var schemaSQL string

// ErrRunNotFound is returned by GetRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded invocation.
type Run struct {
	ID          string
	Directory   string
	Pattern     string
	Total       int64
	FileCount   int
	FailedCount int
	Interrupted bool
	StartedAt   time.Time
	Duration    time.Duration
	Files       []FileResult
}

// FileResult is the recorded outcome of one file within a run.
type FileResult struct {
	Path     string
	Count    int64
	Error    string
	Duration time.Duration
}

// NewRun builds a Run from a finished summary, with a fresh ID.
func NewRun(dir string, summary count.Summary, startedAt time.Time, d time.Duration) Run {
	run := Run{
		ID:          uuid.New().String(),
		Directory:   dir,
		Pattern:     summary.Pattern,
		Total:       summary.Total,
		FileCount:   len(summary.Results),
		FailedCount: summary.Failed,
		Interrupted: summary.Interrupted,
		StartedAt:   startedAt.UTC(),
		Duration:    d,
	}
	for _, r := range summary.Results {
		fr := FileResult{Path: r.Path, Count: r.Count, Duration: r.Duration}
		if r.Err != nil {
			fr.Error = r.Err.Error()
		}
		run.Files = append(run.Files, fr)
	}
	return run
}

// Store manages the run history database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the database at dbPath.
// ":memory:" gives a throwaway in-memory store.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// an in-memory database exists per connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a run and its per-file results in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, directory, pattern, total, file_count, failed_count, interrupted, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Directory, run.Pattern, run.Total, run.FileCount, run.FailedCount,
		run.Interrupted, run.StartedAt, run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO file_results (run_id, path, match_count, error_message, duration_ms)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare file insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range run.Files {
		if _, err := stmt.ExecContext(ctx, run.ID, f.Path, f.Count, f.Error, f.Duration.Milliseconds()); err != nil {
			return fmt.Errorf("insert file result %s: %w", f.Path, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs first, without per-file results.
// A limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, directory, pattern, total, file_count, failed_count, interrupted, started_at, duration_ms
		FROM runs ORDER BY started_at DESC, id`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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

// GetRun returns one run with its per-file results ordered by path.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, directory, pattern, total, file_count, failed_count, interrupted, started_at, duration_ms
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT path, match_count, error_message, duration_ms
		FROM file_results WHERE run_id = ? ORDER BY path`, id)
	if err != nil {
		return Run{}, fmt.Errorf("query file results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f FileResult
		var ms int64
		if err := rows.Scan(&f.Path, &f.Count, &f.Error, &ms); err != nil {
			return Run{}, fmt.Errorf("scan file result: %w", err)
		}
		f.Duration = time.Duration(ms) * time.Millisecond
		run.Files = append(run.Files, f)
	}
	return run, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var ms int64
	err := row.Scan(&run.ID, &run.Directory, &run.Pattern, &run.Total, &run.FileCount,
		&run.FailedCount, &run.Interrupted, &run.StartedAt, &ms)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Duration = time.Duration(ms) * time.Millisecond
	return run, nil
}
