// Package history records completed playbook runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Run status values.
const (
	StatusOK = "ok"
	// StatusDegraded marks a run whose playbook lookup failed; its artifacts
	// carry error records instead of controls.
	StatusDegraded = "degraded"
)

// createdAtLayout is fixed-width so created_at sorts chronologically as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	run_id          TEXT NOT NULL UNIQUE,
	use_case_id     TEXT NOT NULL,
	sector          TEXT NOT NULL,
	system_type     TEXT NOT NULL,
	risk_tier       TEXT NOT NULL,
	status          TEXT NOT NULL,
	output_dir      TEXT NOT NULL DEFAULT '',
	archive_path    TEXT NOT NULL DEFAULT '',
	manifest_digest TEXT NOT NULL DEFAULT '',
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_use_case ON runs(use_case_id);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

// Entry is one recorded run.
type Entry struct {
	ID             string    `json:"id"`
	RunID          string    `json:"run_id"`
	UseCaseID      string    `json:"use_case_id"`
	Sector         string    `json:"sector"`
	SystemType     string    `json:"system_type"`
	RiskTier       string    `json:"risk_tier"`
	Status         string    `json:"status"`
	OutputDir      string    `json:"output_dir,omitempty"`
	ArchivePath    string    `json:"archive_path,omitempty"`
	ManifestDigest string    `json:"manifest_digest,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single writer; sqlite serializes anyway.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate history: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts e. A missing ID is filled with a fresh UUID and a zero
// CreatedAt with the current time. The stored entry is returned.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, run_id, use_case_id, sector, system_type, risk_tier,
			status, output_dir, archive_path, manifest_digest, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RunID, e.UseCaseID, e.Sector, e.SystemType, e.RiskTier,
		e.Status, e.OutputDir, e.ArchivePath, e.ManifestDigest,
		e.CreatedAt.Format(createdAtLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record run %s: %w", e.RunID, err)
	}
	return e, nil
}

const selectColumns = `SELECT id, run_id, use_case_id, sector, system_type, risk_tier,
	status, output_dir, archive_path, manifest_digest, created_at FROM runs`

// List returns the most recent runs first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	q := selectColumns + " ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get returns the run with the given run id.
func (s *Store) Get(ctx context.Context, runID string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE run_id = ?", runID)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var e Entry
	var created string
	err := sc.Scan(&e.ID, &e.RunID, &e.UseCaseID, &e.Sector, &e.SystemType, &e.RiskTier,
		&e.Status, &e.OutputDir, &e.ArchivePath, &e.ManifestDigest, &created)
	if err != nil {
		return Entry{}, err
	}
	e.CreatedAt, err = time.Parse(createdAtLayout, created)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	return e, nil
}
