// Package storage persists scrape runs to a local SQLite database so
// past results can be re-exported and inspected without re-querying the
// provider.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/movingtraffic/suggestscope/pkg/records"
)

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id              INTEGER PRIMARY KEY,
  started_at      TEXT NOT NULL,
  lang            TEXT NOT NULL,
  region          TEXT NOT NULL,
  max_per_variant INTEGER NOT NULL,
  seed_count      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS suggestions (
  id         INTEGER PRIMARY KEY,
  run_id     INTEGER NOT NULL REFERENCES runs(id),
  seed       TEXT NOT NULL,
  variant    TEXT NOT NULL,
  query_sent TEXT NOT NULL,
  suggestion TEXT NOT NULL,
  UNIQUE(run_id, seed, suggestion)
);
CREATE INDEX IF NOT EXISTS idx_suggestions_run ON suggestions(run_id);
CREATE INDEX IF NOT EXISTS idx_suggestions_seed ON suggestions(run_id, seed);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// RunMeta describes the configuration a run was started with.
type RunMeta struct {
	Lang          string
	Region        string
	MaxPerVariant int
	SeedCount     int
}

// Run is a stored run with its aggregate suggestion count.
type Run struct {
	ID              int64
	StartedAt       time.Time
	Lang            string
	Region          string
	MaxPerVariant   int
	SeedCount       int
	SuggestionCount int
}

// SaveRun stores a completed (possibly partial) run and its result set
// in one transaction, returning the new run id.
func (d *DB) SaveRun(ctx context.Context, meta RunMeta, rs records.ResultSet) (runID int64, err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs(started_at, lang, region, max_per_variant, seed_count) VALUES(?,?,?,?,?)`,
		time.Now().UTC().Format(time.RFC3339), meta.Lang, meta.Region, meta.MaxPerVariant, meta.SeedCount)
	if err != nil {
		return 0, err
	}
	runID, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, r := range rs {
		// The collector already dedups; OR IGNORE keeps a re-saved
		// result set from failing on the unique constraint.
		if _, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO suggestions(run_id, seed, variant, query_sent, suggestion) VALUES(?,?,?,?,?)`,
			runID, r.Seed, r.Variant, r.QuerySent, r.Suggestion); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns all stored runs, newest first.
func (d *DB) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := d.sql.QueryContext(ctx, `
SELECT r.id, r.started_at, r.lang, r.region, r.max_per_variant, r.seed_count,
       (SELECT COUNT(*) FROM suggestions s WHERE s.run_id = r.id)
FROM runs r ORDER BY r.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			startedAt string
		)
		if err := rows.Scan(&r.ID, &startedAt, &r.Lang, &r.Region, &r.MaxPerVariant, &r.SeedCount, &r.SuggestionCount); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRunID returns the id of the most recent run.
func (d *DB) LatestRunID(ctx context.Context) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx, `SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no runs stored yet")
	}
	return id, err
}

// GetRunRecords returns the result set of a stored run in its original
// discovery order.
func (d *DB) GetRunRecords(ctx context.Context, runID int64) (records.ResultSet, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT seed, variant, query_sent, suggestion FROM suggestions WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rs records.ResultSet
	for rows.Next() {
		var r records.SuggestionRecord
		if err := rows.Scan(&r.Seed, &r.Variant, &r.QuerySent, &r.Suggestion); err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, rows.Err()
}

// SeedStats returns the per-seed unique suggestion counts of a run,
// ordered by each seed's first appearance.
func (d *DB) SeedStats(ctx context.Context, runID int64) ([]records.SeedCount, error) {
	rows, err := d.sql.QueryContext(ctx, `
SELECT seed, COUNT(*) FROM suggestions
WHERE run_id = ?
GROUP BY seed ORDER BY MIN(id)`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []records.SeedCount
	for rows.Next() {
		var c records.SeedCount
		if err := rows.Scan(&c.Seed, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
