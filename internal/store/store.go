// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps a history of extraction runs in a SQLite database so
// totals from successive report editions can be compared.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nics-totals/pkg/types"
)

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// RunSummary is one row of the run history listing.
type RunSummary struct {
	ID          int64         `json:"id" yaml:"id"`
	SourcePDF   string        `json:"source_pdf" yaml:"source_pdf"`
	Backend     types.Backend `json:"backend" yaml:"backend"`
	ExtractedAt time.Time     `json:"extracted_at" yaml:"extracted_at"`
	Years       int           `json:"years" yaml:"years"`
	Total       int64         `json:"total_background_checks" yaml:"total_background_checks"`
}

// New opens or creates the database at cfg.DBPath and creates the schema
// if it does not exist.
func New(cfg types.StoreConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_pdf TEXT NOT NULL,
			backend TEXT NOT NULL,
			extracted_at TEXT NOT NULL,
			pages INTEGER,
			lines INTEGER,
			accepted INTEGER,
			rejected INTEGER,
			malformed INTEGER,
			mismatched INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS year_totals (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			year INTEGER NOT NULL,
			total INTEGER NOT NULL,
			PRIMARY KEY (run_id, year)
		)`,
		`CREATE TABLE IF NOT EXISTS month_totals (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			total INTEGER NOT NULL,
			PRIMARY KEY (run_id, year, month)
		)`,
		`CREATE TABLE IF NOT EXISTS state_totals (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			year INTEGER NOT NULL,
			state TEXT NOT NULL,
			total INTEGER NOT NULL,
			PRIMARY KEY (run_id, year, state)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source_pdf)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save records run and all of its totals in one transaction and returns
// the new run id.
func (s *Store) Save(ctx context.Context, run types.Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source_pdf, backend, extracted_at, pages, lines, accepted, rejected, malformed, mismatched)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.SourcePDF, string(run.Backend), run.ExtractedAt.UTC().Format(time.RFC3339Nano),
		run.Stats.Pages, run.Stats.Lines, run.Stats.Accepted, run.Stats.Rejected,
		run.Stats.Malformed, run.Stats.Mismatched,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, y := range run.Years {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO year_totals (run_id, year, total) VALUES (?, ?, ?)`,
			runID, y.Year, y.Total,
		); err != nil {
			return 0, fmt.Errorf("inserting year %d: %w", y.Year, err)
		}
	}

	monthStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO month_totals (run_id, year, month, total) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing month insert: %w", err)
	}
	defer monthStmt.Close()
	for _, m := range run.Months {
		if _, err := monthStmt.ExecContext(ctx, runID, m.Year, m.Month, m.Total); err != nil {
			return 0, fmt.Errorf("inserting month %d-%02d: %w", m.Year, m.Month, err)
		}
	}

	stateStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO state_totals (run_id, year, state, total) VALUES (?, ?, ?, ?)
		 ON CONFLICT(run_id, year, state) DO UPDATE SET total = total + excluded.total`)
	if err != nil {
		return 0, fmt.Errorf("preparing state insert: %w", err)
	}
	defer stateStmt.Close()
	for _, st := range run.States {
		if _, err := stateStmt.ExecContext(ctx, runID, st.Year, st.State, st.Total); err != nil {
			return 0, fmt.Errorf("inserting state %s %d: %w", st.State, st.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists up to limit runs, newest first, with their year count and
// grand total across all years.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.source_pdf, r.backend, r.extracted_at,
			COUNT(y.year), COALESCE(SUM(y.total), 0)
		 FROM runs r LEFT JOIN year_totals y ON y.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r       RunSummary
			backend string
			at      string
		)
		if err := rows.Scan(&r.ID, &r.SourcePDF, &backend, &at, &r.Years, &r.Total); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Backend = types.Backend(backend)
		t, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp of run %d: %w", r.ID, err)
		}
		r.ExtractedAt = t
		out = append(out, r)
	}
	return out, rows.Err()
}

// YearTotals returns the yearly totals recorded for runID, oldest first.
func (s *Store) YearTotals(ctx context.Context, runID int64) ([]types.YearTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, total FROM year_totals WHERE run_id = ? ORDER BY year`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying year totals: %w", err)
	}
	defer rows.Close()

	var out []types.YearTotal
	for rows.Next() {
		var y types.YearTotal
		if err := rows.Scan(&y.Year, &y.Total); err != nil {
			return nil, fmt.Errorf("scanning year total: %w", err)
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

// MonthTotals returns the monthly totals recorded for runID in calendar
// order.
func (s *Store) MonthTotals(ctx context.Context, runID int64) ([]types.MonthTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, month, total FROM month_totals WHERE run_id = ? ORDER BY year, month`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying month totals: %w", err)
	}
	defer rows.Close()

	var out []types.MonthTotal
	for rows.Next() {
		var m types.MonthTotal
		if err := rows.Scan(&m.Year, &m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("scanning month total: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
