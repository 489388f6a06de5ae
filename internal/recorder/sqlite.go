package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// SQLiteRecorder persists run summaries to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// nowFunc stamps records that carry no RecordedAt (override in tests).
var nowFunc = time.Now

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp            INTEGER NOT NULL,
			label                TEXT,
			model                TEXT NOT NULL,
			simulations          INTEGER,
			years                INTEGER,
			seed                 INTEGER,
			failures             INTEGER,
			failure_rate_percent REAL,
			mean_final_balance   REAL,
			p10                  REAL,
			p25                  REAL,
			p50                  REAL,
			p75                  REAL,
			p90                  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores one aggregate result.
func (r *SQLiteRecorder) RecordRun(res *domain.AggregateResult, meta RunMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := meta.RecordedAt
	if ts.IsZero() {
		ts = nowFunc()
	}

	_, err := r.db.Exec(`INSERT INTO runs
		(timestamp, label, model, simulations, years, seed, failures,
		 failure_rate_percent, mean_final_balance, p10, p25, p50, p75, p90)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ts.Unix(), meta.Label, res.ModelKind.String(), res.SimulationCount, res.Years, res.Seed, res.FailureCount,
		res.FailureRatePercent, res.MeanFinalBalance, res.P10, res.P25, res.P50, res.P75, res.P90)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns all runs.
func (r *SQLiteRecorder) ListRuns(limit int) ([]RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(`SELECT id, timestamp, label, model, simulations, years, seed, failures,
		failure_rate_percent, mean_final_balance, p10, p25, p50, p75, p90
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec   RunRecord
			ts    int64
			model string
		)
		res := &rec.Result
		if err := rows.Scan(&rec.ID, &ts, &rec.Label, &model, &res.SimulationCount, &res.Years, &res.Seed, &res.FailureCount,
			&res.FailureRatePercent, &res.MeanFinalBalance, &res.P10, &res.P25, &res.P50, &res.P75, &res.P90); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		kind, err := domain.ParseReturnModelKind(model)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", rec.ID, err)
		}
		res.ModelKind = kind
		rec.RecordedAt = time.Unix(ts, 0).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
