package fleet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/netaudit/netaudit/internal/compliance"
)

// SQLiteStore implements Store using modernc.org/sqlite (pure Go, no CGO).
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_runs (
		id               TEXT PRIMARY KEY,
		template_name    TEXT NOT NULL DEFAULT '',
		template_version TEXT NOT NULL DEFAULT '',
		started_at       TEXT NOT NULL,
		finished_at      TEXT NOT NULL,
		devices          INTEGER NOT NULL DEFAULT 0,
		passed           INTEGER NOT NULL DEFAULT 0,
		failed           INTEGER NOT NULL DEFAULT 0,
		high_total       INTEGER NOT NULL DEFAULT 0,
		medium_total     INTEGER NOT NULL DEFAULT 0,
		low_total        INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS device_results (
		run_id     TEXT NOT NULL REFERENCES audit_runs(id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		device     TEXT NOT NULL,
		status     TEXT NOT NULL,
		result     TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_finished ON audit_runs(finished_at DESC);
	CREATE INDEX IF NOT EXISTS idx_results_device ON device_results(device);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun persists a completed run with its full report.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *AuditRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	report := run.Report
	_, err = tx.ExecContext(ctx,
		`INSERT INTO audit_runs (id, template_name, template_version, started_at, finished_at,
		                         devices, passed, failed, high_total, medium_total, low_total)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.TemplateName, run.TemplateVersion,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		len(report.Results), report.Passed, report.Failed,
		report.Totals.High, report.Totals.Medium, report.Totals.Low,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i := range report.Results {
		res := &report.Results[i]
		blob, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshal result for %s: %w", res.Device, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO device_results (run_id, position, device, status, result) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, res.Device, string(res.Status), string(blob),
		)
		if err != nil {
			return fmt.Errorf("insert result for %s: %w", res.Device, err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run with its full report.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*AuditRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRunLocked(ctx, id)
}

func (s *SQLiteStore) getRunLocked(ctx context.Context, id string) (*AuditRun, error) {
	var run AuditRun
	var started, finished string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, template_name, template_version, started_at, finished_at
		 FROM audit_runs WHERE id = ?`, id).
		Scan(&run.ID, &run.TemplateName, &run.TemplateVersion, &started, &finished)
	if err != nil {
		return nil, err
	}
	if run.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT result FROM device_results WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []compliance.DeviceAuditResult
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		var res compliance.DeviceAuditResult
		if err := json.Unmarshal([]byte(blob), &res); err != nil {
			return nil, fmt.Errorf("unmarshal device result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	run.Report = compliance.Aggregate(results)
	return &run, nil
}

// LatestRun retrieves the most recently finished run, or nil if none exist.
func (s *SQLiteStore) LatestRun(ctx context.Context) (*AuditRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM audit_runs ORDER BY finished_at DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.getRunLocked(ctx, id)
}

// ListRuns returns run summaries, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, template_name, template_version, started_at, finished_at,
	                 devices, passed, failed, high_total + medium_total + low_total
	          FROM audit_runs ORDER BY finished_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var sum RunSummary
		var started, finished string
		if err := rows.Scan(&sum.ID, &sum.TemplateName, &sum.TemplateVersion,
			&started, &finished, &sum.Devices, &sum.Passed, &sum.Failed, &sum.Violations); err != nil {
			return nil, err
		}
		if sum.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if sum.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// DeleteRun removes a run; device results cascade.
func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM audit_runs WHERE id = ?`, id)
	return err
}
