package fleet

import "context"

// Store defines the persistence interface for audit-run history.
// The primary implementation uses SQLite (see sqlite.go).
type Store interface {
	// SaveRun persists a completed run with its full report.
	SaveRun(ctx context.Context, run *AuditRun) error

	// GetRun retrieves a run, report included.
	GetRun(ctx context.Context, id string) (*AuditRun, error)

	// LatestRun retrieves the most recently finished run, or nil if the
	// history is empty.
	LatestRun(ctx context.Context) (*AuditRun, error)

	// ListRuns returns summaries of stored runs, newest first, up to limit
	// (0 means no limit).
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)

	// DeleteRun removes a run and its per-device results.
	DeleteRun(ctx context.Context, id string) error

	// Lifecycle
	Close() error
}
