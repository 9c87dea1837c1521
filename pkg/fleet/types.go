// Package fleet orchestrates compliance audits across many devices and
// keeps a history of completed runs.
//
// A Runner fans out per-device audits against one shared read-only
// template; results are aggregated into a FleetReport and may be persisted
// through a Store or exported as a YAML document.
package fleet

import (
	"time"

	"github.com/google/uuid"

	"github.com/netaudit/netaudit/internal/compliance"
)

// AuditRun is one completed fleet audit.
type AuditRun struct {
	ID              string                  `json:"id"`
	TemplateName    string                  `json:"template_name"`
	TemplateVersion string                  `json:"template_version"`
	StartedAt       time.Time               `json:"started_at"`
	FinishedAt      time.Time               `json:"finished_at"`
	Report          *compliance.FleetReport `json:"report"`
}

// NewRunID returns a fresh audit-run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// RunSummary is a compact view of a stored run, used for listings.
type RunSummary struct {
	ID              string    `json:"id"`
	TemplateName    string    `json:"template_name"`
	TemplateVersion string    `json:"template_version"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Devices         int       `json:"devices"`
	Passed          int       `json:"passed"`
	Failed          int       `json:"failed"`
	Violations      int       `json:"violations"`
}

// Summarize derives the listing view of a run.
func (r *AuditRun) Summarize() RunSummary {
	s := RunSummary{
		ID:              r.ID,
		TemplateName:    r.TemplateName,
		TemplateVersion: r.TemplateVersion,
		StartedAt:       r.StartedAt,
		FinishedAt:      r.FinishedAt,
	}
	if r.Report != nil {
		s.Devices = len(r.Report.Results)
		s.Passed = r.Report.Passed
		s.Failed = r.Report.Failed
		s.Violations = r.Report.TotalViolations()
	}
	return s
}
