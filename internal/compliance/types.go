// Package compliance provides the rule model and evaluation engine for
// auditing network device configurations against a golden template.
package compliance

import "regexp"

// Severity classifies how serious a rule violation is.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Rank returns the ordinal weight of a severity (HIGH > MEDIUM > LOW).
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ViolationType identifies why a rule failed.
type ViolationType string

const (
	ViolationMissingRequired  ViolationType = "MISSING_REQUIRED"
	ViolationForbiddenPresent ViolationType = "FORBIDDEN_PRESENT"
)

// AuditStatus is the per-device pass/fail gate.
type AuditStatus string

const (
	StatusPass AuditStatus = "PASS"
	StatusFail AuditStatus = "FAIL"
)

// RuleScope names the configuration section a rule belongs to. Scope is
// organizational: it drives report grouping, not matching semantics.
type RuleScope string

const (
	ScopeGlobal    RuleScope = "global"
	ScopeInterface RuleScope = "interface"
	ScopeLine      RuleScope = "line"
	ScopeSecurity  RuleScope = "security"
	ScopeRouting   RuleScope = "routing"
	ScopeForbidden RuleScope = "forbidden"
)

// ComplianceRule is a single golden-configuration check. Rules are built
// only by ParseTemplate and are immutable afterwards; the compiled pattern
// is cached in the rule for the lifetime of the template.
type ComplianceRule struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Pattern     string    `json:"pattern"`
	Required    bool      `json:"required"`
	Severity    Severity  `json:"severity"`
	Scope       RuleScope `json:"scope"`

	re *regexp.Regexp
}

// RuleGroup is an ordered set of rules sharing a scope.
type RuleGroup struct {
	Scope RuleScope        `json:"scope"`
	Rules []ComplianceRule `json:"rules"`
}

// ComplianceTemplate is a named, versioned golden configuration: ordered
// rule groups plus a forbidden group whose entries penalize presence.
// A loaded template is read-only and safe for concurrent audits.
type ComplianceTemplate struct {
	Name      string           `json:"name"`
	Version   string           `json:"version"`
	Groups    []RuleGroup      `json:"groups"`
	Forbidden []ComplianceRule `json:"forbidden"`
}

// RuleCount returns the number of rules in the template, forbidden included.
func (t *ComplianceTemplate) RuleCount() int {
	n := len(t.Forbidden)
	for _, g := range t.Groups {
		n += len(g.Rules)
	}
	return n
}

// Violation records one failed rule for one device.
type Violation struct {
	RuleName    string        `json:"rule"`
	Description string        `json:"description"`
	Severity    Severity      `json:"severity"`
	Scope       RuleScope     `json:"scope"`
	Type        ViolationType `json:"type"`
}

// SeverityCounts holds violation counts broken down by severity.
type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Total returns the sum across all severities.
func (c SeverityCounts) Total() int {
	return c.High + c.Medium + c.Low
}

func (c *SeverityCounts) add(s Severity) {
	switch s {
	case SeverityHigh:
		c.High++
	case SeverityMedium:
		c.Medium++
	case SeverityLow:
		c.Low++
	}
}

// DeviceAuditResult is the outcome of auditing one device in one run.
type DeviceAuditResult struct {
	Device     string         `json:"device"`
	Violations []Violation    `json:"violations"`
	Counts     SeverityCounts `json:"counts"`
	Status     AuditStatus    `json:"status"`

	// Unreachable marks a device whose configuration could not be
	// retrieved. The result is then an audit of empty configuration;
	// the PASS/FAIL derivation is unchanged.
	Unreachable    bool   `json:"unreachable,omitempty"`
	RetrievalError string `json:"retrieval_error,omitempty"`
}

// FleetReport aggregates the audit results of all devices in one run.
// Results keep submission order; Totals are fleet-wide severity counts.
type FleetReport struct {
	Results []DeviceAuditResult `json:"results"`
	Totals  SeverityCounts      `json:"totals"`
	Passed  int                 `json:"passed"`
	Failed  int                 `json:"failed"`
}

// Device returns the result for the given device identifier, or nil if the
// device was not part of the run.
func (r *FleetReport) Device(id string) *DeviceAuditResult {
	for i := range r.Results {
		if r.Results[i].Device == id {
			return &r.Results[i]
		}
	}
	return nil
}

// TotalViolations returns the fleet-wide violation count.
func (r *FleetReport) TotalViolations() int {
	return r.Totals.Total()
}
