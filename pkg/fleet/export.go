package fleet

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// exportDoc is the YAML shape of an exported compliance report.
type exportDoc struct {
	ComplianceReport struct {
		Timestamp       string         `yaml:"timestamp"`
		RunID           string         `yaml:"run_id,omitempty"`
		Template        string         `yaml:"template,omitempty"`
		TemplateVersion string         `yaml:"template_version,omitempty"`
		Totals          exportTotals   `yaml:"totals"`
		Devices         []exportDevice `yaml:"devices"`
	} `yaml:"compliance_report"`
}

type exportTotals struct {
	Violations int `yaml:"violations"`
	High       int `yaml:"high"`
	Medium     int `yaml:"medium"`
	Low        int `yaml:"low"`
	Passed     int `yaml:"passed_devices"`
	Failed     int `yaml:"failed_devices"`
}

type exportDevice struct {
	Device         string            `yaml:"device"`
	Status         string            `yaml:"status"`
	Unreachable    bool              `yaml:"unreachable,omitempty"`
	RetrievalError string            `yaml:"retrieval_error,omitempty"`
	Violations     []exportViolation `yaml:"violations"`
}

type exportViolation struct {
	Rule        string `yaml:"rule"`
	Type        string `yaml:"type"`
	Severity    string `yaml:"severity"`
	Scope       string `yaml:"scope"`
	Description string `yaml:"description"`
}

// MarshalRun renders a completed run as a YAML compliance report document.
// The export timestamp is the run's finish time.
func MarshalRun(run *AuditRun) ([]byte, error) {
	var doc exportDoc
	doc.ComplianceReport.Timestamp = run.FinishedAt.UTC().Format(time.RFC3339)
	doc.ComplianceReport.RunID = run.ID
	doc.ComplianceReport.Template = run.TemplateName
	doc.ComplianceReport.TemplateVersion = run.TemplateVersion

	report := run.Report
	doc.ComplianceReport.Totals = exportTotals{
		Violations: report.TotalViolations(),
		High:       report.Totals.High,
		Medium:     report.Totals.Medium,
		Low:        report.Totals.Low,
		Passed:     report.Passed,
		Failed:     report.Failed,
	}

	doc.ComplianceReport.Devices = make([]exportDevice, 0, len(report.Results))
	for _, res := range report.Results {
		dev := exportDevice{
			Device:         res.Device,
			Status:         string(res.Status),
			Unreachable:    res.Unreachable,
			RetrievalError: res.RetrievalError,
			Violations:     make([]exportViolation, 0, len(res.Violations)),
		}
		for _, v := range res.Violations {
			dev.Violations = append(dev.Violations, exportViolation{
				Rule:        v.RuleName,
				Type:        string(v.Type),
				Severity:    string(v.Severity),
				Scope:       string(v.Scope),
				Description: v.Description,
			})
		}
		doc.ComplianceReport.Devices = append(doc.ComplianceReport.Devices, dev)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return out, nil
}

// ReportFilename returns the timestamped export filename for a run finished
// at the given time, e.g. "compliance_report_20260115_093042.yaml".
func ReportFilename(t time.Time) string {
	return fmt.Sprintf("compliance_report_%s.yaml", t.UTC().Format("20060102_150405"))
}
