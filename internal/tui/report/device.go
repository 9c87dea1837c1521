package report

import (
	"fmt"
	"strings"

	"github.com/netaudit/netaudit/internal/compliance"
)

// severityLabel returns a colored severity tag.
func severityLabel(s compliance.Severity) string {
	switch s {
	case compliance.SeverityHigh:
		return failStyle.Render("HIGH")
	case compliance.SeverityMedium:
		return mediumStyle.Render("MED ")
	case compliance.SeverityLow:
		return passStyle.Render("LOW ")
	default:
		return dimStyle.Render("??? ")
	}
}

// statusLabel returns a colored pass/fail tag.
func statusLabel(s compliance.AuditStatus) string {
	if s == compliance.StatusPass {
		return passStyle.Render("PASS")
	}
	return failStyle.Render("FAIL")
}

// violationTypeLabel names a violation kind for display.
func violationTypeLabel(t compliance.ViolationType) string {
	switch t {
	case compliance.ViolationMissingRequired:
		return "missing"
	case compliance.ViolationForbiddenPresent:
		return "forbidden"
	default:
		return string(t)
	}
}

// renderSummaryBar renders the fleet-wide totals box.
func renderSummaryBar(report *compliance.FleetReport) string {
	parts := []string{
		fmt.Sprintf("Devices %d", len(report.Results)),
		passStyle.Render(fmt.Sprintf("Pass %d", report.Passed)),
		failStyle.Render(fmt.Sprintf("Fail %d", report.Failed)),
		failStyle.Render(fmt.Sprintf("High %d", report.Totals.High)),
		mediumStyle.Render(fmt.Sprintf("Medium %d", report.Totals.Medium)),
		passStyle.Render(fmt.Sprintf("Low %d", report.Totals.Low)),
	}
	return summaryBoxStyle.Render(strings.Join(parts, dimStyle.Render("  |  ")))
}

// renderDevice renders one device section with its violations.
func renderDevice(res compliance.DeviceAuditResult) string {
	var b strings.Builder

	name := deviceNameStyle.Render(res.Device)
	count := deviceCountStyle.Render(fmt.Sprintf("%d violations", len(res.Violations)))
	b.WriteString(fmt.Sprintf(" %s  %s  %s\n", name, statusLabel(res.Status), count))

	if res.Unreachable {
		b.WriteString(failStyle.Render("   ! unreachable"))
		if res.RetrievalError != "" {
			b.WriteString(dimStyle.Render(": " + res.RetrievalError))
		}
		b.WriteString("\n")
	}

	if len(res.Violations) == 0 {
		b.WriteString(dimStyle.Render("   all checks passed"))
		b.WriteString("\n")
		return b.String()
	}

	for _, v := range res.Violations {
		b.WriteString(renderViolation(v))
		b.WriteString("\n")
	}
	return b.String()
}

// renderViolation renders a single violation line.
func renderViolation(v compliance.Violation) string {
	return fmt.Sprintf("   %s %-9s %-32s %s",
		severityLabel(v.Severity),
		violationTypeLabel(v.Type),
		v.RuleName,
		dimStyle.Render(v.Description))
}
