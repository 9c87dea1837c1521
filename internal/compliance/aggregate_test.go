package compliance

import (
	"reflect"
	"testing"
)

// makeResult builds a DeviceAuditResult with derived counts and status.
func makeResult(device string, violations ...Violation) DeviceAuditResult {
	res := DeviceAuditResult{
		Device:     device,
		Violations: violations,
		Status:     StatusPass,
	}
	for _, v := range violations {
		res.Counts.add(v.Severity)
	}
	if len(violations) > 0 {
		res.Status = StatusFail
	}
	return res
}

func highViolation(rule string) Violation {
	return Violation{
		RuleName:    rule,
		Description: "Check " + rule,
		Severity:    SeverityHigh,
		Scope:       ScopeGlobal,
		Type:        ViolationMissingRequired,
	}
}

func TestAggregate_TwoDevices(t *testing.T) {
	pass := makeResult("Router1")
	fail := makeResult("Switch1",
		highViolation("enable_secret"),
		Violation{RuleName: "ssh", Severity: SeverityMedium, Scope: ScopeLine, Type: ViolationMissingRequired},
	)

	report := Aggregate([]DeviceAuditResult{pass, fail})

	// Fleet totals equal the failing device's counts exactly.
	if report.Totals != fail.Counts {
		t.Errorf("Totals = %+v, want %+v", report.Totals, fail.Counts)
	}
	if report.Passed != 1 || report.Failed != 1 {
		t.Errorf("Passed/Failed = %d/%d, want 1/1", report.Passed, report.Failed)
	}
	if report.TotalViolations() != 2 {
		t.Errorf("TotalViolations() = %d, want 2", report.TotalViolations())
	}

	// Submission order is preserved.
	if report.Results[0].Device != "Router1" || report.Results[1].Device != "Switch1" {
		t.Errorf("device order = [%s, %s], want [Router1, Switch1]",
			report.Results[0].Device, report.Results[1].Device)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	input := []DeviceAuditResult{
		makeResult("A", highViolation("r1")),
		makeResult("B"),
		makeResult("C", highViolation("r1"), highViolation("r2")),
	}

	first := Aggregate(input)
	second := Aggregate(input)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs:\n first = %+v\nsecond = %+v", first, second)
	}
}

func TestAggregate_TotalsSumPerDevice(t *testing.T) {
	input := []DeviceAuditResult{
		makeResult("A",
			highViolation("r1"),
			Violation{RuleName: "r2", Severity: SeverityLow, Type: ViolationMissingRequired},
		),
		makeResult("B",
			Violation{RuleName: "r3", Severity: SeverityMedium, Type: ViolationForbiddenPresent},
		),
	}

	report := Aggregate(input)

	var want SeverityCounts
	for _, res := range input {
		want.High += res.Counts.High
		want.Medium += res.Counts.Medium
		want.Low += res.Counts.Low
	}
	if report.Totals != want {
		t.Errorf("Totals = %+v, want %+v", report.Totals, want)
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	input := []DeviceAuditResult{makeResult("A", highViolation("r1"))}
	snapshot := makeResult("A", highViolation("r1"))

	Aggregate(input)

	if !reflect.DeepEqual(input[0], snapshot) {
		t.Errorf("input mutated by Aggregate: %+v", input[0])
	}
}

func TestAggregate_Empty(t *testing.T) {
	report := Aggregate(nil)
	if len(report.Results) != 0 || report.TotalViolations() != 0 {
		t.Errorf("empty aggregation produced %+v", report)
	}
}

func TestFleetReport_Device(t *testing.T) {
	report := Aggregate([]DeviceAuditResult{makeResult("Router1"), makeResult("Switch1")})

	if res := report.Device("Switch1"); res == nil || res.Device != "Switch1" {
		t.Errorf("Device(%q) = %+v", "Switch1", res)
	}
	if res := report.Device("nope"); res != nil {
		t.Errorf("Device(%q) = %+v, want nil", "nope", res)
	}
}
