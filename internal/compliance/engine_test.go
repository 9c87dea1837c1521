package compliance

import (
	"reflect"
	"testing"
)

// makeTemplate assembles a template from pre-compiled rules.
func makeTemplate(groups []RuleGroup, forbidden ...ComplianceRule) *ComplianceTemplate {
	return &ComplianceTemplate{
		Name:      "test-baseline",
		Version:   "1.0",
		Groups:    groups,
		Forbidden: forbidden,
	}
}

func singleRequiredTemplate() *ComplianceTemplate {
	return makeTemplate([]RuleGroup{
		{Scope: ScopeGlobal, Rules: []ComplianceRule{
			makeRule("enable_secret", "enable secret", true, SeverityHigh, ScopeGlobal),
		}},
	})
}

func TestAudit_RequiredPresent(t *testing.T) {
	tmpl := singleRequiredTemplate()
	res := Audit(tmpl, "R1", "hostname R1\nenable secret 5 xxx")

	if len(res.Violations) != 0 {
		t.Fatalf("expected 0 violations, got %d", len(res.Violations))
	}
	if res.Status != StatusPass {
		t.Errorf("Status = %q, want %q", res.Status, StatusPass)
	}
	if res.Device != "R1" {
		t.Errorf("Device = %q, want %q", res.Device, "R1")
	}
}

func TestAudit_RequiredMissing(t *testing.T) {
	tmpl := singleRequiredTemplate()
	res := Audit(tmpl, "R1", "hostname R1")

	if len(res.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(res.Violations))
	}
	v := res.Violations[0]
	if v.Type != ViolationMissingRequired {
		t.Errorf("Type = %q, want %q", v.Type, ViolationMissingRequired)
	}
	if v.Severity != SeverityHigh {
		t.Errorf("Severity = %q, want %q", v.Severity, SeverityHigh)
	}
	if res.Status != StatusFail {
		t.Errorf("Status = %q, want %q", res.Status, StatusFail)
	}
	if res.Counts.High != 1 || res.Counts.Total() != 1 {
		t.Errorf("Counts = %+v, want exactly one HIGH", res.Counts)
	}
}

func TestAudit_ForbiddenPresent(t *testing.T) {
	tmpl := makeTemplate(nil,
		makeRule("no_telnet", "transport input telnet", false, SeverityHigh, ScopeForbidden),
	)
	res := Audit(tmpl, "SW1", "line vty 0 4\n transport input telnet\nend")

	if len(res.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(res.Violations))
	}
	v := res.Violations[0]
	if v.Type != ViolationForbiddenPresent {
		t.Errorf("Type = %q, want %q", v.Type, ViolationForbiddenPresent)
	}
	if v.Severity != SeverityHigh {
		t.Errorf("Severity = %q, want %q", v.Severity, SeverityHigh)
	}
	if res.Status != StatusFail {
		t.Errorf("Status = %q, want %q", res.Status, StatusFail)
	}
}

func TestAudit_EmptyConfig(t *testing.T) {
	tmpl := makeTemplate([]RuleGroup{
		{Scope: ScopeGlobal, Rules: []ComplianceRule{
			makeRule("enable_secret", "enable secret", true, SeverityHigh, ScopeGlobal),
			makeRule("ntp", "ntp server", true, SeverityMedium, ScopeGlobal),
		}},
		{Scope: ScopeLine, Rules: []ComplianceRule{
			makeRule("ssh", "transport input ssh", true, SeverityMedium, ScopeLine),
		}},
	},
		makeRule("no_telnet", "transport input telnet", false, SeverityHigh, ScopeForbidden),
	)

	res := Audit(tmpl, "R9", "")

	// Every required rule is missing; the forbidden rule trivially passes.
	if len(res.Violations) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(res.Violations))
	}
	for _, v := range res.Violations {
		if v.Type != ViolationMissingRequired {
			t.Errorf("violation %s: Type = %q, want %q", v.RuleName, v.Type, ViolationMissingRequired)
		}
	}
	if res.Status != StatusFail {
		t.Errorf("Status = %q, want %q", res.Status, StatusFail)
	}
}

func TestAudit_OptionalRuleNeverPenalized(t *testing.T) {
	tmpl := makeTemplate([]RuleGroup{
		{Scope: ScopeLine, Rules: []ComplianceRule{
			makeRule("legacy_console", "line aux 0", false, SeverityLow, ScopeLine),
		}},
	})

	// Present or absent, an optional rule in a normal group emits nothing.
	for _, config := range []string{"line aux 0\n exec-timeout 0 0", "hostname R1"} {
		res := Audit(tmpl, "R1", config)
		if len(res.Violations) != 0 {
			t.Errorf("config %q: expected 0 violations, got %d", config, len(res.Violations))
		}
		if res.Status != StatusPass {
			t.Errorf("config %q: Status = %q, want %q", config, res.Status, StatusPass)
		}
	}
}

func TestAudit_ViolationOrder(t *testing.T) {
	tmpl := makeTemplate([]RuleGroup{
		{Scope: ScopeGlobal, Rules: []ComplianceRule{
			makeRule("g1", "service password-encryption", true, SeverityLow, ScopeGlobal),
			makeRule("g2", "enable secret", true, SeverityHigh, ScopeGlobal),
		}},
		{Scope: ScopeLine, Rules: []ComplianceRule{
			makeRule("l1", "transport input ssh", true, SeverityMedium, ScopeLine),
		}},
	},
		makeRule("f1", "ip http server", false, SeverityMedium, ScopeForbidden),
	)

	res := Audit(tmpl, "R1", "ip http server")

	// Definition order, forbidden last; never re-sorted by severity.
	want := []string{"g1", "g2", "l1", "f1"}
	if len(res.Violations) != len(want) {
		t.Fatalf("expected %d violations, got %d", len(want), len(res.Violations))
	}
	for i, name := range want {
		if res.Violations[i].RuleName != name {
			t.Errorf("Violations[%d] = %q, want %q", i, res.Violations[i].RuleName, name)
		}
	}
}

func TestAudit_Deterministic(t *testing.T) {
	tmpl, err := ParseTemplate([]byte(sampleTemplate))
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	config := "hostname R1\nenable secret 5 xxx\ntransport input telnet"

	first := Audit(tmpl, "R1", config)
	second := Audit(tmpl, "R1", config)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated audits differ:\n first = %+v\nsecond = %+v", first, second)
	}
}

func TestAudit_ForbiddenMonotonicity(t *testing.T) {
	tmpl := makeTemplate(nil,
		makeRule("no_telnet", "transport input telnet", false, SeverityHigh, ScopeForbidden),
	)

	clean := "hostname R1\nline vty 0 4\n transport input ssh"
	before := Audit(tmpl, "R1", clean)
	after := Audit(tmpl, "R1", clean+"\n transport input telnet")

	if got := len(after.Violations) - len(before.Violations); got != 1 {
		t.Errorf("adding a forbidden occurrence changed violations by %d, want 1", got)
	}
}

func TestAudit_RequiredMonotonicity(t *testing.T) {
	tmpl := singleRequiredTemplate()

	before := Audit(tmpl, "R1", "hostname R1")
	after := Audit(tmpl, "R1", "hostname R1\nenable secret 5 xxx")

	if len(before.Violations) != 1 || before.Violations[0].Type != ViolationMissingRequired {
		t.Fatalf("unexpected baseline violations: %+v", before.Violations)
	}
	if len(after.Violations) != 0 {
		t.Errorf("adding the required pattern should remove its violation, got %+v", after.Violations)
	}
}

func TestAudit_DoesNotMutateTemplate(t *testing.T) {
	tmpl, err := ParseTemplate([]byte(sampleTemplate))
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	before := tmpl.RuleCount()

	Audit(tmpl, "R1", "")
	Audit(tmpl, "R2", "enable secret 5 xxx")

	if tmpl.RuleCount() != before {
		t.Errorf("RuleCount changed from %d to %d after audits", before, tmpl.RuleCount())
	}
}
