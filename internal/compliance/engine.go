package compliance

// Audit evaluates every rule in the template against one device's running
// configuration and returns the device's audit result.
//
// Required rules whose pattern is absent produce a MISSING_REQUIRED
// violation. Rules with required=false in normal groups are informational
// and never produce a violation. Forbidden-group rules produce a
// FORBIDDEN_PRESENT violation when their pattern occurs.
//
// Violations keep rule-definition order: groups as declared in the
// template, forbidden group last. Severity ordering is left to rendering.
//
// Empty configuration text is valid input, not an error: every required
// rule is then missing and every forbidden rule trivially passes. Audit
// reads the template but never mutates it, so one template may serve any
// number of concurrent audits.
func Audit(tmpl *ComplianceTemplate, deviceID, configText string) DeviceAuditResult {
	result := DeviceAuditResult{
		Device: deviceID,
		Status: StatusPass,
	}

	for gi := range tmpl.Groups {
		for ri := range tmpl.Groups[gi].Rules {
			rule := &tmpl.Groups[gi].Rules[ri]
			if !rule.Required {
				continue
			}
			if !rule.Matches(configText) {
				result.addViolation(rule, ViolationMissingRequired)
			}
		}
	}

	for ri := range tmpl.Forbidden {
		rule := &tmpl.Forbidden[ri]
		if rule.Matches(configText) {
			result.addViolation(rule, ViolationForbiddenPresent)
		}
	}

	if len(result.Violations) > 0 {
		result.Status = StatusFail
	}
	return result
}

func (r *DeviceAuditResult) addViolation(rule *ComplianceRule, vt ViolationType) {
	r.Violations = append(r.Violations, Violation{
		RuleName:    rule.Name,
		Description: rule.Description,
		Severity:    rule.Severity,
		Scope:       rule.Scope,
		Type:        vt,
	})
	r.Counts.add(rule.Severity)
}
