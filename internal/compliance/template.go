package compliance

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateErrorReason classifies why a template failed to load.
type TemplateErrorReason string

const (
	ReasonMissingField    TemplateErrorReason = "missing_field"
	ReasonInvalidSeverity TemplateErrorReason = "invalid_severity"
	ReasonInvalidPattern  TemplateErrorReason = "invalid_pattern"
)

// TemplateError reports a malformed golden-configuration template. A load
// that returns a TemplateError is fatal; there is no partial-template
// fallback.
type TemplateError struct {
	Reason TemplateErrorReason
	Group  RuleScope
	Rule   string
	Field  string
	Err    error
}

func (e *TemplateError) Error() string {
	rule := e.Rule
	if rule == "" {
		rule = "(unnamed)"
	}
	switch e.Reason {
	case ReasonMissingField:
		return fmt.Sprintf("template: rule %s in group %q: missing field %q", rule, e.Group, e.Field)
	case ReasonInvalidSeverity:
		return fmt.Sprintf("template: rule %s in group %q: invalid severity %q", rule, e.Group, e.Field)
	case ReasonInvalidPattern:
		return fmt.Sprintf("template: rule %s in group %q: invalid pattern: %v", rule, e.Group, e.Err)
	default:
		return fmt.Sprintf("template: rule %s in group %q: invalid", rule, e.Group)
	}
}

func (e *TemplateError) Unwrap() error { return e.Err }

// ruleDoc is the YAML shape of a single rule entry.
type ruleDoc struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Pattern     string `yaml:"pattern"`
	Required    *bool  `yaml:"required"`
	Severity    string `yaml:"severity"`
}

// templateDoc is the YAML shape of a golden-configuration document.
type templateDoc struct {
	GoldenConfig struct {
		Name      string    `yaml:"name"`
		Version   string    `yaml:"version"`
		Global    []ruleDoc `yaml:"global"`
		Interface []ruleDoc `yaml:"interface"`
		Line      []ruleDoc `yaml:"line"`
		Security  []ruleDoc `yaml:"security"`
		Routing   []ruleDoc `yaml:"routing"`
		Forbidden []ruleDoc `yaml:"forbidden"`
	} `yaml:"golden_config"`
}

// ParseTemplate parses and validates a golden-configuration document.
// The input is the raw document text; ParseTemplate itself never touches
// the filesystem. Each rule's pattern is compiled once here, so audits
// never recompile expressions.
func ParseTemplate(data []byte) (*ComplianceTemplate, error) {
	var doc templateDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	gc := doc.GoldenConfig
	tmpl := &ComplianceTemplate{
		Name:    gc.Name,
		Version: gc.Version,
	}

	groups := []struct {
		scope RuleScope
		docs  []ruleDoc
	}{
		{ScopeGlobal, gc.Global},
		{ScopeInterface, gc.Interface},
		{ScopeLine, gc.Line},
		{ScopeSecurity, gc.Security},
		{ScopeRouting, gc.Routing},
	}

	for _, g := range groups {
		if len(g.docs) == 0 {
			continue
		}
		rules := make([]ComplianceRule, 0, len(g.docs))
		for _, rd := range g.docs {
			rule, err := buildRule(rd, g.scope, false)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		tmpl.Groups = append(tmpl.Groups, RuleGroup{Scope: g.scope, Rules: rules})
	}

	for _, rd := range gc.Forbidden {
		rule, err := buildRule(rd, ScopeForbidden, true)
		if err != nil {
			return nil, err
		}
		tmpl.Forbidden = append(tmpl.Forbidden, rule)
	}

	return tmpl, nil
}

// buildRule validates one rule entry and compiles its pattern. Entries in
// the forbidden group are always forbidden-type regardless of any
// "required" field present in the document.
func buildRule(rd ruleDoc, scope RuleScope, forbidden bool) (ComplianceRule, error) {
	if strings.TrimSpace(rd.Pattern) == "" {
		return ComplianceRule{}, &TemplateError{
			Reason: ReasonMissingField,
			Group:  scope,
			Rule:   rd.Name,
			Field:  "pattern",
		}
	}
	if strings.TrimSpace(rd.Description) == "" {
		return ComplianceRule{}, &TemplateError{
			Reason: ReasonMissingField,
			Group:  scope,
			Rule:   rd.Name,
			Field:  "description",
		}
	}

	severity := Severity(strings.ToUpper(strings.TrimSpace(rd.Severity)))
	switch severity {
	case SeverityHigh, SeverityMedium, SeverityLow:
	default:
		return ComplianceRule{}, &TemplateError{
			Reason: ReasonInvalidSeverity,
			Group:  scope,
			Rule:   rd.Name,
			Field:  rd.Severity,
		}
	}

	re, err := regexp.Compile(rd.Pattern)
	if err != nil {
		return ComplianceRule{}, &TemplateError{
			Reason: ReasonInvalidPattern,
			Group:  scope,
			Rule:   rd.Name,
			Err:    err,
		}
	}

	// Required defaults to true for normal groups. Forbidden entries carry
	// required=false so the flag can never be misread as an enforcement bit.
	required := !forbidden
	if !forbidden && rd.Required != nil {
		required = *rd.Required
	}

	return ComplianceRule{
		Name:        rd.Name,
		Description: rd.Description,
		Pattern:     rd.Pattern,
		Required:    required,
		Severity:    severity,
		Scope:       scope,
		re:          re,
	}, nil
}
