package compliance

// Matches reports whether the rule's pattern occurs anywhere in the device
// configuration text. Matching is a case-sensitive regular-expression
// search over the joined text, so patterns may use alternation (for example
// "router ospf|router eigrp|router bgp") and never need a full-line match.
//
// The expression was compiled by ParseTemplate; Matches performs no
// compilation and is safe to call concurrently.
func (r *ComplianceRule) Matches(configText string) bool {
	return r.re.MatchString(configText)
}
