package stewardship

import "sprayguard/internal/models"

// Check evaluates every rule independently and returns the warnings of the
// rules that fired, in rule order. The result is never nil.
func Check(in Input) []models.ComplianceWarning {
	warnings := []models.ComplianceWarning{}
	for _, r := range rules {
		if r.Match(in) {
			warnings = append(warnings, r.Warning(in))
		}
	}
	return warnings
}

// RuleIDs lists the rule identifiers in evaluation order
func RuleIDs() []string {
	ids := make([]string, len(rules))
	for i, r := range rules {
		ids[i] = r.ID()
	}
	return ids
}
