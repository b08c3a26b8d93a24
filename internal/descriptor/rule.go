package descriptor

import (
	"regexp"
)

// Rule names recognized by the console.
const (
	RuleRequired = "required"
	RuleFormat   = "format"
)

// IsFieldRequired reports whether the input carries a required rule.
func IsFieldRequired(in *Input) bool {
	for _, r := range in.Rules {
		if r.Name == RuleRequired {
			return true
		}
	}
	return false
}

// FormatPattern returns the compiled format rule of the input, if any.
// A malformed pattern is treated as absent; the descriptor parser has
// already had its chance to reject it.
func FormatPattern(in *Input) (*regexp.Regexp, bool) {
	for _, r := range in.Rules {
		if r.Name == RuleFormat && r.Value != "" {
			re, err := regexp.Compile(r.Value)
			if err != nil {
				return nil, false
			}
			return re, true
		}
	}
	return nil, false
}
