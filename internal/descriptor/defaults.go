package descriptor

import (
	"regexp"
	"strconv"
	"time"
)

// relDateRe matches relative date expressions: now, now+2y, now-6m, now+10d.
var relDateRe = regexp.MustCompile(`^now(?:([+-])(\d+)([ymd]))?$`)

// EvalDefault resolves the initial value for an input at first render.
// Literal values win over condition expressions; relative-date conditions
// are evaluated exactly once, against the supplied clock, never on later
// value changes.
func EvalDefault(in *Input, now time.Time) any {
	if in.Default == nil {
		if cfg, ok := in.Config.(TextConfig); ok && cfg.DataDefault != "" {
			return cfg.DataDefault
		}
		return nil
	}
	if in.Default.Value != nil {
		return in.Default.Value
	}
	if in.Default.Condition != "" {
		if t, ok := evalRelativeDate(in.Default.Condition, now); ok {
			format := "2006-01-02"
			if cfg, ok := in.Config.(DateConfig); ok && cfg.Format != "" {
				format = cfg.Format
			}
			return t.Format(format)
		}
	}
	return nil
}

// evalRelativeDate parses expressions of the form now[+-]N[ymd].
func evalRelativeDate(expr string, now time.Time) (time.Time, bool) {
	m := relDateRe.FindStringSubmatch(expr)
	if m == nil {
		return time.Time{}, false
	}
	if m[1] == "" {
		return now, true
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return time.Time{}, false
	}
	if m[1] == "-" {
		n = -n
	}
	switch m[3] {
	case "y":
		return now.AddDate(n, 0, 0), true
	case "m":
		return now.AddDate(0, n, 0), true
	case "d":
		return now.AddDate(0, 0, n), true
	}
	return time.Time{}, false
}
