package descriptor

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestEvalDefaultLiteralValue(t *testing.T) {
	in := &Input{
		Code:    "status",
		Type:    InputSelect,
		Default: &DefaultSpec{Value: "ACTIVE"},
	}
	assert.Equal(t, "ACTIVE", EvalDefault(in, time.Now()))
}

func TestEvalDefaultLiteralWinsOverCondition(t *testing.T) {
	in := &Input{
		Code:    "open_date",
		Type:    InputDate,
		Default: &DefaultSpec{Value: "2020-01-01", Condition: "now+1y"},
	}
	assert.Equal(t, "2020-01-01", EvalDefault(in, time.Now()))
}

func TestEvalDefaultRelativeDates(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		condition string
		want      string
	}{
		{"now", "now", "2026-03-15"},
		{"plus years", "now+2y", "2028-03-15"},
		{"minus months", "now-6m", "2025-09-15"},
		{"plus days", "now+10d", "2026-03-25"},
		{"minus days", "now-15d", "2026-02-28"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &Input{
				Code:    "maturity_date",
				Type:    InputDate,
				Config:  DateConfig{Format: "2006-01-02"},
				Default: &DefaultSpec{Condition: tt.condition},
			}
			assert.Equal(t, tt.want, EvalDefault(in, now))
		})
	}
}

func TestEvalDefaultCustomDateFormat(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	in := &Input{
		Code:    "value_date",
		Type:    InputDate,
		Config:  DateConfig{Format: "02/01/2006"},
		Default: &DefaultSpec{Condition: "now"},
	}
	assert.Equal(t, "15/03/2026", EvalDefault(in, now))
}

func TestEvalDefaultMalformedCondition(t *testing.T) {
	for _, expr := range []string{"tomorrow", "now+y", "now+2w", "now roughly", "+2y"} {
		in := &Input{
			Code:    "d",
			Type:    InputDate,
			Default: &DefaultSpec{Condition: expr},
		}
		assert.Nil(t, EvalDefault(in, time.Now()), "expr %q", expr)
	}
}

func TestEvalDefaultTextDataDefault(t *testing.T) {
	in := &Input{
		Code:   "branch_code",
		Type:   InputText,
		Config: TextConfig{DataDefault: "HQ"},
	}
	assert.Equal(t, "HQ", EvalDefault(in, time.Now()))
}

func TestEvalDefaultNone(t *testing.T) {
	in := &Input{Code: "memo", Type: InputText, Config: TextConfig{}}
	assert.Nil(t, EvalDefault(in, time.Now()))
}

// Relative date evaluation must commute with AddDate for every unit and
// offset, evaluated against a fixed clock.
func TestEvalRelativeDateProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := time.Date(2026, time.Month(rapid.IntRange(1, 12).Draw(t, "month")),
			rapid.IntRange(1, 28).Draw(t, "day"), 0, 0, 0, 0, time.UTC)
		n := rapid.IntRange(0, 500).Draw(t, "n")
		sign := rapid.SampledFrom([]string{"+", "-"}).Draw(t, "sign")
		unit := rapid.SampledFrom([]string{"y", "m", "d"}).Draw(t, "unit")

		expr := "now" + sign + strconv.Itoa(n) + unit
		got, ok := evalRelativeDate(expr, now)
		if !ok {
			t.Fatalf("expected %q to evaluate", expr)
		}

		off := n
		if sign == "-" {
			off = -n
		}
		var want time.Time
		switch unit {
		case "y":
			want = now.AddDate(off, 0, 0)
		case "m":
			want = now.AddDate(0, off, 0)
		case "d":
			want = now.AddDate(0, 0, off)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %v, want %v", expr, got, want)
		}
	})
}
