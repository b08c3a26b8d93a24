package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corebo/console/internal/descriptor"
)

func TestInitialValuesEvaluatesDefaultsOnce(t *testing.T) {
	desc, err := descriptor.Parse([]byte(`{
		"key": "td-open",
		"workflowid": "WF-TD",
		"layouts": [{
			"code": "main",
			"views": [{
				"code": "v",
				"inputs": [
					{"code": "status", "inputtype": "select",
						"config": {"options": [{"value": "A"}]},
						"default": {"value": "A"}},
					{"code": "maturity_date", "inputtype": "date",
						"default": {"condition": "now+2y"}},
					{"code": "branch", "inputtype": "text",
						"config": {"data_default": "HQ"}},
					{"code": "free_text", "inputtype": "text"},
					{"code": "btn", "inputtype": "button",
						"config": {"txcode": "#sys:fo-submit-dataAPI"},
						"default": {"value": "ignored"}}
				]
			}]
		}]
	}`))
	require.NoError(t, err)

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	values := InitialValues(desc, now)

	assert.Equal(t, "A", values["status"])
	assert.Equal(t, "2028-08-31", values["maturity_date"])
	assert.Equal(t, "HQ", values["branch"])

	_, hasFree := values["free_text"]
	assert.False(t, hasFree)

	// Buttons bear no value; their defaults are ignored.
	_, hasBtn := values["btn"]
	assert.False(t, hasBtn)
}

func TestWalkInputsDescendsContainers(t *testing.T) {
	desc, err := descriptor.Parse([]byte(`{
		"key": "k",
		"workflowid": "w",
		"layouts": [{
			"code": "main",
			"views": [{
				"code": "v",
				"inputs": [
					{"code": "outer", "inputtype": "layout", "children": [
						{"code": "mid", "inputtype": "view", "children": [
							{"code": "leaf", "inputtype": "text"}
						]}
					]},
					{"code": "sibling", "inputtype": "text"}
				]
			}]
		}]
	}`))
	require.NoError(t, err)

	var codes []string
	WalkInputs(desc, func(in *descriptor.Input) {
		codes = append(codes, in.Code)
	})
	assert.Equal(t, []string{"outer", "mid", "leaf", "sibling"}, codes)
}

func TestValuesCloneIsIndependent(t *testing.T) {
	orig := Values{"a": 1, "b": "x"}
	clone := orig.Clone()
	clone["a"] = 2
	clone["c"] = true

	assert.Equal(t, 1, orig["a"])
	_, has := orig["c"]
	assert.False(t, has)
}

func TestToTxFoInputPassesDefaultsThrough(t *testing.T) {
	v := Values{"branch": "HQ", "amount": 1500.50}
	input := v.ToTxFoInput()

	assert.Equal(t, "HQ", input["branch"])
	assert.Equal(t, 1500.50, input["amount"])
}
