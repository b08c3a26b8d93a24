package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corebo/console/internal/descriptor"
	"corebo/console/internal/table"
)

func renderDescriptor(t *testing.T) *descriptor.FormDescriptor {
	t.Helper()
	desc, err := descriptor.Parse([]byte(`{
		"key": "loan-entry",
		"workflowid": "WF-LOAN",
		"lang": {"en": "Loan Entry"},
		"layouts": [{
			"code": "main",
			"lang": {"en": "Main"},
			"views": [{
				"code": "details",
				"inputs": [
					{"code": "pin", "inputtype": "text",
						"config": {"is_password": true}},
					{"code": "amount", "inputtype": "currency",
						"config": {"currency_code": "VND", "precision": 2},
						"rule": [{"name": "required"}]},
					{"code": "officer_notes", "inputtype": "text"},
					{"code": "rate_type", "inputtype": "radio",
						"config": {"options": [
							{"value": "FIXED", "lang": {"en": "Fixed"}},
							{"value": "FLOAT", "lang": {"en": "Floating"}}
						]}},
					{"code": "schedule", "inputtype": "table",
						"config": {"columns": [
							{"key": "due_date", "lang": {"en": "Due Date"}},
							{"key": "amount"}
						], "identity_field": "due_date"}},
					{"code": "widget", "inputtype": "hologram"},
					{"code": "btn_submit", "inputtype": "button",
						"config": {"txcode": "#sys:fo-submit-dataAPI", "confirm": true}}
				]
			}]
		}]
	}`))
	require.NoError(t, err)
	return desc
}

func controlsByCode(page *PageModel) map[string]Control {
	out := map[string]Control{}
	var walk func(controls []Control)
	walk = func(controls []Control) {
		for _, c := range controls {
			out[c.Code] = c
			walk(c.Children)
		}
	}
	for _, l := range page.Layouts {
		for _, v := range l.Views {
			walk(v.Controls)
		}
	}
	return out
}

func TestRenderResolvesControls(t *testing.T) {
	s := NewSession(renderDescriptor(t), "en", testDict(), Values{"amount": 5000})
	page := s.Render()

	assert.Equal(t, "Loan Entry", page.Title)
	assert.Equal(t, s.ID, page.SessionID)
	require.Len(t, page.Layouts, 1)
	assert.Equal(t, "Main", page.Layouts[0].Title)

	controls := controlsByCode(page)

	amount := controls["amount"]
	assert.Equal(t, "currency", amount.Type)
	assert.True(t, amount.Required)
	assert.Equal(t, "VND", amount.CurrencyCode)
	assert.Equal(t, 5000, amount.Value)

	radio := controls["rate_type"]
	require.Len(t, radio.Options, 2)
	assert.Equal(t, "Fixed", radio.Options[0].Label)

	grid := controls["schedule"]
	assert.Equal(t, "table", grid.Type)
	assert.Equal(t, "due_date", grid.IdentityField)
	require.Len(t, grid.Columns, 2)
	assert.Equal(t, "Due Date", grid.Columns[0].Title)
	assert.Equal(t, "amount", grid.Columns[1].Title)

	button := controls["btn_submit"]
	assert.Equal(t, "#sys:fo-submit-dataAPI", button.TxCode)
	assert.True(t, button.Confirm)
}

func TestRenderNeverEchoesPasswords(t *testing.T) {
	s := NewSession(renderDescriptor(t), "en", testDict(), Values{"pin": "123456"})
	page := s.Render()

	pin := controlsByCode(page)["pin"]
	assert.Equal(t, "password", pin.Type)
	assert.Nil(t, pin.Value)

	// The bound value itself is untouched.
	assert.Equal(t, "123456", s.Values()["pin"])
}

func TestRenderSkipsUnknownInputs(t *testing.T) {
	s := NewSession(renderDescriptor(t), "en", testDict(), nil)
	controls := controlsByCode(s.Render())

	_, has := controls["widget"]
	assert.False(t, has)
}

func TestRenderAppliesRoleOverlay(t *testing.T) {
	desc := renderDescriptor(t)

	visible := NewSession(desc, "en", testDict(), nil)
	restricted := NewSession(desc, "en", testDict(), nil)
	restricted.SetRoleTask(NewRoleTask("officer_notes", "btn_submit"))

	assert.Contains(t, controlsByCode(visible.Render()), "officer_notes")

	controls := controlsByCode(restricted.Render())
	_, hasNotes := controls["officer_notes"]
	_, hasBtn := controls["btn_submit"]
	assert.False(t, hasNotes)
	assert.False(t, hasBtn)

	// The descriptor itself is untouched; other sessions still see the field.
	assert.Contains(t, controlsByCode(visible.Render()), "officer_notes")
}

func TestRenderReflectsAdvancedSearchFlag(t *testing.T) {
	s := NewSession(renderDescriptor(t), "en", testDict(), nil)

	grid := controlsByCode(s.Render())["schedule"]
	assert.False(t, grid.Expanded)

	table.DefaultSearchStore.SetExpanded(s.ID+":schedule", true)
	defer table.DefaultSearchStore.SetExpanded(s.ID+":schedule", false)

	grid = controlsByCode(s.Render())["schedule"]
	assert.True(t, grid.Expanded)
}

func TestRoleTaskFromPermissions(t *testing.T) {
	rt := RoleTaskFromPermissions(map[string]string{
		"btn_approve": "loan:approve",
		"btn_submit":  "loan:submit",
	}, func(perm string) bool {
		return perm == "loan:submit"
	})

	assert.True(t, rt.IsHidden("btn_approve"))
	assert.False(t, rt.IsHidden("btn_submit"))
	assert.False(t, rt.IsHidden("anything_else"))
}

func TestNilRoleTaskHidesNothing(t *testing.T) {
	var rt *RoleTask
	assert.False(t, rt.IsHidden("any"))
}
