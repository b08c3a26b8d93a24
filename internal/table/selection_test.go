package table

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func row(id string, extra ...any) Row {
	r := Row{"customer_id": id}
	for i := 0; i+1 < len(extra); i += 2 {
		r[extra[i].(string)] = extra[i+1]
	}
	return r
}

func TestSelectionSurvivesPageChanges(t *testing.T) {
	sel := NewSelection("customer_id")

	// Page 1.
	assert.True(t, sel.Select(row("C001")))
	assert.True(t, sel.Select(row("C002")))

	// Page 2 rows arrive; earlier selection stays.
	assert.True(t, sel.Select(row("C011")))

	assert.Equal(t, 3, sel.Count())
	assert.True(t, sel.IsSelected("C001"))
	assert.True(t, sel.IsSelected("C011"))
	assert.Equal(t, []string{"C001", "C002", "C011"}, sel.IDs())
}

func TestSelectionKeyedByIdentityNotIndex(t *testing.T) {
	sel := NewSelection("customer_id")
	sel.Select(row("C001", "name", "old"))

	// The same row re-arrives reordered with fresher data; it stays one
	// selection and keeps the latest row payload.
	sel.Select(row("C001", "name", "new"))

	assert.Equal(t, 1, sel.Count())
	rows := sel.Rows()
	assert.Equal(t, "new", rows[0]["name"])
}

func TestSelectionIgnoresRowsWithoutIdentity(t *testing.T) {
	sel := NewSelection("customer_id")
	assert.False(t, sel.Select(Row{"name": "no id"}))
	assert.False(t, sel.Select(Row{"customer_id": nil}))
	assert.Equal(t, 0, sel.Count())
}

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection("customer_id")
	r := row("C001")

	sel.Toggle(r)
	assert.True(t, sel.IsSelected("C001"))

	sel.Toggle(r)
	assert.False(t, sel.IsSelected("C001"))
	assert.Equal(t, 0, sel.Count())
}

func TestSelectAllLoadedScopesToPage(t *testing.T) {
	sel := NewSelection("customer_id")
	page := []Row{row("C001"), row("C002"), row("C003")}

	sel.SelectAllLoaded(page)
	assert.Equal(t, 3, sel.Count())

	sel.Clear()
	assert.Equal(t, 0, sel.Count())
	assert.Empty(t, sel.IDs())
}

func TestSelectionDeselectKeepsOrder(t *testing.T) {
	sel := NewSelection("customer_id")
	sel.Select(row("C001"))
	sel.Select(row("C002"))
	sel.Select(row("C003"))

	sel.Deselect("C002")
	assert.Equal(t, []string{"C001", "C003"}, sel.IDs())
}

// Count always equals the number of distinct identities selected, no matter
// the interleaving of selects, duplicate selects and deselects.
func TestSelectionCountProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sel := NewSelection("id")
		reference := make(map[string]bool)

		ops := rapid.IntRange(1, 100).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			id := strconv.Itoa(rapid.IntRange(0, 20).Draw(t, "id"))
			if rapid.Bool().Draw(t, "deselect") {
				sel.Deselect(id)
				delete(reference, id)
			} else {
				sel.Select(Row{"id": id})
				reference[id] = true
			}
		}

		if sel.Count() != len(reference) {
			t.Fatalf("count %d, want %d", sel.Count(), len(reference))
		}
		if len(sel.IDs()) != len(reference) {
			t.Fatalf("ids %d, want %d", len(sel.IDs()), len(reference))
		}
	})
}
