package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParseTxCode(t *testing.T) {
	tests := []struct {
		txcode string
		want   Kind
	}{
		{TxCodeUpdate, KindUpdate},
		{TxCodeDelete, KindDelete},
		{TxCodeSearch, KindSearch},
		{TxCodeCreate, KindCreate},
		{TxCodeView, KindView},
		{TxCodeExport, KindExport},
		{"", KindUnknown},
		{"#sys:fo-post-updatedata ", KindUnknown},
		{"fo-search-api", KindUnknown},
		{"#sys:something-new", KindUnknown},
	}
	for _, tt := range tests {
		cmd := ParseTxCode(tt.txcode)
		assert.Equal(t, tt.want, cmd.Kind, "txcode %q", tt.txcode)
		assert.Equal(t, tt.txcode, cmd.Raw)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "search", KindSearch.String())
	assert.Equal(t, "delete", KindDelete.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

// Parsing preserves the raw code and maps anything outside the known set to
// the unknown kind, exact string match only.
func TestParseTxCodeProperty(t *testing.T) {
	known := map[string]Kind{
		TxCodeUpdate: KindUpdate,
		TxCodeDelete: KindDelete,
		TxCodeSearch: KindSearch,
		TxCodeCreate: KindCreate,
		TxCodeView:   KindView,
		TxCodeExport: KindExport,
	}

	rapid.Check(t, func(t *rapid.T) {
		code := rapid.String().Draw(t, "code")
		cmd := ParseTxCode(code)

		if cmd.Raw != code {
			t.Fatalf("raw %q, want %q", cmd.Raw, code)
		}
		if want, ok := known[code]; ok {
			if cmd.Kind != want {
				t.Fatalf("kind %v, want %v", cmd.Kind, want)
			}
		} else if cmd.Kind != KindUnknown {
			t.Fatalf("code %q parsed as %v, want unknown", code, cmd.Kind)
		}
	})
}
