package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTxFoSearch(t *testing.T) {
	fo := CreateTxFo("customer-lookup", "nguyen", 2, 25)

	assert.Equal(t, "customer-lookup", fo.Fields.CommandName)
	assert.Equal(t, 2, fo.Fields.PageIndex)
	assert.Equal(t, 25, fo.Fields.PageSize)
	assert.True(t, fo.Fields.IsSearch)
	assert.Equal(t, "nguyen", fo.Fields.Parameters)
	assert.True(t, fo.LearnAPI)
}

func TestCreateTxFoPlainLookup(t *testing.T) {
	fo := CreateTxFo("ccy-list", "", 1, 100)
	assert.False(t, fo.Fields.IsSearch)
	assert.Empty(t, fo.Fields.Parameters)
}

func TestCreateTxFoNormalizesPageIndex(t *testing.T) {
	fo := CreateTxFo("cmd", "", 0, 10)
	assert.Equal(t, 1, fo.Fields.PageIndex)

	fo = CreateTxFo("cmd", "", -4, 10)
	assert.Equal(t, 1, fo.Fields.PageIndex)
}

// The wire shape of a lookup envelope is a backend contract; field names
// must serialize exactly.
func TestLookupTxFoWireShape(t *testing.T) {
	fo := CreateTxFo("customer-lookup", "abc", 1, 10)
	data, err := json.Marshal(fo)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Contains(t, raw, "fields")
	assert.Contains(t, raw, "learn_api")
	assert.Contains(t, raw, "workflowid")

	fields := raw["fields"].(map[string]any)
	for _, key := range []string{"commandname", "pageindex", "pagesize", "issearch", "parameters"} {
		assert.Contains(t, fields, key)
	}
}
