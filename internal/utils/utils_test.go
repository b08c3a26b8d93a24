package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Key   string `json:"key"`
		Count int    `json:"count"`
	}

	data, err := ToJSONBytes(payload{Key: "a", Count: 2})
	require.NoError(t, err)

	var got payload
	require.NoError(t, FromJSONBytes(data, &got))
	assert.Equal(t, payload{Key: "a", Count: 2}, got)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
	assert.Equal(t, "x", Trim("  x "))
}

func TestMD5(t *testing.T) {
	assert.Equal(t, "0cc175b9c0f1b6a831c399e269772661", MD5("a"))
	assert.Len(t, MD5("admin123"), 32)
}

func TestSliceHelpers(t *testing.T) {
	s := []int{3, 1, 3, 2}

	assert.True(t, SliceContains(s, 2))
	assert.False(t, SliceContains(s, 9))
	assert.Equal(t, []int{3, 1, 2}, SliceUnique(s))

	doubled := SliceMap(s, func(_ int, v int) int { return v * 2 })
	assert.Equal(t, []int{6, 2, 6, 4}, doubled)
}
