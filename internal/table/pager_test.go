package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNewPageDataClampsItems(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	page := NewPageData(items, 50, 1, 3)

	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(50), page.Total)
	assert.Equal(t, 1, page.PageIndex)
}

func TestNewPageDataNormalizesPageIndex(t *testing.T) {
	page := NewPageData([]string{"a"}, 1, 0, 10)
	assert.Equal(t, 1, page.PageIndex)

	page = NewPageData([]string{"a"}, 1, -3, 10)
	assert.Equal(t, 1, page.PageIndex)
}

func TestNewPageDataNilItems(t *testing.T) {
	page := NewPageData[string](nil, 0, 1, 10)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 0, 0},
	}
	for _, tt := range tests {
		page := PageData[int]{Total: tt.total, PageSize: tt.pageSize}
		assert.Equal(t, tt.want, page.TotalPages(), "total=%d pageSize=%d", tt.total, tt.pageSize)
	}
}

func TestInRange(t *testing.T) {
	page := PageData[int]{Total: 25, PageSize: 10, PageIndex: 3}
	assert.True(t, page.InRange())

	page.PageIndex = 4
	assert.False(t, page.InRange())
}

// The envelope invariants must hold for any backend reply: the item slice
// never exceeds the page size and the page index is always 1-based.
func TestPageDataInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numItems := rapid.IntRange(0, 200).Draw(t, "numItems")
		items := make([]int, numItems)
		total := rapid.Int64Range(0, 100000).Draw(t, "total")
		pageIndex := rapid.IntRange(-5, 100).Draw(t, "pageIndex")
		pageSize := rapid.IntRange(1, 100).Draw(t, "pageSize")

		page := NewPageData(items, total, pageIndex, pageSize)

		if len(page.Items) > page.PageSize {
			t.Fatalf("items %d exceed page size %d", len(page.Items), page.PageSize)
		}
		if page.PageIndex < 1 {
			t.Fatalf("page index %d is not 1-based", page.PageIndex)
		}
		if pages := page.TotalPages(); pages > 0 {
			covered := int64(pages) * int64(page.PageSize)
			if covered < page.Total {
				t.Fatalf("%d pages of %d rows cannot cover total %d", pages, page.PageSize, page.Total)
			}
		}
	})
}
