// Package table holds the paginated-result envelope, row selection state
// and the advanced-search store backing table and search views.
package table

// PageData is the generic paginated result envelope for search calls.
// PageIndex is 1-based and len(Items) never exceeds PageSize.
type PageData[T any] struct {
	Items     []T   `json:"items"`
	Total     int64 `json:"total"`
	PageIndex int   `json:"pageindex"`
	PageSize  int   `json:"pagesize"`
}

// NewPageData builds a page envelope, clamping the item slice to the page
// size so the envelope invariant holds even against a misbehaving backend.
func NewPageData[T any](items []T, total int64, pageIndex, pageSize int) PageData[T] {
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageSize > 0 && len(items) > pageSize {
		items = items[:pageSize]
	}
	if items == nil {
		items = []T{}
	}
	return PageData[T]{
		Items:     items,
		Total:     total,
		PageIndex: pageIndex,
		PageSize:  pageSize,
	}
}

// TotalPages returns the number of pages in range for the envelope.
func (p PageData[T]) TotalPages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// InRange reports whether the envelope's page index addresses an existing
// page. Requests beyond the range yield an empty item list, not an error.
func (p PageData[T]) InRange() bool {
	return p.PageIndex >= 1 && p.PageIndex <= p.TotalPages()
}
