package table

import (
	"fmt"
	"sync"
)

// Row is one result row as returned by a search call.
type Row = map[string]any

// Selection tracks selected rows across page changes. Rows are keyed by a
// caller-supplied identity field, never by index, because rows may reorder
// between pages. Selection survives page changes until explicitly cleared.
type Selection struct {
	mu            sync.RWMutex
	identityField string
	rows          map[string]Row
	order         []string
}

// NewSelection creates a selection keyed by the given identity field.
func NewSelection(identityField string) *Selection {
	return &Selection{
		identityField: identityField,
		rows:          make(map[string]Row),
	}
}

// identity extracts the row's identity value as a string key.
func (s *Selection) identity(row Row) (string, bool) {
	v, ok := row[s.identityField]
	if !ok || v == nil {
		return "", false
	}
	return fmt.Sprint(v), true
}

// Select marks the row selected. Rows without an identity value are
// ignored; returns whether the row was accepted.
func (s *Selection) Select(row Row) bool {
	id, ok := s.identity(row)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[id]; !exists {
		s.order = append(s.order, id)
	}
	s.rows[id] = row
	return true
}

// Deselect removes a row by identity value.
func (s *Selection) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[id]; !exists {
		return
	}
	delete(s.rows, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle flips the selection state of a row.
func (s *Selection) Toggle(row Row) {
	id, ok := s.identity(row)
	if !ok {
		return
	}
	s.mu.RLock()
	_, selected := s.rows[id]
	s.mu.RUnlock()
	if selected {
		s.Deselect(id)
	} else {
		s.Select(row)
	}
}

// SelectAllLoaded selects every row of the currently loaded page. The scope
// is deliberately the loaded page, not the full filtered result set.
func (s *Selection) SelectAllLoaded(rows []Row) {
	for _, row := range rows {
		s.Select(row)
	}
}

// IsSelected reports whether the identity value is selected.
func (s *Selection) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rows[id]
	return ok
}

// Rows returns the selected rows in selection order.
func (s *Selection) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Row, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.rows[id])
	}
	return result
}

// IDs returns the selected identity values in selection order.
func (s *Selection) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.order))
	copy(result, s.order)
	return result
}

// Count returns the number of selected rows.
func (s *Selection) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Clear removes all selected rows.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make(map[string]Row)
	s.order = nil
}
