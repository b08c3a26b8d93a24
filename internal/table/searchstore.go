package table

import (
	"strings"
	"sync"
)

// SearchStore keeps the advanced-search expand/collapse flag per form id.
// The flag lives independently of field values and is keyed by form
// identity so multiple forms on one page do not interfere.
type SearchStore struct {
	mu       sync.RWMutex
	expanded map[string]bool
}

// NewSearchStore creates an empty advanced-search store.
func NewSearchStore() *SearchStore {
	return &SearchStore{
		expanded: make(map[string]bool),
	}
}

// IsExpanded reports the advanced-search state for a form.
func (s *SearchStore) IsExpanded(formID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expanded[formID]
}

// SetExpanded records the advanced-search state for a form.
func (s *SearchStore) SetExpanded(formID string, expanded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expanded {
		s.expanded[formID] = true
	} else {
		delete(s.expanded, formID)
	}
}

// ResetSession drops the flags of every form belonging to one page
// session. Form ids are namespaced as "<sessionID>:<tableCode>".
func (s *SearchStore) ResetSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := sessionID + ":"
	for id := range s.expanded {
		if strings.HasPrefix(id, prefix) {
			delete(s.expanded, id)
		}
	}
}

// Reset clears all stored flags.
func (s *SearchStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded = make(map[string]bool)
}

// DefaultSearchStore is the process-wide advanced-search store.
var DefaultSearchStore = NewSearchStore()
