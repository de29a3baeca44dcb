package services

import (
	"strings"
	"sync"
)

// CursorStore keeps the per-session pagination cursors and the open/closed
// state of collapsible order groups. Cursors are keyed by a composite group
// key ("suppliers|<status>" or "<status>|<supplier>") so every rendered group
// pages independently. Nothing here is persisted: the store is rebuilt empty
// on process restart, exactly like the browser-session store it replaces.
type CursorStore struct {
	mu      sync.Mutex
	pages   map[string]map[string]int
	toggles map[string]map[string]bool
}

func NewCursorStore() *CursorStore {
	return &CursorStore{
		pages:   make(map[string]map[string]int),
		toggles: make(map[string]map[string]bool),
	}
}

// SupplierPageKey scopes the supplier-list cursor of one status section.
func SupplierPageKey(status string) string {
	return "suppliers|" + status
}

// GroupPageKey scopes the order-group cursor of one supplier inside a status.
func GroupPageKey(status, supplier string) string {
	return status + "|" + supplier
}

// ToggleKey identifies a collapsible group by its composite identity, never
// by render position, so a re-render that reorders groups cannot misattribute
// a click.
func ToggleKey(status, supplier, group string) string {
	key := status + "|" + supplier + "|" + group
	return strings.ReplaceAll(key, " ", "_")
}

func (s *CursorStore) Page(session, key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cursors, ok := s.pages[session]; ok {
		return cursors[key]
	}
	return 0
}

// Move shifts a cursor by delta, flooring at zero. The upper bound depends on
// the group count of the next render, so the ceiling is applied there.
func (s *CursorStore) Move(session, key string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cursors, ok := s.pages[session]
	if !ok {
		cursors = make(map[string]int)
		s.pages[session] = cursors
	}
	page := cursors[key] + delta
	if page < 0 {
		page = 0
	}
	cursors[key] = page
}

// SetPage stores a clamped page index back after rendering.
func (s *CursorStore) SetPage(session, key string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cursors, ok := s.pages[session]
	if !ok {
		cursors = make(map[string]int)
		s.pages[session] = cursors
	}
	cursors[key] = page
}

// Toggle flips the open state of a collapsible group. Groups start collapsed.
func (s *CursorStore) Toggle(session, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	toggles, ok := s.toggles[session]
	if !ok {
		toggles = make(map[string]bool)
		s.toggles[session] = toggles
	}
	toggles[key] = !toggles[key]
}

func (s *CursorStore) IsOpen(session, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if toggles, ok := s.toggles[session]; ok {
		return toggles[key]
	}
	return false
}

// ClearSession drops every cursor and toggle of one session, used on logout.
func (s *CursorStore) ClearSession(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, session)
	delete(s.toggles, session)
}
