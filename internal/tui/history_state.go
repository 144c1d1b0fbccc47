package tui

import (
	"sync"

	"github.com/studiowebux/ollaterm/internal/history"
	"github.com/studiowebux/ollaterm/internal/types"
)

// HistoryState encapsulates the History tab data
type HistoryState struct {
	mu sync.RWMutex

	// allEntries is the last fetch in backend order; visible holds the
	// positions shown after search
	allEntries []types.HistoryEntry
	visible    []int
	index      int

	loaded  bool
	failed  bool
	fetchID uint64 // token of the latest fetch
	applied uint64 // token of the fetch currently shown

	searchActive bool
	searchQuery  string
}

// NewHistoryState creates a new history state
func NewHistoryState() *HistoryState {
	return &HistoryState{
		allEntries: []types.HistoryEntry{},
		visible:    []int{},
	}
}

// BeginFetch issues the token for a new fetch
func (s *HistoryState) BeginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchID++
	return s.fetchID
}

// SetEntries stores a fetch result. Results of superseded fetches are ignored.
func (s *HistoryState) SetEntries(token uint64, entries []types.HistoryEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token < s.fetchID || token < s.applied {
		return false
	}
	s.applied = token
	s.allEntries = entries
	s.loaded = true
	s.failed = false
	s.refilter()
	return true
}

// SetFailed records a failed fetch
func (s *HistoryState) SetFailed(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token < s.fetchID {
		return false
	}
	s.applied = token
	s.allEntries = []types.HistoryEntry{}
	s.failed = true
	s.refilter()
	return true
}

// Clear empties the list. Fetches issued before the clear are discarded.
func (s *HistoryState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetchID++
	s.applied = s.fetchID
	s.allEntries = []types.HistoryEntry{}
	s.loaded = true
	s.failed = false
	s.refilter()
}

// refilter recomputes the visible positions (lock held)
func (s *HistoryState) refilter() {
	s.visible = history.Search(s.allEntries, s.searchQuery)
	if s.index >= len(s.visible) {
		s.index = len(s.visible) - 1
	}
	if s.index < 0 {
		s.index = 0
	}
}

// SetSearchQuery filters the list by a fuzzy query
func (s *HistoryState) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
	s.index = 0
	s.refilter()
}

// GetSearchQuery returns the active query
func (s *HistoryState) GetSearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// SetSearchActive toggles the search prompt
func (s *HistoryState) SetSearchActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchActive = active
}

// IsSearchActive reports whether the search prompt is open
func (s *HistoryState) IsSearchActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchActive
}

// GetAllEntries returns a copy of every fetched entry in backend order
func (s *HistoryState) GetAllEntries() []types.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.HistoryEntry, len(s.allEntries))
	copy(result, s.allEntries)
	return result
}

// GetVisible returns the positions (into GetAllEntries) currently shown
func (s *HistoryState) GetVisible() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]int, len(s.visible))
	copy(result, s.visible)
	return result
}

// GetIndex returns the selected row
func (s *HistoryState) GetIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Navigate moves the selection by delta
func (s *HistoryState) Navigate(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.visible) == 0 {
		return
	}

	s.index += delta

	// Wrap around
	if s.index < 0 {
		s.index = len(s.visible) - 1
	} else if s.index >= len(s.visible) {
		s.index = 0
	}
}

// SetIndex moves the selection, clamped to the visible rows
func (s *HistoryState) SetIndex(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index >= len(s.visible) {
		index = len(s.visible) - 1
	}
	if index < 0 {
		index = 0
	}
	s.index = index
}

// GetCurrentEntry returns the selected entry and its backend position
func (s *HistoryState) GetCurrentEntry() (*types.HistoryEntry, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.visible) == 0 || s.index < 0 || s.index >= len(s.visible) {
		return nil, -1
	}

	pos := s.visible[s.index]
	entry := s.allEntries[pos]
	return &entry, pos
}

// IsLoaded reports whether a fetch has completed
func (s *HistoryState) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// HasFailed reports whether the latest fetch failed
func (s *HistoryState) HasFailed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failed
}
