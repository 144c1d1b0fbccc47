package tui

import (
	"sync"
	"testing"

	"github.com/studiowebux/ollaterm/internal/types"
)

func TestNewHistoryState(t *testing.T) {
	state := NewHistoryState()

	if state == nil {
		t.Fatal("NewHistoryState returned nil")
	}
	if state.GetIndex() != 0 {
		t.Errorf("Expected index 0, got %d", state.GetIndex())
	}
	if state.IsLoaded() {
		t.Error("Expected not loaded before the first fetch")
	}
	if state.IsSearchActive() {
		t.Error("Expected search inactive by default")
	}
	if entry, pos := state.GetCurrentEntry(); entry != nil || pos != -1 {
		t.Errorf("Expected no current entry, got %v at %d", entry, pos)
	}
}

func TestHistoryState_SetEntries(t *testing.T) {
	state := NewHistoryState()

	token := state.BeginFetch()
	if !state.SetEntries(token, sampleHistory()) {
		t.Fatal("latest fetch should be applied")
	}

	if !state.IsLoaded() {
		t.Error("Expected loaded")
	}
	if got := len(state.GetVisible()); got != 3 {
		t.Errorf("Expected 3 visible entries, got %d", got)
	}

	entry, pos := state.GetCurrentEntry()
	if entry == nil || entry.Code != "print(1)" || pos != 0 {
		t.Errorf("Expected first entry selected, got %v at %d", entry, pos)
	}
}

func TestHistoryState_SupersededFetchIgnored(t *testing.T) {
	state := NewHistoryState()

	old := state.BeginFetch()
	latest := state.BeginFetch()

	if !state.SetEntries(latest, sampleHistory()[:1]) {
		t.Fatal("latest fetch should be applied")
	}
	if state.SetEntries(old, sampleHistory()) {
		t.Error("older fetch should be ignored")
	}
	if got := len(state.GetAllEntries()); got != 1 {
		t.Errorf("Expected 1 entry, got %d", got)
	}
	if state.SetFailed(old) {
		t.Error("older failure should be ignored")
	}
	if state.HasFailed() {
		t.Error("Expected no failure")
	}
}

func TestHistoryState_ClearDiscardsInFlightFetch(t *testing.T) {
	state := NewHistoryState()

	token := state.BeginFetch()
	state.Clear()

	if state.SetEntries(token, sampleHistory()) {
		t.Error("fetch issued before clear should be ignored")
	}
	if got := len(state.GetAllEntries()); got != 0 {
		t.Errorf("Expected empty history, got %d", got)
	}
	if !state.IsLoaded() {
		t.Error("Expected cleared history to count as loaded")
	}

	next := state.BeginFetch()
	if !state.SetEntries(next, sampleHistory()) {
		t.Error("fetch issued after clear should be applied")
	}
}

func TestHistoryState_SetFailed(t *testing.T) {
	state := NewHistoryState()

	token := state.BeginFetch()
	state.SetEntries(token, sampleHistory())

	token = state.BeginFetch()
	if !state.SetFailed(token) {
		t.Fatal("latest failure should be applied")
	}
	if !state.HasFailed() {
		t.Error("Expected failed")
	}
	if got := len(state.GetVisible()); got != 0 {
		t.Errorf("Expected no visible entries after failure, got %d", got)
	}

	token = state.BeginFetch()
	state.SetEntries(token, sampleHistory())
	if state.HasFailed() {
		t.Error("successful fetch should clear the failure")
	}
}

func TestHistoryState_Navigate(t *testing.T) {
	state := NewHistoryState()
	state.SetEntries(state.BeginFetch(), sampleHistory())

	tests := []struct {
		delta int
		want  int
	}{
		{1, 1},
		{1, 2},
		{1, 0},
		{-1, 2},
		{-1, 1},
	}

	for _, tt := range tests {
		state.Navigate(tt.delta)
		if got := state.GetIndex(); got != tt.want {
			t.Errorf("Navigate(%d) index = %d, want %d", tt.delta, got, tt.want)
		}
	}
}

func TestHistoryState_NavigateEmptyEntries(t *testing.T) {
	state := NewHistoryState()

	state.Navigate(1)
	state.Navigate(-1)

	if state.GetIndex() != 0 {
		t.Errorf("Expected index 0, got %d", state.GetIndex())
	}
}

func TestHistoryState_SetIndexClamps(t *testing.T) {
	state := NewHistoryState()
	state.SetEntries(state.BeginFetch(), sampleHistory())

	state.SetIndex(10)
	if got := state.GetIndex(); got != 2 {
		t.Errorf("Expected index 2, got %d", got)
	}

	state.SetIndex(-4)
	if got := state.GetIndex(); got != 0 {
		t.Errorf("Expected index 0, got %d", got)
	}
}

func TestHistoryState_Search(t *testing.T) {
	state := NewHistoryState()
	state.SetEntries(state.BeginFetch(), sampleHistory())
	state.SetIndex(2)

	state.SetSearchQuery("x =")

	visible := state.GetVisible()
	if len(visible) != 1 || visible[0] != 1 {
		t.Fatalf("Expected [1], got %v", visible)
	}
	if state.GetIndex() != 0 {
		t.Errorf("Expected selection reset to 0, got %d", state.GetIndex())
	}

	entry, pos := state.GetCurrentEntry()
	if entry == nil || entry.Code != "x = 2" || pos != 1 {
		t.Errorf("Expected x = 2 at position 1, got %v at %d", entry, pos)
	}

	state.SetSearchQuery("zzz")
	if entry, _ := state.GetCurrentEntry(); entry != nil {
		t.Errorf("Expected no match, got %v", entry)
	}

	state.SetSearchQuery("")
	if got := len(state.GetVisible()); got != 3 {
		t.Errorf("Expected all entries visible, got %d", got)
	}
}

func TestHistoryState_SearchSurvivesRefresh(t *testing.T) {
	state := NewHistoryState()
	state.SetSearchQuery("import")

	state.SetEntries(state.BeginFetch(), sampleHistory())

	visible := state.GetVisible()
	if len(visible) != 1 || visible[0] != 2 {
		t.Errorf("Expected [2], got %v", visible)
	}
}

func TestHistoryState_EntriesImmutability(t *testing.T) {
	state := NewHistoryState()
	state.SetEntries(state.BeginFetch(), sampleHistory())

	entries := state.GetAllEntries()
	entries[0].Code = "modified"
	visible := state.GetVisible()
	visible[0] = 99

	if state.GetAllEntries()[0].Code != "print(1)" {
		t.Error("GetAllEntries should return a copy")
	}
	if state.GetVisible()[0] != 0 {
		t.Error("GetVisible should return a copy")
	}
}

func TestHistoryState_ConcurrentAccess(t *testing.T) {
	state := NewHistoryState()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := state.BeginFetch()
			entries := []types.HistoryEntry{{Code: "x", Success: i%2 == 0}}
			state.SetEntries(token, entries)
			state.Navigate(1)
			state.SetSearchQuery("x")
			_ = state.GetVisible()
			_, _ = state.GetCurrentEntry()
		}(i)
	}

	wg.Wait()

	if !state.IsLoaded() {
		t.Error("Expected loaded after concurrent fetches")
	}
}
