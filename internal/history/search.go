package history

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/ollaterm/internal/types"
)

// codeSource adapts entries to fuzzy.Source
type codeSource []types.HistoryEntry

func (s codeSource) String(i int) string { return s[i].Code }
func (s codeSource) Len() int            { return len(s) }

// Search returns the positions of entries whose code fuzzily matches query,
// best match first. An empty query matches every entry in backend order.
func Search(entries []types.HistoryEntry, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		all := make([]int, len(entries))
		for i := range entries {
			all[i] = i
		}
		return all
	}

	matches := fuzzy.FindFrom(query, codeSource(entries))
	positions := make([]int, 0, len(matches))
	for _, match := range matches {
		positions = append(positions, match.Index)
	}
	return positions
}
