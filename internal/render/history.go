package render

import (
	"fmt"

	"github.com/studiowebux/ollaterm/internal/types"
)

// History placeholders
const (
	NoHistory         = "No execution history yet."
	HistoryLoadFailed = "Failed to load history."
)

// Status glyphs
const (
	GlyphSuccess = "✓"
	GlyphFailure = "✗"
)

// HistoryItem is a display-ready history entry
type HistoryItem struct {
	Index   int // 1-based position in backend order
	Time    string
	Glyph   string
	Success bool
	Code    string
	Output  string
	Error   string
}

// FormatTimestamp renders an entry timestamp as local wall-clock time.
// Unparsable timestamps are returned as received.
func FormatTimestamp(e types.HistoryEntry) string {
	if t, ok := e.Time(); ok {
		return t.Local().Format("15:04:05")
	}
	return SingleLine(e.Timestamp)
}

// HistoryItems converts entries in backend order
func HistoryItems(entries []types.HistoryEntry) []HistoryItem {
	items := make([]HistoryItem, 0, len(entries))
	for i, e := range entries {
		glyph := GlyphFailure
		if e.Success {
			glyph = GlyphSuccess
		}
		items = append(items, HistoryItem{
			Index:   i + 1,
			Time:    FormatTimestamp(e),
			Glyph:   glyph,
			Success: e.Success,
			Code:    Sanitize(e.Code),
			Output:  Sanitize(e.Output),
			Error:   Sanitize(e.Error),
		})
	}
	return items
}

// Header returns the "#n hh:mm:ss ✓" line of an item
func (h HistoryItem) Header() string {
	return fmt.Sprintf("#%d %s %s", h.Index, h.Time, h.Glyph)
}
