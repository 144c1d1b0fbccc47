package render

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

// DefaultKeywords mark output that looks like source code
var DefaultKeywords = []string{"def ", "class ", "import "}

// CodeDetector decides whether a block of output should be highlighted
type CodeDetector func(text string) bool

// KeywordDetector reports code when the text contains any of the keywords.
// With no keywords, DefaultKeywords are used.
func KeywordDetector(keywords ...string) CodeDetector {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	kw := append([]string(nil), keywords...)
	return func(text string) bool {
		for _, k := range kw {
			if k != "" && strings.Contains(text, k) {
				return true
			}
		}
		return false
	}
}

// NeverCode disables highlighting
func NeverCode(string) bool { return false }

// Highlighter renders source code for display
type Highlighter interface {
	Highlight(code string) (string, error)
}

// ChromaHighlighter highlights code with chroma
type ChromaHighlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
}

// NewChromaHighlighter creates a highlighter for the given language and
// style, writing 256-color terminal escapes. Unknown names fall back to
// plain text and chroma's fallback style.
func NewChromaHighlighter(language, style string) *ChromaHighlighter {
	return NewChromaHighlighterWith(language, style, "terminal256")
}

// NewChromaHighlighterWith is NewChromaHighlighter with an explicit chroma formatter name
func NewChromaHighlighterWith(language, style, formatter string) *ChromaHighlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	f := formatters.Get(formatter)
	if f == nil {
		f = formatters.Fallback
	}

	return &ChromaHighlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     styles.Get(style),
		formatter: f,
	}
}

// Highlight returns code with highlighting applied
func (h *ChromaHighlighter) Highlight(code string) (string, error) {
	iterator, err := h.lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise: %w", err)
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", fmt.Errorf("failed to format: %w", err)
	}

	return trimTrailingNewlines(b.String()), nil
}

// trimTrailingNewlines drops the newlines lexers append to the last token,
// keeping any reset sequence that follows them
func trimTrailingNewlines(s string) string {
	for {
		i := strings.LastIndexByte(s, '\n')
		if i < 0 || ansi.Strip(s[i+1:]) != "" {
			return s
		}
		s = s[:i] + s[i+1:]
	}
}
