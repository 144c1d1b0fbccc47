package history

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"

	"github.com/studiowebux/ollaterm/internal/config"
	"github.com/studiowebux/ollaterm/internal/types"
)

// ExportOptions controls the HTML transcript
type ExportOptions struct {
	Title       string
	SessionID   string
	Language    string // chroma lexer name
	Style       string // chroma style name
	GeneratedAt time.Time
}

type exportEntry struct {
	Index   int
	Time    string
	Success bool
	Code    template.HTML
	Output  string
	Error   string
}

type exportPage struct {
	Title       string
	SessionID   string
	GeneratedAt string
	CSS         template.CSS
	Entries     []exportEntry
}

var transcriptTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: monospace; margin: 2em; }
.entry { border-left: 3px solid #888; margin: 1em 0; padding-left: 1em; }
.entry.ok { border-color: #2a2; }
.entry.failed { border-color: #c22; }
.error { color: #c22; }
pre { white-space: pre-wrap; }
{{.CSS}}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Session {{if .SessionID}}{{.SessionID}}{{else}}unknown{{end}}, exported {{.GeneratedAt}}</p>
{{range .Entries}}<div class="entry {{if .Success}}ok{{else}}failed{{end}}">
<h3>#{{.Index}} {{.Time}} {{if .Success}}✓{{else}}✗{{end}}</h3>
<pre class="chroma"><code>{{.Code}}</code></pre>
{{if .Output}}<pre class="output">{{.Output}}</pre>{{end}}
{{if .Error}}<pre class="error">{{.Error}}</pre>{{end}}
</div>
{{else}}<p>No execution history yet.</p>
{{end}}</body>
</html>
`))

// codePolicy allows only the markup the chroma HTML formatter emits
var codePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)).OnElements("span")
	return p
}()

// Export writes entries as a standalone HTML page.
// Backend text is always escaped; highlighted code is sanitized.
func Export(w io.Writer, entries []types.HistoryEntry, opts ExportOptions) error {
	if opts.Title == "" {
		opts.Title = "Execution history"
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	lexer := lexers.Get(opts.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get(opts.Style)
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))

	var css strings.Builder
	if err := formatter.WriteCSS(&css, style); err != nil {
		return fmt.Errorf("failed to write highlight css: %w", err)
	}

	page := exportPage{
		Title:       opts.Title,
		SessionID:   opts.SessionID,
		GeneratedAt: opts.GeneratedAt.Format("2006-01-02 15:04:05"),
		CSS:         template.CSS(css.String()),
		Entries:     make([]exportEntry, 0, len(entries)),
	}

	for i, e := range entries {
		stamp := e.Timestamp
		if t, ok := e.Time(); ok {
			stamp = t.Local().Format("15:04:05")
		}
		page.Entries = append(page.Entries, exportEntry{
			Index:   i + 1,
			Time:    stamp,
			Success: e.Success,
			Code:    highlightHTML(lexer, formatter, style, e.Code),
			Output:  e.Output,
			Error:   e.Error,
		})
	}

	if err := transcriptTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render transcript: %w", err)
	}
	return nil
}

// highlightHTML renders code as chroma HTML, escaping it as plain text on failure
func highlightHTML(lexer chroma.Lexer, formatter *chromahtml.Formatter, style *chroma.Style, code string) template.HTML {
	plain := template.HTML(template.HTMLEscapeString(code))

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain
	}

	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return plain
	}

	return template.HTML(codePolicy.Sanitize(b.String()))
}

// ExportFile writes the transcript to a timestamped file in the export directory
// and returns its path
func ExportFile(cfg *config.Config, entries []types.HistoryEntry, opts ExportOptions) (string, error) {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	filename := fmt.Sprintf("history_%s.html", opts.GeneratedAt.Format("20060102_150405"))
	path, err := cfg.GetExportPath(filename)
	if err != nil {
		return "", err
	}

	return path, WriteFile(path, entries, opts)
}

// WriteFile writes the transcript to path
func WriteFile(path string, entries []types.HistoryEntry, opts ExportOptions) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := Export(f, entries, opts); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
