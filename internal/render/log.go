package render

import (
	"strings"
)

// Role identifies who produced a terminal line
type Role int

const (
	RoleUser Role = iota
	RoleSystem
	RoleOutput
	RoleError
)

// Terminal text
const (
	PromptPrefix  = "λ "
	ProcessingMsg = "Processing..."
	ErrorPrefix   = "Error: "
)

// Line is one entry of the terminal log
type Line struct {
	ID   int
	Role Role
	Text string
	Code bool // highlight Text as source code
}

// Log is the ordered list of terminal lines
type Log struct {
	lines  []Line
	nextID int
}

// Append adds a line and returns its id
func (l *Log) Append(role Role, text string) int {
	l.nextID++
	l.lines = append(l.lines, Line{ID: l.nextID, Role: role, Text: text})
	return l.nextID
}

// AppendOutput adds backend output. Output of a failed execution is an error
// line; otherwise it is marked as code when detect says so.
func (l *Log) AppendOutput(text string, success bool, detect CodeDetector) int {
	if !success {
		return l.Append(RoleError, text)
	}
	id := l.Append(RoleOutput, text)
	if detect != nil && detect(text) {
		l.lines[len(l.lines)-1].Code = true
	}
	return id
}

// AppendError adds an application error line ("Error: <text>")
func (l *Log) AppendError(text string) int {
	return l.Append(RoleError, ErrorPrefix+text)
}

// Remove deletes the line with the given id
func (l *Log) Remove(id int) bool {
	for i, line := range l.lines {
		if line.ID == id {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Reset replaces the whole log with the given system lines
func (l *Log) Reset(lines ...string) {
	l.lines = nil
	for _, text := range lines {
		l.Append(RoleSystem, text)
	}
}

// Lines returns a copy of the log
func (l *Log) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of lines
func (l *Log) Len() int {
	return len(l.lines)
}

// RenderLine styles a single line. Backend text is sanitized first.
// When highlighting fails the code is shown as plain text.
func RenderLine(line Line, hl Highlighter) string {
	switch line.Role {
	case RoleUser:
		return StylePrompt.Render(PromptPrefix) + Sanitize(line.Text)
	case RoleSystem:
		return StyleSystem.Render(Sanitize(line.Text))
	case RoleError:
		return StyleError.Render(Sanitize(line.Text))
	}

	text := Sanitize(line.Text)
	if line.Code && hl != nil {
		if highlighted, err := hl.Highlight(text); err == nil {
			return highlighted
		}
	}
	return text
}

// RenderLog renders every line of the log, one or more terminal rows each
func RenderLog(l *Log, hl Highlighter) string {
	rows := make([]string, 0, l.Len())
	for _, line := range l.lines {
		rows = append(rows, RenderLine(line, hl))
	}
	return strings.Join(rows, "\n")
}
