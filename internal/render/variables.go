package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/studiowebux/ollaterm/internal/types"
)

// NoVariables is shown when the session has no variables
const NoVariables = "No variables defined yet."

// VariableRow is one entry of the variable list
type VariableRow struct {
	Name        string
	Value       string // FormatValue of the value
	Placeholder bool
}

// Text returns the row as "name: value", or the placeholder text
func (r VariableRow) Text() string {
	if r.Placeholder {
		return NoVariables
	}
	return r.Name + ": " + r.Value
}

// VariableRows builds the sidebar rows sorted by name.
// An empty mapping yields a single placeholder row.
func VariableRows(vars types.Variables) []VariableRow {
	if len(vars) == 0 {
		return []VariableRow{{Placeholder: true}}
	}

	rows := make([]VariableRow, 0, len(vars))
	for _, name := range vars.Names() {
		rows = append(rows, VariableRow{
			Name:  SingleLine(name),
			Value: SingleLine(FormatValue(vars[name])),
		})
	}
	return rows
}

// Truncate shortens s to fit width terminal cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
