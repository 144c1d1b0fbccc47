package types

import (
	"sort"
	"time"
)

// SessionInfo identifies the backend session the client is attached to
type SessionInfo struct {
	ID            string `json:"session_id" yaml:"session_id"`
	VariableCount int    `json:"variable_count,omitempty" yaml:"variable_count,omitempty"`
}

// Variables is the name -> value mapping held by a session
type Variables map[string]any

// Names returns the variable names in ascending order
func (v Variables) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the mapping, preserving nil
func (v Variables) Clone() Variables {
	if v == nil {
		return nil
	}
	out := make(Variables, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// ExecuteResult is the response to a command or file execution
type ExecuteResult struct {
	Output    string    `json:"output,omitempty" yaml:"output,omitempty"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	Success   *bool     `json:"success,omitempty" yaml:"success,omitempty"`
	Variables Variables `json:"variables,omitempty" yaml:"variables,omitempty"`
	SessionID string    `json:"session_id,omitempty" yaml:"session_id,omitempty"`
}

// Succeeded reports the outcome of the execution.
// Older backends omit "success"; an absent flag means success unless an error was reported.
func (r *ExecuteResult) Succeeded() bool {
	if r.Success != nil {
		return *r.Success
	}
	return r.Error == ""
}

// HasVariables reports whether the response carried a variable mapping
func (r *ExecuteResult) HasVariables() bool {
	return r.Variables != nil
}

// SaveResult is the response to a session save
type SaveResult struct {
	Filepath string `json:"filepath" yaml:"filepath"`
}

// HistoryEntry is one past execution as recorded by the backend
type HistoryEntry struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Code      string `json:"code" yaml:"code"`
	Output    string `json:"output,omitempty" yaml:"output,omitempty"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	Success   bool   `json:"success" yaml:"success"`
}

// timestampLayouts are the ISO-8601 forms emitted by backends.
// Python's datetime.isoformat() has no zone, so naive layouts are tried too.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Time parses the entry timestamp. Naive timestamps are read as local time.
func (e HistoryEntry) Time() (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, e.Timestamp, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
