/*
Package types defines the records exchanged with the execution backend and
shared by the rest of ollaterm.

# Overview

The types package provides shared type definitions for:
  - Session identity (SessionInfo)
  - Command and file execution results (ExecuteResult)
  - The variable mapping of a session (Variables)
  - Execution history (HistoryEntry)
  - Saved session results (SaveResult)

# Wire Format

All types carry the JSON field names used by the backend API (snake_case).
Numbers inside Variables are decoded as json.Number so that the textual form
sent by the backend is preserved when displayed.

# Absent vs Empty

A nil Variables map means the response did not carry a "variables" field.
An empty, non-nil map means the session holds no variables. Callers rely on
this distinction to leave the displayed mapping untouched when a response
does not report variables.
*/
package types
