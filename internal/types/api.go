package types

// Envelope types for endpoints that wrap their payload in a named field.

// HistoryResponse is the body of GET /api/history
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
	Total   int            `json:"total,omitempty"`
}

// VariablesResponse is the body of GET /api/variables
type VariablesResponse struct {
	Variables Variables `json:"variables"`
}

// FileRequest is the body of the session save/load and execute-file calls.
// A nil Filepath is sent as JSON null.
type FileRequest struct {
	Filepath *string `json:"filepath"`
}

// ExecuteRequest is the body of POST /api/execute
type ExecuteRequest struct {
	Prompt string `json:"prompt"`
}
