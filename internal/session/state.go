package session

import (
	"sync"

	"github.com/studiowebux/ollaterm/internal/types"
)

// State is the session id and variable snapshot shown by the client
type State struct {
	mu sync.RWMutex

	next uint64

	id    string
	idSeq uint64

	vars          types.Variables
	varsSeq       uint64
	varsReceived  bool
	reportedCount int
}

// New creates an empty state
func New() *State {
	return &State{}
}

// Begin issues the sequence token for a request about to be sent.
// Tokens start at 1 and increase with each call.
func (s *State) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// acceptID reports whether seq may update the session id (lock held)
func (s *State) acceptID(seq uint64) bool {
	if seq < s.idSeq {
		return false
	}
	s.idSeq = seq
	return true
}

// acceptVars reports whether seq may update the variables (lock held)
func (s *State) acceptVars(seq uint64) bool {
	if seq < s.varsSeq {
		return false
	}
	s.varsSeq = seq
	return true
}

// ApplyInfo records a session info response: the id and the count the
// backend reported. The count is only shown until a mapping is received.
func (s *State) ApplyInfo(seq uint64, info types.SessionInfo) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := false
	if info.ID != "" && s.acceptID(seq) {
		s.id = info.ID
		applied = true
	}
	if !s.varsReceived && seq >= s.varsSeq {
		s.reportedCount = info.VariableCount
		applied = true
	}
	return applied
}

// SetID replaces the session id
func (s *State) SetID(seq uint64, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.acceptID(seq) {
		return false
	}
	s.id = id
	return true
}

// ReplaceVariables replaces the whole variable mapping.
// A nil mapping is stored as empty.
func (s *State) ReplaceVariables(seq uint64, vars types.Variables) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.acceptVars(seq) {
		return false
	}
	if vars == nil {
		vars = types.Variables{}
	}
	s.vars = vars.Clone()
	s.varsReceived = true
	return true
}

// Reset records a session reset: a new id and no variables.
// The two fields are checked independently.
func (s *State) Reset(seq uint64, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := false
	if s.acceptID(seq) {
		s.id = id
		applied = true
	}
	if s.acceptVars(seq) {
		s.vars = types.Variables{}
		s.varsReceived = true
		applied = true
	}
	return applied
}

// ID returns the current session id, empty when unknown
func (s *State) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Variables returns a copy of the current mapping
func (s *State) Variables() types.Variables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.vars == nil {
		return types.Variables{}
	}
	return s.vars.Clone()
}

// VariableCount returns the number of variables to display
func (s *State) VariableCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.varsReceived {
		return len(s.vars)
	}
	return s.reportedCount
}

// HasVariables reports whether a mapping has been received
func (s *State) HasVariables() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.varsReceived
}
