package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/ollaterm/internal/types"
)

func TestBegin_Increasing(t *testing.T) {
	s := New()
	first := s.Begin()
	second := s.Begin()
	assert.Equal(t, uint64(1), first)
	assert.Greater(t, second, first)
}

func TestApplyInfo_ReportedCountUntilMapping(t *testing.T) {
	s := New()

	require.True(t, s.ApplyInfo(s.Begin(), types.SessionInfo{ID: "abc", VariableCount: 5}))
	assert.Equal(t, "abc", s.ID())
	assert.Equal(t, 5, s.VariableCount())
	assert.False(t, s.HasVariables())

	s.ReplaceVariables(s.Begin(), types.Variables{"x": 1, "y": 2})
	assert.Equal(t, 2, s.VariableCount())
	assert.True(t, s.HasVariables())

	// once a mapping is known, the reported count no longer applies
	s.ApplyInfo(s.Begin(), types.SessionInfo{ID: "abc", VariableCount: 9})
	assert.Equal(t, 2, s.VariableCount())
}

func TestVariableCountMatchesMapping(t *testing.T) {
	tests := []struct {
		name string
		vars types.Variables
		want int
	}{
		{"nil mapping", nil, 0},
		{"empty mapping", types.Variables{}, 0},
		{"three variables", types.Variables{"a": 1, "b": "two", "c": []any{1}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.ReplaceVariables(s.Begin(), tt.vars)
			assert.Equal(t, tt.want, s.VariableCount())
			assert.Len(t, s.Variables(), tt.want)
		})
	}
}

func TestStaleTokensIgnored(t *testing.T) {
	s := New()

	older := s.Begin()
	newer := s.Begin()

	// responses arrive out of order
	require.True(t, s.SetID(newer, "new-session"))
	assert.False(t, s.SetID(older, "old-session"))
	assert.Equal(t, "new-session", s.ID())

	require.True(t, s.ReplaceVariables(newer, types.Variables{"x": 1}))
	assert.False(t, s.ReplaceVariables(older, types.Variables{"y": 1, "z": 2}))
	assert.Equal(t, 1, s.VariableCount())
	assert.Contains(t, s.Variables(), "x")
}

func TestFieldsTrackedIndependently(t *testing.T) {
	s := New()

	load := s.Begin()
	refresh := s.Begin()

	s.ReplaceVariables(refresh, types.Variables{"a": 1})

	// an older token is still valid for a field it has not lost on
	assert.True(t, s.SetID(load, "loaded"))
	assert.Equal(t, "loaded", s.ID())
	assert.False(t, s.ReplaceVariables(load, types.Variables{}))
	assert.Equal(t, 1, s.VariableCount())
}

func TestReset(t *testing.T) {
	s := New()
	s.ApplyInfo(s.Begin(), types.SessionInfo{ID: "before", VariableCount: 3})
	s.ReplaceVariables(s.Begin(), types.Variables{"a": 1, "b": 2, "c": 3})

	require.True(t, s.Reset(s.Begin(), "abc"))
	assert.Equal(t, "abc", s.ID())
	assert.Equal(t, 0, s.VariableCount())
	assert.True(t, s.HasVariables())
	assert.Empty(t, s.Variables())
}

func TestReset_StaleAfterNewerExecute(t *testing.T) {
	s := New()
	reset := s.Begin()
	execute := s.Begin()

	s.ReplaceVariables(execute, types.Variables{"x": 42})
	s.Reset(reset, "abc")

	assert.Equal(t, "abc", s.ID())
	assert.Equal(t, 1, s.VariableCount(), "older reset must not empty newer variables")
}

func TestVariables_ReturnsCopy(t *testing.T) {
	s := New()
	s.ReplaceVariables(s.Begin(), types.Variables{"x": 1})

	vars := s.Variables()
	vars["injected"] = true

	assert.Equal(t, 1, s.VariableCount())
	assert.NotContains(t, s.Variables(), "injected")
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.ReplaceVariables(s.Begin(), types.Variables{"x": 1})
		}()
		go func() {
			defer wg.Done()
			_ = s.VariableCount()
			_ = s.ID()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.VariableCount())
}
