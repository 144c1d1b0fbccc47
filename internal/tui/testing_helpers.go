package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/ollaterm/internal/config"
	"github.com/studiowebux/ollaterm/internal/types"
)

var errBackendDown = errors.New("connection refused")

// fakeBackend is an in-memory Backend with canned responses
type fakeBackend struct {
	mu sync.Mutex

	info     *types.SessionInfo
	vars     types.Variables
	result   *types.ExecuteResult
	history  []types.HistoryEntry
	saved    *types.SaveResult
	resetID  string
	err      error
	calls    []string
	commands []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		info:    &types.SessionInfo{ID: "abc"},
		vars:    types.Variables{},
		result:  &types.ExecuteResult{},
		saved:   &types.SaveResult{Filepath: "sessions/session_1.json"},
		resetID: "abc",
	}
}

func (f *fakeBackend) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) FetchSessionInfo(ctx context.Context) (*types.SessionInfo, error) {
	if err := f.record("info"); err != nil {
		return nil, err
	}
	return f.info, nil
}

func (f *fakeBackend) Execute(ctx context.Context, command string) (*types.ExecuteResult, error) {
	f.mu.Lock()
	f.commands = append(f.commands, command)
	f.mu.Unlock()
	if err := f.record("execute"); err != nil {
		return nil, err
	}
	return f.result, nil
}

func (f *fakeBackend) ResetSession(ctx context.Context) (*types.SessionInfo, error) {
	if err := f.record("reset"); err != nil {
		return nil, err
	}
	return &types.SessionInfo{ID: f.resetID}, nil
}

func (f *fakeBackend) SaveSession(ctx context.Context, filename string) (*types.SaveResult, error) {
	if err := f.record("save:" + filename); err != nil {
		return nil, err
	}
	return f.saved, nil
}

func (f *fakeBackend) LoadSession(ctx context.Context, filename string) (*types.SessionInfo, error) {
	if err := f.record("load:" + filename); err != nil {
		return nil, err
	}
	return f.info, nil
}

func (f *fakeBackend) ExecuteFile(ctx context.Context, path string) (*types.ExecuteResult, error) {
	if err := f.record("file:" + path); err != nil {
		return nil, err
	}
	return f.result, nil
}

func (f *fakeBackend) FetchHistory(ctx context.Context) ([]types.HistoryEntry, error) {
	if err := f.record("history"); err != nil {
		return nil, err
	}
	return f.history, nil
}

func (f *fakeBackend) FetchVariables(ctx context.Context) (types.Variables, error) {
	if err := f.record("variables"); err != nil {
		return nil, err
	}
	return f.vars, nil
}

// CreateTestModel creates a sized Model backed by a fake backend
func CreateTestModel(t *testing.T) (*Model, *fakeBackend) {
	t.Helper()

	backend := newFakeBackend()
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()
	cfg.MessageTimeout = time.Millisecond

	m := New(Options{Config: cfg, Backend: backend})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return m, backend
}

// runBackendCmd runs a command that calls the backend and delivers its result to the model
func runBackendCmd(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()

	if cmd == nil {
		t.Fatal("expected a backend command, got nil")
	}
	msg := cmd()
	if msg == nil {
		t.Fatal("backend command returned no message")
	}
	_, next := m.Update(msg)
	return next
}

// drain runs cmd and every command it produces, delivering all messages
// except message expiry so that results stay observable
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()

	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, clearMessageMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	default:
		_, next := m.Update(msg)
		drain(t, m, next)
	}
}

// pressKey sends a key press through Update
func pressKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyMsg(key))
	return cmd
}

// keyMsg builds the key message that renders as key
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "f4":
		return tea.KeyMsg{Type: tea.KeyF4}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// typeText types each rune into the focused input
func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
