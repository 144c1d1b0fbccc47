package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/ollaterm/internal/render"
	"github.com/studiowebux/ollaterm/internal/types"
)

func TestNew_InitializesDefaults(t *testing.T) {
	m := New(Options{Backend: newFakeBackend()})

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "tab", m.tab, TabTerminal)
	AssertModelField(t, "focus", m.focus, FocusMain)
	AssertModelField(t, "recallIndex", m.recallIndex, -1)
	AssertModelField(t, "input focused", m.input.Focused(), true)
	AssertModelField(t, "session id", m.state.ID(), "")

	if m.keybinds == nil {
		t.Error("keybinds should default to the built-in registry")
	}
	if m.history == nil {
		t.Error("history state should be initialized")
	}
}

func TestNew_HighlightDisabled(t *testing.T) {
	m, _ := CreateTestModel(t)
	AssertModelField(t, "highlighter enabled", m.highlighter != nil, true)

	cfg := *m.cfg
	cfg.Highlight.Disabled = true
	m = New(Options{Config: &cfg, Backend: newFakeBackend()})

	AssertModelField(t, "highlighter", m.highlighter, render.Highlighter(nil))
	AssertModelField(t, "detect def", m.detector("def f(): pass"), false)
}

func TestView_BeforeWindowSize(t *testing.T) {
	m := New(Options{Backend: newFakeBackend()})

	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
}

func TestView_MainLayout(t *testing.T) {
	m, _ := CreateTestModel(t)
	runBackendCmd(t, m, m.loadStartup())

	view := m.View()
	for _, want := range []string{"Terminal", "Sessions", "Files", "History", "ID: abc", "Variables: 0", m.cfg.BackendURL} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestStartup_AppliesInfoAndVariables(t *testing.T) {
	m, backend := CreateTestModel(t)
	backend.vars = types.Variables{"x": 1, "name": "demo"}

	runBackendCmd(t, m, m.loadStartup())

	AssertModelField(t, "session id", m.state.ID(), "abc")
	AssertModelField(t, "variable count", m.state.VariableCount(), 2)
	if _, ok := m.statusMsg.Current(); ok {
		t.Error("no status message expected on success")
	}
}

func TestStartup_BackendDown(t *testing.T) {
	m, backend := CreateTestModel(t)
	backend.err = errBackendDown

	runBackendCmd(t, m, m.loadStartup())

	msg, ok := m.statusMsg.Current()
	if !ok {
		t.Fatal("expected a status message")
	}
	AssertModelField(t, "status", msg.Text, LineBackendError)
	AssertModelField(t, "kind", msg.Kind, render.KindError)
	AssertModelField(t, "session id", m.state.ID(), "")
}

func TestUpdate_ClearMessageRespectsGeneration(t *testing.T) {
	m, _ := CreateTestModel(t)

	m.setStatusMessage("first")
	stale := m.statusMsg.Generation()
	m.setStatusMessage("second")

	m.Update(clearMessageMsg{region: regionStatus, gen: stale})
	msg, ok := m.statusMsg.Current()
	if !ok || msg.Text != "second" {
		t.Fatalf("stale clear removed the newer message: %+v %v", msg, ok)
	}

	m.Update(clearMessageMsg{region: regionStatus, gen: m.statusMsg.Generation()})
	if _, ok := m.statusMsg.Current(); ok {
		t.Error("message should be cleared")
	}
}

func TestUpdate_ClearMessageOnlyTouchesItsRegion(t *testing.T) {
	m, _ := CreateTestModel(t)

	m.setMessage(regionSession, MsgResetOK, render.KindSuccess)
	m.setStatusMessage("status")

	m.Update(clearMessageMsg{region: regionStatus, gen: m.statusMsg.Generation()})

	if _, ok := m.sessionMsg.Current(); !ok {
		t.Error("session message should survive a status clear")
	}
}

func TestSetMessage_TruncatesStatus(t *testing.T) {
	m, _ := CreateTestModel(t)

	m.setErrorMessage(strings.Repeat("x", 300))

	msg, _ := m.statusMsg.Current()
	if n := len([]rune(msg.Text)); n > StatusMaxLength {
		t.Errorf("status length = %d, want <= %d", n, StatusMaxLength)
	}
}

func TestUpdate_WindowSizeResizesViews(t *testing.T) {
	m, _ := CreateTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 60})

	AssertModelField(t, "width", m.width, 200)
	AssertModelField(t, "height", m.height, 60)
	if m.terminalView.Width <= 0 || m.terminalView.Width >= 200 {
		t.Errorf("terminal width = %d", m.terminalView.Width)
	}
	if sw := m.sidebarWidth(); sw < SidebarMinWidth || sw > SidebarMaxWidth {
		t.Errorf("sidebar width = %d", sw)
	}
}

func TestTab_String(t *testing.T) {
	AssertModelField(t, "terminal", TabTerminal.String(), "Terminal")
	AssertModelField(t, "history", TabHistory.String(), "History")
	AssertModelField(t, "unknown", Tab(9).String(), "unknown")
}
