package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/ollaterm/internal/filter"
	"github.com/studiowebux/ollaterm/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	// Force quit works in every mode
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, key); ok && action == keybinds.ActionQuitForce {
		return tea.Quit
	}

	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKeys(key)
	case ModeDetail:
		return m.handleDetailKeys(key)
	case ModeDetailQuery:
		return m.handleQueryKeys(msg)
	case ModeHistorySearch:
		return m.handleSearchKeys(msg)
	}

	if action, ok := m.keybinds.Match(m.currentContext(), key); ok {
		if cmd, handled := m.handleAction(action); handled {
			return cmd
		}
	}

	// Unbound keys are typed into the focused input
	return m.updateFocusedInput(msg)
}

// currentContext returns the keybinding context of the focused pane
func (m *Model) currentContext() keybinds.Context {
	if m.focus == FocusSidebar {
		return keybinds.ContextSidebar
	}

	switch m.tab {
	case TabSessions:
		return keybinds.ContextSessions
	case TabFiles:
		return keybinds.ContextFiles
	case TabHistory:
		return keybinds.ContextHistory
	default:
		return keybinds.ContextTerminal
	}
}

// handleAction runs an action of the normal mode.
// It reports false for actions that do not apply to the focused pane.
func (m *Model) handleAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionTabTerminal:
		return m.switchTab(TabTerminal), true
	case keybinds.ActionTabSessions:
		return m.switchTab(TabSessions), true
	case keybinds.ActionTabFiles:
		return m.switchTab(TabFiles), true
	case keybinds.ActionTabHistory:
		return m.switchTab(TabHistory), true
	case keybinds.ActionNextTab:
		return m.switchTab((m.tab + 1) % Tab(len(tabNames))), true
	case keybinds.ActionSwitchFocus:
		m.toggleFocus()
		return nil, true
	case keybinds.ActionResetSession:
		m.askConfirm(confirmReset, "Reset the session? All variables will be lost.")
		return nil, true
	case keybinds.ActionClearTerminal:
		m.clearTerminal()
		return nil, true
	case keybinds.ActionSaveSessionQuick:
		return m.saveSession(""), true
	case keybinds.ActionRefreshVariables:
		return m.refreshVariables(), true
	}

	switch m.currentContext() {
	case keybinds.ContextTerminal:
		return m.handleTerminalAction(action)
	case keybinds.ContextSidebar:
		return m.handleSidebarAction(action)
	case keybinds.ContextSessions:
		return m.handleSessionsAction(action)
	case keybinds.ContextFiles:
		if action == keybinds.ActionSubmit {
			return m.executeFile(), true
		}
	case keybinds.ContextHistory:
		return m.handleHistoryAction(action)
	}

	return nil, false
}

func (m *Model) handleTerminalAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionExecute:
		return m.executeCommand(), true
	case keybinds.ActionRecallPrev:
		m.recallCommand(-1)
	case keybinds.ActionRecallNext:
		m.recallCommand(1)
	case keybinds.ActionPageUp:
		m.terminalView.ViewUp()
	case keybinds.ActionPageDown:
		m.terminalView.ViewDown()
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleSidebarAction(action keybinds.Action) (tea.Cmd, bool) {
	count := len(m.state.Variables())

	switch action {
	case keybinds.ActionNavigateUp:
		if m.varIndex > 0 {
			m.varIndex--
		}
	case keybinds.ActionNavigateDown:
		if m.varIndex < count-1 {
			m.varIndex++
		}
	case keybinds.ActionGoToTop:
		m.varIndex = 0
	case keybinds.ActionGoToBottom:
		m.varIndex = max(0, count-1)
	case keybinds.ActionVarDetails:
		m.openDetail()
	case keybinds.ActionVarCopy:
		return m.copyToClipboard(m.selectedVariableJSON()), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleSessionsAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionSubmit:
		if m.sessionField == fieldSave {
			return m.saveSession(m.saveInput.Value()), true
		}
		return m.loadSession(), true
	case keybinds.ActionFieldNext, keybinds.ActionFieldPrev:
		m.sessionField = 1 - m.sessionField
		m.syncFocus()
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleHistoryAction(action keybinds.Action) (tea.Cmd, bool) {
	switch action {
	case keybinds.ActionNavigateUp:
		m.history.Navigate(-1)
	case keybinds.ActionNavigateDown:
		m.history.Navigate(1)
	case keybinds.ActionGoToTop:
		m.history.SetIndex(0)
	case keybinds.ActionGoToBottom:
		m.history.SetIndex(len(m.history.GetVisible()) - 1)
	case keybinds.ActionPageUp:
		m.historyView.ViewUp()
		return nil, true
	case keybinds.ActionPageDown:
		m.historyView.ViewDown()
		return nil, true
	case keybinds.ActionHistorySearch:
		m.mode = ModeHistorySearch
		m.history.SetSearchActive(true)
		m.searchInput.SetValue(m.history.GetSearchQuery())
		m.searchInput.CursorEnd()
		m.syncFocus()
		return nil, true
	case keybinds.ActionTextCancel:
		m.history.SetSearchQuery("")
	case keybinds.ActionHistoryClear:
		m.askConfirm(confirmHistoryClear, "Clear the visible history? The backend keeps its copy.")
		return nil, true
	case keybinds.ActionHistoryExport:
		return m.exportHistory(), true
	case keybinds.ActionHistoryCopy:
		if entry, _ := m.history.GetCurrentEntry(); entry != nil {
			return m.copyToClipboard(entry.Code), true
		}
		return m.copyToClipboard(""), true
	case keybinds.ActionHistoryRefresh:
		return m.loadHistory(), true
	case keybinds.ActionHistoryRerun:
		if entry, _ := m.history.GetCurrentEntry(); entry != nil {
			m.input.SetValue(entry.Code)
			m.input.CursorEnd()
			return m.switchTab(TabTerminal), true
		}
		return nil, true
	default:
		return nil, false
	}

	m.updateHistoryView()
	return nil, true
}

// handleConfirmKeys handles the yes/no prompt
func (m *Model) handleConfirmKeys(key string) tea.Cmd {
	action, _ := m.keybinds.Match(keybinds.ContextConfirm, key)

	switch action {
	case keybinds.ActionConfirmYes:
		kind := m.confirm
		m.closeConfirm()
		switch kind {
		case confirmReset:
			return m.resetSession()
		case confirmHistoryClear:
			return m.clearHistory()
		}
	case keybinds.ActionConfirmNo:
		m.closeConfirm()
	}

	return nil
}

// handleDetailKeys handles the variable details modal
func (m *Model) handleDetailKeys(key string) tea.Cmd {
	action, _ := m.keybinds.Match(keybinds.ContextDetail, key)

	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
		m.syncFocus()
	case keybinds.ActionNavigateUp:
		m.detailView.LineUp(1)
	case keybinds.ActionNavigateDown:
		m.detailView.LineDown(1)
	case keybinds.ActionPageUp:
		m.detailView.ViewUp()
	case keybinds.ActionPageDown:
		m.detailView.ViewDown()
	case keybinds.ActionDetailQuery:
		m.mode = ModeDetailQuery
		m.queryInput.SetValue(m.detailQuery)
		m.queryInput.CursorEnd()
		m.syncFocus()
	case keybinds.ActionDetailCopy:
		return m.copyToClipboard(m.detailBody)
	}

	return nil
}

// handleQueryKeys handles the JMESPath prompt of the details modal
func (m *Model) handleQueryKeys(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.keybinds.Match(keybinds.ContextTextInput, msg.String())

	switch action {
	case keybinds.ActionTextSubmit:
		query := strings.TrimSpace(m.queryInput.Value())
		if query != "" {
			if err := filter.Validate(query); err != nil {
				m.detailErr = err.Error()
				return nil
			}
		}
		m.detailQuery = query
		m.applyDetailQuery()
		m.mode = ModeDetail
		m.syncFocus()
		return nil
	case keybinds.ActionTextCancel:
		m.applyDetailQuery()
		m.mode = ModeDetail
		m.syncFocus()
		return nil
	}

	return m.updateFocusedInput(msg)
}

// handleSearchKeys handles the history search prompt. The list filters as you type.
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	action, _ := m.keybinds.Match(keybinds.ContextTextInput, msg.String())

	switch action {
	case keybinds.ActionTextSubmit:
		m.closeSearch()
		return nil
	case keybinds.ActionTextCancel:
		m.history.SetSearchQuery("")
		m.closeSearch()
		return nil
	}

	cmd := m.updateFocusedInput(msg)
	m.history.SetSearchQuery(m.searchInput.Value())
	m.updateHistoryView()
	return cmd
}

func (m *Model) closeSearch() {
	m.mode = ModeNormal
	m.history.SetSearchActive(false)
	m.updateHistoryView()
	m.syncFocus()
}

// switchTab activates a tab. Opening History always fetches it fresh.
func (m *Model) switchTab(tab Tab) tea.Cmd {
	m.tab = tab
	m.focus = FocusMain
	m.syncFocus()

	if tab == TabHistory {
		return m.loadHistory()
	}
	return nil
}

// toggleFocus moves keys between the main pane and the sidebar
func (m *Model) toggleFocus() {
	if m.focus == FocusMain {
		m.focus = FocusSidebar
		m.clampVarIndex()
	} else {
		m.focus = FocusMain
	}
	m.syncFocus()
}

func (m *Model) askConfirm(kind confirmKind, prompt string) {
	m.confirm = kind
	m.confirmPrompt = prompt
	m.mode = ModeConfirm
	m.syncFocus()
}

func (m *Model) closeConfirm() {
	m.confirm = confirmNone
	m.confirmPrompt = ""
	m.mode = ModeNormal
	m.syncFocus()
}

// focusedInput returns the text input receiving typed keys, if any
func (m *Model) focusedInput() *textinput.Model {
	switch m.mode {
	case ModeHistorySearch:
		return &m.searchInput
	case ModeDetailQuery:
		return &m.queryInput
	case ModeConfirm, ModeDetail:
		return nil
	}

	if m.focus == FocusSidebar {
		return nil
	}

	switch m.tab {
	case TabTerminal:
		return &m.input
	case TabSessions:
		if m.sessionField == fieldSave {
			return &m.saveInput
		}
		return &m.loadInput
	case TabFiles:
		return &m.fileInput
	}
	return nil
}

// syncFocus focuses the active input and blurs the others
func (m *Model) syncFocus() {
	active := m.focusedInput()
	for _, ti := range []*textinput.Model{
		&m.input, &m.saveInput, &m.loadInput, &m.fileInput, &m.searchInput, &m.queryInput,
	} {
		if ti == active {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
}

// updateFocusedInput forwards a message to the focused input
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	ti := m.focusedInput()
	if ti == nil {
		return nil
	}

	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	return cmd
}
