package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/ollaterm/internal/filter"
	"github.com/studiowebux/ollaterm/internal/history"
	"github.com/studiowebux/ollaterm/internal/render"
	"github.com/studiowebux/ollaterm/internal/types"
)

// loadStartup fetches session info and the variable mapping concurrently
func (m *Model) loadStartup() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	seq := m.state.Begin()
	backend := m.backend

	return func() tea.Msg {
		ctx := context.Background()
		msg := startupMsg{seq: seq}

		var g errgroup.Group
		g.Go(func() error {
			msg.info, msg.infoErr = backend.FetchSessionInfo(ctx)
			return msg.infoErr
		})
		g.Go(func() error {
			msg.vars, msg.varsErr = backend.FetchVariables(ctx)
			return msg.varsErr
		})
		_ = g.Wait()

		return msg
	}
}

func (m *Model) handleStartup(msg startupMsg) tea.Cmd {
	if msg.infoErr != nil {
		m.logger.Warn("failed to fetch session info", zap.Error(msg.infoErr))
	} else if msg.info != nil {
		m.state.ApplyInfo(msg.seq, *msg.info)
	}

	if msg.varsErr != nil {
		m.logger.Warn("failed to fetch variables", zap.Error(msg.varsErr))
	} else {
		m.state.ReplaceVariables(msg.seq, msg.vars)
		m.clampVarIndex()
	}

	if msg.infoErr != nil && msg.varsErr != nil {
		return m.setErrorMessage(LineBackendError)
	}
	return nil
}

// executeCommand sends the terminal input to the backend
func (m *Model) executeCommand() tea.Cmd {
	command := strings.TrimSpace(m.input.Value())
	if command == "" {
		return nil
	}

	// Prevent concurrent requests
	if m.busy {
		return m.setErrorMessage(MsgBusy)
	}
	m.busy = true

	m.input.Reset()
	m.pushRecall(command)
	m.log.Append(render.RoleUser, command)
	m.pendingID = m.log.Append(render.RoleSystem, render.ProcessingMsg)
	m.refreshTerminal()

	seq := m.state.Begin()
	pendingID := m.pendingID
	backend := m.backend

	return func() tea.Msg {
		result, err := backend.Execute(context.Background(), command)
		return executedMsg{seq: seq, pendingID: pendingID, result: result, err: err}
	}
}

func (m *Model) handleExecuted(msg executedMsg) tea.Cmd {
	m.busy = false
	m.log.Remove(msg.pendingID)
	if m.pendingID == msg.pendingID {
		m.pendingID = 0
	}

	if msg.err != nil {
		m.logger.Warn("execute failed", zap.Error(msg.err))
		m.log.Append(render.RoleError, LineBackendError)
		m.refreshTerminal()
		return nil
	}

	if msg.seq < m.resetSeq {
		m.refreshTerminal()
		return nil
	}

	m.appendResult(msg.result)
	m.applyResult(msg.seq, msg.result)
	m.refreshTerminal()
	return nil
}

// appendResult writes output and error lines of an execution
func (m *Model) appendResult(result *types.ExecuteResult) {
	if result.Output != "" {
		m.log.AppendOutput(result.Output, result.Succeeded(), m.detector)
	}
	switch {
	case result.Error != "":
		m.log.AppendError(result.Error)
	case !result.Succeeded():
		m.log.AppendError("execution failed")
	}
}

// applyResult updates session state from an execution response
func (m *Model) applyResult(seq uint64, result *types.ExecuteResult) {
	if result.SessionID != "" {
		m.state.SetID(seq, result.SessionID)
	}
	if result.HasVariables() {
		m.state.ReplaceVariables(seq, result.Variables)
		m.clampVarIndex()
	}
}

// executeFile runs a file stored on the backend
func (m *Model) executeFile() tea.Cmd {
	path := strings.TrimSpace(m.fileInput.Value())
	if path == "" {
		return nil
	}

	if m.busy {
		return m.setErrorMessage(MsgBusy)
	}
	m.busy = true

	seq := m.state.Begin()
	backend := m.backend

	return func() tea.Msg {
		result, err := backend.ExecuteFile(context.Background(), path)
		return fileExecutedMsg{seq: seq, path: path, result: result, err: err}
	}
}

func (m *Model) handleFileExecuted(msg fileExecutedMsg) tea.Cmd {
	m.busy = false

	if msg.err != nil {
		m.logger.Warn("execute file failed", zap.String("path", msg.path), zap.Error(msg.err))
		return m.setMessage(regionFile, MsgFileFailed, render.KindError)
	}

	if msg.seq < m.resetSeq {
		return nil
	}

	result := msg.result
	if result.Output != "" {
		m.log.Append(render.RoleSystem, fmt.Sprintf(LineExecutingFile, msg.path))
	}
	m.appendResult(result)
	m.applyResult(msg.seq, result)
	m.refreshTerminal()

	if result.Error != "" || !result.Succeeded() {
		text := "execution failed"
		if result.Error != "" {
			text = result.Error
		}
		return m.setMessage(regionFile, render.ErrorPrefix+render.SingleLine(text), render.KindError)
	}

	m.fileInput.Reset()
	return m.setMessage(regionFile, MsgFileOK, render.KindSuccess)
}

// resetSession asks the backend for a fresh session
func (m *Model) resetSession() tea.Cmd {
	seq := m.state.Begin()
	backend := m.backend

	return func() tea.Msg {
		info, err := backend.ResetSession(context.Background())
		return resetMsg{seq: seq, info: info, err: err}
	}
}

func (m *Model) handleReset(msg resetMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("reset failed", zap.Error(msg.err))
		return m.setMessage(regionSession, MsgResetFailed, render.KindError)
	}

	m.state.Reset(msg.seq, msg.info.ID)
	if msg.seq > m.resetSeq {
		m.resetSeq = msg.seq
	}
	m.varIndex = 0
	m.history.Clear()
	m.updateHistoryView()

	m.log.Reset(
		LineSessionReset,
		fmt.Sprintf(LineNewSessionID, msg.info.ID),
		LineRuntimeReady,
	)
	m.pendingID = 0
	m.refreshTerminal()

	return m.setMessage(regionSession, MsgResetOK, render.KindSuccess)
}

// clearTerminal empties the terminal log (local only)
func (m *Model) clearTerminal() {
	m.log.Reset(LineTerminalCleared)
	m.pendingID = 0
	m.refreshTerminal()
}

// saveSession saves the session; an empty name lets the backend choose
func (m *Model) saveSession(filename string) tea.Cmd {
	backend := m.backend
	filename = strings.TrimSpace(filename)

	return func() tea.Msg {
		result, err := backend.SaveSession(context.Background(), filename)
		return savedMsg{result: result, err: err}
	}
}

func (m *Model) handleSaved(msg savedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("save failed", zap.Error(msg.err))
		return m.setMessage(regionSession, MsgSaveFailed, render.KindError)
	}

	m.saveInput.Reset()
	return m.setMessage(regionSession, fmt.Sprintf(MsgSavedTo, render.SingleLine(msg.result.Filepath)), render.KindSuccess)
}

// loadSession restores a saved session
func (m *Model) loadSession() tea.Cmd {
	filename := strings.TrimSpace(m.loadInput.Value())
	if filename == "" {
		return nil
	}

	seq := m.state.Begin()
	backend := m.backend

	return func() tea.Msg {
		info, err := backend.LoadSession(context.Background(), filename)
		return loadedMsg{seq: seq, info: info, err: err}
	}
}

func (m *Model) handleLoaded(msg loadedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("load failed", zap.Error(msg.err))
		return m.setMessage(regionSession, MsgLoadFailed, render.KindError)
	}

	if msg.info.ID != "" {
		m.state.SetID(msg.seq, msg.info.ID)
	}
	m.loadInput.Reset()

	return tea.Batch(
		m.setMessage(regionSession, MsgLoadOK, render.KindSuccess),
		m.refreshVariables(),
	)
}

// refreshVariables fetches the full variable mapping
func (m *Model) refreshVariables() tea.Cmd {
	seq := m.state.Begin()
	backend := m.backend

	return func() tea.Msg {
		vars, err := backend.FetchVariables(context.Background())
		return variablesMsg{seq: seq, vars: vars, err: err}
	}
}

func (m *Model) handleVariables(msg variablesMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("variables fetch failed", zap.Error(msg.err))
		return m.setErrorMessage(MsgVariablesFailed)
	}

	m.state.ReplaceVariables(msg.seq, msg.vars)
	m.clampVarIndex()
	return nil
}

// loadHistory fetches the execution history
func (m *Model) loadHistory() tea.Cmd {
	token := m.history.BeginFetch()
	backend := m.backend

	return func() tea.Msg {
		entries, err := backend.FetchHistory(context.Background())
		return historyLoadedMsg{token: token, entries: entries, err: err}
	}
}

func (m *Model) handleHistoryLoaded(msg historyLoadedMsg) {
	if msg.err != nil {
		m.logger.Warn("history fetch failed", zap.Error(msg.err))
		m.history.SetFailed(msg.token)
	} else {
		m.history.SetEntries(msg.token, msg.entries)
	}
	m.updateHistoryView()
}

// clearHistory empties the visible history (the backend keeps it)
func (m *Model) clearHistory() tea.Cmd {
	m.history.Clear()
	m.updateHistoryView()
	return m.setStatusMessage(MsgHistoryCleared)
}

// exportHistory writes the visible history as an HTML transcript
func (m *Model) exportHistory() tea.Cmd {
	all := m.history.GetAllEntries()
	entries := make([]types.HistoryEntry, 0, len(all))
	for _, pos := range m.history.GetVisible() {
		entries = append(entries, all[pos])
	}

	cfg := m.cfg
	opts := history.ExportOptions{
		SessionID: m.state.ID(),
		Language:  cfg.Highlight.Language,
		Style:     cfg.Highlight.Style,
	}

	return func() tea.Msg {
		path, err := history.ExportFile(cfg, entries, opts)
		return exportedMsg{path: path, err: err}
	}
}

func (m *Model) handleExported(msg exportedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Warn("history export failed", zap.Error(msg.err))
		return m.setErrorMessage(MsgExportFailed)
	}
	return m.setStatusMessage(fmt.Sprintf(MsgExportedTo, msg.path))
}

// copyToClipboard copies text and reports the outcome
func (m *Model) copyToClipboard(text string) tea.Cmd {
	if text == "" {
		return m.setErrorMessage(MsgNothingToCopy)
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.logger.Debug("clipboard unavailable", zap.Error(err))
		return m.setErrorMessage(MsgCopyFailed)
	}
	return m.setStatusMessage(MsgCopied)
}

// openDetail shows the selected variable in the details modal
func (m *Model) openDetail() {
	vars := m.state.Variables()
	names := vars.Names()
	if len(names) == 0 || m.varIndex >= len(names) {
		return
	}

	m.detailName = names[m.varIndex]
	m.detailQuery = ""
	m.queryInput.Reset()
	m.applyDetailQuery()
	m.mode = ModeDetail
}

// applyDetailQuery renders the detail value through the current query
func (m *Model) applyDetailQuery() {
	value := m.state.Variables()[m.detailName]

	body, err := filter.Apply(value, m.detailQuery)
	if err != nil {
		m.detailErr = err.Error()
		if m.detailBody == "" {
			m.detailBody = render.PrettyJSON(value)
		}
	} else {
		m.detailErr = ""
		m.detailBody = body
	}

	m.detailView.SetContent(render.Sanitize(m.detailBody))
	m.detailView.GotoTop()
}

// selectedVariableJSON returns the pretty JSON of the selected variable
func (m *Model) selectedVariableJSON() string {
	vars := m.state.Variables()
	names := vars.Names()
	if m.varIndex >= len(names) {
		return ""
	}
	return render.PrettyJSON(vars[names[m.varIndex]])
}

// clampVarIndex keeps the sidebar selection inside the variable list
func (m *Model) clampVarIndex() {
	count := len(m.state.Variables())
	if m.varIndex >= count {
		m.varIndex = count - 1
	}
	if m.varIndex < 0 {
		m.varIndex = 0
	}
}

// pushRecall remembers a command for up/down recall
func (m *Model) pushRecall(command string) {
	if n := len(m.recall); n == 0 || m.recall[n-1] != command {
		m.recall = append(m.recall, command)
		if len(m.recall) > RecallLimit {
			m.recall = m.recall[len(m.recall)-RecallLimit:]
		}
	}
	m.recallIndex = -1
}

// recallCommand moves through previously entered commands
func (m *Model) recallCommand(delta int) {
	if len(m.recall) == 0 {
		return
	}

	idx := m.recallIndex
	if idx == -1 {
		if delta > 0 {
			return
		}
		idx = len(m.recall)
	}
	idx += delta

	if idx >= len(m.recall) {
		m.recallIndex = -1
		m.input.Reset()
		return
	}
	if idx < 0 {
		idx = 0
	}

	m.recallIndex = idx
	m.input.SetValue(m.recall[idx])
	m.input.CursorEnd()
}
