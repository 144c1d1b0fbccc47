package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/studiowebux/ollaterm/internal/keybinds"
	"github.com/studiowebux/ollaterm/internal/render"
)

// sidebarWidth returns the outer width of the sidebar
func (m *Model) sidebarWidth() int {
	w := m.width * SidebarWidthPercent / 100
	w = min(max(w, SidebarMinWidth), SidebarMaxWidth)
	if m.width-w < SidebarMinWidth {
		w = m.width / 2
	}
	return w
}

// paneSize returns the inner size of the main pane
func (m *Model) paneSize() (int, int) {
	w := m.width - m.sidebarWidth() - BorderSize
	h := m.height - ChromeHeight - BorderSize
	return max(w, 1), max(h, 1)
}

// updateLayout resizes viewports and inputs after a window change
func (m *Model) updateLayout() {
	w, h := m.paneSize()

	m.terminalView.Width = w
	m.terminalView.Height = max(h-TerminalInputHeight, 1)

	previewHeight := max(h*HistoryPreviewPercent/100, 3)
	m.historyView.Width = w
	m.historyView.Height = previewHeight

	m.detailView.Width = max(m.width-ModalWidthMargin-BorderSize, 10)
	m.detailView.Height = max(m.height-ModalHeightMargin-BorderSize-5, 3)

	for _, ti := range []*textinput.Model{&m.input, &m.saveInput, &m.loadInput, &m.fileInput, &m.searchInput} {
		ti.Width = max(w-lipgloss.Width(ti.Prompt)-1, 1)
	}
	m.queryInput.Width = max(m.detailView.Width-4, 1)

	m.refreshTerminal()
	m.updateHistoryView()
}

// refreshTerminal re-renders the log into the terminal viewport and scrolls to the end
func (m *Model) refreshTerminal() {
	content := render.RenderLog(&m.log, m.highlighter)
	if m.terminalView.Width > 0 {
		content = lipgloss.NewStyle().Width(m.terminalView.Width).Render(content)
	}
	m.terminalView.SetContent(content)
	m.terminalView.GotoBottom()
}

// updateHistoryView fills the preview pane with the selected entry
func (m *Model) updateHistoryView() {
	entry, pos := m.history.GetCurrentEntry()
	if entry == nil {
		m.historyView.SetContent("")
		return
	}

	items := render.HistoryItems(m.history.GetAllEntries())
	if pos >= len(items) {
		m.historyView.SetContent("")
		return
	}
	item := items[pos]

	var b strings.Builder
	b.WriteString(render.StyleTitle.Render(item.Header()))
	b.WriteString("\n\n")
	b.WriteString(m.highlightCode(item.Code))
	if item.Output != "" {
		b.WriteString("\n\n")
		b.WriteString(render.StyleSubtle.Render("Output:"))
		b.WriteString("\n")
		b.WriteString(item.Output)
	}
	if item.Error != "" {
		b.WriteString("\n\n")
		b.WriteString(render.StyleError.Render(render.ErrorPrefix + item.Error))
	}

	content := b.String()
	if m.historyView.Width > 0 {
		content = lipgloss.NewStyle().Width(m.historyView.Width).Render(content)
	}
	m.historyView.SetContent(content)
	m.historyView.GotoTop()
}

// highlightCode highlights sanitized code, falling back to plain text
func (m *Model) highlightCode(code string) string {
	if m.highlighter == nil {
		return code
	}
	out, err := m.highlighter.Highlight(code)
	if err != nil {
		return code
	}
	return out
}

// renderMain renders the tab bar, the active pane, the sidebar and the status bar
func (m *Model) renderMain() string {
	w, h := m.paneSize()

	var content string
	switch m.tab {
	case TabSessions:
		content = m.renderSessions(w)
	case TabFiles:
		content = m.renderFiles(w)
	case TabHistory:
		content = m.renderHistory(w, h)
	default:
		content = m.renderTerminal(w)
	}

	mainBorder := render.ColorGray
	if m.focus == FocusMain {
		mainBorder = render.ColorCyan
	}
	mainBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mainBorder).
		Width(w).
		Height(h).
		MaxHeight(h + BorderSize).
		Render(content)

	body := lipgloss.JoinHorizontal(lipgloss.Top, mainBox, m.renderSidebar(m.sidebarWidth(), h))

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), body, m.renderStatusBar())
}

// renderTabs renders the tab bar with the backend address on the right
func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if Tab(i) == m.tab {
			parts = append(parts, render.StyleSelected.Bold(true).Render(label))
		} else {
			parts = append(parts, render.StyleSubtle.Render(label))
		}
	}
	left := render.StyleTitle.Render("ollaterm ") + strings.Join(parts, " ")

	right := render.StyleSubtle.Render(m.cfg.BackendURL)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left, m.width, "")
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderTerminal(width int) string {
	separator := render.StyleSubtle.Render(strings.Repeat("─", width))
	return m.terminalView.View() + "\n" + separator + "\n" + m.input.View()
}

func (m *Model) renderSessions(width int) string {
	var b strings.Builder

	b.WriteString(render.StyleTitle.Render("Sessions"))
	b.WriteString("\n\n")
	b.WriteString("Current session: " + m.sessionIDText())
	b.WriteString("\n\n")
	b.WriteString(fieldMarker(m.sessionField == fieldSave && m.focus == FocusMain) + m.saveInput.View())
	b.WriteString("\n")
	b.WriteString(fieldMarker(m.sessionField == fieldLoad && m.focus == FocusMain) + m.loadInput.View())
	b.WriteString("\n\n")
	b.WriteString(render.StyleSubtle.Render(render.Truncate(fmt.Sprintf("%s: submit field • %s: switch field • %s: quick save",
		m.keybinds.GetBindingString(keybinds.ContextSessions, keybinds.ActionSubmit),
		m.keybinds.GetBindingString(keybinds.ContextSessions, keybinds.ActionFieldNext),
		m.keybinds.GetBindingString(keybinds.ContextGlobal, keybinds.ActionSaveSessionQuick),
	), width)))

	if msg, ok := m.sessionMsg.Current(); ok {
		b.WriteString("\n\n")
		b.WriteString(msg.Render())
	}

	return b.String()
}

func fieldMarker(active bool) string {
	if active {
		return render.StylePrompt.Render("> ")
	}
	return "  "
}

func (m *Model) renderFiles(width int) string {
	var b strings.Builder

	b.WriteString(render.StyleTitle.Render("Execute File"))
	b.WriteString("\n\n")
	b.WriteString(render.StyleSubtle.Render(render.Truncate("Runs a file stored on the backend. Output appears in the Terminal tab.", width)))
	b.WriteString("\n\n")
	b.WriteString(m.fileInput.View())

	if m.busy {
		b.WriteString("\n\n")
		b.WriteString(render.StyleWarning.Render(render.ProcessingMsg))
	}

	if msg, ok := m.fileMsg.Current(); ok {
		b.WriteString("\n\n")
		b.WriteString(msg.Render())
	}

	return b.String()
}

func (m *Model) renderHistory(width, height int) string {
	var lines []string

	query := m.history.GetSearchQuery()
	if m.history.IsSearchActive() {
		lines = append(lines, m.searchInput.View())
	} else if query != "" {
		lines = append(lines, render.StyleSubtle.Render(render.Truncate("/ "+query, width)))
	}

	listHeight := max(height-m.historyView.Height-1-len(lines), 1)
	visible := m.history.GetVisible()

	switch {
	case m.history.HasFailed():
		lines = append(lines, render.StyleError.Render(render.HistoryLoadFailed))
	case !m.history.IsLoaded():
		lines = append(lines, render.StyleSubtle.Render("Loading history..."))
	case len(visible) == 0 && query != "":
		lines = append(lines, render.StyleSubtle.Render("No matches."))
	case len(visible) == 0:
		lines = append(lines, render.StyleSubtle.Render(render.NoHistory))
	default:
		items := render.HistoryItems(m.history.GetAllEntries())
		index := m.history.GetIndex()
		start := 0
		if index >= listHeight {
			start = index - listHeight + 1
		}
		end := min(start+listHeight, len(visible))

		for i := start; i < end; i++ {
			item := items[visible[i]]
			code := render.SingleLine(firstLine(item.Code))

			glyph := render.StyleSuccess.Render(item.Glyph)
			if !item.Success {
				glyph = render.StyleError.Render(item.Glyph)
			}
			prefix := fmt.Sprintf("#%d %s ", item.Index, item.Time)
			text := render.Truncate(code, width-lipgloss.Width(prefix)-2)

			if i == index {
				lines = append(lines, render.StyleSelected.Render(prefix)+glyph+" "+render.StyleSelected.Render(text))
			} else {
				lines = append(lines, prefix+glyph+" "+text)
			}
		}
	}

	for len(lines) < height-m.historyView.Height-1 {
		lines = append(lines, "")
	}

	lines = append(lines, render.StyleSubtle.Render(strings.Repeat("─", width)))
	return strings.Join(lines, "\n") + "\n" + m.historyView.View()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

// renderSidebar renders session info and the variable list
func (m *Model) renderSidebar(outerWidth, height int) string {
	width := max(outerWidth-BorderSize, 1)

	var lines []string
	lines = append(lines, render.StyleTitle.Render("Session"))
	lines = append(lines, render.Truncate("ID: "+m.sessionIDText(), width))
	lines = append(lines, fmt.Sprintf("Variables: %d", m.state.VariableCount()))
	if msg, ok := m.sessionMsg.Current(); ok {
		lines = append(lines, render.Message{Text: render.Truncate(msg.Text, width), Kind: msg.Kind}.Render())
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, render.StyleTitle.Render("Variables"))

	rows := render.VariableRows(m.state.Variables())
	rowsHeight := max(height-SidebarHeaderLines, 1)
	start := 0
	if m.varIndex >= rowsHeight {
		start = m.varIndex - rowsHeight + 1
	}
	end := min(start+rowsHeight, len(rows))

	for i := start; i < end; i++ {
		row := rows[i]
		if row.Placeholder {
			lines = append(lines, render.StyleSubtle.Render(render.Truncate(row.Text(), width)))
			continue
		}

		text := render.Truncate(row.Text(), width-2)
		if i == m.varIndex && m.focus == FocusSidebar {
			lines = append(lines, render.StyleSelected.Render("> "+text))
		} else {
			lines = append(lines, "  "+text)
		}
	}

	border := render.ColorGray
	if m.focus == FocusSidebar {
		border = render.ColorCyan
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Height(height).
		MaxHeight(height + BorderSize).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) sessionIDText() string {
	if id := m.state.ID(); id != "" {
		return render.SingleLine(id)
	}
	return "connecting..."
}

// renderStatusBar shows the latest status message, or key hints
func (m *Model) renderStatusBar() string {
	var left string
	if msg, ok := m.statusMsg.Current(); ok {
		left = msg.Render()
	} else {
		left = render.StyleSubtle.Render(m.helpHint())
	}

	right := ""
	if m.busy {
		right = render.StyleWarning.Render("● running")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left, m.width, "")
	}
	return left + strings.Repeat(" ", gap) + right
}

// helpHint lists the main keys of the focused pane
func (m *Model) helpHint() string {
	ctx := m.currentContext()
	key := func(action keybinds.Action) string {
		return m.keybinds.GetBindingString(ctx, action)
	}

	hints := []string{
		key(keybinds.ActionSwitchFocus) + " focus",
		key(keybinds.ActionResetSession) + " reset",
		key(keybinds.ActionClearTerminal) + " clear",
		key(keybinds.ActionSaveSessionQuick) + " save",
	}

	switch ctx {
	case keybinds.ContextSidebar:
		hints = append(hints, key(keybinds.ActionVarDetails)+" details", key(keybinds.ActionVarCopy)+" copy")
	case keybinds.ContextHistory:
		hints = append(hints,
			key(keybinds.ActionHistorySearch)+" search",
			key(keybinds.ActionHistoryExport)+" export",
			key(keybinds.ActionHistoryCopy)+" copy",
			key(keybinds.ActionHistoryClear)+" clear",
		)
	}

	hints = append(hints, key(keybinds.ActionQuitForce)+" quit")
	return render.Truncate(strings.Join(hints, " • "), m.width)
}

// renderModal centers a bordered box on the screen
func (m *Model) renderModal(content string, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(render.ColorCyan).
		Padding(1, 2).
		Width(width).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderConfirm() string {
	yes := m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirmYes)
	no := m.keybinds.GetBindingString(keybinds.ContextConfirm, keybinds.ActionConfirmNo)

	content := render.StyleWarning.Render(m.confirmPrompt) + "\n\n" +
		render.StyleSubtle.Render(fmt.Sprintf("[%s] yes   [%s] no", yes, no))

	return m.renderModal(content, min(60, max(m.width-ModalWidthMargin, 20)))
}

func (m *Model) renderDetail() string {
	var b strings.Builder

	b.WriteString(render.StyleTitle.Render("Variable: " + render.SingleLine(m.detailName)))
	b.WriteString("\n")

	switch {
	case m.mode == ModeDetailQuery:
		b.WriteString(m.queryInput.View())
	case m.detailQuery != "":
		b.WriteString(render.StyleSubtle.Render("query: " + m.detailQuery))
	default:
		b.WriteString(render.StyleSubtle.Render("no query"))
	}
	b.WriteString("\n")

	if m.detailErr != "" {
		b.WriteString(render.StyleError.Render(render.Truncate(m.detailErr, m.detailView.Width)))
	}
	b.WriteString("\n")

	b.WriteString(m.detailView.View())
	b.WriteString("\n")

	ctx := keybinds.ContextDetail
	b.WriteString(render.StyleSubtle.Render(fmt.Sprintf("%s query • %s copy • %s close",
		m.keybinds.GetBindingString(ctx, keybinds.ActionDetailQuery),
		m.keybinds.GetBindingString(ctx, keybinds.ActionDetailCopy),
		m.keybinds.GetBindingString(ctx, keybinds.ActionCloseModal),
	)))

	return m.renderModal(b.String(), m.detailView.Width)
}
