package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/ollaterm/internal/config"
	"github.com/studiowebux/ollaterm/internal/keybinds"
	"github.com/studiowebux/ollaterm/internal/render"
	"github.com/studiowebux/ollaterm/internal/session"
	"github.com/studiowebux/ollaterm/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeConfirm
	ModeDetail
	ModeDetailQuery
	ModeHistorySearch
)

// Tab is one of the main views
type Tab int

const (
	TabTerminal Tab = iota
	TabSessions
	TabFiles
	TabHistory
)

// tabNames are the tab titles in display order
var tabNames = []string{"Terminal", "Sessions", "Files", "History"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "unknown"
}

// Focus selects the pane receiving keys
type Focus int

const (
	FocusMain Focus = iota
	FocusSidebar
)

// confirmKind identifies the action awaiting confirmation
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmReset
	confirmHistoryClear
)

// Session form fields
const (
	fieldSave = iota
	fieldLoad
)

// region identifies a message area
type region int

const (
	regionStatus region = iota
	regionSession
	regionFile
)

// Model is the Bubble Tea model of the client
type Model struct {
	backend  Backend
	state    *session.State
	keybinds *keybinds.Registry
	cfg      *config.Config
	logger   *zap.Logger

	width  int
	height int

	mode  Mode
	tab   Tab
	focus Focus

	// Terminal tab
	log          render.Log
	terminalView viewport.Model
	input        textinput.Model
	pendingID    int // id of the "Processing..." line, 0 when none
	busy         bool
	resetSeq     uint64 // token of the last applied reset; older executions skip the log
	recall       []string
	recallIndex  int
	detector     render.CodeDetector
	highlighter  render.Highlighter

	// Sessions tab
	saveInput    textinput.Model
	loadInput    textinput.Model
	sessionField int

	// Files tab
	fileInput textinput.Model

	// Sidebar
	varIndex int

	// History tab
	history     *HistoryState
	historyView viewport.Model
	searchInput textinput.Model

	// Variable details modal
	detailName  string
	detailBody  string
	detailErr   string
	detailView  viewport.Model
	queryInput  textinput.Model
	detailQuery string

	// Confirmation modal
	confirm       confirmKind
	confirmPrompt string

	// Message regions
	statusMsg  render.Region
	sessionMsg render.Region
	fileMsg    render.Region
}

// Backend is the subset of the transport client used by the TUI
type Backend interface {
	FetchSessionInfo(ctx context.Context) (*types.SessionInfo, error)
	Execute(ctx context.Context, command string) (*types.ExecuteResult, error)
	ResetSession(ctx context.Context) (*types.SessionInfo, error)
	SaveSession(ctx context.Context, filename string) (*types.SaveResult, error)
	LoadSession(ctx context.Context, filename string) (*types.SessionInfo, error)
	ExecuteFile(ctx context.Context, path string) (*types.ExecuteResult, error)
	FetchHistory(ctx context.Context) ([]types.HistoryEntry, error)
	FetchVariables(ctx context.Context) (types.Variables, error)
}

// Init starts the initial session info and variables fetch
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadStartup())
}

// Update handles a message
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case startupMsg:
		cmd = m.handleStartup(msg)

	case executedMsg:
		cmd = m.handleExecuted(msg)

	case fileExecutedMsg:
		cmd = m.handleFileExecuted(msg)

	case resetMsg:
		cmd = m.handleReset(msg)

	case savedMsg:
		cmd = m.handleSaved(msg)

	case loadedMsg:
		cmd = m.handleLoaded(msg)

	case variablesMsg:
		cmd = m.handleVariables(msg)

	case historyLoadedMsg:
		m.handleHistoryLoaded(msg)

	case exportedMsg:
		cmd = m.handleExported(msg)

	case clearMessageMsg:
		m.regionFor(msg.region).Clear(msg.gen)

	default:
		// Cursor blink and other component messages
		cmd = m.updateFocusedInput(msg)
	}

	return m, cmd
}

// View renders the current screen
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeConfirm:
		return m.renderConfirm()
	case ModeDetail, ModeDetailQuery:
		return m.renderDetail()
	default:
		return m.renderMain()
	}
}

// Custom message types

type startupMsg struct {
	seq     uint64
	info    *types.SessionInfo
	vars    types.Variables
	infoErr error
	varsErr error
}

type executedMsg struct {
	seq       uint64
	pendingID int
	result    *types.ExecuteResult
	err       error
}

type fileExecutedMsg struct {
	seq    uint64
	path   string
	result *types.ExecuteResult
	err    error
}

type resetMsg struct {
	seq  uint64
	info *types.SessionInfo
	err  error
}

type savedMsg struct {
	result *types.SaveResult
	err    error
}

type loadedMsg struct {
	seq  uint64
	info *types.SessionInfo
	err  error
}

type variablesMsg struct {
	seq  uint64
	vars types.Variables
	err  error
}

type historyLoadedMsg struct {
	token   uint64
	entries []types.HistoryEntry
	err     error
}

type exportedMsg struct {
	path string
	err  error
}

type clearMessageMsg struct {
	region region
	gen    uint64
}

// regionFor returns the message area of r
func (m *Model) regionFor(r region) *render.Region {
	switch r {
	case regionSession:
		return &m.sessionMsg
	case regionFile:
		return &m.fileMsg
	default:
		return &m.statusMsg
	}
}

// setMessage shows text in a region and schedules its removal
func (m *Model) setMessage(r region, text string, kind render.MessageKind) tea.Cmd {
	if r == regionStatus {
		text = render.Truncate(text, StatusMaxLength)
	}
	gen := m.regionFor(r).Set(text, kind)

	timeout := m.cfg.MessageTimeout
	if timeout <= 0 {
		timeout = config.DefaultMessageTimeout
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg {
		return clearMessageMsg{region: r, gen: gen}
	})
}

func (m *Model) setStatusMessage(text string) tea.Cmd {
	return m.setMessage(regionStatus, text, render.KindSuccess)
}

func (m *Model) setErrorMessage(text string) tea.Cmd {
	return m.setMessage(regionStatus, text, render.KindError)
}
