package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/ollaterm/internal/config"
	"github.com/studiowebux/ollaterm/internal/keybinds"
	"github.com/studiowebux/ollaterm/internal/render"
	"github.com/studiowebux/ollaterm/internal/session"
)

// Options configures a Model
type Options struct {
	Config   *config.Config
	Backend  Backend
	Keybinds *keybinds.Registry
	Logger   *zap.Logger
	State    *session.State
}

// New creates a new TUI model
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	state := opts.State
	if state == nil {
		state = session.New()
	}

	m := &Model{
		backend:      opts.Backend,
		state:        state,
		keybinds:     registry,
		cfg:          cfg,
		logger:       logger.Named("tui"),
		mode:         ModeNormal,
		tab:          TabTerminal,
		focus:        FocusMain,
		terminalView: viewport.New(80, 20),
		historyView:  viewport.New(80, 10),
		detailView:   viewport.New(80, 20),
		history:      NewHistoryState(),
		recallIndex:  -1,
	}

	m.detector = render.NeverCode
	if !cfg.Highlight.Disabled {
		m.detector = render.KeywordDetector(cfg.Highlight.Keywords...)
		m.highlighter = render.NewChromaHighlighter(cfg.Highlight.Language, cfg.Highlight.Style)
	}

	m.input = newInput("", render.PromptPrefix)
	m.saveInput = newInput("leave blank for an automatic name", "Save as:   ")
	m.loadInput = newInput("e.g. demo_session.json", "Load from: ")
	m.fileInput = newInput("path on the backend, e.g. scripts/setup.py", "File: ")
	m.searchInput = newInput("fuzzy search code", "/ ")
	m.queryInput = newInput("JMESPath, e.g. items[0].name", ": ")

	m.input.Focus()
	return m
}

func newInput(placeholder, prompt string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = prompt
	ti.PromptStyle = render.StylePrompt
	ti.PlaceholderStyle = render.StyleSubtle
	return ti
}

// Run starts the TUI and blocks until the user quits
func Run(opts Options) error {
	m := New(opts)

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
