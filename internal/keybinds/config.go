package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding overrides.
// Each section maps an action to a comma-separated list of keys.
type Config struct {
	Version   string            `json:"version,omitempty"`
	Global    map[string]string `json:"global,omitempty"`
	Terminal  map[string]string `json:"terminal,omitempty"`
	Sidebar   map[string]string `json:"sidebar,omitempty"`
	Sessions  map[string]string `json:"sessions,omitempty"`
	Files     map[string]string `json:"files,omitempty"`
	History   map[string]string `json:"history,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
	Confirm   map[string]string `json:"confirm,omitempty"`
	TextInput map[string]string `json:"text_input,omitempty"`
}

// sections maps each context to its section of the config
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextTerminal:  c.Terminal,
		ContextSidebar:   c.Sidebar,
		ContextSessions:  c.Sessions,
		ContextFiles:     c.Files,
		ContextHistory:   c.History,
		ContextDetail:    c.Detail,
		ContextConfirm:   c.Confirm,
		ContextTextInput: c.TextInput,
	}
}

// ParseConfig parses a keybinds document. Comments and trailing commas are allowed.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds format: %w", err)
	}
	return &config, nil
}

// LoadConfig loads keybinding configuration from a JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// splitKeys turns "up, k" into ["up", "k"]
func splitKeys(keys string) []string {
	var out []string
	for _, key := range strings.Split(keys, ",") {
		if key = strings.TrimSpace(key); key != "" {
			out = append(out, key)
		}
	}
	return out
}

// ApplyConfig applies user configuration to a registry.
// A configured action replaces all default keys of that action in its context.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, section := range config.sections() {
		for actionStr, keys := range section {
			action := Action(actionStr)
			if err := ValidateAction(actionStr); err != nil {
				return fmt.Errorf("context '%s': %w", context, err)
			}

			registry.Unbind(context, action)
			for _, key := range splitKeys(keys) {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("context '%s', action '%s': %w", context, action, err)
				}
				registry.Register(context, key, action)
			}
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()
	if configPath == "" {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return registry, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
	}

	if result := NewValidator().ValidateConfig(config); result.HasErrors() {
		return nil, fmt.Errorf("invalid keybinds in %s:\n%s", configPath, result.String())
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	return registry, nil
}

// ExampleConfig is written by "ollaterm keybinds init"
const ExampleConfig = `// ollaterm keybindings
// Each section maps an action to a comma-separated list of keys.
// A listed action replaces all of its default keys in that section.
{
  "version": "1.0",
  "global": {
    "reset_session": "ctrl+r",
    "clear_terminal": "ctrl+l",
    "save_session_quick": "ctrl+s",
    "switch_focus": "tab",
  },
  "history": {
    "history_search": "/",
    "history_export": "e",
  },
}
`

// CreateExampleConfig writes ExampleConfig to path, refusing to overwrite
func CreateExampleConfig(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(ExampleConfig); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
