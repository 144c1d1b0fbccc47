package keybinds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig_Comments(t *testing.T) {
	data := []byte(`// user bindings
{
  "global": {
    "reset_session": "ctrl+x", // moved
  },
  /* block comment */
  "history": { "history_export": "E, ctrl+e" },
}`)

	config, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if config.Global["reset_session"] != "ctrl+x" {
		t.Errorf("global reset_session = %q", config.Global["reset_session"])
	}
	if config.History["history_export"] != "E, ctrl+e" {
		t.Errorf("history history_export = %q", config.History["history_export"])
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	if _, err := ParseConfig([]byte(`{"global": [}`)); err == nil {
		t.Error("expected error for malformed document")
	}
}

func TestApplyConfig_ReplacesDefaults(t *testing.T) {
	r := NewDefaultRegistry()
	config := &Config{
		Global:  map[string]string{"reset_session": "ctrl+x"},
		History: map[string]string{"history_export": "E, ctrl+e"},
	}

	if err := ApplyConfig(r, config); err != nil {
		t.Fatalf("ApplyConfig() error = %v", err)
	}

	if r.HasBinding(ContextTerminal, "ctrl+r") {
		t.Error("old reset binding still active")
	}
	if action, _ := r.Match(ContextTerminal, "ctrl+x"); action != ActionResetSession {
		t.Errorf("ctrl+x = %s, want %s", action, ActionResetSession)
	}
	for _, key := range []string{"E", "ctrl+e"} {
		if action, _ := r.Match(ContextHistory, key); action != ActionHistoryExport {
			t.Errorf("%s = %s, want %s", key, action, ActionHistoryExport)
		}
	}
	if r.HasBinding(ContextHistory, "e") {
		t.Error("default export key still bound")
	}
}

func TestApplyConfig_UnknownAction(t *testing.T) {
	r := NewDefaultRegistry()
	err := ApplyConfig(r, &Config{Global: map[string]string{"launch_rockets": "x"}})
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Errorf("ApplyConfig() error = %v, want unknown action", err)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		config       *Config
		wantErrors   bool
		wantWarnings bool
	}{
		{
			name:   "empty",
			config: &Config{},
		},
		{
			name: "key on two actions",
			config: &Config{
				History: map[string]string{"history_clear": "x", "history_export": "x"},
			},
			wantErrors: true,
		},
		{
			name:       "unknown action",
			config:     &Config{Detail: map[string]string{"explode": "x"}},
			wantErrors: true,
		},
		{
			name:       "bare modifier",
			config:     &Config{Detail: map[string]string{"detail_copy": "ctrl+"}},
			wantErrors: true,
		},
		{
			name:         "reserved key rebound",
			config:       &Config{Global: map[string]string{"clear_terminal": "ctrl+c"}},
			wantWarnings: true,
		},
		{
			name:         "shadows global",
			config:       &Config{History: map[string]string{"history_refresh": "ctrl+r"}},
			wantWarnings: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateConfig(tt.config)
			if result.HasErrors() != tt.wantErrors {
				t.Errorf("HasErrors() = %v, want %v\n%s", result.HasErrors(), tt.wantErrors, result.String())
			}
			if result.HasWarnings() != tt.wantWarnings {
				t.Errorf("HasWarnings() = %v, want %v\n%s", result.HasWarnings(), tt.wantWarnings, result.String())
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	result := &ValidationResult{
		Errors: []ValidationError{
			{Type: "conflict", Context: ContextHistory, Key: "x", Message: "bound twice"},
		},
	}
	got := result.String()
	for _, want := range []string{"Errors (1)", "[conflict] x in context 'history': bound twice"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q, got:\n%s", want, got)
		}
	}

	if got := (&ValidationResult{}).String(); got != "No issues found" {
		t.Errorf("String() = %q", got)
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		r, err := LoadOrDefault(filepath.Join(dir, "absent.jsonc"))
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if action, _ := r.Match(ContextGlobal, "ctrl+r"); action != ActionResetSession {
			t.Error("default bindings missing")
		}
	})

	t.Run("user file applied", func(t *testing.T) {
		path := filepath.Join(dir, "keybinds.jsonc")
		content := "{\n  // quick save elsewhere\n  \"global\": {\"save_session_quick\": \"ctrl+w\"},\n}"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		r, err := LoadOrDefault(path)
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if action, _ := r.Match(ContextTerminal, "ctrl+w"); action != ActionSaveSessionQuick {
			t.Errorf("ctrl+w = %s", action)
		}
	})

	t.Run("invalid file rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.jsonc")
		if err := os.WriteFile(path, []byte(`{"global": {"nope": "x"}}`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadOrDefault(path); err == nil {
			t.Error("expected error for unknown action")
		}
	})
}

func TestCreateExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.jsonc")
	if err := CreateExampleConfig(path); err != nil {
		t.Fatalf("CreateExampleConfig() error = %v", err)
	}
	if err := CreateExampleConfig(path); err == nil {
		t.Error("expected error when file exists")
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}
	if result := NewValidator().ValidateConfig(config); result.HasErrors() {
		t.Errorf("example config invalid:\n%s", result.String())
	}
}
