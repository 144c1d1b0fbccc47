package keybinds

import (
	"testing"
)

func TestMatch_ContextThenGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name    string
		context Context
		key     string
		want    Action
		found   bool
	}{
		{"context binding", ContextTerminal, "enter", ActionExecute, true},
		{"same key other context", ContextSidebar, "enter", ActionVarDetails, true},
		{"falls back to global", ContextTerminal, "ctrl+r", ActionResetSession, true},
		{"global from history", ContextHistory, "f1", ActionTabTerminal, true},
		{"printable keys unbound in terminal", ContextTerminal, "q", "", false},
		{"confirm yes", ContextConfirm, "y", ActionConfirmYes, true},
		{"confirm no", ContextConfirm, "esc", ActionConfirmNo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Match(tt.context, tt.key)
			if ok != tt.found {
				t.Fatalf("Match(%s, %s) found = %v, want %v", tt.context, tt.key, ok, tt.found)
			}
			if got != tt.want {
				t.Errorf("Match(%s, %s) = %s, want %s", tt.context, tt.key, got, tt.want)
			}
		})
	}
}

func TestGetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextGlobal, ActionTabHistory); got != "alt+4/f4" {
		t.Errorf("GetBindingString() = %q, want %q", got, "alt+4/f4")
	}
	if got := r.GetBindingString(ContextHistory, ActionResetSession); got != "ctrl+r" {
		t.Errorf("global binding not found from history context, got %q", got)
	}
	if got := r.GetBindingString(ContextTerminal, Action("nope")); got != "unbound" {
		t.Errorf("GetBindingString() = %q, want unbound", got)
	}
}

func TestUnbind(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unbind(ContextSidebar, ActionNavigateUp)

	if r.HasBinding(ContextSidebar, "k") || r.HasBinding(ContextSidebar, "up") {
		t.Error("Unbind() left keys bound")
	}
	if !r.HasBinding(ContextSidebar, "j") {
		t.Error("Unbind() removed other actions")
	}
}

func TestListBindings(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.RegisterMultiple(ContextConfirm, []string{"y", "enter"}, ActionConfirmYes)

	got := r.ListBindings(ContextConfirm)
	if len(got) != 3 {
		t.Fatalf("ListBindings() returned %d bindings, want 3", len(got))
	}
	if got[0].Key != "enter" || got[1].Key != "y" {
		t.Errorf("context bindings not sorted: %+v", got[:2])
	}
	if got[2].Context != ContextGlobal {
		t.Errorf("expected global binding last, got %+v", got[2])
	}
}

func TestDefaultsUseKnownActions(t *testing.T) {
	r := NewDefaultRegistry()
	for context, bindings := range r.bindings {
		for key, action := range bindings {
			if !KnownActions[action] {
				t.Errorf("default %s/%s bound to unknown action %s", context, key, action)
			}
		}
	}
}

func TestDefaultsHaveNoWarnings(t *testing.T) {
	result := NewValidator().ValidateConfig(&Config{})
	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("default bindings should validate cleanly:\n%s", result.String())
	}
}
