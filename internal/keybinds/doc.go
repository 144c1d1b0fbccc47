/*
Package keybinds provides customizable keyboard binding management.

# Overview

Keys map to actions within a context. The interface asks the registry for
the action of a key in its current context; when the context has no
binding for the key the global context is consulted.

Contexts:
  - global: tab switching, reset, clear, quick save, focus
  - terminal: command input
  - sidebar: variable list
  - sessions, files: the save/load and execute-file forms
  - history: history browser
  - detail: variable details modal
  - confirm: yes/no prompts
  - text_input: search and query prompts

Global bindings use only modifier and function keys so that typing into
an input never triggers them.

# Configuration File Format

User overrides live in keybinds.jsonc. Comments and trailing commas are
accepted. Each section maps an action to a comma-separated key list; a
listed action loses all of its default keys in that section:

	{
	  // move reset off ctrl+r
	  "global": { "reset_session": "ctrl+x" },
	  "history": { "history_export": "E, ctrl+e" },
	}

# Validation

ValidateConfig rejects unknown actions, empty keys and a key listed for
two actions of one section. Rebinding ctrl+c or shadowing a global key
produces warnings only.
*/
package keybinds
