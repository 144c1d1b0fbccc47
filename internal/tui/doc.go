/*
Package tui implements the interactive terminal client.

# Architecture

The TUI follows the Bubble Tea Model-Update-View pattern:
  - Model: session state, terminal log, tab and modal state
  - Update: processes key presses and backend results
  - View: renders through the render package

# Files

  - model.go: Model, messages, Update and View dispatch
  - keys.go: key routing through the keybinds registry
  - actions.go: backend calls as tea.Cmd and their result handlers
  - render.go: tabs, sidebar, modals and status bar
  - history_state.go: fetched history, search and selection

# Concurrency

Update runs on Bubble Tea's event goroutine and is the only writer of
Model state. Backend calls run inside tea.Cmd functions and report back
as messages. Execute and execute-file share a busy flag; a second request
is refused while one is in flight. Every call that changes the session
id or variables also carries a sequence token from session.State, and a
result with a stale token is dropped.

Status messages clear themselves after the configured timeout. Each
clear tick carries the generation of the message it was scheduled for,
so a tick never removes a newer message.
*/
package tui
