package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal    Context = "global"     // Available everywhere
	ContextTerminal  Context = "terminal"   // Command input of the Terminal tab
	ContextSidebar   Context = "sidebar"    // Variable list
	ContextSessions  Context = "sessions"   // Save/load form
	ContextFiles     Context = "files"      // Execute-file form
	ContextHistory   Context = "history"    // History browser
	ContextDetail    Context = "detail"     // Variable details modal
	ContextConfirm   Context = "confirm"    // Yes/no prompt
	ContextTextInput Context = "text_input" // Single-line prompts (search, query)
)

// Contexts lists every context in display order
var Contexts = []Context{
	ContextGlobal,
	ContextTerminal,
	ContextSidebar,
	ContextSessions,
	ContextFiles,
	ContextHistory,
	ContextDetail,
	ContextConfirm,
	ContextTextInput,
}

const (
	// Global
	ActionQuitForce        Action = "quit_force"
	ActionTabTerminal      Action = "tab_terminal"
	ActionTabSessions      Action = "tab_sessions"
	ActionTabFiles         Action = "tab_files"
	ActionTabHistory       Action = "tab_history"
	ActionNextTab          Action = "next_tab"
	ActionSwitchFocus      Action = "switch_focus"
	ActionResetSession     Action = "reset_session"
	ActionClearTerminal    Action = "clear_terminal"
	ActionSaveSessionQuick Action = "save_session_quick"
	ActionRefreshVariables Action = "refresh_variables"

	// Navigation
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"

	// Terminal
	ActionExecute    Action = "execute"
	ActionRecallPrev Action = "recall_prev"
	ActionRecallNext Action = "recall_next"

	// Sessions and files forms
	ActionSubmit    Action = "submit"
	ActionFieldNext Action = "field_next"
	ActionFieldPrev Action = "field_prev"

	// Variables
	ActionVarDetails Action = "var_details"
	ActionVarCopy    Action = "var_copy"

	// History
	ActionHistorySearch  Action = "history_search"
	ActionHistoryClear   Action = "history_clear"
	ActionHistoryExport  Action = "history_export"
	ActionHistoryCopy    Action = "history_copy"
	ActionHistoryRefresh Action = "history_refresh"
	ActionHistoryRerun   Action = "history_rerun"

	// Detail modal
	ActionCloseModal  Action = "close_modal"
	ActionDetailQuery Action = "detail_query"
	ActionDetailCopy  Action = "detail_copy"

	// Confirm
	ActionConfirmYes Action = "confirm_yes"
	ActionConfirmNo  Action = "confirm_no"

	// Text input
	ActionTextSubmit Action = "text_submit"
	ActionTextCancel Action = "text_cancel"
)

// KnownActions is the set of actions the interface handles
var KnownActions = map[Action]bool{
	ActionQuitForce:        true,
	ActionTabTerminal:      true,
	ActionTabSessions:      true,
	ActionTabFiles:         true,
	ActionTabHistory:       true,
	ActionNextTab:          true,
	ActionSwitchFocus:      true,
	ActionResetSession:     true,
	ActionClearTerminal:    true,
	ActionSaveSessionQuick: true,
	ActionRefreshVariables: true,
	ActionNavigateUp:       true,
	ActionNavigateDown:     true,
	ActionPageUp:           true,
	ActionPageDown:         true,
	ActionGoToTop:          true,
	ActionGoToBottom:       true,
	ActionExecute:          true,
	ActionRecallPrev:       true,
	ActionRecallNext:       true,
	ActionSubmit:           true,
	ActionFieldNext:        true,
	ActionFieldPrev:        true,
	ActionVarDetails:       true,
	ActionVarCopy:          true,
	ActionHistorySearch:    true,
	ActionHistoryClear:     true,
	ActionHistoryExport:    true,
	ActionHistoryCopy:      true,
	ActionHistoryRefresh:   true,
	ActionHistoryRerun:     true,
	ActionCloseModal:       true,
	ActionDetailQuery:      true,
	ActionDetailCopy:       true,
	ActionConfirmYes:       true,
	ActionConfirmNo:        true,
	ActionTextSubmit:       true,
	ActionTextCancel:       true,
}
