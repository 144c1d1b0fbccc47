package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerTerminalBindings(r)
	registerSidebarBindings(r)
	registerFormBindings(r)
	registerHistoryBindings(r)
	registerDetailBindings(r)
	registerConfirmBindings(r)
	registerTextInputBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all views.
// Only modifier and function keys, so typing into inputs is never intercepted.
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.RegisterMultiple(ContextGlobal, []string{"f1", "alt+1"}, ActionTabTerminal)
	r.RegisterMultiple(ContextGlobal, []string{"f2", "alt+2"}, ActionTabSessions)
	r.RegisterMultiple(ContextGlobal, []string{"f3", "alt+3"}, ActionTabFiles)
	r.RegisterMultiple(ContextGlobal, []string{"f4", "alt+4"}, ActionTabHistory)
	r.Register(ContextGlobal, "ctrl+n", ActionNextTab)
	r.Register(ContextGlobal, "tab", ActionSwitchFocus)
	r.Register(ContextGlobal, "ctrl+r", ActionResetSession)
	r.Register(ContextGlobal, "ctrl+l", ActionClearTerminal)
	r.Register(ContextGlobal, "ctrl+s", ActionSaveSessionQuick)
	r.Register(ContextGlobal, "f5", ActionRefreshVariables)
}

func registerTerminalBindings(r *Registry) {
	r.Register(ContextTerminal, "enter", ActionExecute)
	r.Register(ContextTerminal, "up", ActionRecallPrev)
	r.Register(ContextTerminal, "down", ActionRecallNext)
	r.Register(ContextTerminal, "pgup", ActionPageUp)
	r.Register(ContextTerminal, "pgdown", ActionPageDown)
}

func registerSidebarBindings(r *Registry) {
	r.RegisterMultiple(ContextSidebar, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextSidebar, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextSidebar, []string{"home", "g"}, ActionGoToTop)
	r.RegisterMultiple(ContextSidebar, []string{"end", "G"}, ActionGoToBottom)
	r.Register(ContextSidebar, "enter", ActionVarDetails)
	r.Register(ContextSidebar, "y", ActionVarCopy)
}

// registerFormBindings covers the Sessions and Files tabs
func registerFormBindings(r *Registry) {
	r.Register(ContextSessions, "enter", ActionSubmit)
	r.RegisterMultiple(ContextSessions, []string{"down", "shift+tab"}, ActionFieldNext)
	r.Register(ContextSessions, "up", ActionFieldPrev)

	r.Register(ContextFiles, "enter", ActionSubmit)
}

func registerHistoryBindings(r *Registry) {
	r.RegisterMultiple(ContextHistory, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHistory, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextHistory, "pgup", ActionPageUp)
	r.Register(ContextHistory, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextHistory, []string{"home", "g"}, ActionGoToTop)
	r.RegisterMultiple(ContextHistory, []string{"end", "G"}, ActionGoToBottom)
	r.Register(ContextHistory, "/", ActionHistorySearch)
	r.Register(ContextHistory, "C", ActionHistoryClear)
	r.Register(ContextHistory, "e", ActionHistoryExport)
	r.Register(ContextHistory, "y", ActionHistoryCopy)
	r.Register(ContextHistory, "r", ActionHistoryRefresh)
	r.Register(ContextHistory, "enter", ActionHistoryRerun)
	r.Register(ContextHistory, "esc", ActionTextCancel)
}

func registerDetailBindings(r *Registry) {
	r.RegisterMultiple(ContextDetail, []string{"esc", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextDetail, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextDetail, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextDetail, "pgup", ActionPageUp)
	r.Register(ContextDetail, "pgdown", ActionPageDown)
	r.Register(ContextDetail, ":", ActionDetailQuery)
	r.Register(ContextDetail, "y", ActionDetailCopy)
}

func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y", "enter"}, ActionConfirmYes)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc", "q"}, ActionConfirmNo)
}

func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
}
