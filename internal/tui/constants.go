package tui

// UI Layout Constants

const (
	// Sidebar width bounds
	SidebarMinWidth = 28
	SidebarMaxWidth = 44
	// SidebarWidthPercent is the share of the screen given to the sidebar
	SidebarWidthPercent = 30

	// Rows outside the bordered panes: tab bar + status bar
	ChromeHeight = 2

	// Width and height consumed by a rounded border
	BorderSize = 2

	// Terminal tab: input line + separator below the log
	TerminalInputHeight = 2

	// Modal dimensions relative to the screen
	ModalWidthMargin  = 10
	ModalHeightMargin = 4

	// Status bar truncation
	StatusMaxLength = 100

	// Sidebar rows above the variable list (title, id, count, message, list title)
	SidebarHeaderLines = 5

	// Preview pane of the History tab (share of the pane height)
	HistoryPreviewPercent = 45

	// Recalled commands kept for the terminal input
	RecallLimit = 200
)

// Terminal lines written by the client itself
const (
	LineSessionReset    = ">> Session reset successfully."
	LineNewSessionID    = ">> New session ID: %s"
	LineRuntimeReady    = ">> Runtime connected. State ready."
	LineTerminalCleared = ">> Terminal cleared."
	LineExecutingFile   = ">> Executing file: %s"
	LineBackendError    = "Error connecting to backend."
)

// Messages shown in the message regions
const (
	MsgBusy            = "Request already in progress"
	MsgResetOK         = "Session reset successfully!"
	MsgResetFailed     = "Failed to reset session."
	MsgSavedTo         = "Session saved to: %s"
	MsgSaveFailed      = "Failed to save session."
	MsgLoadOK          = "Session loaded successfully!"
	MsgLoadFailed      = "Failed to load session. Check filename and try again."
	MsgFileOK          = "File executed successfully!"
	MsgFileFailed      = "Failed to execute file. Check path and try again."
	MsgVariablesFailed = "Failed to load variables."
	MsgHistoryCleared  = "History cleared"
	MsgExportedTo      = "History exported to: %s"
	MsgExportFailed    = "Failed to export history."
	MsgCopied          = "Copied to clipboard"
	MsgCopyFailed      = "Failed to copy to clipboard"
	MsgNothingToCopy   = "Nothing to copy"
)
