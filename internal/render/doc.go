// Package render turns backend data into styled terminal text.
//
// Everything here is pure: functions take values and return strings or
// row structs, and never perform I/O or touch session state. The
// interaction controller owns the state and calls into this package from
// its View.
//
// Text received from the backend is passed through Sanitize before it is
// styled, so escape sequences in program output cannot move the cursor or
// recolor the screen.
package render
