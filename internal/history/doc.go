// Package history works with the execution history fetched from the backend.
//
// The backend owns the history; this package only searches a fetched
// list and writes it out as a standalone HTML transcript.
package history
