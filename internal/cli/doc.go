// Package cli runs single backend operations from the command line.
//
// Each Runner method maps to one ollaterm subcommand. Results are written to
// Out as text, JSON or YAML; application errors reported by the backend go to
// Err and are returned as ErrExecutionFailed so the process exits non-zero.
package cli
