// Package session holds the client-side view of the backend session.
//
// State keeps the session id and the last received variable mapping.
// Every backend call that may change either field takes a sequence token
// from Begin before it is issued; a response carrying a token older than
// the one already applied to a field is discarded, so a slow response can
// never overwrite the result of a request issued after it.
package session
