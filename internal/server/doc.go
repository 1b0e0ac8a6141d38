// Package server runs the control API transport.
//
// It owns the HTTP listener lifecycle: startup, serving until the run
// context is cancelled, and graceful shutdown with a bounded drain period.
package server
