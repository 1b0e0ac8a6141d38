package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package. It matches workers.Worker so that a server can run inside
// the process worker group.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down
	// gracefully. It returns nil after a clean shutdown.
	Run(ctx context.Context) error

	// Addr returns the address the server listens on once Run has bound
	// it, or the configured address before that.
	Addr() string
}
