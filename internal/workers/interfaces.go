// Package workers runs the long-lived background units of the process
// (the sync loop, the control API server) as one group.
//
// A failing worker cancels the group context so that its siblings shut down
// too; Workers.Run returns the first error.
package workers

import "context"

// Worker is a background unit that runs until ctx is cancelled.
//
// Run must block for the worker's lifetime and return nil on a clean
// shutdown. A non-nil error stops the whole group.
//
// Example implementation:
//
//	type ticker struct{}
//
//	func (ticker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts an ordinary function to the Worker interface.
type WorkerFunc func(ctx context.Context) error

// Run calls f(ctx).
func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
