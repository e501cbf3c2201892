// Package delivery holds the entry points that drive the use cases: the HTTP API, the audit worker
// push endpoint and the session janitor.
package delivery

import "context"

// Delivery is a long-running entry point started by the fx application.
type Delivery interface {
	// Serve blocks until the delivery stops. A nil return means a clean shutdown.
	Serve(ctx context.Context) error
}
