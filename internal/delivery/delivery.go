// Package delivery groups the ways the service is exposed to clients.
package delivery

import "context"

// Delivery is a long-running server started by the application at boot.
type Delivery interface {
	// Serve blocks until the server stops. A graceful shutdown returns nil.
	Serve(ctx context.Context) error
}
