// Package delivery holds the transports that expose the use cases.
package delivery

import "context"

// Delivery is a long-running server started by the process entrypoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
