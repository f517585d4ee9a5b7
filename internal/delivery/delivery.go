// Package delivery defines the entry-point surfaces of the application.
package delivery

import "context"

// Delivery is a serving surface started by main. Serve blocks until the
// surface stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
