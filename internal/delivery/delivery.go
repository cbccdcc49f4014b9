// Package delivery defines the common contract for the application's
// serving surfaces.
package delivery

import "context"

// Delivery is a long-running serving surface (HTTP server, bot loop).
// Serve blocks until the surface stops; shutdown is driven by the fx
// lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
