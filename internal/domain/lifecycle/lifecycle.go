// Package lifecycle holds process lifecycle constants shared by the
// delivery layers.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown hooks.
const DefaultTimeout = 10 * time.Second
