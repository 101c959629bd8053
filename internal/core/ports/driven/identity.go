package driven

import "time"

// IDGenerator mints identifiers for new projects. Injected so services
// are testable without depending on real UUIDs.
type IDGenerator interface {
	// NewID returns a new unique identifier.
	NewID() string
}

// Clock supplies the current time. Injected so services are testable
// without wall-clock dependence.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
