// Package identity provides the default ID and clock implementations.
package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
)

// Ensure implementations satisfy the interfaces.
var (
	_ driven.IDGenerator = (*UUIDGenerator)(nil)
	_ driven.Clock       = (*SystemClock)(nil)
)

// UUIDGenerator mints random UUIDs for new projects.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUID generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new random UUID string.
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// NewSystemClock creates a new system clock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time in UTC.
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}
