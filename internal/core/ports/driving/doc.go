// Package driving defines the interfaces the CLI uses to operate on
// projects - the "driving" ports in hexagonal architecture terminology.
//
// Implementations live in internal/core/services.
package driving
