// Package domain defines the core business entities for Dextr.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SchemaDocument: The canonical header/lines schema shape
//   - FieldDescriptor: Per-field type and sample metadata
//   - MappingSet: Source-to-target field links with uniqueness invariants
//   - Project: A phase-gated integration project and its artifacts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
