// Package sqlite provides a SQLite-backed implementation of the project
// registry.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Projects are
// stored as whole records: lifecycle flags and artifacts are serialised
// to JSON columns and replaced wholesale on every save, matching the
// registry's replace-by-ID contract.
//
// Schema migrations are embedded in the binary and applied automatically
// on startup via a schema_migrations version table.
package sqlite
