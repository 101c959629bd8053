// Package migrations embeds the SQL migrations for the project registry.
package migrations

import "embed"

// FS holds the migration files applied in lexical order at startup.
//
//go:embed *.sql
var FS embed.FS
