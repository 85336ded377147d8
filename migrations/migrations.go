// Package migrations embeds the per-dialect schema migrations.
package migrations

import "embed"

// FS holds sqlite/NNN_name.sql and postgres/NNN_name.sql files.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
