package postgres

import "embed"

// MigrationFS embeds the SQL migration files so the migrate runner works
// from a single binary without a migrations directory on disk.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
