package postgres

import "embed"

// MigrationsFS embeds the schema migrations so the binary can run them
// without a migrations directory on disk. Pass it to goose.SetBaseFS and use
// "migrations" as the directory argument.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
