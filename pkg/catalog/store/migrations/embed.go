// Package migrations embeds the PostgreSQL schema migration files.
package migrations

import "embed"

// FS holds the SQL migration files, consumed by golang-migrate via iofs.
//
//go:embed *.sql
var FS embed.FS
