// Package migrations holds the SQL schema migrations applied with golang-migrate.
package migrations

import "embed"

// FS contains all *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
