// Package migrations embeds the catalog schema and demo seed for golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
