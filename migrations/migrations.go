// Package migrations embeds the catalog schema migration files.
package migrations

import (
	"embed"
)

//go:embed *.sql
var FS embed.FS
