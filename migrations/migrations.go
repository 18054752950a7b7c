// Package migrations holds the embedded catalog schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
