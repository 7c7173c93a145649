// Package migrations embeds the per-dialect schema migrations applied at
// startup through golang-migrate.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
