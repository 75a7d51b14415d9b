// Package migrations embeds the SQL schema migrations for each database driver.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
