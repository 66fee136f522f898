// Package migrations embeds the schema migrations for each supported driver.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed oracle/*.sql
var Oracle embed.FS
