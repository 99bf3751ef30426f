// Package migrations embeds the star schema the reports read from.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
