// Package migrations embeds the goose SQL migrations so the migrate binary
// carries its own schema history.
package migrations

import "embed"

// FS holds every migration at its root
//
//go:embed *.sql
var FS embed.FS
