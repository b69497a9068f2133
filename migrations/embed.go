// Package migrations carries the SQL schema, embedded so the server can
// migrate at startup without a deploy-time file copy.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
