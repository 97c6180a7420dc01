// Package migrations embarca os scripts SQL do banco
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
