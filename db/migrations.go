// Package db embeds the content schema migrations.
package db

import (
	"embed"
	"io/fs"
)

//go:embed pg/*.sql
var postgres embed.FS

// Postgres returns the PostgreSQL migrations rooted at their folder.
func Postgres() fs.FS {
	sub, err := fs.Sub(postgres, "pg")
	if err != nil {
		panic(err)
	}
	return sub
}
