package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate applies every schema file in lexical order. Files are idempotent
// (IF NOT EXISTS), so running it on each start is safe.
func Migrate(ctx context.Context, dbtx DBTX) error {
	files, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return fmt.Errorf("fs.Glob: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := schemaFS.ReadFile(file)
		if err != nil {
			return fmt.Errorf("schemaFS.ReadFile[%s]: %w", file, err)
		}

		if _, err := dbtx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("dbtx.Exec[%s]: %w", file, err)
		}
	}

	return nil
}
