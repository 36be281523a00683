package cms

import (
	"context"
	"embed"
	"fmt"
	"sort"

	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files for this package.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// ApplyMigrations runs every embedded migration file in lexical order, one
// transaction per file. Files are idempotent (CREATE ... IF NOT EXISTS) so
// reruns converge.
func ApplyMigrations(ctx context.Context, db *bun.DB) error {
	entries, err := migrationsFS.ReadDir("data/sql/migrations")
	if err != nil {
		return fmt.Errorf("cms: read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		payload, err := migrationsFS.ReadFile("data/sql/migrations/" + name)
		if err != nil {
			return fmt.Errorf("cms: read migration %s: %w", name, err)
		}
		if err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, execErr := tx.ExecContext(ctx, string(payload))
			return execErr
		}); err != nil {
			return fmt.Errorf("cms: apply migration %s: %w", name, err)
		}
	}
	return nil
}
