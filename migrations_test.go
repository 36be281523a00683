package cms

import (
	"context"
	"testing"

	"github.com/hamzeh-dev/binaa-cms/pkg/testsupport"
)

func TestApplyMigrationsCreatesSchema(t *testing.T) {
	db := testsupport.NewSQLiteDB(t)
	ctx := context.Background()

	if err := ApplyMigrations(ctx, db); err != nil {
		t.Fatalf("apply: %v", err)
	}

	tables := []string{
		"hero_sections", "hero_slides",
		"catalog_articles", "catalog_products", "catalog_projects", "catalog_service_lines",
		"access_accounts", "access_roles", "access_permissions",
		"access_account_roles", "access_role_permissions",
		"media_assets",
	}
	for _, table := range tables {
		var count int
		err := db.NewRaw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).
			Scan(ctx, &count)
		if err != nil {
			t.Fatalf("inspect %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s missing after migrations", table)
		}
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	db := testsupport.NewSQLiteDB(t)
	ctx := context.Background()

	if err := ApplyMigrations(ctx, db); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := ApplyMigrations(ctx, db); err != nil {
		t.Fatalf("second apply: %v", err)
	}
}
