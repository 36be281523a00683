package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	cms "github.com/hamzeh-dev/binaa-cms"
	"github.com/hamzeh-dev/binaa-cms/internal/di"
	"github.com/hamzeh-dev/binaa-cms/internal/hero"
	"github.com/hamzeh-dev/binaa-cms/internal/logging"
)

func main() {
	var sqlitePath string
	flag.StringVar(&sqlitePath, "sqlite", "", "seed a local sqlite file instead of DATABASE_URL")
	flag.Parse()

	if err := run(context.Background(), sqlitePath); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(ctx context.Context, sqlitePath string) error {
	db, err := openDatabase(sqlitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := cms.ApplyMigrations(ctx, db); err != nil {
		return err
	}

	cfg := cms.DefaultConfig()
	module, err := cms.New(cfg, di.WithBunDB(db))
	if err != nil {
		return err
	}
	container := module.Container()
	logger := logging.SeedLogger(container.LoggerProvider())

	if err := cms.SeedAccessDefaults(ctx, cms.SeedAccessOptions{
		Roles:       container.RoleRepository(),
		Permissions: container.PermissionRepository(),
		Memberships: container.MembershipRepository(),
		Logger:      logger,
	}); err != nil {
		return err
	}

	if err := cms.SeedHeroContent(ctx, cms.SeedHeroOptions{
		Hero:     module.Hero(),
		Sections: defaultHeroSections(),
		Logger:   logger,
	}); err != nil {
		return err
	}

	logger.Info("seed complete")
	return nil
}

func openDatabase(sqlitePath string) (*bun.DB, error) {
	if sqlitePath != "" {
		sqldb, err := sql.Open("sqlite3", sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", sqlitePath, err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set and no -sqlite path given")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

func defaultHeroSections() []cms.HeroSeedSection {
	return []cms.HeroSeedSection{
		{
			Name:   "Homepage Hero",
			SlugEn: "homepage-hero",
			SlugAr: "homepage-hero-ar",
			Slides: []cms.HeroSeedSlide{
				{
					Type:           hero.SlideTypeCustom,
					TitleEn:        "Building tomorrow's landmarks",
					TitleAr:        "نبني معالم الغد",
					SubtitleEn:     strPtr("Construction, imports and contracting under one roof"),
					SubtitleAr:     strPtr("البناء والاستيراد والمقاولات تحت سقف واحد"),
					CTAEnabled:     true,
					CTATextEn:      strPtr("Explore our projects"),
					CTATextAr:      strPtr("استعرض مشاريعنا"),
					CTAHref:        strPtr("/projects"),
					OverlayOpacity: 40,
					SortOrder:      0,
				},
				{
					Type:           hero.SlideTypeCustom,
					TitleEn:        "Trusted import partners",
					TitleAr:        "شركاء استيراد موثوقون",
					SubtitleEn:     strPtr("Building materials sourced worldwide"),
					SubtitleAr:     strPtr("مواد بناء من جميع أنحاء العالم"),
					OverlayOpacity: 40,
					SortOrder:      1,
				},
			},
		},
	}
}

func strPtr(value string) *string {
	return &value
}
