package cms

import (
	"context"
	"errors"
	"testing"

	"github.com/hamzeh-dev/binaa-cms/internal/access"
	"github.com/hamzeh-dev/binaa-cms/internal/hero"
)

func newSeedAccessFixture() SeedAccessOptions {
	return SeedAccessOptions{
		Roles:       access.NewMemoryRoleRepository(),
		Permissions: access.NewMemoryPermissionRepository(),
		Memberships: access.NewMemoryMembershipRepository(),
	}
}

func TestSeedAccessDefaultsRequiresRepositories(t *testing.T) {
	ctx := context.Background()

	opts := newSeedAccessFixture()
	opts.Roles = nil
	if err := SeedAccessDefaults(ctx, opts); !errors.Is(err, ErrSeedRolesRequired) {
		t.Fatalf("err = %v, want ErrSeedRolesRequired", err)
	}

	opts = newSeedAccessFixture()
	opts.Permissions = nil
	if err := SeedAccessDefaults(ctx, opts); !errors.Is(err, ErrSeedPermissionsRequired) {
		t.Fatalf("err = %v, want ErrSeedPermissionsRequired", err)
	}

	opts = newSeedAccessFixture()
	opts.Memberships = nil
	if err := SeedAccessDefaults(ctx, opts); !errors.Is(err, ErrSeedMembershipRequired) {
		t.Fatalf("err = %v, want ErrSeedMembershipRequired", err)
	}
}

func TestSeedAccessDefaultsPopulatesCatalog(t *testing.T) {
	ctx := context.Background()
	opts := newSeedAccessFixture()

	if err := SeedAccessDefaults(ctx, opts); err != nil {
		t.Fatalf("seed: %v", err)
	}

	roles, err := opts.Roles.List(ctx)
	if err != nil {
		t.Fatalf("list roles: %v", err)
	}
	if len(roles) != 2 {
		t.Fatalf("got %d roles, want 2", len(roles))
	}

	permissions, err := opts.Permissions.List(ctx)
	if err != nil {
		t.Fatalf("list permissions: %v", err)
	}
	wantPermissions := len(access.Entities()) * 4
	if len(permissions) != wantPermissions {
		t.Fatalf("got %d permissions, want %d", len(permissions), wantPermissions)
	}

	editorKeys, err := opts.Memberships.PermissionsForRoles(ctx, []string{access.RoleEditor})
	if err != nil {
		t.Fatalf("editor permissions: %v", err)
	}
	wantEditor := (len(access.Entities()) - 1) * 4
	if len(editorKeys) != wantEditor {
		t.Fatalf("editor holds %d keys, want %d", len(editorKeys), wantEditor)
	}
	editorSet := access.NewSet(editorKeys...)
	if editorSet.Allowed(access.Key(access.EntityAccounts, access.VerbView)) {
		t.Fatal("editor must not hold account permissions")
	}
	if !editorSet.Allowed(access.Key(access.EntityArticles, access.VerbUpdate)) {
		t.Fatal("editor missing articles.update")
	}

	// admin relies on the sentinel check, not seeded rows
	adminKeys, err := opts.Memberships.PermissionsForRoles(ctx, []string{access.RoleAdmin})
	if err != nil {
		t.Fatalf("admin permissions: %v", err)
	}
	if len(adminKeys) != 0 {
		t.Fatalf("admin holds %d seeded keys, want 0", len(adminKeys))
	}
}

func TestSeedAccessDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	opts := newSeedAccessFixture()

	if err := SeedAccessDefaults(ctx, opts); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := SeedAccessDefaults(ctx, opts); err != nil {
		t.Fatalf("second run: %v", err)
	}

	roles, _ := opts.Roles.List(ctx)
	if len(roles) != 2 {
		t.Fatalf("got %d roles after rerun, want 2", len(roles))
	}
	permissions, _ := opts.Permissions.List(ctx)
	if want := len(access.Entities()) * 4; len(permissions) != want {
		t.Fatalf("got %d permissions after rerun, want %d", len(permissions), want)
	}
}

func newSeedHeroService() HeroService {
	return hero.NewService(hero.NewMemorySectionRepository(), hero.NewMemorySlideRepository())
}

func TestSeedHeroContentCreatesSectionsAndSlides(t *testing.T) {
	ctx := context.Background()
	svc := newSeedHeroService()

	spec := HeroSeedSection{
		Name:   "Homepage Hero",
		SlugEn: "homepage-hero",
		SlugAr: "homepage-hero-ar",
		Slides: []HeroSeedSlide{
			{
				Type:      hero.SlideTypeCustom,
				TitleEn:   "Building the Kingdom",
				TitleAr:   "نبني المملكة",
				SortOrder: 0,
			},
			{
				Type:      hero.SlideTypeCustom,
				TitleEn:   "Imports you can trust",
				TitleAr:   "استيراد تثق به",
				SortOrder: 1,
			},
		},
	}

	if err := SeedHeroContent(ctx, SeedHeroOptions{Hero: svc, Sections: []HeroSeedSection{spec}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	section, err := svc.GetSectionBySlug(ctx, "homepage-hero")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	slides, err := svc.ListSlides(ctx, hero.ListSlidesInput{
		Scope: hero.Scope{Type: hero.ScopeSection, ID: section.ID},
	})
	if err != nil {
		t.Fatalf("list slides: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(slides))
	}
	if slides[0].TitleEn != "Building the Kingdom" {
		t.Errorf("first slide title = %q", slides[0].TitleEn)
	}
}

func TestSeedHeroContentConvergesOnRerun(t *testing.T) {
	ctx := context.Background()
	svc := newSeedHeroService()

	spec := HeroSeedSection{
		Name:   "Homepage Hero",
		SlugEn: "homepage-hero",
		SlugAr: "homepage-hero-ar",
		Slides: []HeroSeedSlide{
			{Type: hero.SlideTypeCustom, TitleEn: "First", TitleAr: "الأول", SortOrder: 0},
		},
	}

	if err := SeedHeroContent(ctx, SeedHeroOptions{Hero: svc, Sections: []HeroSeedSection{spec}}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	spec.Slides[0].TitleEn = "First, revised"
	if err := SeedHeroContent(ctx, SeedHeroOptions{Hero: svc, Sections: []HeroSeedSection{spec}}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	section, err := svc.GetSectionBySlug(ctx, "homepage-hero")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	slides, err := svc.ListSlides(ctx, hero.ListSlidesInput{
		Scope: hero.Scope{Type: hero.ScopeSection, ID: section.ID},
	})
	if err != nil {
		t.Fatalf("list slides: %v", err)
	}
	if len(slides) != 1 {
		t.Fatalf("got %d slides after rerun, want 1", len(slides))
	}
	if slides[0].TitleEn != "First, revised" {
		t.Errorf("slide title = %q, want converged value", slides[0].TitleEn)
	}

	sections, err := svc.ListSections(ctx, false)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("got %d sections after rerun, want 1", len(sections))
	}
}

func TestSeedHeroContentKeepsUntouchedOptionals(t *testing.T) {
	ctx := context.Background()
	svc := newSeedHeroService()
	subtitle := "Steel and concrete since 1998"

	spec := HeroSeedSection{
		Name:   "Homepage Hero",
		SlugEn: "homepage-hero",
		SlugAr: "homepage-hero-ar",
		Slides: []HeroSeedSlide{
			{Type: hero.SlideTypeCustom, TitleEn: "Welcome", TitleAr: "مرحبا", SubtitleEn: &subtitle, SortOrder: 0},
		},
	}
	if err := SeedHeroContent(ctx, SeedHeroOptions{Hero: svc, Sections: []HeroSeedSection{spec}}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// A later spec that stops pinning the subtitle leaves the stored one
	// alone while still converging the fields it does pin.
	spec.Slides[0].SubtitleEn = nil
	spec.Slides[0].TitleEn = "Welcome back"
	if err := SeedHeroContent(ctx, SeedHeroOptions{Hero: svc, Sections: []HeroSeedSection{spec}}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	section, err := svc.GetSectionBySlug(ctx, "homepage-hero")
	if err != nil {
		t.Fatalf("section lookup: %v", err)
	}
	slides, err := svc.ListSlides(ctx, hero.ListSlidesInput{
		Scope: hero.Scope{Type: hero.ScopeSection, ID: section.ID},
	})
	if err != nil {
		t.Fatalf("list slides: %v", err)
	}
	if len(slides) != 1 {
		t.Fatalf("got %d slides, want 1", len(slides))
	}
	if slides[0].TitleEn != "Welcome back" {
		t.Errorf("slide title = %q, want converged value", slides[0].TitleEn)
	}
	if slides[0].SubtitleEn == nil || *slides[0].SubtitleEn != subtitle {
		t.Errorf("subtitle = %v, want the previously seeded value kept", slides[0].SubtitleEn)
	}
}

func TestSeedHeroContentRejectsInvalidSpec(t *testing.T) {
	svc := newSeedHeroService()

	err := SeedHeroContent(context.Background(), SeedHeroOptions{
		Hero: svc,
		Sections: []HeroSeedSection{{
			Name:   "Broken",
			SlugEn: "broken",
			SlugAr: "broken-ar",
			Slides: []HeroSeedSlide{{Type: hero.SlideTypeCustom, TitleEn: "only english"}},
		}},
	})
	if err == nil {
		t.Fatal("expected validation error for missing arabic title")
	}

	// nothing may be written when the spec is rejected
	if _, err := svc.GetSectionBySlug(context.Background(), "broken"); err == nil {
		t.Fatal("section must not exist after rejected seed")
	}
}

func TestSeedHeroContentRequiresService(t *testing.T) {
	if err := SeedHeroContent(context.Background(), SeedHeroOptions{}); !errors.Is(err, ErrSeedHeroServiceRequired) {
		t.Fatalf("err = %v, want ErrSeedHeroServiceRequired", err)
	}
}
