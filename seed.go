package cms

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/hamzeh-dev/binaa-cms/internal/access"
	"github.com/hamzeh-dev/binaa-cms/internal/hero"
	"github.com/hamzeh-dev/binaa-cms/internal/logging"
	"github.com/hamzeh-dev/binaa-cms/pkg/interfaces"
)

var (
	ErrSeedRolesRequired       = errors.New("cms: role repository is required")
	ErrSeedPermissionsRequired = errors.New("cms: permission repository is required")
	ErrSeedMembershipRequired  = errors.New("cms: membership repository is required")
	ErrSeedHeroServiceRequired = errors.New("cms: hero service is required")
)

// SeedAccessOptions wires the repositories touched by SeedAccessDefaults.
type SeedAccessOptions struct {
	Roles       access.RoleRepository
	Permissions access.PermissionRepository
	Memberships access.MembershipRepository
	Logger      interfaces.Logger
}

// SeedAccessDefaults upserts the default role and permission catalog plus
// the editor role's permission bindings. Every write is an upsert or an
// insert-or-ignore, so rerunning the seed converges instead of failing on
// duplicate keys. role_admin deliberately gets no permission rows; the gate
// treats it as a sentinel that grants everything.
func SeedAccessDefaults(ctx context.Context, opts SeedAccessOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Roles == nil {
		return ErrSeedRolesRequired
	}
	if opts.Permissions == nil {
		return ErrSeedPermissionsRequired
	}
	if opts.Memberships == nil {
		return ErrSeedMembershipRequired
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	roles := []*access.Role{
		{ID: access.RoleAdmin, NameEn: "Administrator", NameAr: "مدير النظام"},
		{ID: access.RoleEditor, NameEn: "Content Editor", NameAr: "محرر المحتوى"},
	}
	for _, role := range roles {
		if _, err := opts.Roles.Upsert(ctx, role); err != nil {
			return fmt.Errorf("cms: seed role %s: %w", role.ID, err)
		}
	}

	var permissionCount int
	for _, entity := range access.Entities() {
		for _, verb := range []access.Verb{access.VerbView, access.VerbCreate, access.VerbUpdate, access.VerbDelete} {
			permission := &access.Permission{
				Key:     access.Key(entity, verb),
				LabelEn: permissionLabelEn(entity, verb),
				LabelAr: permissionLabelAr(entity, verb),
			}
			if _, err := opts.Permissions.Upsert(ctx, permission); err != nil {
				return fmt.Errorf("cms: seed permission %s: %w", permission.Key, err)
			}
			permissionCount++
		}
	}

	// Editors manage content surfaces but never other accounts.
	for _, entity := range access.Entities() {
		if entity == access.EntityAccounts {
			continue
		}
		for _, key := range access.EntityKeys(entity) {
			if err := opts.Memberships.GrantPermission(ctx, access.RoleEditor, key); err != nil {
				return fmt.Errorf("cms: bind %s to %s: %w", key, access.RoleEditor, err)
			}
		}
	}

	logger.Info("access defaults seeded", "roles", len(roles), "permissions", permissionCount)
	return nil
}

// HeroSeedSlide describes one slide in a declarative hero seed spec. Nil
// optionals mean "do not touch" when the slide already exists.
type HeroSeedSlide struct {
	Type        hero.SlideType
	ReferenceID *uuid.UUID

	TitleEn    string
	TitleAr    string
	SubtitleEn *string
	SubtitleAr *string

	CTAEnabled bool
	CTATextEn  *string
	CTATextAr  *string
	CTAHref    *string

	BackgroundImageURL *string
	BackgroundColor    *string
	OverlayOpacity     int

	SortOrder int
}

// Validate checks one seed slide before anything is written.
func (s HeroSeedSlide) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required, validation.By(func(any) error {
			if !s.Type.IsValid() {
				return validation.NewError("cms.seed.hero.slide_type", "slide type is not recognized")
			}
			return nil
		})),
		validation.Field(&s.TitleEn, validation.Required),
		validation.Field(&s.TitleAr, validation.Required),
		validation.Field(&s.SortOrder, validation.Min(0)),
	)
}

// HeroSeedSection describes one hero section and its slides.
type HeroSeedSection struct {
	Name   string
	SlugEn string
	SlugAr string
	Slides []HeroSeedSlide
}

// Validate checks the section spec including every nested slide.
func (s HeroSeedSection) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.SlugEn, validation.Required),
		validation.Field(&s.SlugAr, validation.Required),
		validation.Field(&s.Slides),
	)
}

// SeedHeroOptions wires SeedHeroContent.
type SeedHeroOptions struct {
	Hero     HeroService
	Sections []HeroSeedSection
	Logger   interfaces.Logger
}

// SeedHeroContent upserts hero sections by slug and slides by (scope, sort
// order). Existing rows are converged onto the spec; rows outside the spec
// are left alone. Optional slide fields left nil keep whatever an existing
// slide already carries, so reruns never blank out edited subtitles, CTA
// text, or backgrounds. Pin a field in the spec to converge it.
func SeedHeroContent(ctx context.Context, opts SeedHeroOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Hero == nil {
		return ErrSeedHeroServiceRequired
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	for _, spec := range opts.Sections {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("cms: hero seed section %q: %w", spec.SlugEn, err)
		}
	}

	for _, spec := range opts.Sections {
		section, err := upsertSeedSection(ctx, opts.Hero, spec)
		if err != nil {
			return err
		}

		scope := hero.Scope{Type: hero.ScopeSection, ID: section.ID}
		existing, err := opts.Hero.ListSlides(ctx, hero.ListSlidesInput{Scope: scope})
		if err != nil {
			return fmt.Errorf("cms: list slides for %q: %w", spec.SlugEn, err)
		}
		byOrder := make(map[int]*hero.Slide, len(existing))
		for _, slide := range existing {
			byOrder[slide.SortOrder] = slide
		}

		for _, slideSpec := range spec.Slides {
			if err := upsertSeedSlide(ctx, opts.Hero, scope, byOrder[slideSpec.SortOrder], slideSpec); err != nil {
				return fmt.Errorf("cms: seed slide %d in %q: %w", slideSpec.SortOrder, spec.SlugEn, err)
			}
		}

		logger.Info("hero section seeded", "slug", spec.SlugEn, "slides", len(spec.Slides))
	}
	return nil
}

func upsertSeedSection(ctx context.Context, svc HeroService, spec HeroSeedSection) (*hero.Section, error) {
	section, err := svc.GetSectionBySlug(ctx, spec.SlugEn)
	if err == nil {
		name := spec.Name
		slugAr := spec.SlugAr
		if section.Name == name && section.SlugAr == slugAr {
			return section, nil
		}
		updated, updateErr := svc.UpdateSection(ctx, hero.UpdateSectionInput{
			SectionID: section.ID,
			Name:      &name,
			SlugAr:    &slugAr,
		})
		if updateErr != nil {
			return nil, fmt.Errorf("cms: update hero section %q: %w", spec.SlugEn, updateErr)
		}
		return updated, nil
	}

	var notFound *hero.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, fmt.Errorf("cms: lookup hero section %q: %w", spec.SlugEn, err)
	}

	created, err := svc.CreateSection(ctx, hero.CreateSectionInput{
		Name:   spec.Name,
		SlugEn: spec.SlugEn,
		SlugAr: spec.SlugAr,
	})
	if err != nil {
		return nil, fmt.Errorf("cms: create hero section %q: %w", spec.SlugEn, err)
	}
	return created, nil
}

func upsertSeedSlide(ctx context.Context, svc HeroService, scope hero.Scope, existing *hero.Slide, spec HeroSeedSlide) error {
	if existing == nil {
		_, err := svc.CreateSlide(ctx, hero.CreateSlideInput{
			Type:               spec.Type,
			ReferenceID:        spec.ReferenceID,
			Scope:              scope,
			TitleEn:            spec.TitleEn,
			TitleAr:            spec.TitleAr,
			SubtitleEn:         spec.SubtitleEn,
			SubtitleAr:         spec.SubtitleAr,
			CTAEnabled:         spec.CTAEnabled,
			CTATextEn:          spec.CTATextEn,
			CTATextAr:          spec.CTATextAr,
			CTAHref:            spec.CTAHref,
			BackgroundImageURL: spec.BackgroundImageURL,
			BackgroundColor:    spec.BackgroundColor,
			OverlayOpacity:     spec.OverlayOpacity,
			SortOrder:          spec.SortOrder,
		})
		return err
	}

	slideType := spec.Type
	titleEn := spec.TitleEn
	titleAr := spec.TitleAr
	ctaEnabled := spec.CTAEnabled
	overlay := spec.OverlayOpacity
	_, err := svc.UpdateSlide(ctx, hero.UpdateSlideInput{
		SlideID:            existing.ID,
		Type:               &slideType,
		ReferenceID:        spec.ReferenceID,
		TitleEn:            &titleEn,
		TitleAr:            &titleAr,
		SubtitleEn:         spec.SubtitleEn,
		SubtitleAr:         spec.SubtitleAr,
		CTAEnabled:         &ctaEnabled,
		CTATextEn:          spec.CTATextEn,
		CTATextAr:          spec.CTATextAr,
		CTAHref:            spec.CTAHref,
		BackgroundImageURL: spec.BackgroundImageURL,
		BackgroundColor:    spec.BackgroundColor,
		OverlayOpacity:     &overlay,
	})
	return err
}

func permissionLabelEn(entity string, verb access.Verb) string {
	labels := map[string]string{
		access.EntityHero:     "hero slides",
		access.EntityArticles: "articles",
		access.EntityProducts: "products",
		access.EntityProjects: "projects",
		access.EntityServices: "services",
		access.EntityMedia:    "media",
		access.EntityAccounts: "accounts",
	}
	verbs := map[access.Verb]string{
		access.VerbView:   "View",
		access.VerbCreate: "Create",
		access.VerbUpdate: "Update",
		access.VerbDelete: "Delete",
	}
	name := labels[entity]
	if name == "" {
		name = entity
	}
	return verbs[verb] + " " + name
}

func permissionLabelAr(entity string, verb access.Verb) string {
	entities := map[string]string{
		access.EntityHero:     "شرائح الواجهة",
		access.EntityArticles: "المقالات",
		access.EntityProducts: "المنتجات",
		access.EntityProjects: "المشاريع",
		access.EntityServices: "الخدمات",
		access.EntityMedia:    "الوسائط",
		access.EntityAccounts: "الحسابات",
	}
	verbs := map[access.Verb]string{
		access.VerbView:   "عرض",
		access.VerbCreate: "إنشاء",
		access.VerbUpdate: "تعديل",
		access.VerbDelete: "حذف",
	}
	name := entities[entity]
	if name == "" {
		name = entity
	}
	return verbs[verb] + " " + name
}
