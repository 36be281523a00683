package hero

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedClock() func() time.Time {
	ts := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func sequentialIDs() IDGenerator {
	var counter int
	return func() uuid.UUID {
		counter++
		return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", counter))
	}
}

func newTestService(opts ...ServiceOption) Service {
	base := []ServiceOption{
		WithClock(fixedClock()),
		WithIDGenerator(sequentialIDs()),
	}
	return NewService(NewMemorySectionRepository(), NewMemorySlideRepository(), append(base, opts...)...)
}

func mustCreateSection(t *testing.T, svc Service, name, slugEn, slugAr string) *Section {
	t.Helper()
	section, err := svc.CreateSection(context.Background(), CreateSectionInput{
		Name:   name,
		SlugEn: slugEn,
		SlugAr: slugAr,
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	return section
}

func TestCreateSectionNormalizesSlugs(t *testing.T) {
	svc := newTestService()

	section := mustCreateSection(t, svc, "Homepage Hero", "  Homepage Hero ", "hero-ar")
	if section.SlugEn != "homepage-hero" {
		t.Fatalf("expected normalized slug, got %q", section.SlugEn)
	}
	if !section.IsActive {
		t.Fatal("expected new sections to default active")
	}

	loaded, err := svc.GetSectionBySlug(context.Background(), "homepage-hero")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if loaded.ID != section.ID {
		t.Fatalf("expected %s, got %s", section.ID, loaded.ID)
	}
}

func TestCreateSectionValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateSection(ctx, CreateSectionInput{SlugEn: "a", SlugAr: "b"}); !errors.Is(err, ErrSectionNameRequired) {
		t.Fatalf("expected ErrSectionNameRequired, got %v", err)
	}
	if _, err := svc.CreateSection(ctx, CreateSectionInput{Name: "Hero", SlugAr: "b"}); !errors.Is(err, ErrSectionSlugRequired) {
		t.Fatalf("expected ErrSectionSlugRequired, got %v", err)
	}

	mustCreateSection(t, svc, "Hero", "hero", "hero-ar")
	if _, err := svc.CreateSection(ctx, CreateSectionInput{Name: "Other", SlugEn: "hero", SlugAr: "other-ar"}); !errors.Is(err, ErrSectionSlugTaken) {
		t.Fatalf("expected ErrSectionSlugTaken, got %v", err)
	}
}

func TestUpdateSectionKeepsOwnSlug(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Hero", "hero", "hero-ar")

	same := "hero"
	updated, err := svc.UpdateSection(ctx, UpdateSectionInput{SectionID: section.ID, SlugEn: &same})
	if err != nil {
		t.Fatalf("re-saving own slug should pass: %v", err)
	}
	if updated.SlugEn != "hero" {
		t.Fatalf("unexpected slug %q", updated.SlugEn)
	}
}

func TestCreateSlideValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Hero", "hero", "hero-ar")
	scope := Scope{Type: ScopeSection, ID: section.ID}
	ref := uuid.MustParse("00000000-0000-0000-0000-0000000000e1")

	cases := []struct {
		name  string
		input CreateSlideInput
		want  error
	}{
		{
			name:  "unknown type",
			input: CreateSlideInput{Type: "banner", Scope: scope, TitleEn: "a", TitleAr: "b"},
			want:  ErrSlideTypeInvalid,
		},
		{
			name:  "missing scope",
			input: CreateSlideInput{Type: SlideTypeCustom, TitleEn: "a", TitleAr: "b"},
			want:  ErrSlideScopeInvalid,
		},
		{
			name:  "missing titles",
			input: CreateSlideInput{Type: SlideTypeCustom, Scope: scope, TitleEn: "a"},
			want:  ErrSlideTitleRequired,
		},
		{
			name:  "reference required",
			input: CreateSlideInput{Type: SlideTypeArticle, Scope: scope, TitleEn: "a", TitleAr: "b"},
			want:  ErrSlideReferenceRequired,
		},
		{
			name:  "reference forbidden on custom",
			input: CreateSlideInput{Type: SlideTypeCustom, Scope: scope, ReferenceID: &ref, TitleEn: "a", TitleAr: "b"},
			want:  ErrSlideReferenceForbidden,
		},
		{
			name:  "overlay out of range",
			input: CreateSlideInput{Type: SlideTypeCustom, Scope: scope, TitleEn: "a", TitleAr: "b", OverlayOpacity: 101},
			want:  ErrSlideOverlayInvalid,
		},
		{
			name:  "negative sort order",
			input: CreateSlideInput{Type: SlideTypeCustom, Scope: scope, TitleEn: "a", TitleAr: "b", SortOrder: -1},
			want:  ErrSlideSortOrderInvalid,
		},
		{
			name: "incomplete CTA",
			input: CreateSlideInput{
				Type: SlideTypeCustom, Scope: scope, TitleEn: "a", TitleAr: "b",
				CTAEnabled: true, CTATextEn: strPtr("Read more"),
			},
			want: ErrSlideCTAIncomplete,
		},
		{
			name: "background conflict",
			input: CreateSlideInput{
				Type: SlideTypeCustom, Scope: scope, TitleEn: "a", TitleAr: "b",
				BackgroundImageURL: strPtr("https://cdn.example.com/hero.jpg"),
				BackgroundColor:    strPtr("#112233"),
			},
			want: ErrSlideBackgroundConflict,
		},
		{
			name: "bad background color",
			input: CreateSlideInput{
				Type: SlideTypeCustom, Scope: scope, TitleEn: "a", TitleAr: "b",
				BackgroundColor: strPtr("blue"),
			},
			want: ErrSlideBackgroundColorBad,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateSlide(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSlideDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Hero", "hero", "hero-ar")
	slide, err := svc.CreateSlide(ctx, CreateSlideInput{
		Type:    SlideTypeCustom,
		Scope:   Scope{Type: ScopeSection, ID: section.ID},
		TitleEn: "Welcome",
		TitleAr: "مرحبا",
	})
	if err != nil {
		t.Fatalf("create slide: %v", err)
	}
	if !slide.IsActive {
		t.Fatal("expected new slides to default active")
	}
	if slide.SectionID == nil || *slide.SectionID != section.ID {
		t.Fatalf("expected section scope to be stored, got %v", slide.SectionID)
	}
	if scope, ok := slide.Scope(); !ok || scope.Type != ScopeSection {
		t.Fatalf("expected a section scope, got %+v (ok=%v)", scope, ok)
	}
}

func TestUpdateSlideTypeChangeClearsReference(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Hero", "hero", "hero-ar")
	ref := uuid.MustParse("00000000-0000-0000-0000-0000000000e2")
	slide, err := svc.CreateSlide(ctx, CreateSlideInput{
		Type:        SlideTypeArticle,
		ReferenceID: &ref,
		Scope:       Scope{Type: ScopeSection, ID: section.ID},
		TitleEn:     "News",
		TitleAr:     "أخبار",
	})
	if err != nil {
		t.Fatalf("create slide: %v", err)
	}

	custom := SlideTypeCustom
	updated, err := svc.UpdateSlide(ctx, UpdateSlideInput{SlideID: slide.ID, Type: &custom})
	if err != nil {
		t.Fatalf("update slide: %v", err)
	}
	if updated.ReferenceID != nil {
		t.Fatalf("expected reference to be cleared on type change, got %v", updated.ReferenceID)
	}

	// Switching to another referencing kind without a new reference fails.
	product := SlideTypeProduct
	if _, err := svc.UpdateSlide(ctx, UpdateSlideInput{SlideID: slide.ID, Type: &product}); !errors.Is(err, ErrSlideReferenceRequired) {
		t.Fatalf("expected ErrSlideReferenceRequired, got %v", err)
	}
}

func TestListSlidesScopedAndOrdered(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Hero", "hero", "hero-ar")
	other := mustCreateSection(t, svc, "Landing", "landing", "landing-ar")

	scope := Scope{Type: ScopeSection, ID: section.ID}
	for _, order := range []int{2, 0, 1} {
		if _, err := svc.CreateSlide(ctx, CreateSlideInput{
			Type:      SlideTypeCustom,
			Scope:     scope,
			TitleEn:   fmt.Sprintf("Slide %d", order),
			TitleAr:   "شريحة",
			SortOrder: order,
		}); err != nil {
			t.Fatalf("create slide: %v", err)
		}
	}
	if _, err := svc.CreateSlide(ctx, CreateSlideInput{
		Type:    SlideTypeCustom,
		Scope:   Scope{Type: ScopeSection, ID: other.ID},
		TitleEn: "Elsewhere",
		TitleAr: "آخر",
	}); err != nil {
		t.Fatalf("create slide: %v", err)
	}

	slides, err := svc.ListSlides(ctx, ListSlidesInput{Scope: scope})
	if err != nil {
		t.Fatalf("list slides: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("expected 3 slides in scope, got %d", len(slides))
	}
	for idx := 1; idx < len(slides); idx++ {
		if slides[idx-1].SortOrder > slides[idx].SortOrder {
			t.Fatalf("slides out of order at %d: %d > %d", idx, slides[idx-1].SortOrder, slides[idx].SortOrder)
		}
	}
}

func TestListSlidesActiveOnly(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Hero", "hero", "hero-ar")
	scope := Scope{Type: ScopeSection, ID: section.ID}

	slide, err := svc.CreateSlide(ctx, CreateSlideInput{
		Type:    SlideTypeCustom,
		Scope:   scope,
		TitleEn: "Visible",
		TitleAr: "ظاهر",
	})
	if err != nil {
		t.Fatalf("create slide: %v", err)
	}
	inactive := false
	if _, err := svc.CreateSlide(ctx, CreateSlideInput{
		Type:    SlideTypeCustom,
		Scope:   scope,
		TitleEn: "Hidden",
		TitleAr: "مخفي",
		Active:  &inactive,
	}); err != nil {
		t.Fatalf("create slide: %v", err)
	}

	slides, err := svc.ListSlides(ctx, ListSlidesInput{Scope: scope, ActiveOnly: true})
	if err != nil {
		t.Fatalf("list slides: %v", err)
	}
	if len(slides) != 1 || slides[0].ID != slide.ID {
		t.Fatalf("expected only the active slide, got %d", len(slides))
	}
}

func TestDeleteSectionRemovesSlides(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Hero", "hero", "hero-ar")
	scope := Scope{Type: ScopeSection, ID: section.ID}
	if _, err := svc.CreateSlide(ctx, CreateSlideInput{
		Type:    SlideTypeCustom,
		Scope:   scope,
		TitleEn: "Gone soon",
		TitleAr: "قريبا",
	}); err != nil {
		t.Fatalf("create slide: %v", err)
	}

	if err := svc.DeleteSection(ctx, section.ID); err != nil {
		t.Fatalf("delete section: %v", err)
	}

	if _, err := svc.GetSection(ctx, section.ID); err == nil {
		t.Fatal("expected section lookup to fail after delete")
	}
	if _, err := svc.ListSlides(ctx, ListSlidesInput{Scope: scope}); err != nil {
		t.Fatalf("list slides: %v", err)
	}
	slides, _ := svc.ListSlides(ctx, ListSlidesInput{Scope: scope})
	if len(slides) != 0 {
		t.Fatalf("expected no slides after section delete, got %d", len(slides))
	}
}

func TestResolveScopeRequiresContentSource(t *testing.T) {
	svc := newTestService()
	section := mustCreateSection(t, svc, "Hero", "hero", "hero-ar")

	_, err := svc.ResolveScope(context.Background(), Scope{Type: ScopeSection, ID: section.ID})
	if !errors.Is(err, ErrContentSourceRequired) {
		t.Fatalf("expected ErrContentSourceRequired, got %v", err)
	}
}

func TestResolveScopeEndToEnd(t *testing.T) {
	projectID := uuid.MustParse("00000000-0000-0000-0000-0000000000e3")
	source := staticSource(map[SlideType]map[uuid.UUID]*Reference{
		SlideTypeProject: {
			projectID: {Kind: SlideTypeProject, ID: projectID, TitleEn: "Tower A", TitleAr: "برج أ", SlugEn: "tower-a"},
		},
	})
	svc := newTestService(WithContentSource(source))
	ctx := context.Background()

	section := mustCreateSection(t, svc, "Hero", "hero", "hero-ar")
	scope := Scope{Type: ScopeSection, ID: section.ID}

	if _, err := svc.CreateSlide(ctx, CreateSlideInput{
		Type:        SlideTypeProject,
		ReferenceID: &projectID,
		Scope:       scope,
		TitleEn:     "Our landmark",
		TitleAr:     "معلمنا",
		SortOrder:   1,
	}); err != nil {
		t.Fatalf("create slide: %v", err)
	}
	if _, err := svc.CreateSlide(ctx, CreateSlideInput{
		Type:    SlideTypeCustom,
		Scope:   scope,
		TitleEn: "Welcome",
		TitleAr: "مرحبا",
	}); err != nil {
		t.Fatalf("create slide: %v", err)
	}

	resolved, err := svc.ResolveScope(ctx, scope)
	if err != nil {
		t.Fatalf("resolve scope: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected 2 display slides, got %d", len(resolved))
	}
	if resolved[0].Reference != nil {
		t.Fatal("expected the custom slide first with no reference")
	}
	if resolved[1].Reference == nil || resolved[1].Reference.TitleEn != "Tower A" {
		t.Fatalf("expected resolved project reference, got %+v", resolved[1].Reference)
	}
}

func strPtr(v string) *string { return &v }
