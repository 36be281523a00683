package hero

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func slideFixture(id string, kind SlideType, sortOrder int, mutate func(*Slide)) *Slide {
	sectionID := uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
	slide := &Slide{
		ID:        uuid.MustParse(id),
		Type:      kind,
		SectionID: &sectionID,
		TitleEn:   "Fallback",
		TitleAr:   "احتياطي",
		IsActive:  true,
		SortOrder: sortOrder,
	}
	if mutate != nil {
		mutate(slide)
	}
	return slide
}

func staticSource(refs map[SlideType]map[uuid.UUID]*Reference) ContentSource {
	return ContentSourceFunc(func(_ context.Context, kind SlideType, ids []uuid.UUID) (map[uuid.UUID]*Reference, error) {
		out := make(map[uuid.UUID]*Reference, len(ids))
		for _, id := range ids {
			if ref, ok := refs[kind][id]; ok {
				out[id] = ref
			}
		}
		return out, nil
	})
}

func TestResolverCustomSlideHasNoReference(t *testing.T) {
	ctx := context.Background()
	resolver := NewResolver(staticSource(nil))

	slides := []*Slide{
		slideFixture("00000000-0000-0000-0000-000000000001", SlideTypeCustom, 0, func(s *Slide) {
			subtitle := "Build with us"
			s.SubtitleEn = &subtitle
		}),
	}

	resolved, err := resolver.Resolve(ctx, slides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("expected 1 display slide, got %d", len(resolved))
	}
	if resolved[0].Reference != nil {
		t.Fatalf("expected nil reference for custom slide, got %+v", resolved[0].Reference)
	}
	if resolved[0].TitleEn != "Fallback" || resolved[0].TitleAr != "احتياطي" {
		t.Fatalf("expected slide's own titles, got %q / %q", resolved[0].TitleEn, resolved[0].TitleAr)
	}
}

func TestResolverProjectReference(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.MustParse("00000000-0000-0000-0000-0000000000f1")

	resolver := NewResolver(staticSource(map[SlideType]map[uuid.UUID]*Reference{
		SlideTypeProject: {
			projectID: {
				Kind:    SlideTypeProject,
				ID:      projectID,
				TitleEn: "Tower A",
				TitleAr: "برج أ",
				SlugEn:  "tower-a",
				SlugAr:  "برج-أ",
			},
		},
	}))

	slides := []*Slide{
		slideFixture("00000000-0000-0000-0000-000000000002", SlideTypeProject, 0, func(s *Slide) {
			ref := projectID
			s.ReferenceID = &ref
		}),
	}

	resolved, err := resolver.Resolve(ctx, slides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved[0].Reference == nil {
		t.Fatal("expected reference to be resolved")
	}
	if resolved[0].Reference.TitleEn != "Tower A" {
		t.Fatalf("expected referenced title, got %q", resolved[0].Reference.TitleEn)
	}
	// The slide's own title stays available as the rendering fallback.
	if resolved[0].TitleEn != "Fallback" {
		t.Fatalf("expected slide title preserved, got %q", resolved[0].TitleEn)
	}
}

func TestResolverMissingReferenceDegrades(t *testing.T) {
	ctx := context.Background()
	resolver := NewResolver(staticSource(nil))

	gone := uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
	slides := []*Slide{
		slideFixture("00000000-0000-0000-0000-000000000003", SlideTypeArticle, 0, func(s *Slide) {
			s.ReferenceID = &gone
		}),
		slideFixture("00000000-0000-0000-0000-000000000004", SlideTypeCustom, 1, nil),
	}

	resolved, err := resolver.Resolve(ctx, slides)
	if err != nil {
		t.Fatalf("expected degraded resolution, got error: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("expected the full batch, got %d slides", len(resolved))
	}
	if resolved[0].Reference != nil {
		t.Fatal("expected missing reference to resolve to nil")
	}
}

func TestResolverMalformedSlideDoesNotFailBatch(t *testing.T) {
	ctx := context.Background()
	resolver := NewResolver(staticSource(nil))

	slides := []*Slide{
		// Non-custom kind with no reference id set.
		slideFixture("00000000-0000-0000-0000-000000000005", SlideTypeProduct, 0, nil),
	}

	resolved, err := resolver.Resolve(ctx, slides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 1 || resolved[0].Reference != nil {
		t.Fatalf("expected degraded slide with nil reference, got %+v", resolved)
	}
}

func TestResolverPreservesSortOrderWithStableTies(t *testing.T) {
	ctx := context.Background()
	resolver := NewResolver(staticSource(nil))

	slides := []*Slide{
		slideFixture("00000000-0000-0000-0000-000000000011", SlideTypeCustom, 2, nil),
		slideFixture("00000000-0000-0000-0000-000000000012", SlideTypeCustom, 1, nil),
		slideFixture("00000000-0000-0000-0000-000000000013", SlideTypeCustom, 1, nil),
		slideFixture("00000000-0000-0000-0000-000000000014", SlideTypeCustom, 0, nil),
	}

	resolved, err := resolver.Resolve(ctx, slides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{
		"00000000-0000-0000-0000-000000000014",
		"00000000-0000-0000-0000-000000000012",
		"00000000-0000-0000-0000-000000000013",
		"00000000-0000-0000-0000-000000000011",
	}
	for idx, want := range wantOrder {
		if resolved[idx].ID != uuid.MustParse(want) {
			t.Fatalf("position %d: expected %s, got %s", idx, want, resolved[idx].ID)
		}
	}
}

func TestResolverSkipsInactiveSlides(t *testing.T) {
	ctx := context.Background()
	resolver := NewResolver(staticSource(nil))

	slides := []*Slide{
		slideFixture("00000000-0000-0000-0000-000000000021", SlideTypeCustom, 0, func(s *Slide) {
			s.IsActive = false
		}),
		slideFixture("00000000-0000-0000-0000-000000000022", SlideTypeCustom, 1, nil),
	}

	resolved, err := resolver.Resolve(ctx, slides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("expected inactive slide to be skipped, got %d slides", len(resolved))
	}
}

func TestResolverBatchesLookupsPerKind(t *testing.T) {
	ctx := context.Background()

	calls := make(map[SlideType]int)
	source := ContentSourceFunc(func(_ context.Context, kind SlideType, ids []uuid.UUID) (map[uuid.UUID]*Reference, error) {
		calls[kind]++
		out := make(map[uuid.UUID]*Reference, len(ids))
		for _, id := range ids {
			out[id] = &Reference{Kind: kind, ID: id, TitleEn: "x", TitleAr: "س"}
		}
		return out, nil
	})
	resolver := NewResolver(source)

	ref1 := uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	ref2 := uuid.MustParse("00000000-0000-0000-0000-0000000000b2")
	ref3 := uuid.MustParse("00000000-0000-0000-0000-0000000000b3")

	slides := []*Slide{
		slideFixture("00000000-0000-0000-0000-000000000031", SlideTypeArticle, 0, func(s *Slide) { s.ReferenceID = &ref1 }),
		slideFixture("00000000-0000-0000-0000-000000000032", SlideTypeArticle, 1, func(s *Slide) { s.ReferenceID = &ref2 }),
		slideFixture("00000000-0000-0000-0000-000000000033", SlideTypeProject, 2, func(s *Slide) { s.ReferenceID = &ref3 }),
	}

	if _, err := resolver.Resolve(ctx, slides); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls[SlideTypeArticle] != 1 {
		t.Fatalf("expected one grouped article lookup, got %d", calls[SlideTypeArticle])
	}
	if calls[SlideTypeProject] != 1 {
		t.Fatalf("expected one grouped project lookup, got %d", calls[SlideTypeProject])
	}
}

func TestResolverSourceFailureSurfaces(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("content store unavailable")
	resolver := NewResolver(ContentSourceFunc(func(context.Context, SlideType, []uuid.UUID) (map[uuid.UUID]*Reference, error) {
		return nil, boom
	}))

	ref := uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	slides := []*Slide{
		slideFixture("00000000-0000-0000-0000-000000000041", SlideTypeProduct, 0, func(s *Slide) { s.ReferenceID = &ref }),
	}

	if _, err := resolver.Resolve(ctx, slides); !errors.Is(err, boom) {
		t.Fatalf("expected source error to surface, got %v", err)
	}
}

func TestResolverCTAOnlyWhenComplete(t *testing.T) {
	ctx := context.Background()
	resolver := NewResolver(staticSource(nil))

	text := "Read more"
	textAr := "اقرأ المزيد"
	href := "/en/articles/tower-a"
	slides := []*Slide{
		slideFixture("00000000-0000-0000-0000-000000000051", SlideTypeCustom, 0, func(s *Slide) {
			s.CTAEnabled = true
			s.CTATextEn = &text
			s.CTATextAr = &textAr
			s.CTAHref = &href
		}),
		slideFixture("00000000-0000-0000-0000-000000000052", SlideTypeCustom, 1, func(s *Slide) {
			s.CTAEnabled = false
			s.CTATextEn = &text
		}),
	}

	resolved, err := resolver.Resolve(ctx, slides)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved[0].CTA == nil || resolved[0].CTA.Href != href {
		t.Fatalf("expected complete CTA block, got %+v", resolved[0].CTA)
	}
	if resolved[1].CTA != nil {
		t.Fatalf("expected disabled CTA to resolve to nil, got %+v", resolved[1].CTA)
	}
}
