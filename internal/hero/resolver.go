package hero

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hamzeh-dev/binaa-cms/internal/logging"
	"github.com/hamzeh-dev/binaa-cms/pkg/interfaces"
)

// Reference is the read-model snapshot of the catalog entity a slide points
// at. It is computed per request and never persisted.
type Reference struct {
	Kind SlideType `json:"kind"`
	ID   uuid.UUID `json:"id"`

	TitleEn       string  `json:"title_en"`
	TitleAr       string  `json:"title_ar"`
	SlugEn        string  `json:"slug_en"`
	SlugAr        string  `json:"slug_ar"`
	DescriptionEn *string `json:"description_en,omitempty"`
	DescriptionAr *string `json:"description_ar,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`

	// Kind-specific extras. Articles carry a category and publish date,
	// products a category, projects location/year/type.
	CategoryEn  *string    `json:"category_en,omitempty"`
	CategoryAr  *string    `json:"category_ar,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	LocationEn  *string    `json:"location_en,omitempty"`
	LocationAr  *string    `json:"location_ar,omitempty"`
	Year        *int       `json:"year,omitempty"`
	TypeNameEn  *string    `json:"type_name_en,omitempty"`
	TypeNameAr  *string    `json:"type_name_ar,omitempty"`
}

// CTA is the resolved call-to-action block of a display slide.
type CTA struct {
	TextEn string `json:"text_en"`
	TextAr string `json:"text_ar"`
	Href   string `json:"href"`
}

// Background carries at most one of an image URL or a hex color.
type Background struct {
	ImageURL *string `json:"image_url,omitempty"`
	Color    *string `json:"color,omitempty"`
}

// DisplaySlide is the unit the carousel renders. All slide kinds collapse
// into this one shape so the rendering layer only branches on Reference
// being present.
type DisplaySlide struct {
	ID             uuid.UUID  `json:"id"`
	Type           SlideType  `json:"slide_type"`
	TitleEn        string     `json:"title_en"`
	TitleAr        string     `json:"title_ar"`
	SubtitleEn     *string    `json:"subtitle_en,omitempty"`
	SubtitleAr     *string    `json:"subtitle_ar,omitempty"`
	CTA            *CTA       `json:"cta,omitempty"`
	Background     Background `json:"background"`
	OverlayOpacity int        `json:"overlay_opacity"`
	Reference      *Reference `json:"reference,omitempty"`
	SortOrder      int        `json:"sort_order"`
}

// ContentSource resolves slide references in bulk. Implementations must use
// one grouped fetch per kind, never one round trip per id, and omit missing
// entities from the returned map instead of erroring.
type ContentSource interface {
	ResolveReferences(ctx context.Context, kind SlideType, ids []uuid.UUID) (map[uuid.UUID]*Reference, error)
}

// ContentSourceFunc adapts a function to the ContentSource interface.
type ContentSourceFunc func(ctx context.Context, kind SlideType, ids []uuid.UUID) (map[uuid.UUID]*Reference, error)

func (fn ContentSourceFunc) ResolveReferences(ctx context.Context, kind SlideType, ids []uuid.UUID) (map[uuid.UUID]*Reference, error) {
	return fn(ctx, kind, ids)
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// ResolverWithLogger attaches a logger used for anomaly reporting.
func ResolverWithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver turns stored slides into display slides. It is a pure transform
// over its inputs plus the content source; it owns no state between calls.
type Resolver struct {
	source ContentSource
	logger interfaces.Logger
}

// NewResolver constructs a slide resolver.
func NewResolver(source ContentSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source: source,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve normalizes a batch of slides into display slides. Callers pass
// pre-filtered active batches; inactive rows that slip through are skipped.
// Output is ordered by ascending SortOrder with ties keeping input order.
// A slide whose reference is missing, or whose reference columns violate
// the kind invariant, degrades to a custom-style slide with a nil reference
// rather than failing the batch. Only content source infrastructure
// failures surface as errors.
func (r *Resolver) Resolve(ctx context.Context, slides []*Slide) ([]*DisplaySlide, error) {
	if len(slides) == 0 {
		return []*DisplaySlide{}, nil
	}

	ordered := make([]*Slide, 0, len(slides))
	for _, slide := range slides {
		if slide == nil || !slide.IsActive {
			continue
		}
		ordered = append(ordered, slide)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	references, err := r.fetchReferences(ctx, ordered)
	if err != nil {
		return nil, err
	}

	display := make([]*DisplaySlide, 0, len(ordered))
	for _, slide := range ordered {
		display = append(display, r.buildDisplaySlide(slide, references))
	}
	return display, nil
}

// fetchReferences groups the wanted ids by kind and issues one source call
// per kind present in the batch.
func (r *Resolver) fetchReferences(ctx context.Context, slides []*Slide) (map[SlideType]map[uuid.UUID]*Reference, error) {
	wanted := make(map[SlideType][]uuid.UUID)
	seen := make(map[SlideType]map[uuid.UUID]struct{})
	for _, slide := range slides {
		if !slide.Type.HasReference() {
			continue
		}
		if slide.ReferenceID == nil || *slide.ReferenceID == uuid.Nil {
			// Invariant break on a legacy row; resolution degrades later.
			continue
		}
		if seen[slide.Type] == nil {
			seen[slide.Type] = make(map[uuid.UUID]struct{})
		}
		if _, dup := seen[slide.Type][*slide.ReferenceID]; dup {
			continue
		}
		seen[slide.Type][*slide.ReferenceID] = struct{}{}
		wanted[slide.Type] = append(wanted[slide.Type], *slide.ReferenceID)
	}

	resolved := make(map[SlideType]map[uuid.UUID]*Reference, len(wanted))
	for kind, ids := range wanted {
		if r.source == nil {
			return nil, ErrContentSourceRequired
		}
		refs, err := r.source.ResolveReferences(ctx, kind, ids)
		if err != nil {
			return nil, fmt.Errorf("hero: resolve %s references: %w", kind, err)
		}
		resolved[kind] = refs
	}
	return resolved, nil
}

func (r *Resolver) buildDisplaySlide(slide *Slide, references map[SlideType]map[uuid.UUID]*Reference) *DisplaySlide {
	display := &DisplaySlide{
		ID:         slide.ID,
		Type:       slide.Type,
		TitleEn:    slide.TitleEn,
		TitleAr:    slide.TitleAr,
		SubtitleEn: cloneString(slide.SubtitleEn),
		SubtitleAr: cloneString(slide.SubtitleAr),
		Background: Background{
			ImageURL: cloneString(slide.BackgroundImageURL),
			Color:    cloneString(slide.BackgroundColor),
		},
		OverlayOpacity: slide.OverlayOpacity,
		SortOrder:      slide.SortOrder,
	}

	if slide.CTAEnabled && !emptyPtr(slide.CTATextEn) && !emptyPtr(slide.CTATextAr) && !emptyPtr(slide.CTAHref) {
		display.CTA = &CTA{
			TextEn: *slide.CTATextEn,
			TextAr: *slide.CTATextAr,
			Href:   *slide.CTAHref,
		}
	}

	if !slide.Type.HasReference() {
		return display
	}

	if slide.ReferenceID == nil || *slide.ReferenceID == uuid.Nil {
		r.logger.Warn("slide reference id missing for kind, rendering as custom",
			"slide_id", slide.ID.String(),
			"slide_type", string(slide.Type),
		)
		return display
	}

	ref := references[slide.Type][*slide.ReferenceID]
	if ref == nil {
		r.logger.Warn("slide reference no longer exists, rendering as custom",
			"slide_id", slide.ID.String(),
			"slide_type", string(slide.Type),
			"reference_id", slide.ReferenceID.String(),
		)
		return display
	}

	display.Reference = ref
	return display
}
