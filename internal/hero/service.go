package hero

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/hamzeh-dev/binaa-cms/internal/logging"
	"github.com/hamzeh-dev/binaa-cms/pkg/interfaces"
)

// Service exposes hero section and slide management plus display resolution.
type Service interface {
	CreateSection(ctx context.Context, input CreateSectionInput) (*Section, error)
	UpdateSection(ctx context.Context, input UpdateSectionInput) (*Section, error)
	GetSection(ctx context.Context, id uuid.UUID) (*Section, error)
	GetSectionBySlug(ctx context.Context, slugValue string) (*Section, error)
	ListSections(ctx context.Context, activeOnly bool) ([]*Section, error)
	DeleteSection(ctx context.Context, id uuid.UUID) error

	CreateSlide(ctx context.Context, input CreateSlideInput) (*Slide, error)
	UpdateSlide(ctx context.Context, input UpdateSlideInput) (*Slide, error)
	GetSlide(ctx context.Context, id uuid.UUID) (*Slide, error)
	ListSlides(ctx context.Context, input ListSlidesInput) ([]*Slide, error)
	DeleteSlide(ctx context.Context, id uuid.UUID) error

	// ResolveScope lists the active slides for a scope and resolves them
	// into display slides in one pass.
	ResolveScope(ctx context.Context, scope Scope) ([]*DisplaySlide, error)
}

// CreateSectionInput captures the fields required to create a hero section.
type CreateSectionInput struct {
	Name   string
	SlugEn string
	SlugAr string
	Active *bool
}

// UpdateSectionInput defines mutable fields for a hero section.
type UpdateSectionInput struct {
	SectionID uuid.UUID
	Name      *string
	SlugEn    *string
	SlugAr    *string
	Active    *bool
}

// CreateSlideInput captures the payload required to create a slide.
type CreateSlideInput struct {
	Type        SlideType
	ReferenceID *uuid.UUID
	Scope       Scope

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

	Active    *bool
	SortOrder int
}

// UpdateSlideInput defines mutable fields for a slide. Nil pointers leave
// the stored value untouched; type and reference always travel together.
type UpdateSlideInput struct {
	SlideID     uuid.UUID
	Type        *SlideType
	ReferenceID *uuid.UUID

	TitleEn    *string
	TitleAr    *string
	SubtitleEn *string
	SubtitleAr *string

	CTAEnabled *bool
	CTATextEn  *string
	CTATextAr  *string
	CTAHref    *string

	BackgroundImageURL *string
	BackgroundColor    *string
	OverlayOpacity     *int

	Active    *bool
	SortOrder *int
}

// ListSlidesInput controls slide listing.
type ListSlidesInput struct {
	Scope      Scope
	ActiveOnly bool
}

var (
	ErrSectionNameRequired = errors.New("hero: section name required")
	ErrSectionSlugRequired = errors.New("hero: section slugs are required in both languages")
	ErrSectionSlugInvalid  = errors.New("hero: section slug is invalid")
	ErrSectionSlugTaken    = errors.New("hero: section slug already in use")
	ErrSectionIDRequired   = errors.New("hero: section id required")

	ErrSlideIDRequired         = errors.New("hero: slide id required")
	ErrSlideTypeInvalid        = errors.New("hero: slide type is not recognized")
	ErrSlideTitleRequired      = errors.New("hero: slide titles are required in both languages")
	ErrSlideReferenceRequired  = errors.New("hero: slide type requires a content reference")
	ErrSlideReferenceForbidden = errors.New("hero: custom slides cannot carry a content reference")
	ErrSlideScopeInvalid       = errors.New("hero: slide must belong to exactly one scope")
	ErrSlideOverlayInvalid     = errors.New("hero: overlay opacity must be between 0 and 100")
	ErrSlideCTAIncomplete      = errors.New("hero: enabled call-to-action requires text in both languages and a link")
	ErrSlideBackgroundConflict = errors.New("hero: slide background is either an image or a color, not both")
	ErrSlideBackgroundColorBad = errors.New("hero: background color must be a hex value")
	ErrSlideSortOrderInvalid   = errors.New("hero: sort order cannot be negative")
	ErrContentSourceRequired   = errors.New("hero: content source not configured")
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures hero service behaviour.
type ServiceOption func(*service)

// WithClock overrides the time source used by the service.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithContentSource wires the lookup used to resolve slide references.
func WithContentSource(source ContentSource) ServiceOption {
	return func(s *service) {
		if source != nil {
			s.resolver = NewResolver(source, ResolverWithLogger(s.logger))
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
			if s.resolver != nil {
				s.resolver.logger = logger
			}
		}
	}
}

type service struct {
	sections SectionRepository
	slides   SlideRepository
	resolver *Resolver
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
}

// NewService constructs a hero service instance.
func NewService(sections SectionRepository, slides SlideRepository, opts ...ServiceOption) Service {
	s := &service{
		sections: sections,
		slides:   slides,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) CreateSection(ctx context.Context, input CreateSectionInput) (*Section, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSectionNameRequired
	}

	slugEn, err := normalizeSectionSlug(input.SlugEn)
	if err != nil {
		return nil, err
	}
	slugAr, err := normalizeSectionSlug(input.SlugAr)
	if err != nil {
		return nil, err
	}

	for _, candidate := range []string{slugEn, slugAr} {
		if err := s.ensureSlugFree(ctx, candidate, uuid.Nil); err != nil {
			return nil, err
		}
	}

	now := s.now()
	section := &Section{
		ID:        s.id(),
		Name:      name,
		SlugEn:    slugEn,
		SlugAr:    slugAr,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Active != nil {
		section.IsActive = *input.Active
	}

	return s.sections.Create(ctx, section)
}

func (s *service) UpdateSection(ctx context.Context, input UpdateSectionInput) (*Section, error) {
	if input.SectionID == uuid.Nil {
		return nil, ErrSectionIDRequired
	}

	section, err := s.sections.GetByID(ctx, input.SectionID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrSectionNameRequired
		}
		section.Name = name
	}
	if input.SlugEn != nil {
		normalized, err := normalizeSectionSlug(*input.SlugEn)
		if err != nil {
			return nil, err
		}
		if err := s.ensureSlugFree(ctx, normalized, section.ID); err != nil {
			return nil, err
		}
		section.SlugEn = normalized
	}
	if input.SlugAr != nil {
		normalized, err := normalizeSectionSlug(*input.SlugAr)
		if err != nil {
			return nil, err
		}
		if err := s.ensureSlugFree(ctx, normalized, section.ID); err != nil {
			return nil, err
		}
		section.SlugAr = normalized
	}
	if input.Active != nil {
		section.IsActive = *input.Active
	}
	section.UpdatedAt = s.now()

	return s.sections.Update(ctx, section)
}

func (s *service) GetSection(ctx context.Context, id uuid.UUID) (*Section, error) {
	return s.sections.GetByID(ctx, id)
}

func (s *service) GetSectionBySlug(ctx context.Context, slugValue string) (*Section, error) {
	return s.sections.GetBySlug(ctx, strings.TrimSpace(slugValue))
}

func (s *service) ListSections(ctx context.Context, activeOnly bool) ([]*Section, error) {
	return s.sections.List(ctx, activeOnly)
}

// DeleteSection removes the section and its slides. The database cascades
// the slide rows; the explicit scope delete keeps in-memory repositories and
// cached reads honest.
func (s *service) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrSectionIDRequired
	}
	if _, err := s.sections.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.slides.DeleteByScope(ctx, Scope{Type: ScopeSection, ID: id}); err != nil {
		return err
	}
	return s.sections.Delete(ctx, id)
}

func (s *service) CreateSlide(ctx context.Context, input CreateSlideInput) (*Slide, error) {
	if !input.Type.IsValid() {
		return nil, ErrSlideTypeInvalid
	}
	if input.Scope.ID == uuid.Nil {
		return nil, ErrSlideScopeInvalid
	}
	if _, err := scopeColumn(input.Scope.Type); err != nil {
		return nil, ErrSlideScopeInvalid
	}

	titleEn := strings.TrimSpace(input.TitleEn)
	titleAr := strings.TrimSpace(input.TitleAr)
	if titleEn == "" || titleAr == "" {
		return nil, ErrSlideTitleRequired
	}

	if input.Type.HasReference() {
		if input.ReferenceID == nil || *input.ReferenceID == uuid.Nil {
			return nil, ErrSlideReferenceRequired
		}
	} else if input.ReferenceID != nil {
		return nil, ErrSlideReferenceForbidden
	}

	if input.OverlayOpacity < 0 || input.OverlayOpacity > 100 {
		return nil, ErrSlideOverlayInvalid
	}
	if input.SortOrder < 0 {
		return nil, ErrSlideSortOrderInvalid
	}
	if err := validateCTA(input.CTAEnabled, input.CTATextEn, input.CTATextAr, input.CTAHref); err != nil {
		return nil, err
	}
	if err := validateBackground(input.BackgroundImageURL, input.BackgroundColor); err != nil {
		return nil, err
	}

	now := s.now()
	slide := &Slide{
		ID:                 s.id(),
		Type:               input.Type,
		ReferenceID:        cloneUUID(input.ReferenceID),
		TitleEn:            titleEn,
		TitleAr:            titleAr,
		SubtitleEn:         cloneString(input.SubtitleEn),
		SubtitleAr:         cloneString(input.SubtitleAr),
		CTAEnabled:         input.CTAEnabled,
		CTATextEn:          cloneString(input.CTATextEn),
		CTATextAr:          cloneString(input.CTATextAr),
		CTAHref:            cloneString(input.CTAHref),
		BackgroundImageURL: cloneString(input.BackgroundImageURL),
		BackgroundColor:    cloneString(input.BackgroundColor),
		OverlayOpacity:     input.OverlayOpacity,
		IsActive:           true,
		SortOrder:          input.SortOrder,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if input.Active != nil {
		slide.IsActive = *input.Active
	}

	scopeID := input.Scope.ID
	switch input.Scope.Type {
	case ScopeSection:
		slide.SectionID = &scopeID
	case ScopeImportService:
		slide.ImportServiceID = &scopeID
	case ScopeContractingService:
		slide.ContractingServiceID = &scopeID
	}

	return s.slides.Create(ctx, slide)
}

func (s *service) UpdateSlide(ctx context.Context, input UpdateSlideInput) (*Slide, error) {
	if input.SlideID == uuid.Nil {
		return nil, ErrSlideIDRequired
	}

	slide, err := s.slides.GetByID(ctx, input.SlideID)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, ErrSlideTypeInvalid
		}
		slide.Type = *input.Type
		// Changing the kind invalidates the previous reference.
		slide.ReferenceID = nil
	}
	if input.ReferenceID != nil {
		slide.ReferenceID = cloneUUID(input.ReferenceID)
	}
	if slide.Type.HasReference() {
		if slide.ReferenceID == nil || *slide.ReferenceID == uuid.Nil {
			return nil, ErrSlideReferenceRequired
		}
	} else if slide.ReferenceID != nil {
		return nil, ErrSlideReferenceForbidden
	}

	if input.TitleEn != nil {
		if strings.TrimSpace(*input.TitleEn) == "" {
			return nil, ErrSlideTitleRequired
		}
		slide.TitleEn = strings.TrimSpace(*input.TitleEn)
	}
	if input.TitleAr != nil {
		if strings.TrimSpace(*input.TitleAr) == "" {
			return nil, ErrSlideTitleRequired
		}
		slide.TitleAr = strings.TrimSpace(*input.TitleAr)
	}
	if input.SubtitleEn != nil {
		slide.SubtitleEn = cloneString(input.SubtitleEn)
	}
	if input.SubtitleAr != nil {
		slide.SubtitleAr = cloneString(input.SubtitleAr)
	}

	if input.CTAEnabled != nil {
		slide.CTAEnabled = *input.CTAEnabled
	}
	if input.CTATextEn != nil {
		slide.CTATextEn = cloneString(input.CTATextEn)
	}
	if input.CTATextAr != nil {
		slide.CTATextAr = cloneString(input.CTATextAr)
	}
	if input.CTAHref != nil {
		slide.CTAHref = cloneString(input.CTAHref)
	}
	if err := validateCTA(slide.CTAEnabled, slide.CTATextEn, slide.CTATextAr, slide.CTAHref); err != nil {
		return nil, err
	}

	if input.BackgroundImageURL != nil {
		slide.BackgroundImageURL = cloneString(input.BackgroundImageURL)
	}
	if input.BackgroundColor != nil {
		slide.BackgroundColor = cloneString(input.BackgroundColor)
	}
	if err := validateBackground(slide.BackgroundImageURL, slide.BackgroundColor); err != nil {
		return nil, err
	}

	if input.OverlayOpacity != nil {
		if *input.OverlayOpacity < 0 || *input.OverlayOpacity > 100 {
			return nil, ErrSlideOverlayInvalid
		}
		slide.OverlayOpacity = *input.OverlayOpacity
	}
	if input.SortOrder != nil {
		if *input.SortOrder < 0 {
			return nil, ErrSlideSortOrderInvalid
		}
		slide.SortOrder = *input.SortOrder
	}
	if input.Active != nil {
		slide.IsActive = *input.Active
	}
	slide.UpdatedAt = s.now()

	return s.slides.Update(ctx, slide)
}

func (s *service) GetSlide(ctx context.Context, id uuid.UUID) (*Slide, error) {
	return s.slides.GetByID(ctx, id)
}

func (s *service) ListSlides(ctx context.Context, input ListSlidesInput) ([]*Slide, error) {
	if input.Scope.ID == uuid.Nil {
		return nil, ErrSlideScopeInvalid
	}
	if _, err := scopeColumn(input.Scope.Type); err != nil {
		return nil, ErrSlideScopeInvalid
	}
	return s.slides.ListByScope(ctx, input.Scope, input.ActiveOnly)
}

func (s *service) DeleteSlide(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrSlideIDRequired
	}
	return s.slides.Delete(ctx, id)
}

func (s *service) ResolveScope(ctx context.Context, scope Scope) ([]*DisplaySlide, error) {
	if s.resolver == nil {
		return nil, ErrContentSourceRequired
	}
	slides, err := s.ListSlides(ctx, ListSlidesInput{Scope: scope, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(ctx, slides)
}

func (s *service) ensureSlugFree(ctx context.Context, candidate string, selfID uuid.UUID) error {
	existing, err := s.sections.GetBySlug(ctx, candidate)
	if err == nil && existing != nil && existing.ID != selfID {
		return ErrSectionSlugTaken
	}
	if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return err
		}
	}
	return nil
}

func normalizeSectionSlug(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrSectionSlugRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", ErrSectionSlugInvalid
	}
	return normalized, nil
}

func validateCTA(enabled bool, textEn, textAr, href *string) error {
	if !enabled {
		return nil
	}
	if emptyPtr(textEn) || emptyPtr(textAr) || emptyPtr(href) {
		return ErrSlideCTAIncomplete
	}
	return nil
}

func validateBackground(imageURL, color *string) error {
	if !emptyPtr(imageURL) && !emptyPtr(color) {
		return ErrSlideBackgroundConflict
	}
	if !emptyPtr(color) && !hexColorPattern.MatchString(strings.TrimSpace(*color)) {
		return ErrSlideBackgroundColorBad
	}
	return nil
}

func emptyPtr(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}
