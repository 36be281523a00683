package hero

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SlideType discriminates what a slide points at. A slide either references
// one catalog entity (the non-custom kinds) or stands alone as a custom
// slide; the discriminant plus a single ReferenceID replaces the per-kind
// nullable reference columns the dashboard forms present.
type SlideType string

const (
	SlideTypeArticle            SlideType = "article"
	SlideTypeProduct            SlideType = "product"
	SlideTypeMainService        SlideType = "main_service"
	SlideTypeImportService      SlideType = "import_service"
	SlideTypeContractingService SlideType = "contracting_service"
	SlideTypeProject            SlideType = "project"
	SlideTypeCustom             SlideType = "custom"
)

// ReferenceKinds lists the slide types that carry a content reference.
func ReferenceKinds() []SlideType {
	return []SlideType{
		SlideTypeArticle,
		SlideTypeProduct,
		SlideTypeMainService,
		SlideTypeImportService,
		SlideTypeContractingService,
		SlideTypeProject,
	}
}

// IsValid reports whether the slide type is one of the known kinds.
func (t SlideType) IsValid() bool {
	switch t {
	case SlideTypeArticle, SlideTypeProduct, SlideTypeMainService,
		SlideTypeImportService, SlideTypeContractingService,
		SlideTypeProject, SlideTypeCustom:
		return true
	default:
		return false
	}
}

// HasReference reports whether slides of this type carry a content reference.
func (t SlideType) HasReference() bool {
	return t.IsValid() && t != SlideTypeCustom
}

// Section groups the slides shown together on one page.
type Section struct {
	bun.BaseModel `bun:"table:hero_sections,alias:hs"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	SlugEn    string    `bun:"slug_en,notnull,unique" json:"slug_en"`
	SlugAr    string    `bun:"slug_ar,notnull,unique" json:"slug_ar"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	// Slides is populated when loading sections with eager relations.
	Slides []*Slide `bun:"rel:has-many,join:id=section_id" json:"slides,omitempty"`
}

// Slide is one carousel frame. Scope columns stay as three nullable foreign
// keys so the database enforces cascade (section) and parent cleanup; the
// exactly-one invariant is enforced at write time and by a CHECK constraint.
type Slide struct {
	bun.BaseModel `bun:"table:hero_slides,alias:hsl"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Type        SlideType  `bun:"slide_type,notnull" json:"slide_type"`
	ReferenceID *uuid.UUID `bun:"reference_id,type:uuid" json:"reference_id,omitempty"`

	SectionID            *uuid.UUID `bun:"section_id,type:uuid" json:"section_id,omitempty"`
	ImportServiceID      *uuid.UUID `bun:"import_service_id,type:uuid" json:"import_service_id,omitempty"`
	ContractingServiceID *uuid.UUID `bun:"contracting_service_id,type:uuid" json:"contracting_service_id,omitempty"`

	TitleEn    string  `bun:"title_en,notnull" json:"title_en"`
	TitleAr    string  `bun:"title_ar,notnull" json:"title_ar"`
	SubtitleEn *string `bun:"subtitle_en" json:"subtitle_en,omitempty"`
	SubtitleAr *string `bun:"subtitle_ar" json:"subtitle_ar,omitempty"`

	CTAEnabled bool    `bun:"cta_enabled,notnull,default:false" json:"cta_enabled"`
	CTATextEn  *string `bun:"cta_text_en" json:"cta_text_en,omitempty"`
	CTATextAr  *string `bun:"cta_text_ar" json:"cta_text_ar,omitempty"`
	CTAHref    *string `bun:"cta_href" json:"cta_href,omitempty"`

	BackgroundImageURL *string `bun:"background_image_url" json:"background_image_url,omitempty"`
	BackgroundColor    *string `bun:"background_color" json:"background_color,omitempty"`
	OverlayOpacity     int     `bun:"overlay_opacity,notnull,default:0" json:"overlay_opacity"`

	IsActive  bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	SortOrder int       `bun:"sort_order,notnull,default:0" json:"sort_order"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Section *Section `bun:"rel:belongs-to,join:section_id=id" json:"section,omitempty"`
}

// ScopeType identifies which parent a slide belongs to.
type ScopeType string

const (
	ScopeSection            ScopeType = "section"
	ScopeImportService      ScopeType = "import_service"
	ScopeContractingService ScopeType = "contracting_service"
)

// Scope captures a slide's single parent as a typed pair.
type Scope struct {
	Type ScopeType
	ID   uuid.UUID
}

// Scope returns the slide's parent scope. ok is false when the row violates
// the exactly-one invariant (zero or multiple scope columns set).
func (s *Slide) Scope() (Scope, bool) {
	var (
		scope Scope
		count int
	)
	if s.SectionID != nil {
		scope = Scope{Type: ScopeSection, ID: *s.SectionID}
		count++
	}
	if s.ImportServiceID != nil {
		scope = Scope{Type: ScopeImportService, ID: *s.ImportServiceID}
		count++
	}
	if s.ContractingServiceID != nil {
		scope = Scope{Type: ScopeContractingService, ID: *s.ContractingServiceID}
		count++
	}
	return scope, count == 1
}
