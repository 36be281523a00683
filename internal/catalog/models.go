package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Line distinguishes the three service families the company offers.
type Line string

const (
	LineMain        Line = "main"
	LineImport      Line = "import"
	LineContracting Line = "contracting"
)

// IsValid reports whether the line is one of the known service families.
func (l Line) IsValid() bool {
	switch l {
	case LineMain, LineImport, LineContracting:
		return true
	default:
		return false
	}
}

// Article is a news or blog entry with a markdown body per language.
type Article struct {
	bun.BaseModel `bun:"table:catalog_articles,alias:ca"`

	ID            uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	TitleEn       string     `bun:"title_en,notnull" json:"title_en"`
	TitleAr       string     `bun:"title_ar,notnull" json:"title_ar"`
	SlugEn        string     `bun:"slug_en,notnull,unique" json:"slug_en"`
	SlugAr        string     `bun:"slug_ar,notnull,unique" json:"slug_ar"`
	DescriptionEn *string    `bun:"description_en" json:"description_en,omitempty"`
	DescriptionAr *string    `bun:"description_ar" json:"description_ar,omitempty"`
	BodyEn        *string    `bun:"body_en" json:"body_en,omitempty"`
	BodyAr        *string    `bun:"body_ar" json:"body_ar,omitempty"`
	CategoryEn    *string    `bun:"category_en" json:"category_en,omitempty"`
	CategoryAr    *string    `bun:"category_ar" json:"category_ar,omitempty"`
	ImageURL      *string    `bun:"image_url" json:"image_url,omitempty"`
	PublishedAt   *time.Time `bun:"published_at" json:"published_at,omitempty"`
	IsActive      bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Product is an item the company imports or sells.
type Product struct {
	bun.BaseModel `bun:"table:catalog_products,alias:cp"`

	ID            uuid.UUID `bun:",pk,type:uuid" json:"id"`
	TitleEn       string    `bun:"title_en,notnull" json:"title_en"`
	TitleAr       string    `bun:"title_ar,notnull" json:"title_ar"`
	SlugEn        string    `bun:"slug_en,notnull,unique" json:"slug_en"`
	SlugAr        string    `bun:"slug_ar,notnull,unique" json:"slug_ar"`
	DescriptionEn *string   `bun:"description_en" json:"description_en,omitempty"`
	DescriptionAr *string   `bun:"description_ar" json:"description_ar,omitempty"`
	CategoryEn    *string   `bun:"category_en" json:"category_en,omitempty"`
	CategoryAr    *string   `bun:"category_ar" json:"category_ar,omitempty"`
	ImageURL      *string   `bun:"image_url" json:"image_url,omitempty"`
	IsActive      bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Project is a completed or ongoing construction project.
type Project struct {
	bun.BaseModel `bun:"table:catalog_projects,alias:cj"`

	ID            uuid.UUID `bun:",pk,type:uuid" json:"id"`
	TitleEn       string    `bun:"title_en,notnull" json:"title_en"`
	TitleAr       string    `bun:"title_ar,notnull" json:"title_ar"`
	SlugEn        string    `bun:"slug_en,notnull,unique" json:"slug_en"`
	SlugAr        string    `bun:"slug_ar,notnull,unique" json:"slug_ar"`
	DescriptionEn *string   `bun:"description_en" json:"description_en,omitempty"`
	DescriptionAr *string   `bun:"description_ar" json:"description_ar,omitempty"`
	LocationEn    *string   `bun:"location_en" json:"location_en,omitempty"`
	LocationAr    *string   `bun:"location_ar" json:"location_ar,omitempty"`
	Year          *int      `bun:"year" json:"year,omitempty"`
	TypeEn        *string   `bun:"type_en" json:"type_en,omitempty"`
	TypeAr        *string   `bun:"type_ar" json:"type_ar,omitempty"`
	ImageURL      *string   `bun:"image_url" json:"image_url,omitempty"`
	IsActive      bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// ServiceLine is one offered service. The three families (main, import,
// contracting) share this shape and table; import and contracting rows also
// act as slide scopes for their own mini carousels.
type ServiceLine struct {
	bun.BaseModel `bun:"table:catalog_service_lines,alias:cs"`

	ID            uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Line          Line      `bun:"line,notnull" json:"line"`
	TitleEn       string    `bun:"title_en,notnull" json:"title_en"`
	TitleAr       string    `bun:"title_ar,notnull" json:"title_ar"`
	SlugEn        string    `bun:"slug_en,notnull,unique" json:"slug_en"`
	SlugAr        string    `bun:"slug_ar,notnull,unique" json:"slug_ar"`
	DescriptionEn *string   `bun:"description_en" json:"description_en,omitempty"`
	DescriptionAr *string   `bun:"description_ar" json:"description_ar,omitempty"`
	ImageURL      *string   `bun:"image_url" json:"image_url,omitempty"`
	IsActive      bool      `bun:"is_active,notnull,default:true" json:"is_active"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func (a *Article) recordID() uuid.UUID           { return a.ID }
func (a *Article) recordSlugs() (string, string) { return a.SlugEn, a.SlugAr }
func (a *Article) recordActive() bool            { return a.IsActive }
func (a *Article) recordTitle() string           { return a.TitleEn }

func (p *Product) recordID() uuid.UUID           { return p.ID }
func (p *Product) recordSlugs() (string, string) { return p.SlugEn, p.SlugAr }
func (p *Product) recordActive() bool            { return p.IsActive }
func (p *Product) recordTitle() string           { return p.TitleEn }

func (p *Project) recordID() uuid.UUID           { return p.ID }
func (p *Project) recordSlugs() (string, string) { return p.SlugEn, p.SlugAr }
func (p *Project) recordActive() bool            { return p.IsActive }
func (p *Project) recordTitle() string           { return p.TitleEn }

func (s *ServiceLine) recordID() uuid.UUID           { return s.ID }
func (s *ServiceLine) recordSlugs() (string, string) { return s.SlugEn, s.SlugAr }
func (s *ServiceLine) recordActive() bool            { return s.IsActive }
func (s *ServiceLine) recordTitle() string           { return s.TitleEn }

// record is the shared surface the four catalog models expose to the
// generic repository plumbing in this package.
type record interface {
	recordID() uuid.UUID
	recordSlugs() (string, string)
	recordActive() bool
	recordTitle() string
}
