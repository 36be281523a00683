package hero

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewSectionRepository creates a repository for hero sections.
func NewSectionRepository(db *bun.DB) repository.Repository[*Section] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Section]{
		NewRecord:          func() *Section { return &Section{} },
		GetID:              func(section *Section) uuid.UUID { return section.ID },
		SetID:              func(section *Section, id uuid.UUID) { section.ID = id },
		GetIdentifier:      func() string { return "slug_en" },
		GetIdentifierValue: func(section *Section) string { return section.SlugEn },
	})
}

// NewSlideRepository creates a repository for hero slides.
func NewSlideRepository(db *bun.DB) repository.Repository[*Slide] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Slide]{
		NewRecord:          func() *Slide { return &Slide{} },
		GetID:              func(slide *Slide) uuid.UUID { return slide.ID },
		SetID:              func(slide *Slide, id uuid.UUID) { slide.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(slide *Slide) string { return slide.ID.String() },
	})
}
