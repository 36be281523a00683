package hero

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SectionRepository exposes persistence operations for hero sections.
type SectionRepository interface {
	Create(ctx context.Context, section *Section) (*Section, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Section, error)
	GetBySlug(ctx context.Context, slug string) (*Section, error)
	List(ctx context.Context, activeOnly bool) ([]*Section, error)
	Update(ctx context.Context, section *Section) (*Section, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SlideRepository exposes persistence operations for hero slides. List
// results come back ordered by sort_order ascending with created_at breaking
// ties, so callers see the same order the carousel renders.
type SlideRepository interface {
	Create(ctx context.Context, slide *Slide) (*Slide, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Slide, error)
	ListByScope(ctx context.Context, scope Scope, activeOnly bool) ([]*Slide, error)
	Update(ctx context.Context, slide *Slide) (*Slide, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByScope(ctx context.Context, scope Scope) error
}

// NotFoundError is returned when a hero resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
