package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Repository is the persistence surface shared by the catalog entities.
// List results come back ordered by English title; GetByIDs issues a single
// grouped query and silently omits ids with no matching row.
type Repository[T record] interface {
	Create(ctx context.Context, rec T) (T, error)
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error)
	GetBySlug(ctx context.Context, slug string) (T, error)
	List(ctx context.Context, activeOnly bool) ([]T, error)
	Update(ctx context.Context, rec T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ArticleRepository persists articles.
type ArticleRepository interface {
	Repository[*Article]
}

// ProductRepository persists products.
type ProductRepository interface {
	Repository[*Product]
}

// ProjectRepository persists projects.
type ProjectRepository interface {
	Repository[*Project]
}

// ServiceLineRepository persists service lines and adds line filtering on
// top of the shared surface.
type ServiceLineRepository interface {
	Repository[*ServiceLine]
	ListByLine(ctx context.Context, line Line, activeOnly bool) ([]*ServiceLine, error)
}

// NotFoundError is returned when a catalog resource cannot be located.
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
