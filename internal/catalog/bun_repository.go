package catalog

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var sharedUpdateColumns = []string{
	"title_en",
	"title_ar",
	"slug_en",
	"slug_ar",
	"description_en",
	"description_ar",
	"image_url",
	"is_active",
	"updated_at",
}

var (
	articleUpdateColumns     = append([]string{"body_en", "body_ar", "category_en", "category_ar", "published_at"}, sharedUpdateColumns...)
	productUpdateColumns     = append([]string{"category_en", "category_ar"}, sharedUpdateColumns...)
	projectUpdateColumns     = append([]string{"location_en", "location_ar", "year", "type_en", "type_ar"}, sharedUpdateColumns...)
	serviceLineUpdateColumns = append([]string{"line"}, sharedUpdateColumns...)
)

// bunRepository adapts a go-repository-bun repository to the catalog
// Repository surface. The four entities share it; only the handler set, the
// resource label, and the update column list differ.
type bunRepository[T record] struct {
	repo          repository.Repository[T]
	resource      string
	updateColumns []string
}

// NewBunArticleRepository creates an article repository without caching.
func NewBunArticleRepository(db *bun.DB) ArticleRepository {
	return NewBunArticleRepositoryWithCache(db, nil, nil)
}

// NewBunArticleRepositoryWithCache creates an article repository with caching.
func NewBunArticleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) ArticleRepository {
	base := NewArticleRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &bunRepository[*Article]{repo: base, resource: "article", updateColumns: articleUpdateColumns}
}

// NewBunProductRepository creates a product repository without caching.
func NewBunProductRepository(db *bun.DB) ProductRepository {
	return NewBunProductRepositoryWithCache(db, nil, nil)
}

// NewBunProductRepositoryWithCache creates a product repository with caching.
func NewBunProductRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) ProductRepository {
	base := NewProductRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &bunRepository[*Product]{repo: base, resource: "product", updateColumns: productUpdateColumns}
}

// NewBunProjectRepository creates a project repository without caching.
func NewBunProjectRepository(db *bun.DB) ProjectRepository {
	return NewBunProjectRepositoryWithCache(db, nil, nil)
}

// NewBunProjectRepositoryWithCache creates a project repository with caching.
func NewBunProjectRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) ProjectRepository {
	base := NewProjectRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &bunRepository[*Project]{repo: base, resource: "project", updateColumns: projectUpdateColumns}
}

// NewBunServiceLineRepository creates a service line repository without caching.
func NewBunServiceLineRepository(db *bun.DB) ServiceLineRepository {
	return NewBunServiceLineRepositoryWithCache(db, nil, nil)
}

// NewBunServiceLineRepositoryWithCache creates a service line repository with caching.
func NewBunServiceLineRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) ServiceLineRepository {
	base := NewServiceLineRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &bunServiceLineRepository{
		bunRepository[*ServiceLine]{repo: base, resource: "service_line", updateColumns: serviceLineUpdateColumns},
	}
}

func (r *bunRepository[T]) Create(ctx context.Context, rec T) (T, error) {
	return r.repo.Create(ctx, rec)
}

func (r *bunRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	rec, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		var zero T
		return zero, r.mapError(err, id.String())
	}
	return rec, nil
}

func (r *bunRepository[T]) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id IN (?)", bun.In(ids))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", r.resource, err)
	}
	return records, nil
}

func (r *bunRepository[T]) GetBySlug(ctx context.Context, slug string) (T, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug_en = ? OR ?TableAlias.slug_ar = ?", slug, slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s repository error: %w", r.resource, err)
	}
	if len(records) == 0 {
		var zero T
		return zero, &NotFoundError{Resource: r.resource, Key: slug}
	}
	return records[0], nil
}

func (r *bunRepository[T]) List(ctx context.Context, activeOnly bool) ([]T, error) {
	ordered := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.title_en ASC")
	})
	if activeOnly {
		records, _, err := r.repo.List(ctx, ordered,
			repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("?TableAlias.is_active = ?", true)
			}),
		)
		return records, err
	}
	records, _, err := r.repo.List(ctx, ordered)
	return records, err
}

func (r *bunRepository[T]) Update(ctx context.Context, rec T) (T, error) {
	updated, err := r.repo.Update(ctx, rec,
		repository.UpdateByID(rec.recordID().String()),
		repository.UpdateColumns(r.updateColumns...),
	)
	if err != nil {
		var zero T
		return zero, r.mapError(err, rec.recordID().String())
	}
	return updated, nil
}

func (r *bunRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return r.mapError(err, id.String())
	}
	return r.repo.Delete(ctx, rec)
}

func (r *bunRepository[T]) mapError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: r.resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", r.resource, err)
}

type bunServiceLineRepository struct {
	bunRepository[*ServiceLine]
}

func (r *bunServiceLineRepository) ListByLine(ctx context.Context, line Line, activeOnly bool) ([]*ServiceLine, error) {
	byLine := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.line = ?", line).OrderExpr("?TableAlias.title_en ASC")
	})
	if activeOnly {
		records, _, err := r.repo.List(ctx, byLine,
			repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("?TableAlias.is_active = ?", true)
			}),
		)
		return records, err
	}
	records, _, err := r.repo.List(ctx, byLine)
	return records, err
}
