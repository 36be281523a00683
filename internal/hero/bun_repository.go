package hero

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

// BunSectionRepository implements SectionRepository with optional caching.
type BunSectionRepository struct {
	repo repository.Repository[*Section]
}

// NewBunSectionRepository creates a section repository without caching.
func NewBunSectionRepository(db *bun.DB) *BunSectionRepository {
	return NewBunSectionRepositoryWithCache(db, nil, nil)
}

// NewBunSectionRepositoryWithCache creates a section repository with caching.
func NewBunSectionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSectionRepository {
	base := NewSectionRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunSectionRepository{repo: base}
}

func (r *BunSectionRepository) Create(ctx context.Context, section *Section) (*Section, error) {
	return r.repo.Create(ctx, section)
}

func (r *BunSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "hero_section", id.String())
	}
	return record, nil
}

func (r *BunSectionRepository) GetBySlug(ctx context.Context, slug string) (*Section, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug_en = ? OR ?TableAlias.slug_ar = ?", slug, slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "hero_section", Key: slug}
	}
	return records[0], nil
}

func (r *BunSectionRepository) List(ctx context.Context, activeOnly bool) ([]*Section, error) {
	ordered := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.name ASC")
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

func (r *BunSectionRepository) Update(ctx context.Context, section *Section) (*Section, error) {
	updated, err := r.repo.Update(ctx, section,
		repository.UpdateByID(section.ID.String()),
		repository.UpdateColumns(
			"name",
			"slug_en",
			"slug_ar",
			"is_active",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "hero_section", section.ID.String())
	}
	return updated, nil
}

func (r *BunSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Section{ID: id})
}

// BunSlideRepository implements SlideRepository with optional caching.
type BunSlideRepository struct {
	repo repository.Repository[*Slide]
	db   *bun.DB
}

// NewBunSlideRepository creates a slide repository without caching.
func NewBunSlideRepository(db *bun.DB) *BunSlideRepository {
	return NewBunSlideRepositoryWithCache(db, nil, nil)
}

// NewBunSlideRepositoryWithCache creates a slide repository with caching.
func NewBunSlideRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSlideRepository {
	base := NewSlideRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunSlideRepository{repo: base, db: db}
}

func (r *BunSlideRepository) Create(ctx context.Context, slide *Slide) (*Slide, error) {
	return r.repo.Create(ctx, slide)
}

func (r *BunSlideRepository) GetByID(ctx context.Context, id uuid.UUID) (*Slide, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "hero_slide", id.String())
	}
	return record, nil
}

func (r *BunSlideRepository) ListByScope(ctx context.Context, scope Scope, activeOnly bool) ([]*Slide, error) {
	column, err := scopeColumn(scope.Type)
	if err != nil {
		return nil, err
	}

	scoped := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where(fmt.Sprintf("?TableAlias.%s = ?", column), scope.ID)
	})
	ordered := repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.sort_order ASC, ?TableAlias.created_at ASC, ?TableAlias.id ASC")
	})
	if activeOnly {
		records, _, err := r.repo.List(ctx, scoped, ordered,
			repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Where("?TableAlias.is_active = ?", true)
			}),
		)
		return records, err
	}

	records, _, err := r.repo.List(ctx, scoped, ordered)
	return records, err
}

func (r *BunSlideRepository) Update(ctx context.Context, slide *Slide) (*Slide, error) {
	updated, err := r.repo.Update(ctx, slide,
		repository.UpdateByID(slide.ID.String()),
		repository.UpdateColumns(
			"slide_type",
			"reference_id",
			"title_en",
			"title_ar",
			"subtitle_en",
			"subtitle_ar",
			"cta_enabled",
			"cta_text_en",
			"cta_text_ar",
			"cta_href",
			"background_image_url",
			"background_color",
			"overlay_opacity",
			"is_active",
			"sort_order",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "hero_slide", slide.ID.String())
	}
	return updated, nil
}

func (r *BunSlideRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Slide{ID: id})
}

func (r *BunSlideRepository) DeleteByScope(ctx context.Context, scope Scope) error {
	if r.db == nil {
		return fmt.Errorf("hero slide repository: database not configured")
	}
	column, err := scopeColumn(scope.Type)
	if err != nil {
		return err
	}
	_, err = r.db.NewDelete().
		Model((*Slide)(nil)).
		Where(fmt.Sprintf("?TableAlias.%s = ?", column), scope.ID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete slides by scope: %w", err)
	}
	return nil
}

func scopeColumn(scopeType ScopeType) (string, error) {
	switch scopeType {
	case ScopeSection:
		return "section_id", nil
	case ScopeImportService:
		return "import_service_id", nil
	case ScopeContractingService:
		return "contracting_service_id", nil
	default:
		return "", fmt.Errorf("hero: unknown slide scope %q", scopeType)
	}
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
