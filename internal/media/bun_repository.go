package media

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

// BunAssetRepository implements AssetRepository with optional caching.
type BunAssetRepository struct {
	repo repository.Repository[*Asset]
}

// NewBunAssetRepository creates an asset repository without caching.
func NewBunAssetRepository(db *bun.DB) *BunAssetRepository {
	return NewBunAssetRepositoryWithCache(db, nil, nil)
}

// NewBunAssetRepositoryWithCache creates an asset repository with caching.
func NewBunAssetRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunAssetRepository {
	base := NewAssetRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunAssetRepository{repo: base}
}

func (r *BunAssetRepository) Create(ctx context.Context, asset *Asset) (*Asset, error) {
	return r.repo.Create(ctx, asset)
}

func (r *BunAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunAssetRepository) GetByObjectKey(ctx context.Context, objectKey string) (*Asset, error) {
	record, err := r.repo.GetByIdentifier(ctx, objectKey)
	if err != nil {
		return nil, mapRepositoryError(err, objectKey)
	}
	return record, nil
}

func (r *BunAssetRepository) List(ctx context.Context) ([]*Asset, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	return records, err
}

func (r *BunAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Asset{ID: id})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "asset", Key: key}
	}
	return fmt.Errorf("asset repository error: %w", err)
}
