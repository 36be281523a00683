package media

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewAssetRepository creates a repository for media assets.
func NewAssetRepository(db *bun.DB) repository.Repository[*Asset] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Asset]{
		NewRecord:          func() *Asset { return &Asset{} },
		GetID:              func(asset *Asset) uuid.UUID { return asset.ID },
		SetID:              func(asset *Asset, id uuid.UUID) { asset.ID = id },
		GetIdentifier:      func() string { return "object_key" },
		GetIdentifierValue: func(asset *Asset) string { return asset.ObjectKey },
	})
}
