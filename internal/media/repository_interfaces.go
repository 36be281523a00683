package media

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AssetRepository persists asset metadata rows.
type AssetRepository interface {
	Create(ctx context.Context, asset *Asset) (*Asset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	GetByObjectKey(ctx context.Context, objectKey string) (*Asset, error)
	List(ctx context.Context) ([]*Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when an asset cannot be located.
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
