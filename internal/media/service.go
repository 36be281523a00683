package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamzeh-dev/binaa-cms/internal/logging"
	"github.com/hamzeh-dev/binaa-cms/pkg/interfaces"
)

// Service manages uploaded assets. Uploads are atomic from the caller's
// view: either the object and its metadata row both exist afterwards, or
// neither does.
type Service interface {
	Upload(ctx context.Context, input UploadInput) (*Asset, error)
	Get(ctx context.Context, id uuid.UUID) (*Asset, error)
	List(ctx context.Context) ([]*Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UploadInput carries one file to store.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

var (
	ErrFileNameRequired    = errors.New("media: file name required")
	ErrContentTypeRequired = errors.New("media: content type required")
	ErrBodyRequired        = errors.New("media: file body required")
	ErrStorageRequired     = errors.New("media: object storage not configured")
)

// ServiceOption configures media service behaviour.
type ServiceOption func(*service)

// WithClock overrides the time source used by the service.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the ID generator.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithPathPrefix stores objects under a leading key segment.
func WithPathPrefix(prefix string) ServiceOption {
	return func(s *service) {
		s.prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	assets  AssetRepository
	storage interfaces.ObjectStorage
	prefix  string
	now     func() time.Time
	id      func() uuid.UUID
	logger  interfaces.Logger
}

// NewService constructs a media service instance.
func NewService(assets AssetRepository, storage interfaces.ObjectStorage, opts ...ServiceOption) Service {
	s := &service{
		assets:  assets,
		storage: storage,
		now:     time.Now,
		id:      uuid.New,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*Asset, error) {
	if s.storage == nil {
		return nil, ErrStorageRequired
	}
	name := strings.TrimSpace(input.FileName)
	if name == "" {
		return nil, ErrFileNameRequired
	}
	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		return nil, ErrContentTypeRequired
	}
	if input.Body == nil {
		return nil, ErrBodyRequired
	}

	id := s.id()
	key := s.objectKey(id, name)

	url, err := s.storage.Put(ctx, key, contentType, input.Body)
	if err != nil {
		return nil, fmt.Errorf("media upload: %w", err)
	}

	now := s.now()
	asset, err := s.assets.Create(ctx, &Asset{
		ID:           id,
		ObjectKey:    key,
		URL:          url,
		OriginalName: name,
		ContentType:  contentType,
		Size:         input.Size,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// The object is orphaned without its row; roll it back so the URL
		// never leaks. Cleanup failure only gets logged, the caller
		// already has an error to handle.
		if deleteErr := s.storage.Delete(ctx, key); deleteErr != nil {
			s.logger.Error("orphaned object cleanup failed", "object_key", key, "error", deleteErr)
		}
		return nil, fmt.Errorf("media upload: %w", err)
	}
	return asset, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Asset, error) {
	return s.assets.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Asset, error) {
	return s.assets.List(ctx)
}

// Delete removes the metadata row first, then the object. A missing object
// is not an error; a failed object delete is logged and reported so the
// caller can retry cleanup.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assets.Delete(ctx, id); err != nil {
		return err
	}
	if s.storage == nil {
		return nil
	}
	if err := s.storage.Delete(ctx, asset.ObjectKey); err != nil {
		s.logger.Error("object delete failed", "object_key", asset.ObjectKey, "error", err)
		return fmt.Errorf("media delete: %w", err)
	}
	return nil
}

// objectKey derives the stored key: an unguessable uuid plus the original
// extension, under the configured prefix.
func (s *service) objectKey(id uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	key := id.String() + ext
	if s.prefix != "" {
		return s.prefix + "/" + key
	}
	return key
}
