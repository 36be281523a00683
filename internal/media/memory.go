package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryAssetRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Asset
	byKey map[string]uuid.UUID
}

// NewMemoryAssetRepository creates an in-memory asset repository.
func NewMemoryAssetRepository() AssetRepository {
	return &memoryAssetRepository{
		byID:  map[uuid.UUID]*Asset{},
		byKey: map[string]uuid.UUID{},
	}
}

func (r *memoryAssetRepository) Create(_ context.Context, asset *Asset) (*Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byKey[asset.ObjectKey]; exists {
		return nil, fmt.Errorf("asset object key %q already exists", asset.ObjectKey)
	}
	stored := *asset
	r.byID[stored.ID] = &stored
	r.byKey[stored.ObjectKey] = stored.ID
	dup := stored
	return &dup, nil
}

func (r *memoryAssetRepository) GetByID(_ context.Context, id uuid.UUID) (*Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	asset, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "asset", Key: id.String()}
	}
	dup := *asset
	return &dup, nil
}

func (r *memoryAssetRepository) GetByObjectKey(_ context.Context, objectKey string) (*Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byKey[objectKey]
	if !ok {
		return nil, &NotFoundError{Resource: "asset", Key: objectKey}
	}
	dup := *r.byID[id]
	return &dup, nil
}

func (r *memoryAssetRepository) List(_ context.Context) ([]*Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Asset, 0, len(r.byID))
	for _, asset := range r.byID {
		dup := *asset
		out = append(out, &dup)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryAssetRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.byID[id]
	if !ok {
		return &NotFoundError{Resource: "asset", Key: id.String()}
	}
	delete(r.byKey, asset.ObjectKey)
	delete(r.byID, id)
	return nil
}

// MemoryStorage is an in-process ObjectStorage used by tests and local
// development. URLs are synthesized from a base prefix.
type MemoryStorage struct {
	mu      sync.RWMutex
	base    string
	objects map[string][]byte

	// PutErr and DeleteErr, when set, fail the next matching call. Tests
	// use them to exercise the write-path atomicity rules.
	PutErr    error
	DeleteErr error
}

// NewMemoryStorage creates an empty in-process object store.
func NewMemoryStorage(base string) *MemoryStorage {
	if base == "" {
		base = "memory://assets"
	}
	return &MemoryStorage{base: base, objects: map[string][]byte{}}
}

func (s *MemoryStorage) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		err := s.PutErr
		s.PutErr = nil
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return "", err
	}
	s.objects[key] = buf.Bytes()
	return s.base + "/" + key, nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		err := s.DeleteErr
		s.DeleteErr = nil
		return err
	}
	delete(s.objects, key)
	return nil
}

// Has reports whether an object exists under the key.
func (s *MemoryStorage) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}

// Len reports the number of stored objects.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
