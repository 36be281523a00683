package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository keeps catalog records in process for tests and tooling.
type memoryRepository[T record] struct {
	mu       sync.RWMutex
	resource string
	clone    func(T) T
	byID     map[uuid.UUID]T
}

func newMemoryRepository[T record](resource string, clone func(T) T) *memoryRepository[T] {
	return &memoryRepository[T]{
		resource: resource,
		clone:    clone,
		byID:     map[uuid.UUID]T{},
	}
}

// NewMemoryArticleRepository creates an in-memory article repository.
func NewMemoryArticleRepository() ArticleRepository {
	return newMemoryRepository("article", cloneArticle)
}

// NewMemoryProductRepository creates an in-memory product repository.
func NewMemoryProductRepository() ProductRepository {
	return newMemoryRepository("product", cloneProduct)
}

// NewMemoryProjectRepository creates an in-memory project repository.
func NewMemoryProjectRepository() ProjectRepository {
	return newMemoryRepository("project", cloneProject)
}

// NewMemoryServiceLineRepository creates an in-memory service line repository.
func NewMemoryServiceLineRepository() ServiceLineRepository {
	return &memoryServiceLineRepository{
		memoryRepository: newMemoryRepository("service_line", cloneServiceLine),
	}
}

func (r *memoryRepository[T]) Create(_ context.Context, rec T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.clone(rec)
	r.byID[stored.recordID()] = stored
	return r.clone(stored), nil
}

func (r *memoryRepository[T]) GetByID(_ context.Context, id uuid.UUID) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		var zero T
		return zero, &NotFoundError{Resource: r.resource, Key: id.String()}
	}
	return r.clone(rec), nil
}

func (r *memoryRepository[T]) GetByIDs(_ context.Context, ids []uuid.UUID) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []T
	for _, id := range ids {
		if rec, ok := r.byID[id]; ok {
			out = append(out, r.clone(rec))
		}
	}
	return out, nil
}

func (r *memoryRepository[T]) GetBySlug(_ context.Context, slug string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.byID {
		en, ar := rec.recordSlugs()
		if en == slug || ar == slug {
			return r.clone(rec), nil
		}
	}
	var zero T
	return zero, &NotFoundError{Resource: r.resource, Key: slug}
}

func (r *memoryRepository[T]) List(_ context.Context, activeOnly bool) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(T) bool { return true }, activeOnly), nil
}

func (r *memoryRepository[T]) Update(_ context.Context, rec T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[rec.recordID()]; !ok {
		var zero T
		return zero, &NotFoundError{Resource: r.resource, Key: rec.recordID().String()}
	}
	stored := r.clone(rec)
	r.byID[stored.recordID()] = stored
	return r.clone(stored), nil
}

func (r *memoryRepository[T]) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return &NotFoundError{Resource: r.resource, Key: id.String()}
	}
	delete(r.byID, id)
	return nil
}

// collect filters and orders matching records by English title. Callers hold
// at least a read lock.
func (r *memoryRepository[T]) collect(match func(T) bool, activeOnly bool) []T {
	var out []T
	for _, rec := range r.byID {
		if activeOnly && !rec.recordActive() {
			continue
		}
		if !match(rec) {
			continue
		}
		out = append(out, r.clone(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].recordTitle() < out[j].recordTitle()
	})
	return out
}

type memoryServiceLineRepository struct {
	*memoryRepository[*ServiceLine]
}

func (r *memoryServiceLineRepository) ListByLine(_ context.Context, line Line, activeOnly bool) ([]*ServiceLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(rec *ServiceLine) bool { return rec.Line == line }, activeOnly), nil
}

func cloneArticle(a *Article) *Article {
	if a == nil {
		return nil
	}
	dup := *a
	dup.DescriptionEn = clonePtr(a.DescriptionEn)
	dup.DescriptionAr = clonePtr(a.DescriptionAr)
	dup.BodyEn = clonePtr(a.BodyEn)
	dup.BodyAr = clonePtr(a.BodyAr)
	dup.CategoryEn = clonePtr(a.CategoryEn)
	dup.CategoryAr = clonePtr(a.CategoryAr)
	dup.ImageURL = clonePtr(a.ImageURL)
	dup.PublishedAt = clonePtr(a.PublishedAt)
	return &dup
}

func cloneProduct(p *Product) *Product {
	if p == nil {
		return nil
	}
	dup := *p
	dup.DescriptionEn = clonePtr(p.DescriptionEn)
	dup.DescriptionAr = clonePtr(p.DescriptionAr)
	dup.CategoryEn = clonePtr(p.CategoryEn)
	dup.CategoryAr = clonePtr(p.CategoryAr)
	dup.ImageURL = clonePtr(p.ImageURL)
	return &dup
}

func cloneProject(p *Project) *Project {
	if p == nil {
		return nil
	}
	dup := *p
	dup.DescriptionEn = clonePtr(p.DescriptionEn)
	dup.DescriptionAr = clonePtr(p.DescriptionAr)
	dup.LocationEn = clonePtr(p.LocationEn)
	dup.LocationAr = clonePtr(p.LocationAr)
	dup.Year = clonePtr(p.Year)
	dup.TypeEn = clonePtr(p.TypeEn)
	dup.TypeAr = clonePtr(p.TypeAr)
	dup.ImageURL = clonePtr(p.ImageURL)
	return &dup
}

func cloneServiceLine(s *ServiceLine) *ServiceLine {
	if s == nil {
		return nil
	}
	dup := *s
	dup.DescriptionEn = clonePtr(s.DescriptionEn)
	dup.DescriptionAr = clonePtr(s.DescriptionAr)
	dup.ImageURL = clonePtr(s.ImageURL)
	return &dup
}

func clonePtr[V string | int | time.Time](v *V) *V {
	if v == nil {
		return nil
	}
	dup := *v
	return &dup
}
