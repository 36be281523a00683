package hero

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewMemorySectionRepository constructs an in-memory hero section repository.
func NewMemorySectionRepository() SectionRepository {
	return &memorySectionRepository{
		byID:   make(map[uuid.UUID]*Section),
		bySlug: make(map[string]uuid.UUID),
	}
}

type memorySectionRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Section
	bySlug map[string]uuid.UUID
}

func (m *memorySectionRepository) Create(_ context.Context, section *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneSection(section)
	m.byID[cloned.ID] = cloned
	if cloned.SlugEn != "" {
		m.bySlug[cloned.SlugEn] = cloned.ID
	}
	if cloned.SlugAr != "" {
		m.bySlug[cloned.SlugAr] = cloned.ID
	}
	return cloneSection(cloned), nil
}

func (m *memorySectionRepository) GetByID(_ context.Context, id uuid.UUID) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "hero_section", Key: id.String()}
	}
	return cloneSection(record), nil
}

func (m *memorySectionRepository) GetBySlug(_ context.Context, slug string) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "hero_section", Key: slug}
	}
	return cloneSection(m.byID[id]), nil
}

func (m *memorySectionRepository) List(_ context.Context, activeOnly bool) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Section, 0, len(m.byID))
	for _, record := range m.byID {
		if activeOnly && !record.IsActive {
			continue
		}
		records = append(records, cloneSection(record))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

func (m *memorySectionRepository) Update(_ context.Context, section *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[section.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "hero_section", Key: section.ID.String()}
	}
	delete(m.bySlug, existing.SlugEn)
	delete(m.bySlug, existing.SlugAr)

	cloned := cloneSection(section)
	m.byID[cloned.ID] = cloned
	if cloned.SlugEn != "" {
		m.bySlug[cloned.SlugEn] = cloned.ID
	}
	if cloned.SlugAr != "" {
		m.bySlug[cloned.SlugAr] = cloned.ID
	}
	return cloneSection(cloned), nil
}

func (m *memorySectionRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "hero_section", Key: id.String()}
	}
	delete(m.bySlug, existing.SlugEn)
	delete(m.bySlug, existing.SlugAr)
	delete(m.byID, id)
	return nil
}

// NewMemorySlideRepository constructs an in-memory hero slide repository.
func NewMemorySlideRepository() SlideRepository {
	return &memorySlideRepository{
		byID: make(map[uuid.UUID]*Slide),
	}
}

type memorySlideRepository struct {
	mu             sync.RWMutex
	byID           map[uuid.UUID]*Slide
	insertionOrder []uuid.UUID
}

func (m *memorySlideRepository) Create(_ context.Context, slide *Slide) (*Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneSlide(slide)
	m.byID[cloned.ID] = cloned
	m.insertionOrder = append(m.insertionOrder, cloned.ID)
	return cloneSlide(cloned), nil
}

func (m *memorySlideRepository) GetByID(_ context.Context, id uuid.UUID) (*Slide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "hero_slide", Key: id.String()}
	}
	return cloneSlide(record), nil
}

func (m *memorySlideRepository) ListByScope(_ context.Context, scope Scope, activeOnly bool) ([]*Slide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Slide, 0)
	for _, id := range m.insertionOrder {
		record, ok := m.byID[id]
		if !ok {
			continue
		}
		recordScope, valid := record.Scope()
		if !valid || recordScope != scope {
			continue
		}
		if activeOnly && !record.IsActive {
			continue
		}
		records = append(records, cloneSlide(record))
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].SortOrder < records[j].SortOrder })
	return records, nil
}

func (m *memorySlideRepository) Update(_ context.Context, slide *Slide) (*Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[slide.ID]; !ok {
		return nil, &NotFoundError{Resource: "hero_slide", Key: slide.ID.String()}
	}
	cloned := cloneSlide(slide)
	m.byID[cloned.ID] = cloned
	return cloneSlide(cloned), nil
}

func (m *memorySlideRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "hero_slide", Key: id.String()}
	}
	delete(m.byID, id)
	m.removeFromOrder(id)
	return nil
}

func (m *memorySlideRepository) DeleteByScope(_ context.Context, scope Scope) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.byID {
		recordScope, valid := record.Scope()
		if valid && recordScope == scope {
			delete(m.byID, id)
			m.removeFromOrder(id)
		}
	}
	return nil
}

func (m *memorySlideRepository) removeFromOrder(id uuid.UUID) {
	for idx, candidate := range m.insertionOrder {
		if candidate == id {
			m.insertionOrder = append(m.insertionOrder[:idx], m.insertionOrder[idx+1:]...)
			return
		}
	}
}

func cloneSection(section *Section) *Section {
	if section == nil {
		return nil
	}
	cloned := *section
	cloned.Slides = nil
	return &cloned
}

func cloneSlide(slide *Slide) *Slide {
	if slide == nil {
		return nil
	}
	cloned := *slide
	cloned.Section = nil
	cloned.ReferenceID = cloneUUID(slide.ReferenceID)
	cloned.SectionID = cloneUUID(slide.SectionID)
	cloned.ImportServiceID = cloneUUID(slide.ImportServiceID)
	cloned.ContractingServiceID = cloneUUID(slide.ContractingServiceID)
	cloned.SubtitleEn = cloneString(slide.SubtitleEn)
	cloned.SubtitleAr = cloneString(slide.SubtitleAr)
	cloned.CTATextEn = cloneString(slide.CTATextEn)
	cloned.CTATextAr = cloneString(slide.CTATextAr)
	cloned.CTAHref = cloneString(slide.CTAHref)
	cloned.BackgroundImageURL = cloneString(slide.BackgroundImageURL)
	cloned.BackgroundColor = cloneString(slide.BackgroundColor)
	return &cloned
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneUUID(value *uuid.UUID) *uuid.UUID {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
