package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hamzeh-dev/binaa-cms/internal/hero"
	"github.com/hamzeh-dev/binaa-cms/internal/logging"
	"github.com/hamzeh-dev/binaa-cms/pkg/interfaces"
)

// Lookup resolves hero slide references against the catalog. It satisfies
// the resolver's ContentSource contract: one grouped query per kind, missing
// or inactive rows omitted from the result instead of erroring.
type Lookup struct {
	articles ArticleRepository
	products ProductRepository
	projects ProjectRepository
	services ServiceLineRepository
	logger   interfaces.Logger
}

// LookupOption configures a Lookup.
type LookupOption func(*Lookup)

// LookupWithLogger attaches a logger.
func LookupWithLogger(logger interfaces.Logger) LookupOption {
	return func(l *Lookup) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLookup builds a catalog-backed content source.
func NewLookup(
	articles ArticleRepository,
	products ProductRepository,
	projects ProjectRepository,
	services ServiceLineRepository,
	opts ...LookupOption,
) *Lookup {
	l := &Lookup{
		articles: articles,
		products: products,
		projects: projects,
		services: services,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lookup) ResolveReferences(ctx context.Context, kind hero.SlideType, ids []uuid.UUID) (map[uuid.UUID]*hero.Reference, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*hero.Reference{}, nil
	}

	switch kind {
	case hero.SlideTypeArticle:
		return l.resolveArticles(ctx, ids)
	case hero.SlideTypeProduct:
		return l.resolveProducts(ctx, ids)
	case hero.SlideTypeProject:
		return l.resolveProjects(ctx, ids)
	case hero.SlideTypeMainService, hero.SlideTypeImportService, hero.SlideTypeContractingService:
		return l.resolveServiceLines(ctx, kind, ids)
	default:
		return nil, fmt.Errorf("catalog: no content source for slide kind %q", kind)
	}
}

func (l *Lookup) resolveArticles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*hero.Reference, error) {
	records, err := l.articles.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*hero.Reference, len(records))
	for _, article := range records {
		if !article.IsActive {
			continue
		}
		out[article.ID] = &hero.Reference{
			Kind:          hero.SlideTypeArticle,
			ID:            article.ID,
			TitleEn:       article.TitleEn,
			TitleAr:       article.TitleAr,
			SlugEn:        article.SlugEn,
			SlugAr:        article.SlugAr,
			DescriptionEn: clonePtr(article.DescriptionEn),
			DescriptionAr: clonePtr(article.DescriptionAr),
			ImageURL:      clonePtr(article.ImageURL),
			CategoryEn:    clonePtr(article.CategoryEn),
			CategoryAr:    clonePtr(article.CategoryAr),
			PublishedAt:   clonePtr(article.PublishedAt),
		}
	}
	return out, nil
}

func (l *Lookup) resolveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*hero.Reference, error) {
	records, err := l.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*hero.Reference, len(records))
	for _, product := range records {
		if !product.IsActive {
			continue
		}
		out[product.ID] = &hero.Reference{
			Kind:          hero.SlideTypeProduct,
			ID:            product.ID,
			TitleEn:       product.TitleEn,
			TitleAr:       product.TitleAr,
			SlugEn:        product.SlugEn,
			SlugAr:        product.SlugAr,
			DescriptionEn: clonePtr(product.DescriptionEn),
			DescriptionAr: clonePtr(product.DescriptionAr),
			ImageURL:      clonePtr(product.ImageURL),
			CategoryEn:    clonePtr(product.CategoryEn),
			CategoryAr:    clonePtr(product.CategoryAr),
		}
	}
	return out, nil
}

func (l *Lookup) resolveProjects(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*hero.Reference, error) {
	records, err := l.projects.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*hero.Reference, len(records))
	for _, project := range records {
		if !project.IsActive {
			continue
		}
		out[project.ID] = &hero.Reference{
			Kind:          hero.SlideTypeProject,
			ID:            project.ID,
			TitleEn:       project.TitleEn,
			TitleAr:       project.TitleAr,
			SlugEn:        project.SlugEn,
			SlugAr:        project.SlugAr,
			DescriptionEn: clonePtr(project.DescriptionEn),
			DescriptionAr: clonePtr(project.DescriptionAr),
			ImageURL:      clonePtr(project.ImageURL),
			LocationEn:    clonePtr(project.LocationEn),
			LocationAr:    clonePtr(project.LocationAr),
			Year:          clonePtr(project.Year),
			TypeNameEn:    clonePtr(project.TypeEn),
			TypeNameAr:    clonePtr(project.TypeAr),
		}
	}
	return out, nil
}

// resolveServiceLines narrows the shared table to the family matching the
// slide kind, so a slide tagged import_service cannot surface a contracting
// row even if the id matches.
func (l *Lookup) resolveServiceLines(ctx context.Context, kind hero.SlideType, ids []uuid.UUID) (map[uuid.UUID]*hero.Reference, error) {
	line, err := lineForKind(kind)
	if err != nil {
		return nil, err
	}
	records, err := l.services.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*hero.Reference, len(records))
	for _, svc := range records {
		if !svc.IsActive {
			continue
		}
		if svc.Line != line {
			l.logger.Warn("service line kind mismatch", "id", svc.ID.String(), "want", string(line), "got", string(svc.Line))
			continue
		}
		out[svc.ID] = &hero.Reference{
			Kind:          kind,
			ID:            svc.ID,
			TitleEn:       svc.TitleEn,
			TitleAr:       svc.TitleAr,
			SlugEn:        svc.SlugEn,
			SlugAr:        svc.SlugAr,
			DescriptionEn: clonePtr(svc.DescriptionEn),
			DescriptionAr: clonePtr(svc.DescriptionAr),
			ImageURL:      clonePtr(svc.ImageURL),
		}
	}
	return out, nil
}

func lineForKind(kind hero.SlideType) (Line, error) {
	switch kind {
	case hero.SlideTypeMainService:
		return LineMain, nil
	case hero.SlideTypeImportService:
		return LineImport, nil
	case hero.SlideTypeContractingService:
		return LineContracting, nil
	default:
		return "", fmt.Errorf("catalog: slide kind %q is not a service line", kind)
	}
}
