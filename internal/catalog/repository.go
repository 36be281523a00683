package catalog

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewArticleRepository creates a repository for articles.
func NewArticleRepository(db *bun.DB) repository.Repository[*Article] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Article]{
		NewRecord:          func() *Article { return &Article{} },
		GetID:              func(article *Article) uuid.UUID { return article.ID },
		SetID:              func(article *Article, id uuid.UUID) { article.ID = id },
		GetIdentifier:      func() string { return "slug_en" },
		GetIdentifierValue: func(article *Article) string { return article.SlugEn },
	})
}

// NewProductRepository creates a repository for products.
func NewProductRepository(db *bun.DB) repository.Repository[*Product] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Product]{
		NewRecord:          func() *Product { return &Product{} },
		GetID:              func(product *Product) uuid.UUID { return product.ID },
		SetID:              func(product *Product, id uuid.UUID) { product.ID = id },
		GetIdentifier:      func() string { return "slug_en" },
		GetIdentifierValue: func(product *Product) string { return product.SlugEn },
	})
}

// NewProjectRepository creates a repository for projects.
func NewProjectRepository(db *bun.DB) repository.Repository[*Project] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Project]{
		NewRecord:          func() *Project { return &Project{} },
		GetID:              func(project *Project) uuid.UUID { return project.ID },
		SetID:              func(project *Project, id uuid.UUID) { project.ID = id },
		GetIdentifier:      func() string { return "slug_en" },
		GetIdentifierValue: func(project *Project) string { return project.SlugEn },
	})
}

// NewServiceLineRepository creates a repository for service lines.
func NewServiceLineRepository(db *bun.DB) repository.Repository[*ServiceLine] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ServiceLine]{
		NewRecord:          func() *ServiceLine { return &ServiceLine{} },
		GetID:              func(line *ServiceLine) uuid.UUID { return line.ID },
		SetID:              func(line *ServiceLine, id uuid.UUID) { line.ID = id },
		GetIdentifier:      func() string { return "slug_en" },
		GetIdentifierValue: func(line *ServiceLine) string { return line.SlugEn },
	})
}
