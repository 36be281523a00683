package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/hamzeh-dev/binaa-cms/internal/logging"
	"github.com/hamzeh-dev/binaa-cms/pkg/interfaces"
)

// Service exposes catalog entity management. Every entity shares the
// bilingual title/slug/description shape; the per-entity extras ride on the
// specific inputs.
type Service interface {
	CreateArticle(ctx context.Context, input CreateArticleInput) (*Article, error)
	UpdateArticle(ctx context.Context, input UpdateArticleInput) (*Article, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*Article, error)
	GetArticleBySlug(ctx context.Context, slugValue string) (*Article, error)
	ListArticles(ctx context.Context, activeOnly bool) ([]*Article, error)
	DeleteArticle(ctx context.Context, id uuid.UUID) error
	// RenderArticleBody converts the article's markdown body for the locale
	// into HTML. A missing body renders to the empty string.
	RenderArticleBody(ctx context.Context, id uuid.UUID, locale string) (string, error)

	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	GetProductBySlug(ctx context.Context, slugValue string) (*Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error)
	UpdateProject(ctx context.Context, input UpdateProjectInput) (*Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	GetProjectBySlug(ctx context.Context, slugValue string) (*Project, error)
	ListProjects(ctx context.Context, activeOnly bool) ([]*Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	CreateServiceLine(ctx context.Context, input CreateServiceLineInput) (*ServiceLine, error)
	UpdateServiceLine(ctx context.Context, input UpdateServiceLineInput) (*ServiceLine, error)
	GetServiceLine(ctx context.Context, id uuid.UUID) (*ServiceLine, error)
	GetServiceLineBySlug(ctx context.Context, slugValue string) (*ServiceLine, error)
	ListServiceLines(ctx context.Context, line Line, activeOnly bool) ([]*ServiceLine, error)
	DeleteServiceLine(ctx context.Context, id uuid.UUID) error
}

// CreateArticleInput captures the payload required to create an article.
type CreateArticleInput struct {
	TitleEn       string
	TitleAr       string
	SlugEn        string
	SlugAr        string
	DescriptionEn *string
	DescriptionAr *string
	BodyEn        *string
	BodyAr        *string
	CategoryEn    *string
	CategoryAr    *string
	ImageURL      *string
	PublishedAt   *time.Time
	Active        *bool
}

// UpdateArticleInput defines mutable article fields. Nil pointers leave the
// stored value untouched.
type UpdateArticleInput struct {
	ArticleID     uuid.UUID
	TitleEn       *string
	TitleAr       *string
	SlugEn        *string
	SlugAr        *string
	DescriptionEn *string
	DescriptionAr *string
	BodyEn        *string
	BodyAr        *string
	CategoryEn    *string
	CategoryAr    *string
	ImageURL      *string
	PublishedAt   *time.Time
	Active        *bool
}

// CreateProductInput captures the payload required to create a product.
type CreateProductInput struct {
	TitleEn       string
	TitleAr       string
	SlugEn        string
	SlugAr        string
	DescriptionEn *string
	DescriptionAr *string
	CategoryEn    *string
	CategoryAr    *string
	ImageURL      *string
	Active        *bool
}

// UpdateProductInput defines mutable product fields.
type UpdateProductInput struct {
	ProductID     uuid.UUID
	TitleEn       *string
	TitleAr       *string
	SlugEn        *string
	SlugAr        *string
	DescriptionEn *string
	DescriptionAr *string
	CategoryEn    *string
	CategoryAr    *string
	ImageURL      *string
	Active        *bool
}

// CreateProjectInput captures the payload required to create a project.
type CreateProjectInput struct {
	TitleEn       string
	TitleAr       string
	SlugEn        string
	SlugAr        string
	DescriptionEn *string
	DescriptionAr *string
	LocationEn    *string
	LocationAr    *string
	Year          *int
	TypeEn        *string
	TypeAr        *string
	ImageURL      *string
	Active        *bool
}

// UpdateProjectInput defines mutable project fields.
type UpdateProjectInput struct {
	ProjectID     uuid.UUID
	TitleEn       *string
	TitleAr       *string
	SlugEn        *string
	SlugAr        *string
	DescriptionEn *string
	DescriptionAr *string
	LocationEn    *string
	LocationAr    *string
	Year          *int
	TypeEn        *string
	TypeAr        *string
	ImageURL      *string
	Active        *bool
}

// CreateServiceLineInput captures the payload required to create a service line.
type CreateServiceLineInput struct {
	Line          Line
	TitleEn       string
	TitleAr       string
	SlugEn        string
	SlugAr        string
	DescriptionEn *string
	DescriptionAr *string
	ImageURL      *string
	Active        *bool
}

// UpdateServiceLineInput defines mutable service line fields. The line tag
// is immutable once created.
type UpdateServiceLineInput struct {
	ServiceLineID uuid.UUID
	TitleEn       *string
	TitleAr       *string
	SlugEn        *string
	SlugAr        *string
	DescriptionEn *string
	DescriptionAr *string
	ImageURL      *string
	Active        *bool
}

var (
	ErrTitleRequired = errors.New("catalog: titles are required in both languages")
	ErrSlugRequired  = errors.New("catalog: slugs are required in both languages")
	ErrSlugInvalid   = errors.New("catalog: slug is invalid")
	ErrSlugTaken     = errors.New("catalog: slug already in use")
	ErrIDRequired    = errors.New("catalog: id required")
	ErrLineInvalid   = errors.New("catalog: unknown service line")
	ErrYearInvalid   = errors.New("catalog: project year out of range")
	ErrLocaleUnknown = errors.New("catalog: unsupported locale")
)

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures catalog service behaviour.
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
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithMarkdownRenderer overrides the renderer used for article bodies.
func WithMarkdownRenderer(renderer *MarkdownRenderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.markdown = renderer
		}
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
	articles ArticleRepository
	products ProductRepository
	projects ProjectRepository
	services ServiceLineRepository
	markdown *MarkdownRenderer
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
}

// NewService constructs a catalog service instance.
func NewService(
	articles ArticleRepository,
	products ProductRepository,
	projects ProjectRepository,
	services ServiceLineRepository,
	opts ...ServiceOption,
) Service {
	s := &service{
		articles: articles,
		products: products,
		projects: projects,
		services: services,
		markdown: NewMarkdownRenderer(),
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) CreateArticle(ctx context.Context, input CreateArticleInput) (*Article, error) {
	titleEn, titleAr, err := requireTitles(input.TitleEn, input.TitleAr)
	if err != nil {
		return nil, err
	}
	slugEn, slugAr, err := normalizeSlugPair[*Article](ctx, s.articles, input.SlugEn, input.SlugAr, uuid.Nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	article := &Article{
		ID:            s.id(),
		TitleEn:       titleEn,
		TitleAr:       titleAr,
		SlugEn:        slugEn,
		SlugAr:        slugAr,
		DescriptionEn: clonePtr(input.DescriptionEn),
		DescriptionAr: clonePtr(input.DescriptionAr),
		BodyEn:        clonePtr(input.BodyEn),
		BodyAr:        clonePtr(input.BodyAr),
		CategoryEn:    clonePtr(input.CategoryEn),
		CategoryAr:    clonePtr(input.CategoryAr),
		ImageURL:      clonePtr(input.ImageURL),
		PublishedAt:   clonePtr(input.PublishedAt),
		IsActive:      activeOrDefault(input.Active),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.articles.Create(ctx, article)
}

func (s *service) UpdateArticle(ctx context.Context, input UpdateArticleInput) (*Article, error) {
	if input.ArticleID == uuid.Nil {
		return nil, ErrIDRequired
	}
	article, err := s.articles.GetByID(ctx, input.ArticleID)
	if err != nil {
		return nil, err
	}

	if err := applyTitleUpdates(&article.TitleEn, &article.TitleAr, input.TitleEn, input.TitleAr); err != nil {
		return nil, err
	}
	if err := applySlugUpdates[*Article](ctx, s.articles, &article.SlugEn, &article.SlugAr, input.SlugEn, input.SlugAr, article.ID); err != nil {
		return nil, err
	}
	applyPtr(&article.DescriptionEn, input.DescriptionEn)
	applyPtr(&article.DescriptionAr, input.DescriptionAr)
	applyPtr(&article.BodyEn, input.BodyEn)
	applyPtr(&article.BodyAr, input.BodyAr)
	applyPtr(&article.CategoryEn, input.CategoryEn)
	applyPtr(&article.CategoryAr, input.CategoryAr)
	applyPtr(&article.ImageURL, input.ImageURL)
	applyPtr(&article.PublishedAt, input.PublishedAt)
	if input.Active != nil {
		article.IsActive = *input.Active
	}
	article.UpdatedAt = s.now()

	return s.articles.Update(ctx, article)
}

func (s *service) GetArticle(ctx context.Context, id uuid.UUID) (*Article, error) {
	return s.articles.GetByID(ctx, id)
}

func (s *service) GetArticleBySlug(ctx context.Context, slugValue string) (*Article, error) {
	return s.articles.GetBySlug(ctx, strings.TrimSpace(slugValue))
}

func (s *service) ListArticles(ctx context.Context, activeOnly bool) ([]*Article, error) {
	return s.articles.List(ctx, activeOnly)
}

func (s *service) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.articles.Delete(ctx, id)
}

func (s *service) RenderArticleBody(ctx context.Context, id uuid.UUID, locale string) (string, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	var body *string
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "en":
		body = article.BodyEn
	case "ar":
		body = article.BodyAr
	default:
		return "", ErrLocaleUnknown
	}
	if body == nil || strings.TrimSpace(*body) == "" {
		return "", nil
	}
	return s.markdown.Render([]byte(*body))
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	titleEn, titleAr, err := requireTitles(input.TitleEn, input.TitleAr)
	if err != nil {
		return nil, err
	}
	slugEn, slugAr, err := normalizeSlugPair[*Product](ctx, s.products, input.SlugEn, input.SlugAr, uuid.Nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	product := &Product{
		ID:            s.id(),
		TitleEn:       titleEn,
		TitleAr:       titleAr,
		SlugEn:        slugEn,
		SlugAr:        slugAr,
		DescriptionEn: clonePtr(input.DescriptionEn),
		DescriptionAr: clonePtr(input.DescriptionAr),
		CategoryEn:    clonePtr(input.CategoryEn),
		CategoryAr:    clonePtr(input.CategoryAr),
		ImageURL:      clonePtr(input.ImageURL),
		IsActive:      activeOrDefault(input.Active),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.products.Create(ctx, product)
}

func (s *service) UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error) {
	if input.ProductID == uuid.Nil {
		return nil, ErrIDRequired
	}
	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if err := applyTitleUpdates(&product.TitleEn, &product.TitleAr, input.TitleEn, input.TitleAr); err != nil {
		return nil, err
	}
	if err := applySlugUpdates[*Product](ctx, s.products, &product.SlugEn, &product.SlugAr, input.SlugEn, input.SlugAr, product.ID); err != nil {
		return nil, err
	}
	applyPtr(&product.DescriptionEn, input.DescriptionEn)
	applyPtr(&product.DescriptionAr, input.DescriptionAr)
	applyPtr(&product.CategoryEn, input.CategoryEn)
	applyPtr(&product.CategoryAr, input.CategoryAr)
	applyPtr(&product.ImageURL, input.ImageURL)
	if input.Active != nil {
		product.IsActive = *input.Active
	}
	product.UpdatedAt = s.now()

	return s.products.Update(ctx, product)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *service) GetProductBySlug(ctx context.Context, slugValue string) (*Product, error) {
	return s.products.GetBySlug(ctx, strings.TrimSpace(slugValue))
}

func (s *service) ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error) {
	return s.products.List(ctx, activeOnly)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.products.Delete(ctx, id)
}

func (s *service) CreateProject(ctx context.Context, input CreateProjectInput) (*Project, error) {
	titleEn, titleAr, err := requireTitles(input.TitleEn, input.TitleAr)
	if err != nil {
		return nil, err
	}
	slugEn, slugAr, err := normalizeSlugPair[*Project](ctx, s.projects, input.SlugEn, input.SlugAr, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	now := s.now()
	project := &Project{
		ID:            s.id(),
		TitleEn:       titleEn,
		TitleAr:       titleAr,
		SlugEn:        slugEn,
		SlugAr:        slugAr,
		DescriptionEn: clonePtr(input.DescriptionEn),
		DescriptionAr: clonePtr(input.DescriptionAr),
		LocationEn:    clonePtr(input.LocationEn),
		LocationAr:    clonePtr(input.LocationAr),
		Year:          clonePtr(input.Year),
		TypeEn:        clonePtr(input.TypeEn),
		TypeAr:        clonePtr(input.TypeAr),
		ImageURL:      clonePtr(input.ImageURL),
		IsActive:      activeOrDefault(input.Active),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.projects.Create(ctx, project)
}

func (s *service) UpdateProject(ctx context.Context, input UpdateProjectInput) (*Project, error) {
	if input.ProjectID == uuid.Nil {
		return nil, ErrIDRequired
	}
	project, err := s.projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := applyTitleUpdates(&project.TitleEn, &project.TitleAr, input.TitleEn, input.TitleAr); err != nil {
		return nil, err
	}
	if err := applySlugUpdates[*Project](ctx, s.projects, &project.SlugEn, &project.SlugAr, input.SlugEn, input.SlugAr, project.ID); err != nil {
		return nil, err
	}
	if input.Year != nil {
		if err := validateYear(input.Year); err != nil {
			return nil, err
		}
		project.Year = clonePtr(input.Year)
	}
	applyPtr(&project.DescriptionEn, input.DescriptionEn)
	applyPtr(&project.DescriptionAr, input.DescriptionAr)
	applyPtr(&project.LocationEn, input.LocationEn)
	applyPtr(&project.LocationAr, input.LocationAr)
	applyPtr(&project.TypeEn, input.TypeEn)
	applyPtr(&project.TypeAr, input.TypeAr)
	applyPtr(&project.ImageURL, input.ImageURL)
	if input.Active != nil {
		project.IsActive = *input.Active
	}
	project.UpdatedAt = s.now()

	return s.projects.Update(ctx, project)
}

func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *service) GetProjectBySlug(ctx context.Context, slugValue string) (*Project, error) {
	return s.projects.GetBySlug(ctx, strings.TrimSpace(slugValue))
}

func (s *service) ListProjects(ctx context.Context, activeOnly bool) ([]*Project, error) {
	return s.projects.List(ctx, activeOnly)
}

func (s *service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.projects.Delete(ctx, id)
}

func (s *service) CreateServiceLine(ctx context.Context, input CreateServiceLineInput) (*ServiceLine, error) {
	if !input.Line.IsValid() {
		return nil, ErrLineInvalid
	}
	titleEn, titleAr, err := requireTitles(input.TitleEn, input.TitleAr)
	if err != nil {
		return nil, err
	}
	slugEn, slugAr, err := normalizeSlugPair[*ServiceLine](ctx, s.services, input.SlugEn, input.SlugAr, uuid.Nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	line := &ServiceLine{
		ID:            s.id(),
		Line:          input.Line,
		TitleEn:       titleEn,
		TitleAr:       titleAr,
		SlugEn:        slugEn,
		SlugAr:        slugAr,
		DescriptionEn: clonePtr(input.DescriptionEn),
		DescriptionAr: clonePtr(input.DescriptionAr),
		ImageURL:      clonePtr(input.ImageURL),
		IsActive:      activeOrDefault(input.Active),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.services.Create(ctx, line)
}

func (s *service) UpdateServiceLine(ctx context.Context, input UpdateServiceLineInput) (*ServiceLine, error) {
	if input.ServiceLineID == uuid.Nil {
		return nil, ErrIDRequired
	}
	line, err := s.services.GetByID(ctx, input.ServiceLineID)
	if err != nil {
		return nil, err
	}

	if err := applyTitleUpdates(&line.TitleEn, &line.TitleAr, input.TitleEn, input.TitleAr); err != nil {
		return nil, err
	}
	if err := applySlugUpdates[*ServiceLine](ctx, s.services, &line.SlugEn, &line.SlugAr, input.SlugEn, input.SlugAr, line.ID); err != nil {
		return nil, err
	}
	applyPtr(&line.DescriptionEn, input.DescriptionEn)
	applyPtr(&line.DescriptionAr, input.DescriptionAr)
	applyPtr(&line.ImageURL, input.ImageURL)
	if input.Active != nil {
		line.IsActive = *input.Active
	}
	line.UpdatedAt = s.now()

	return s.services.Update(ctx, line)
}

func (s *service) GetServiceLine(ctx context.Context, id uuid.UUID) (*ServiceLine, error) {
	return s.services.GetByID(ctx, id)
}

func (s *service) GetServiceLineBySlug(ctx context.Context, slugValue string) (*ServiceLine, error) {
	return s.services.GetBySlug(ctx, strings.TrimSpace(slugValue))
}

func (s *service) ListServiceLines(ctx context.Context, line Line, activeOnly bool) ([]*ServiceLine, error) {
	if line == "" {
		return s.services.List(ctx, activeOnly)
	}
	if !line.IsValid() {
		return nil, ErrLineInvalid
	}
	return s.services.ListByLine(ctx, line, activeOnly)
}

func (s *service) DeleteServiceLine(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}
	return s.services.Delete(ctx, id)
}

// normalizeSlugPair normalizes both language slugs and checks neither is
// claimed by another row of the same entity.
func normalizeSlugPair[T record](ctx context.Context, repo Repository[T], slugEn, slugAr string, selfID uuid.UUID) (string, string, error) {
	en, err := normalizeSlug(slugEn)
	if err != nil {
		return "", "", err
	}
	ar, err := normalizeSlug(slugAr)
	if err != nil {
		return "", "", err
	}
	for _, candidate := range []string{en, ar} {
		if err := ensureSlugFree[T](ctx, repo, candidate, selfID); err != nil {
			return "", "", err
		}
	}
	return en, ar, nil
}

func ensureSlugFree[T record](ctx context.Context, repo Repository[T], candidate string, selfID uuid.UUID) error {
	existing, err := repo.GetBySlug(ctx, candidate)
	if err == nil && existing.recordID() != selfID {
		return ErrSlugTaken
	}
	if err != nil {
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			return err
		}
	}
	return nil
}

func applySlugUpdates[T record](ctx context.Context, repo Repository[T], slugEn, slugAr *string, newEn, newAr *string, selfID uuid.UUID) error {
	if newEn != nil {
		normalized, err := normalizeSlug(*newEn)
		if err != nil {
			return err
		}
		if err := ensureSlugFree[T](ctx, repo, normalized, selfID); err != nil {
			return err
		}
		*slugEn = normalized
	}
	if newAr != nil {
		normalized, err := normalizeSlug(*newAr)
		if err != nil {
			return err
		}
		if err := ensureSlugFree[T](ctx, repo, normalized, selfID); err != nil {
			return err
		}
		*slugAr = normalized
	}
	return nil
}

func applyTitleUpdates(titleEn, titleAr *string, newEn, newAr *string) error {
	if newEn != nil {
		trimmed := strings.TrimSpace(*newEn)
		if trimmed == "" {
			return ErrTitleRequired
		}
		*titleEn = trimmed
	}
	if newAr != nil {
		trimmed := strings.TrimSpace(*newAr)
		if trimmed == "" {
			return ErrTitleRequired
		}
		*titleAr = trimmed
	}
	return nil
}

func requireTitles(titleEn, titleAr string) (string, string, error) {
	en := strings.TrimSpace(titleEn)
	ar := strings.TrimSpace(titleAr)
	if en == "" || ar == "" {
		return "", "", ErrTitleRequired
	}
	return en, ar, nil
}

func normalizeSlug(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}

// Projects are tagged with a completion year; anything outside a sane
// construction-industry window is a data-entry mistake.
func validateYear(year *int) error {
	if year == nil {
		return nil
	}
	if *year < 1900 || *year > 2100 {
		return ErrYearInvalid
	}
	return nil
}

func activeOrDefault(active *bool) bool {
	if active == nil {
		return true
	}
	return *active
}

func applyPtr[V string | int | time.Time](dst **V, src *V) {
	if src != nil {
		*dst = clonePtr(src)
	}
}
