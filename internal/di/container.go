package di

import (
	"context"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"

	"github.com/hamzeh-dev/binaa-cms/internal/access"
	"github.com/hamzeh-dev/binaa-cms/internal/catalog"
	"github.com/hamzeh-dev/binaa-cms/internal/hero"
	"github.com/hamzeh-dev/binaa-cms/internal/logging"
	"github.com/hamzeh-dev/binaa-cms/internal/logging/gologger"
	"github.com/hamzeh-dev/binaa-cms/internal/media"
	mediaS3 "github.com/hamzeh-dev/binaa-cms/internal/media/s3"
	"github.com/hamzeh-dev/binaa-cms/internal/runtimeconfig"
	"github.com/hamzeh-dev/binaa-cms/pkg/interfaces"
)

// Container wires module dependencies. Without a bun.DB it runs entirely on
// in-memory repositories, which is what the tests and local tooling use.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	identity       interfaces.IdentityProvider
	objectStorage  interfaces.ObjectStorage

	sectionRepo hero.SectionRepository
	slideRepo   hero.SlideRepository

	articleRepo     catalog.ArticleRepository
	productRepo     catalog.ProductRepository
	projectRepo     catalog.ProjectRepository
	serviceLineRepo catalog.ServiceLineRepository

	accountRepo    access.AccountRepository
	roleRepo       access.RoleRepository
	permissionRepo access.PermissionRepository
	membershipRepo access.MembershipRepository

	assetRepo media.AssetRepository

	routeManager *urlkit.RouteManager
	linkResolver *hero.LinkResolver

	lookup     *catalog.Lookup
	heroSvc    hero.Service
	catalogSvc catalog.Service
	mediaSvc   media.Service
	gate       *access.Gate
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the shared database handle. Repositories switch from the
// in-memory defaults to bun-backed implementations when a handle is present.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the cache service used by cached repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider binds the logging backend.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithIdentityProvider binds the host identity integration used by the
// access gate.
func WithIdentityProvider(provider interfaces.IdentityProvider) Option {
	return func(c *Container) {
		c.identity = provider
	}
}

// WithObjectStorage overrides the object storage backing media uploads.
func WithObjectStorage(storage interfaces.ObjectStorage) Option {
	return func(c *Container) {
		c.objectStorage = storage
	}
}

// WithHeroService overrides the default hero service binding.
func WithHeroService(svc hero.Service) Option {
	return func(c *Container) {
		c.heroSvc = svc
	}
}

// WithCatalogService overrides the default catalog service binding.
func WithCatalogService(svc catalog.Service) Option {
	return func(c *Container) {
		c.catalogSvc = svc
	}
}

// WithMediaService overrides the default media service binding.
func WithMediaService(svc media.Service) Option {
	return func(c *Container) {
		c.mediaSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) *Container {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,

		sectionRepo: hero.NewMemorySectionRepository(),
		slideRepo:   hero.NewMemorySlideRepository(),

		articleRepo:     catalog.NewMemoryArticleRepository(),
		productRepo:     catalog.NewMemoryProductRepository(),
		projectRepo:     catalog.NewMemoryProjectRepository(),
		serviceLineRepo: catalog.NewMemoryServiceLineRepository(),

		accountRepo:    access.NewMemoryAccountRepository(),
		roleRepo:       access.NewMemoryRoleRepository(),
		permissionRepo: access.NewMemoryPermissionRepository(),
		membershipRepo: access.NewMemoryMembershipRepository(),

		assetRepo: media.NewMemoryAssetRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureNavigation()
	c.configureStorage()

	c.lookup = catalog.NewLookup(
		c.articleRepo,
		c.productRepo,
		c.projectRepo,
		c.serviceLineRepo,
		catalog.LookupWithLogger(logging.CatalogLogger(c.loggerProvider)),
	)

	if c.catalogSvc == nil {
		c.catalogSvc = catalog.NewService(
			c.articleRepo,
			c.productRepo,
			c.projectRepo,
			c.serviceLineRepo,
			catalog.WithLogger(logging.CatalogLogger(c.loggerProvider)),
		)
	}

	if c.heroSvc == nil {
		c.heroSvc = hero.NewService(
			c.sectionRepo,
			c.slideRepo,
			hero.WithContentSource(c.lookup),
			hero.WithLogger(logging.HeroLogger(c.loggerProvider)),
		)
	}

	if c.mediaSvc == nil {
		mediaOpts := []media.ServiceOption{
			media.WithLogger(logging.MediaLogger(c.loggerProvider)),
		}
		if prefix := strings.TrimSpace(cfg.Media.PathPrefix); prefix != "" {
			mediaOpts = append(mediaOpts, media.WithPathPrefix(prefix))
		}
		c.mediaSvc = media.NewService(c.assetRepo, c.objectStorage, mediaOpts...)
	}

	c.gate = access.NewGate(
		c.identity,
		c.accountRepo,
		c.membershipRepo,
		access.GateWithLogger(logging.AccessLogger(c.loggerProvider)),
	)

	return c
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}

	logCfg := c.Config.Logging
	format := logCfg.Format
	if strings.EqualFold(strings.TrimSpace(logCfg.Provider), "console") && format == "" {
		format = "console"
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     logCfg.Level,
		Format:    format,
		AddSource: logCfg.AddSource,
		Focus:     logCfg.Focus,
	})
	if err == nil {
		c.loggerProvider = provider
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.sectionRepo = hero.NewBunSectionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.slideRepo = hero.NewBunSlideRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	c.articleRepo = catalog.NewBunArticleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.productRepo = catalog.NewBunProductRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.projectRepo = catalog.NewBunProjectRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.serviceLineRepo = catalog.NewBunServiceLineRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	c.accountRepo = access.NewBunAccountRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.roleRepo = access.NewBunRoleRepository(c.bunDB)
	c.permissionRepo = access.NewBunPermissionRepository(c.bunDB)
	c.membershipRepo = access.NewBunMembershipRepository(c.bunDB)

	c.assetRepo = media.NewBunAssetRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureNavigation() {
	if c.linkResolver != nil {
		return
	}

	routesCfg := c.Config.Routes
	if routesCfg.RouteConfig == nil {
		return
	}

	manager := urlkit.NewRouteManager(routesCfg.RouteConfig)
	c.routeManager = manager

	c.linkResolver = hero.NewLinkResolver(hero.LinkResolverOptions{
		Manager:      manager,
		DefaultGroup: strings.TrimSpace(routesCfg.URLKit.DefaultGroup),
		LocaleGroups: routesCfg.URLKit.LocaleGroups,
		SlugParam:    routesCfg.URLKit.SlugParam,
		LocaleParam:  strings.TrimSpace(routesCfg.URLKit.LocaleParam),
	})
}

func (c *Container) configureStorage() {
	if c.objectStorage != nil {
		return
	}
	if !c.Config.Features.MediaLibrary {
		c.objectStorage = media.NewMemoryStorage("")
		return
	}

	mediaCfg := c.Config.Media
	switch strings.ToLower(strings.TrimSpace(mediaCfg.Provider)) {
	case "", "memory":
		c.objectStorage = media.NewMemoryStorage("")
	case "s3":
		storage, err := mediaS3.New(context.Background(), mediaS3.Config{
			Endpoint:        mediaCfg.Endpoint,
			Region:          mediaCfg.Region,
			Bucket:          mediaCfg.Bucket,
			AccessKeyID:     mediaCfg.AccessKey,
			SecretAccessKey: mediaCfg.SecretKey,
			PublicBaseURL:   mediaCfg.PublicBase,
		})
		if err != nil {
			logging.MediaLogger(c.loggerProvider).Error("object storage unavailable", "provider", "s3", "error", err)
			c.objectStorage = media.NewMemoryStorage("")
			return
		}
		c.objectStorage = storage
	default:
		logging.MediaLogger(c.loggerProvider).Warn("unknown storage provider, using in-memory store", "provider", mediaCfg.Provider)
		c.objectStorage = media.NewMemoryStorage("")
	}
}

// HeroService returns the configured hero service.
func (c *Container) HeroService() hero.Service {
	return c.heroSvc
}

// CatalogService returns the configured catalog service.
func (c *Container) CatalogService() catalog.Service {
	return c.catalogSvc
}

// MediaService returns the configured media service.
func (c *Container) MediaService() media.Service {
	return c.mediaSvc
}

// Gate returns the access gate.
func (c *Container) Gate() *access.Gate {
	return c.gate
}

// ContentSource returns the catalog-backed slide reference lookup.
func (c *Container) ContentSource() hero.ContentSource {
	return c.lookup
}

// LinkResolver returns the go-urlkit backed link resolver, or nil when no
// route configuration was supplied.
func (c *Container) LinkResolver() *hero.LinkResolver {
	return c.linkResolver
}

// LoggerProvider exposes the configured logging backend.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ObjectStorage exposes the configured media object store.
func (c *Container) ObjectStorage() interfaces.ObjectStorage {
	return c.objectStorage
}

// SectionRepository exposes the configured hero section repository.
func (c *Container) SectionRepository() hero.SectionRepository {
	return c.sectionRepo
}

// SlideRepository exposes the configured hero slide repository.
func (c *Container) SlideRepository() hero.SlideRepository {
	return c.slideRepo
}

// ArticleRepository exposes the configured article repository.
func (c *Container) ArticleRepository() catalog.ArticleRepository {
	return c.articleRepo
}

// ProductRepository exposes the configured product repository.
func (c *Container) ProductRepository() catalog.ProductRepository {
	return c.productRepo
}

// ProjectRepository exposes the configured project repository.
func (c *Container) ProjectRepository() catalog.ProjectRepository {
	return c.projectRepo
}

// ServiceLineRepository exposes the configured service line repository.
func (c *Container) ServiceLineRepository() catalog.ServiceLineRepository {
	return c.serviceLineRepo
}

// AccountRepository exposes the configured account repository.
func (c *Container) AccountRepository() access.AccountRepository {
	return c.accountRepo
}

// RoleRepository exposes the configured role repository.
func (c *Container) RoleRepository() access.RoleRepository {
	return c.roleRepo
}

// PermissionRepository exposes the configured permission repository.
func (c *Container) PermissionRepository() access.PermissionRepository {
	return c.permissionRepo
}

// MembershipRepository exposes the configured membership repository.
func (c *Container) MembershipRepository() access.MembershipRepository {
	return c.membershipRepo
}

// AssetRepository exposes the configured media asset repository.
func (c *Container) AssetRepository() media.AssetRepository {
	return c.assetRepo
}
