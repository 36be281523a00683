package cms

import (
	"github.com/hamzeh-dev/binaa-cms/internal/access"
	"github.com/hamzeh-dev/binaa-cms/internal/catalog"
	"github.com/hamzeh-dev/binaa-cms/internal/di"
	"github.com/hamzeh-dev/binaa-cms/internal/hero"
	"github.com/hamzeh-dev/binaa-cms/internal/media"
)

// HeroService exports the hero section and slide contract for consumers of
// the cms package.
type HeroService = hero.Service

// CatalogService exports the catalog content contract.
type CatalogService = catalog.Service

// MediaService exports the media upload contract.
type MediaService = media.Service

// AccessGate exports the dashboard authorization gate.
type AccessGate = access.Gate

// Grant exports the resolved authorization grant.
type Grant = access.Grant

// Module represents the top level CMS runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a CMS module using the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Module{container: di.NewContainer(cfg, opts...)}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Hero returns the configured hero service.
func (m *Module) Hero() HeroService {
	return m.container.HeroService()
}

// Catalog returns the configured catalog service.
func (m *Module) Catalog() CatalogService {
	return m.container.CatalogService()
}

// Media returns the configured media service.
func (m *Module) Media() MediaService {
	return m.container.MediaService()
}

// Access returns the dashboard authorization gate.
func (m *Module) Access() *AccessGate {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Gate()
}
