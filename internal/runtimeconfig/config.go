package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrDefaultLocaleUnsupported flags a default locale missing from Locales.
var ErrDefaultLocaleUnsupported = errors.New("cms config: default locale must be listed in locales")

// ErrLocalesRequired flags an empty locale list.
var ErrLocalesRequired = errors.New("cms config: at least one locale is required")

// ErrAdvancedCacheRequiresEnabledCache ensures advanced cache builds only when cache is enabled.
var ErrAdvancedCacheRequiresEnabledCache = errors.New("cms config: advanced cache feature requires cache to be enabled")

var ErrMediaBucketRequired = errors.New("cms config: media bucket is required when media library is enabled")
var ErrOverlayBoundsInvalid = errors.New("cms config: default overlay opacity must be between 0 and 100")
var ErrLoggingProviderRequired = errors.New("cms config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("cms config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("cms config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("cms config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the CMS module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled       bool
	DefaultLocale string
	Locales       []string
	Hero          HeroConfig
	Media         MediaConfig
	Cache         CacheConfig
	Routes        RoutesConfig
	Features      Features
	Logging       LoggingConfig
}

// HeroConfig captures defaults applied to newly created slides.
type HeroConfig struct {
	DefaultOverlayOpacity int
}

// MediaConfig wires the object storage provider backing uploads.
type MediaConfig struct {
	Provider   string
	Bucket     string
	Region     string
	Endpoint   string
	AccessKey  string
	SecretKey  string
	PathPrefix string
	PublicBase string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig captures routing configuration for public URL resolution.
type RoutesConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitResolverConfig
}

// URLKitResolverConfig configures the go-urlkit based link resolver.
type URLKitResolverConfig struct {
	DefaultGroup string
	LocaleGroups map[string]string
	SlugParam    string
	LocaleParam  string
}

// Features toggles module functionality.
type Features struct {
	MediaLibrary  bool
	AdvancedCache bool
	Logger        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for the bilingual company site.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		Locales:       []string{"en", "ar"},
		Hero: HeroConfig{
			DefaultOverlayOpacity: 40,
		},
		Media: MediaConfig{
			Provider: "s3",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Routes: RoutesConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if len(cfg.Locales) == 0 {
		return ErrLocalesRequired
	}
	if locale := strings.TrimSpace(cfg.DefaultLocale); locale != "" {
		found := false
		for _, candidate := range cfg.Locales {
			if strings.EqualFold(strings.TrimSpace(candidate), locale) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrDefaultLocaleUnsupported, locale)
		}
	}
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Hero.DefaultOverlayOpacity < 0 || cfg.Hero.DefaultOverlayOpacity > 100 {
		return ErrOverlayBoundsInvalid
	}
	if cfg.Features.MediaLibrary {
		if strings.TrimSpace(cfg.Media.Bucket) == "" {
			return ErrMediaBucketRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
