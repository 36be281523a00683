package cms

import "github.com/hamzeh-dev/binaa-cms/internal/runtimeconfig"

var (
	ErrLocalesRequired                   = runtimeconfig.ErrLocalesRequired
	ErrDefaultLocaleUnsupported          = runtimeconfig.ErrDefaultLocaleUnsupported
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrMediaBucketRequired               = runtimeconfig.ErrMediaBucketRequired
	ErrOverlayBoundsInvalid              = runtimeconfig.ErrOverlayBoundsInvalid
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	HeroConfig           = runtimeconfig.HeroConfig
	MediaConfig          = runtimeconfig.MediaConfig
	CacheConfig          = runtimeconfig.CacheConfig
	RoutesConfig         = runtimeconfig.RoutesConfig
	URLKitResolverConfig = runtimeconfig.URLKitResolverConfig
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
