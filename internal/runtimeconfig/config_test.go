package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/hamzeh-dev/binaa-cms/internal/runtimeconfig"
)

func TestConfigValidate_Defaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresLocales(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Locales = nil

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLocalesRequired) {
		t.Fatalf("expected ErrLocalesRequired, got %v", err)
	}
}

func TestConfigValidate_DefaultLocaleMustBeSupported(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = "fr"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLocaleUnsupported) {
		t.Fatalf("expected ErrDefaultLocaleUnsupported, got %v", err)
	}
}

func TestConfigValidate_AdvancedCacheNeedsCache(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.AdvancedCache = true
	cfg.Cache.Enabled = false

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrAdvancedCacheRequiresEnabledCache) {
		t.Fatalf("expected ErrAdvancedCacheRequiresEnabledCache, got %v", err)
	}
}

func TestConfigValidate_MediaLibraryNeedsBucket(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.MediaLibrary = true
	cfg.Media.Bucket = "  "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMediaBucketRequired) {
		t.Fatalf("expected ErrMediaBucketRequired, got %v", err)
	}
}

func TestConfigValidate_OverlayBounds(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Hero.DefaultOverlayOpacity = 120

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrOverlayBoundsInvalid) {
		t.Fatalf("expected ErrOverlayBoundsInvalid, got %v", err)
	}
}

func TestConfigValidate_LoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "zap"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
