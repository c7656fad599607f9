package cache

import "github.com/onpurpose/marketplace-config/pkg/config"

// FeatureCache provides read-only lookups of feature flags from a loaded
// ApplicationConfig. All lookups are thread-safe.
type FeatureCache interface {
	// IsEnabled reports whether the flag at the dotted path (e.g. "auth.jwt") is on.
	// Unknown keys report false.
	IsEnabled(key string) bool

	// Lookup returns the flag value and whether the key names a known flag.
	Lookup(key string) (enabled bool, known bool)

	// EnabledFeatures returns the dotted paths of all enabled flags, sorted.
	EnabledFeatures() []string

	// DisabledFeatures returns the dotted paths of all disabled flags, sorted.
	DisabledFeatures() []string

	// Config returns a copy of the configuration the cache was built from.
	Config() config.ApplicationConfig

	// Reload rebuilds the cache from the loader's config file.
	// On error the previous snapshot stays in place.
	Reload() error
}
