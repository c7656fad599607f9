package cache

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/onpurpose/marketplace-config/pkg/config"
)

// snapshot is one immutable build of the cache.
type snapshot struct {
	cfg      config.ApplicationConfig
	flags    map[string]bool // "auth.jwt" -> true
	enabled  []string        // sorted
	disabled []string        // sorted
}

// InMemoryFeatureCache serves feature flag lookups from an in-memory snapshot.
// Reload swaps the whole snapshot, so readers see either the old or the new
// configuration, never a mix.
type InMemoryFeatureCache struct {
	current    *snapshot
	configPath string
	mu         sync.RWMutex
	logger     *slog.Logger
}

// NewInMemoryFeatureCache creates a new cache from the provided configuration.
//
// Parameters:
//   - cfg: Validated configuration
//   - configPath: Overlay file path used by Reload; empty reloads defaults plus env
//   - logger: Structured logger for operational logging
func NewInMemoryFeatureCache(cfg *config.ApplicationConfig, configPath string, logger *slog.Logger) *InMemoryFeatureCache {
	cache := &InMemoryFeatureCache{
		configPath: configPath,
		logger:     logger,
	}

	cache.buildCache(cfg)

	return cache
}

// buildCache constructs a snapshot and installs it.
func (c *InMemoryFeatureCache) buildCache(cfg *config.ApplicationConfig) {
	snap := &snapshot{
		cfg:   cfg.Clone(),
		flags: cfg.Flags(),
	}

	for key, on := range snap.flags {
		if on {
			snap.enabled = append(snap.enabled, key)
		} else {
			snap.disabled = append(snap.disabled, key)
		}
	}
	sort.Strings(snap.enabled)
	sort.Strings(snap.disabled)

	c.mu.Lock()
	c.current = snap
	c.mu.Unlock()

	c.logger.Info("Feature cache built successfully",
		"flags", len(snap.flags),
		"enabled", len(snap.enabled),
		"disabled", len(snap.disabled),
	)
}

func (c *InMemoryFeatureCache) currentSnapshot() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

// IsEnabled reports whether the flag at the dotted path is on.
func (c *InMemoryFeatureCache) IsEnabled(key string) bool {
	return c.currentSnapshot().flags[key]
}

// Lookup returns the flag value and whether the key is a known flag.
func (c *InMemoryFeatureCache) Lookup(key string) (bool, bool) {
	enabled, known := c.currentSnapshot().flags[key]
	return enabled, known
}

// EnabledFeatures returns the sorted dotted paths of all enabled flags.
func (c *InMemoryFeatureCache) EnabledFeatures() []string {
	return append([]string(nil), c.currentSnapshot().enabled...)
}

// DisabledFeatures returns the sorted dotted paths of all disabled flags.
func (c *InMemoryFeatureCache) DisabledFeatures() []string {
	return append([]string(nil), c.currentSnapshot().disabled...)
}

// Config returns a copy of the cached configuration.
func (c *InMemoryFeatureCache) Config() config.ApplicationConfig {
	return c.currentSnapshot().cfg.Clone()
}

// Reload loads the configuration again and swaps in a new snapshot.
//
// Returns:
//   - error: If the config file cannot be read or validation fails
func (c *InMemoryFeatureCache) Reload() error {
	loader := config.NewConfigLoader(c.configPath, c.logger)
	newConfig, err := loader.LoadConfig()
	if err != nil {
		return err
	}

	c.buildCache(newConfig)

	c.logger.Info("Feature cache reloaded successfully", "config_path", c.configPath)

	return nil
}
