package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/onpurpose/marketplace-config/pkg/config"
)

var _ FeatureCache = (*InMemoryFeatureCache)(nil)

func TestNewInMemoryFeatureCache(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Default()

	cache := NewInMemoryFeatureCache(&cfg, "", logger)

	if cache == nil {
		t.Fatal("NewInMemoryFeatureCache() returned nil")
	}

	if len(cache.current.flags) != 22 {
		t.Errorf("expected 22 flags in cache, got %d", len(cache.current.flags))
	}

	if len(cache.current.disabled) != 3 {
		t.Errorf("expected 3 disabled flags, got %d", len(cache.current.disabled))
	}
}

func TestInMemoryFeatureCache_IsEnabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Default()
	cache := NewInMemoryFeatureCache(&cfg, "", logger)

	tests := []struct {
		key  string
		want bool
	}{
		{"auth.jwt", true},
		{"payments.stripe.connect", true},
		{"monitoring.healthChecks", true},
		{"auth.sessions", false},
		{"database.seeds", false},
		{"api.documentation", false},
		{"unknown.flag", false},
		{"email.provider", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := cache.IsEnabled(tt.key); got != tt.want {
				t.Errorf("IsEnabled(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestInMemoryFeatureCache_Lookup(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Default()
	cache := NewInMemoryFeatureCache(&cfg, "", logger)

	t.Run("known disabled flag", func(t *testing.T) {
		enabled, known := cache.Lookup("auth.sessions")
		if !known || enabled {
			t.Errorf("Lookup(auth.sessions) = (%v, %v), want (false, true)", enabled, known)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		enabled, known := cache.Lookup("auth.oauth")
		if known || enabled {
			t.Errorf("Lookup(auth.oauth) = (%v, %v), want (false, false)", enabled, known)
		}
	})
}

func TestInMemoryFeatureCache_FeatureLists(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Default()
	cache := NewInMemoryFeatureCache(&cfg, "", logger)

	disabled := cache.DisabledFeatures()
	want := []string{"api.documentation", "auth.sessions", "database.seeds"}
	if len(disabled) != len(want) {
		t.Fatalf("DisabledFeatures() = %v, want %v", disabled, want)
	}
	for i := range want {
		if disabled[i] != want[i] {
			t.Errorf("DisabledFeatures()[%d] = %q, want %q", i, disabled[i], want[i])
		}
	}

	enabled := cache.EnabledFeatures()
	if len(enabled) != 19 {
		t.Errorf("expected 19 enabled features, got %d", len(enabled))
	}

	// Callers must not be able to modify the cached lists.
	enabled[0] = "tampered"
	if cache.EnabledFeatures()[0] == "tampered" {
		t.Error("EnabledFeatures() exposed internal slice")
	}
}

func TestInMemoryFeatureCache_Config(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Default()
	cache := NewInMemoryFeatureCache(&cfg, "", logger)

	// Mutating the source after construction does not affect the cache.
	cfg.Uploads.AllowedTypes[0] = "text/plain"

	got := cache.Config()
	if got.Uploads.AllowedTypes[0] != "image/jpeg" {
		t.Errorf("expected cached allowed type 'image/jpeg', got %q", got.Uploads.AllowedTypes[0])
	}

	got.Uploads.AllowedTypes[0] = "text/html"
	if cache.Config().Uploads.AllowedTypes[0] != "image/jpeg" {
		t.Error("Config() exposed internal slice")
	}
}

func TestInMemoryFeatureCache_Reload(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("successful reload", func(t *testing.T) {
		tmpFile := createTempConfigFile(t, "config.yaml", "auth:\n  sessions: true\napi:\n  cors: false\n")

		cfg := config.Default()
		cache := NewInMemoryFeatureCache(&cfg, tmpFile, logger)

		if cache.IsEnabled("auth.sessions") {
			t.Error("auth.sessions should be off before reload")
		}

		if err := cache.Reload(); err != nil {
			t.Fatalf("Reload() unexpected error = %v", err)
		}

		if !cache.IsEnabled("auth.sessions") {
			t.Error("auth.sessions should be on after reload")
		}
		if cache.IsEnabled("api.cors") {
			t.Error("api.cors should be off after reload")
		}
	})

	t.Run("failed reload - file not found", func(t *testing.T) {
		cfg := config.Default()
		cache := NewInMemoryFeatureCache(&cfg, "/nonexistent/config.yaml", logger)

		if err := cache.Reload(); err == nil {
			t.Error("Reload() expected error for non-existent file, got nil")
		}

		if !cache.IsEnabled("auth.jwt") {
			t.Error("auth.jwt should still be on after failed reload")
		}
	})

	t.Run("failed reload - invalid config", func(t *testing.T) {
		tmpFile := createTempConfigFile(t, "config.yaml", "payments:\n  stripe:\n    enabled: false\n")

		cfg := config.Default()
		cache := NewInMemoryFeatureCache(&cfg, tmpFile, logger)

		if err := cache.Reload(); err == nil {
			t.Error("Reload() expected validation error, got nil")
		}

		if !cache.IsEnabled("payments.stripe.enabled") {
			t.Error("payments.stripe.enabled should still be on after failed reload")
		}
	})
}

func TestInMemoryFeatureCache_ThreadSafety(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Default()
	cache := NewInMemoryFeatureCache(&cfg, "", logger)

	var wg sync.WaitGroup
	iterations := 100

	for i := 0; i < iterations; i++ {
		i := i
		wg.Add(4)

		go func() {
			defer wg.Done()
			_ = cache.IsEnabled("auth.jwt")
		}()

		go func() {
			defer wg.Done()
			_ = cache.EnabledFeatures()
		}()

		go func() {
			defer wg.Done()
			_ = cache.Config()
		}()

		go func() {
			defer wg.Done()
			if i%10 == 0 {
				_ = cache.Reload()
			}
		}()
	}

	wg.Wait()

	if !cache.IsEnabled("auth.jwt") {
		t.Error("auth.jwt should be on after concurrent reloads")
	}
}

func createTempConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
