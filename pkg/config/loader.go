package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	cfgerrors "github.com/onpurpose/marketplace-config/pkg/errors"
)

// ConfigLoader builds an ApplicationConfig from the declared defaults, an
// optional JSON or YAML overlay file, and environment overrides.
type ConfigLoader struct {
	configPath string
	validator  *Validator
	logger     *slog.Logger
}

// NewConfigLoader creates a new ConfigLoader instance.
//
// Parameters:
//   - configPath: Path to a .json, .yaml or .yml overlay file; empty means defaults only
//   - logger: Structured logger for operational logging
func NewConfigLoader(configPath string, logger *slog.Logger) *ConfigLoader {
	return &ConfigLoader{
		configPath: configPath,
		validator:  NewValidator(),
		logger:     logger,
	}
}

// ConfigPath returns the overlay file path the loader reads.
func (l *ConfigLoader) ConfigPath() string {
	return l.configPath
}

// LoadConfig returns a validated configuration.
// Steps, in order:
// 1. Load .env files
// 2. Start from Default()
// 3. Overlay the config file, rejecting unknown keys
// 4. Apply environment overrides
// 5. Validate
//
// Any failure aborts the load; invalid config must prevent startup.
func (l *ConfigLoader) LoadConfig() (*ApplicationConfig, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	cfg := Default()

	if l.configPath != "" {
		if err := l.overlayFile(&cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	l.logger.Info("Config loaded successfully",
		"name", cfg.Name,
		"version", cfg.Version,
		"database_type", cfg.Database.Type,
		"enabled_features", countEnabled(cfg.Flags()),
		"config_path", l.configPath,
	)

	return &cfg, nil
}

// overlayFile decodes the config file on top of cfg. Keys absent from the
// file keep their current value.
func (l *ConfigLoader) overlayFile(cfg *ApplicationConfig) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", cfgerrors.ErrConfigNotFound(l.configPath, err))
	}

	switch strings.ToLower(filepath.Ext(l.configPath)) {
	case ".json":
		if err := decodeJSONStrict(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config JSON: %w", cfgerrors.ErrConfigParseFailed("JSON", err))
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty or comment-only document decodes to io.EOF.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse config YAML: %w", cfgerrors.ErrConfigParseFailed("YAML", err))
		}
	default:
		return cfgerrors.ErrUnsupportedFormat(l.configPath)
	}

	return nil
}

// decodeJSONStrict decodes a single JSON document into cfg. encoding/json
// matches keys case-insensitively, so keys are first checked for an exact
// match against the json tags; trailing data after the document is rejected.
func decodeJSONStrict(data []byte, cfg *ApplicationConfig) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if err := checkJSONKeys(doc, reflect.TypeOf(*cfg), ""); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after config document")
	}
	return nil
}

// checkJSONKeys walks a decoded document alongside the struct type and
// rejects any object key that is not spelled exactly as a json tag.
func checkJSONKeys(node any, t reflect.Type, path string) error {
	obj, ok := node.(map[string]any)
	if !ok || t.Kind() != reflect.Struct {
		return nil
	}

	fields := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields[name] = field.Type
	}

	for key, value := range obj {
		keyPath := key
		if path != "" {
			keyPath = path + "." + key
		}
		fieldType, known := fields[key]
		if !known {
			return fmt.Errorf("unknown field %q", keyPath)
		}
		if err := checkJSONKeys(value, fieldType, keyPath); err != nil {
			return err
		}
	}
	return nil
}

// MustLoad is like LoadConfig but panics on error.
// Use it for initialization where failure should be fatal.
func MustLoad(configPath string, logger *slog.Logger) *ApplicationConfig {
	cfg, err := NewConfigLoader(configPath, logger).LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func countEnabled(flags map[string]bool) int {
	count := 0
	for _, on := range flags {
		if on {
			count++
		}
	}
	return count
}
