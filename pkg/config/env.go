package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	cfgerrors "github.com/onpurpose/marketplace-config/pkg/errors"
)

// loadEnvFiles loads .env files in priority order:
// 1. ENV_FILE environment variable (if set, loads only this file)
// 2. .env.local (if exists)
// 3. .env
// godotenv never overwrites variables already set, so .env.local wins over .env
// and the real environment wins over both. Missing files are ignored.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return cfgerrors.ErrEnvLoadFailed(envFile, err)
		}
		return nil
	}

	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return cfgerrors.ErrEnvLoadFailed(file, err)
		}
	}

	return nil
}

// applyEnvOverrides sets fields tagged `env:"VAR_NAME"` from the environment.
// Unset or empty variables leave the field untouched. A value that cannot be
// converted to the field's type is an error, never a silent default.
func applyEnvOverrides(cfg *ApplicationConfig) error {
	return applyEnvToStruct(reflect.ValueOf(cfg).Elem())
}

func applyEnvToStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := applyEnvToStruct(field); err != nil {
				return err
			}
			continue
		}

		envTag := t.Field(i).Tag.Get("env")
		if envTag == "" {
			continue
		}

		envVal := os.Getenv(envTag)
		if envVal == "" {
			continue
		}

		if err := setFieldFromString(field, envVal); err != nil {
			return cfgerrors.ErrValidationFailed(envTag, err.Error())
		}
	}
	return nil
}

func setFieldFromString(field reflect.Value, val string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(strings.TrimSpace(val))

	case reflect.Bool:
		b, err := parseBool(val)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(val, ",")
			values := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					values = append(values, p)
				}
			}
			field.Set(reflect.ValueOf(values))
		}
	}
	return nil
}

// parseBool accepts the strconv.ParseBool forms plus yes/no and on/off,
// case-insensitively.
func parseBool(s string) (bool, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(trimmed))
	if err != nil {
		return false, fmt.Errorf("'%s' is not a boolean", s)
	}
	return b, nil
}

// GetConfigPath returns the config path from the CONFIG_PATH env var or the default.
func GetConfigPath(defaultPath string) string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultPath
}
