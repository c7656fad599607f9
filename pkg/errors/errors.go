package errors

import "fmt"

// Error codes for configuration handling.
const (
	// Loading errors
	ErrCodeConfigNotFound    = "CONFIG_NOT_FOUND"
	ErrCodeConfigParseFailed = "CONFIG_PARSE_FAILED"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeEnvLoadFailed     = "ENV_LOAD_FAILED"

	// Validation errors
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeValidationFailed = "VALIDATION_FAILED"

	// Database errors
	ErrCodeDatabaseError       = "DATABASE_ERROR"
	ErrCodeUnsupportedDatabase = "UNSUPPORTED_DATABASE"
)

// ConfigError represents an error raised while loading or applying configuration.
type ConfigError struct {
	Code    string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(code, message string, err error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrConfigNotFound returns an error when the config file cannot be read.
func ErrConfigNotFound(path string, err error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeConfigNotFound,
		Message: fmt.Sprintf("config file not readable: %s", path),
		Err:     err,
	}
}

// ErrConfigParseFailed wraps decoding errors.
func ErrConfigParseFailed(format string, err error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeConfigParseFailed,
		Message: fmt.Sprintf("failed to parse config %s", format),
		Err:     err,
	}
}

// ErrUnsupportedFormat returns an error for config files with an unknown extension.
func ErrUnsupportedFormat(path string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnsupportedFormat,
		Message: fmt.Sprintf("unsupported config format: %s (expected .json, .yaml or .yml)", path),
		Err:     nil,
	}
}

// ErrEnvLoadFailed wraps .env file loading errors.
func ErrEnvLoadFailed(file string, err error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeEnvLoadFailed,
		Message: fmt.Sprintf("failed to load env file %s", file),
		Err:     err,
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeConfigInvalid,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
		Err:     nil,
	}
}

// ErrValidationFailed returns a validation error.
func ErrValidationFailed(field, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Err:     nil,
	}
}

// ErrDatabaseError wraps database errors.
func ErrDatabaseError(operation string, err error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeDatabaseError,
		Message: fmt.Sprintf("database error during %s", operation),
		Err:     err,
	}
}

// ErrUnsupportedDatabase returns an error when no driver serves the configured store kind.
func ErrUnsupportedDatabase(dbType string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnsupportedDatabase,
		Message: fmt.Sprintf("no driver available for database type: %s", dbType),
		Err:     nil,
	}
}
