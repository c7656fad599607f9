package config

import (
	"fmt"
	"mime"
	"strings"

	"golang.org/x/mod/semver"

	cfgerrors "github.com/onpurpose/marketplace-config/pkg/errors"
)

// Validator checks an ApplicationConfig before it is handed to the application.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate performs validation of the configuration.
// It checks for:
// - A non-empty name and a semantic version
// - A known database type
// - Stripe sub-features only when Stripe is enabled
// - An email provider when any email feature is on
// - A positive, parseable upload size and a clean list of MIME types
//
// Returns an error describing the first validation failure encountered.
func (v *Validator) Validate(cfg *ApplicationConfig) error {
	if cfg == nil {
		return cfgerrors.ErrConfigInvalid("config is nil")
	}

	if strings.TrimSpace(cfg.Name) == "" {
		return cfgerrors.ErrValidationFailed("name", "cannot be empty")
	}
	if !isSemanticVersion(cfg.Version) {
		return cfgerrors.ErrValidationFailed("version", fmt.Sprintf("'%s' is not a semantic version", cfg.Version))
	}

	if err := v.validateDatabase(cfg.Database); err != nil {
		return err
	}
	if err := v.validatePayments(cfg.Payments); err != nil {
		return err
	}
	if err := v.validateEmail(cfg.Email); err != nil {
		return err
	}
	return v.validateUploads(cfg.Uploads)
}

func (v *Validator) validateDatabase(db DatabaseConfig) error {
	if db.Type == "" {
		return cfgerrors.ErrValidationFailed("database.type", "cannot be empty")
	}
	if !db.Type.IsValid() {
		return cfgerrors.ErrValidationFailed("database.type",
			fmt.Sprintf("unsupported type '%s' (must be 'postgresql', 'mysql', 'sqlite' or 'mongodb')", db.Type))
	}
	return nil
}

func (v *Validator) validatePayments(p PaymentsConfig) error {
	if p.Stripe.Enabled {
		return nil
	}
	if p.Stripe.Webhooks {
		return cfgerrors.ErrValidationFailed("payments.stripe.webhooks", "requires payments.stripe.enabled")
	}
	if p.Stripe.Connect {
		return cfgerrors.ErrValidationFailed("payments.stripe.connect", "requires payments.stripe.enabled")
	}
	return nil
}

func (v *Validator) validateEmail(e EmailConfig) error {
	if (e.Templates || e.Notifications) && strings.TrimSpace(e.Provider) == "" {
		return cfgerrors.ErrValidationFailed("email.provider", "required when templates or notifications are enabled")
	}
	return nil
}

func (v *Validator) validateUploads(u UploadsConfig) error {
	size, err := u.MaxSizeBytes()
	if err != nil {
		return cfgerrors.ErrValidationFailed("uploads.maxSize", err.Error())
	}
	if size <= 0 {
		return cfgerrors.ErrValidationFailed("uploads.maxSize", "must be positive")
	}

	if len(u.AllowedTypes) == 0 {
		return cfgerrors.ErrValidationFailed("uploads.allowedTypes", "must list at least one MIME type")
	}

	seen := make(map[string]bool, len(u.AllowedTypes))
	for _, mediaType := range u.AllowedTypes {
		parsed, params, err := mime.ParseMediaType(mediaType)
		if err != nil || len(params) > 0 || parsed != strings.ToLower(mediaType) || !strings.Contains(parsed, "/") {
			return cfgerrors.ErrValidationFailed("uploads.allowedTypes",
				fmt.Sprintf("'%s' is not a type/subtype MIME type", mediaType))
		}
		if seen[parsed] {
			return cfgerrors.ErrValidationFailed("uploads.allowedTypes",
				fmt.Sprintf("duplicate MIME type '%s'", mediaType))
		}
		seen[parsed] = true
	}

	return nil
}

// isSemanticVersion accepts MAJOR.MINOR.PATCH with optional prerelease and
// build suffixes. A leading "v" is tolerated. The shorthand forms "1" and
// "1.2" that semver.IsValid allows are rejected.
func isSemanticVersion(version string) bool {
	v := "v" + strings.TrimPrefix(version, "v")
	if !semver.IsValid(v) {
		return false
	}
	core := strings.TrimSuffix(strings.TrimSuffix(v, semver.Build(v)), semver.Prerelease(v))
	return strings.Count(core, ".") == 2
}
