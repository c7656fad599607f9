package config

import (
	"mime"
	"slices"
	"strings"

	"github.com/onpurpose/marketplace-config/pkg/common"
	"github.com/onpurpose/marketplace-config/pkg/domain"
)

// ApplicationConfig is the marketplace application's configuration record.
// Values are handed out by copy; there is no setter surface.
type ApplicationConfig struct {
	Name       string           `json:"name"       yaml:"name"       env:"APP_NAME"`
	Version    string           `json:"version"    yaml:"version"    env:"APP_VERSION"`
	Database   DatabaseConfig   `json:"database"   yaml:"database"`
	Auth       AuthConfig       `json:"auth"       yaml:"auth"`
	Payments   PaymentsConfig   `json:"payments"   yaml:"payments"`
	Email      EmailConfig      `json:"email"      yaml:"email"`
	API        APIConfig        `json:"api"        yaml:"api"`
	Security   SecurityConfig   `json:"security"   yaml:"security"`
	Monitoring MonitoringConfig `json:"monitoring" yaml:"monitoring"`
	Uploads    UploadsConfig    `json:"uploads"    yaml:"uploads"`
}

// DatabaseConfig declares the backing store.
type DatabaseConfig struct {
	Type       domain.DatabaseType `json:"type"       yaml:"type"       env:"DB_TYPE"`
	SSL        bool                `json:"ssl"        yaml:"ssl"        env:"DB_SSL"`
	Migrations bool                `json:"migrations" yaml:"migrations" env:"DB_MIGRATIONS"`
	Seeds      bool                `json:"seeds"      yaml:"seeds"      env:"DB_SEEDS"`
}

// AuthConfig toggles authentication features.
type AuthConfig struct {
	JWT      bool `json:"jwt"      yaml:"jwt"      env:"AUTH_JWT"`
	Bcrypt   bool `json:"bcrypt"   yaml:"bcrypt"   env:"AUTH_BCRYPT"`
	Sessions bool `json:"sessions" yaml:"sessions" env:"AUTH_SESSIONS"`
}

// PaymentsConfig groups payment provider integrations.
type PaymentsConfig struct {
	Stripe StripeConfig `json:"stripe" yaml:"stripe"`
}

// StripeConfig toggles the Stripe integration.
type StripeConfig struct {
	Enabled  bool `json:"enabled"  yaml:"enabled"  env:"STRIPE_ENABLED"`
	Webhooks bool `json:"webhooks" yaml:"webhooks" env:"STRIPE_WEBHOOKS"`
	Connect  bool `json:"connect"  yaml:"connect"  env:"STRIPE_CONNECT"`
}

// EmailConfig declares transactional email settings.
type EmailConfig struct {
	Provider      string `json:"provider"      yaml:"provider"      env:"EMAIL_PROVIDER"`
	Templates     bool   `json:"templates"     yaml:"templates"     env:"EMAIL_TEMPLATES"`
	Notifications bool   `json:"notifications" yaml:"notifications" env:"EMAIL_NOTIFICATIONS"`
}

// APIConfig toggles request handling features.
type APIConfig struct {
	CORS          bool `json:"cors"          yaml:"cors"          env:"API_CORS"`
	RateLimit     bool `json:"rateLimit"     yaml:"rateLimit"     env:"API_RATE_LIMIT"`
	Validation    bool `json:"validation"    yaml:"validation"    env:"API_VALIDATION"`
	Documentation bool `json:"documentation" yaml:"documentation" env:"API_DOCUMENTATION"`
}

// SecurityConfig toggles transport and input hardening.
type SecurityConfig struct {
	Helmet       bool `json:"helmet"       yaml:"helmet"       env:"SECURITY_HELMET"`
	Sanitization bool `json:"sanitization" yaml:"sanitization" env:"SECURITY_SANITIZATION"`
	HTTPS        bool `json:"https"        yaml:"https"        env:"SECURITY_HTTPS"`
}

// MonitoringConfig toggles logging, error tracking and health endpoints.
type MonitoringConfig struct {
	Winston      bool `json:"winston"      yaml:"winston"      env:"MONITORING_WINSTON"`
	Sentry       bool `json:"sentry"       yaml:"sentry"       env:"MONITORING_SENTRY"`
	HealthChecks bool `json:"healthChecks" yaml:"healthChecks" env:"MONITORING_HEALTH_CHECKS"`
}

// UploadsConfig declares file upload limits.
type UploadsConfig struct {
	Cloudinary   bool     `json:"cloudinary"   yaml:"cloudinary"   env:"UPLOADS_CLOUDINARY"`
	MaxSize      string   `json:"maxSize"      yaml:"maxSize"      env:"UPLOADS_MAX_SIZE"`
	AllowedTypes []string `json:"allowedTypes" yaml:"allowedTypes" env:"UPLOADS_ALLOWED_TYPES"`
}

// declared is the process-wide declaration. It is never handed out directly.
var declared = ApplicationConfig{
	Name:    "onpurpose-marketplace",
	Version: "1.0.0",
	Database: DatabaseConfig{
		Type:       domain.DatabaseTypePostgreSQL,
		SSL:        true,
		Migrations: true,
		Seeds:      false,
	},
	Auth: AuthConfig{
		JWT:      true,
		Bcrypt:   true,
		Sessions: false,
	},
	Payments: PaymentsConfig{
		Stripe: StripeConfig{
			Enabled:  true,
			Webhooks: true,
			Connect:  true,
		},
	},
	Email: EmailConfig{
		Provider:      "sendgrid",
		Templates:     true,
		Notifications: true,
	},
	API: APIConfig{
		CORS:          true,
		RateLimit:     true,
		Validation:    true,
		Documentation: false,
	},
	Security: SecurityConfig{
		Helmet:       true,
		Sanitization: true,
		HTTPS:        true,
	},
	Monitoring: MonitoringConfig{
		Winston:      true,
		Sentry:       true,
		HealthChecks: true,
	},
	Uploads: UploadsConfig{
		Cloudinary:   true,
		MaxSize:      "10MB",
		AllowedTypes: []string{domain.MediaTypeJPEG, domain.MediaTypePNG, domain.MediaTypeWebP},
	},
}

// Default returns a copy of the declared configuration.
// Each call yields an independent value; mutating it never affects later calls.
func Default() ApplicationConfig {
	return declared.Clone()
}

// Clone returns a deep copy of the configuration.
func (c ApplicationConfig) Clone() ApplicationConfig {
	out := c
	out.Uploads.AllowedTypes = slices.Clone(c.Uploads.AllowedTypes)
	return out
}

// Flags returns every boolean feature flag keyed by its dotted path.
func (c ApplicationConfig) Flags() map[string]bool {
	return map[string]bool{
		"database.ssl":             c.Database.SSL,
		"database.migrations":      c.Database.Migrations,
		"database.seeds":           c.Database.Seeds,
		"auth.jwt":                 c.Auth.JWT,
		"auth.bcrypt":              c.Auth.Bcrypt,
		"auth.sessions":            c.Auth.Sessions,
		"payments.stripe.enabled":  c.Payments.Stripe.Enabled,
		"payments.stripe.webhooks": c.Payments.Stripe.Webhooks,
		"payments.stripe.connect":  c.Payments.Stripe.Connect,
		"email.templates":          c.Email.Templates,
		"email.notifications":      c.Email.Notifications,
		"api.cors":                 c.API.CORS,
		"api.rateLimit":            c.API.RateLimit,
		"api.validation":           c.API.Validation,
		"api.documentation":        c.API.Documentation,
		"security.helmet":          c.Security.Helmet,
		"security.sanitization":    c.Security.Sanitization,
		"security.https":           c.Security.HTTPS,
		"monitoring.winston":       c.Monitoring.Winston,
		"monitoring.sentry":        c.Monitoring.Sentry,
		"monitoring.healthChecks":  c.Monitoring.HealthChecks,
		"uploads.cloudinary":       c.Uploads.Cloudinary,
	}
}

// MaxSizeBytes parses MaxSize into a byte count.
func (u UploadsConfig) MaxSizeBytes() (int64, error) {
	return common.ParseSize(u.MaxSize)
}

// Allows reports whether a content type is permitted for upload.
// MIME parameters and case are ignored, so "IMAGE/PNG; charset=binary" matches "image/png".
func (u UploadsConfig) Allows(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, allowed := range u.AllowedTypes {
		if strings.EqualFold(allowed, mediaType) {
			return true
		}
	}
	return false
}
