// Package db is an optional adapter that opens a PostgreSQL pool for the
// declared database section. The declaration itself never depends on it:
// nothing in pkg/config reads DB_* variables or opens connections. Host,
// credentials and pool sizes are deployment settings supplied through DB_*
// variables, since the configuration record carries only the store kind and
// feature flags.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"

	"github.com/onpurpose/marketplace-config/pkg/config"
	"github.com/onpurpose/marketplace-config/pkg/domain"
	cfgerrors "github.com/onpurpose/marketplace-config/pkg/errors"
)

const (
	connectTimeout = 5 * time.Second
	healthTimeout  = 2 * time.Second
)

// Config holds PostgreSQL connection and pool settings.
type Config struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// NewConfigFromEnv builds a Config from the adapter's DB_* environment
// variables. Unset or malformed values fall back to defaults.
func NewConfigFromEnv() *Config {
	return &Config{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 5432),
		Database:        getEnv("DB_NAME", "marketplace"),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(getEnvAsInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		ConnMaxIdleTime: time.Duration(getEnvAsInt("DB_CONN_MAX_IDLE_TIME", 300)) * time.Second,
	}
}

// FromApplicationConfig combines the declared database section with the
// DB_* connection settings. Only PostgreSQL has a driver; other store kinds
// are rejected. When ssl is declared, a "disable" sslmode is raised to "require".
func FromApplicationConfig(app config.DatabaseConfig) (*Config, error) {
	if app.Type != domain.DatabaseTypePostgreSQL {
		return nil, cfgerrors.ErrUnsupportedDatabase(string(app.Type))
	}

	cfg := NewConfigFromEnv()
	if app.SSL && (cfg.SSLMode == "" || cfg.SSLMode == "disable") {
		cfg.SSLMode = "require"
	}
	return cfg, nil
}

// DSN returns the lib/pq key/value connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Connect opens the pool, applies pool limits, and pings the server.
func Connect(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open(domain.DatabaseTypePostgreSQL.DriverName(), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", cfgerrors.ErrDatabaseError("open", err))
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", cfgerrors.ErrDatabaseError("ping", err))
	}

	return db, nil
}

// Health pings the pool with a short timeout.
func Health(db *sql.DB) error {
	if db == nil {
		return cfgerrors.ErrDatabaseError("health check", errors.New("database connection is nil"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unhealthy: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
