// Package config loads the service configuration from the environment and an
// optional .env file, and opens the backing stores.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	IdentitySupabase = "supabase"
	IdentityMemory   = "memory"
)

type Config struct {
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// PostgresURI is required by serve, migrate and bootstrap-admin.
	PostgresURI string `mapstructure:"POSTGRES_URI"`
	// RedisURL is optional; an empty value disables the listing cache.
	RedisURL string        `mapstructure:"REDIS_URL"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	SupabaseURL            string `mapstructure:"SUPABASE_URL"`
	SupabaseServiceRoleKey string `mapstructure:"SUPABASE_SERVICE_ROLE_KEY"`
	SupabaseAnonKey        string `mapstructure:"SUPABASE_ANON_KEY"`
	JWTSecret              string `mapstructure:"SUPABASE_JWT_SECRET"`
	JWTIssuer              string `mapstructure:"SUPABASE_JWT_ISSUER"`
	JWTAudience            string `mapstructure:"SUPABASE_JWT_AUDIENCE"`

	// IdentityBackend is "supabase" or "memory". The memory backend is for local runs and tests.
	IdentityBackend string `mapstructure:"IDENTITY_BACKEND"`

	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	OTLPEndpoint    string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName     string        `mapstructure:"OTEL_SERVICE_NAME"`
	TracesToStdout  bool          `mapstructure:"OTEL_TRACES_STDOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

// Load reads envFile (if present) into the process environment, then builds
// Config from the environment. Real env vars win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile) // missing file is fine
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("POSTGRES_URI", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_SERVICE_ROLE_KEY", "")
	v.SetDefault("SUPABASE_ANON_KEY", "")
	v.SetDefault("SUPABASE_JWT_SECRET", "")
	v.SetDefault("SUPABASE_JWT_ISSUER", "")
	v.SetDefault("SUPABASE_JWT_AUDIENCE", "authenticated")
	v.SetDefault("IDENTITY_BACKEND", IdentitySupabase)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_SERVICE_NAME", "backoffice")
	v.SetDefault("OTEL_TRACES_STDOUT", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.IdentityBackend = strings.ToLower(strings.TrimSpace(cfg.IdentityBackend))

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	switch cfg.IdentityBackend {
	case IdentitySupabase, IdentityMemory:
	default:
		return nil, fmt.Errorf("config: IDENTITY_BACKEND must be %q or %q, got %q", IdentitySupabase, IdentityMemory, cfg.IdentityBackend)
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &cfg, nil
}

// RequireDatabase reports a descriptive error when POSTGRES_URI is missing.
func (c *Config) RequireDatabase() error {
	if c.PostgresURI == "" {
		return errors.New("config: POSTGRES_URI must be set")
	}
	return nil
}

// RequireServer checks everything serve needs beyond the database.
func (c *Config) RequireServer() error {
	if err := c.RequireDatabase(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return errors.New("config: SUPABASE_JWT_SECRET must be set")
	}
	return c.RequireIdentity()
}

// RequireIdentity fails when the supabase backend lacks its admin credentials.
func (c *Config) RequireIdentity() error {
	if c.IdentityBackend != IdentitySupabase {
		return nil
	}
	var missing []string
	if c.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.SupabaseServiceRoleKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing Supabase credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}
