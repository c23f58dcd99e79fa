package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultSuperAdminEmail is the bootstrap account used when SUPER_ADMIN_EMAIL is unset.
const DefaultSuperAdminEmail = "atakan.battal@kademe.com.tr"

// Config holds application configuration loaded from environment variables.
// ServiceRoleKey may be empty; the manage-user endpoint then answers every request
// with a configuration error.
type Config struct {
	Port              int           `envconfig:"PORT" default:"8080"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	Version           string        `envconfig:"VERSION" default:"dev"`
	SupabaseURL       string        `envconfig:"SUPABASE_URL" required:"true"`
	AnonKey           string        `envconfig:"SUPABASE_ANON_KEY" default:""`
	ServiceRoleKey    string        `envconfig:"SUPABASE_SERVICE_ROLE_KEY" default:""`
	JWTSecret         string        `envconfig:"SUPABASE_JWT_SECRET" default:""`
	DatabaseURL       string        `envconfig:"DATABASE_URL" default:""`
	SuperAdminEmail   string        `envconfig:"SUPER_ADMIN_EMAIL" default:"atakan.battal@kademe.com.tr"`
	AllowedOrigin     string        `envconfig:"CORS_ALLOWED_ORIGIN" default:"*"`
	HTTPClientTimeout time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"0s"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasServiceKey reports whether the privileged service credential is configured.
func (c *Config) HasServiceKey() bool {
	return c.ServiceRoleKey != ""
}
