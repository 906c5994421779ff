// Package config loads the service configuration from the environment
// (optionally seeded from a .env file) through viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the service reads at startup.
type Config struct {
	Env        string
	Port       string
	BaseURL    string
	BackendURL string

	FrontendURL    string
	AllowedOrigins []string

	DBDriver    string
	DatabaseDSN string

	RabbitMQURL string

	BearerEnabled      bool
	LoginRatePerMinute int

	KeepAliveInterval time.Duration

	AdminUsername string
	AdminPassword string

	LogLevel  string
	LogFormat string
}

// IsProduction reports whether the service runs with production cookie
// attributes and the keep-alive scheduler.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("BASE_URL", "http://localhost:5000")
	v.SetDefault("BACKEND_URL", "http://localhost:5000")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "benta.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("AUTH_BEARER_ENABLED", false)
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("KEEPALIVE_INTERVAL", "14m")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads the optional env files, then the environment, into a Config.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// A missing .env is normal outside development.
		_ = godotenv.Load(f)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:                strings.ToLower(v.GetString("APP_ENV")),
		Port:               v.GetString("APP_PORT"),
		BaseURL:            v.GetString("BASE_URL"),
		BackendURL:         strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
		FrontendURL:        v.GetString("FRONTEND_URL"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		BearerEnabled:      v.GetBool("AUTH_BEARER_ENABLED"),
		LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
		KeepAliveInterval:  v.GetDuration("KEEPALIVE_INTERVAL"),
		AdminUsername:      v.GetString("ADMIN_USERNAME"),
		AdminPassword:      v.GetString("ADMIN_PASSWORD"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}

	if !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	for _, o := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimRight(o, "/"))
		}
	}
	if len(cfg.AllowedOrigins) == 0 && cfg.FrontendURL != "" {
		cfg.AllowedOrigins = []string{strings.TrimRight(cfg.FrontendURL, "/")}
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}
	if cfg.KeepAliveInterval <= 0 {
		return nil, fmt.Errorf("KEEPALIVE_INTERVAL must be positive, got %s", v.GetString("KEEPALIVE_INTERVAL"))
	}
	if cfg.LoginRatePerMinute < 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MINUTE must not be negative")
	}
	return cfg, nil
}
