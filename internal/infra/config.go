package infra

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string        `env:"APP_ENV" envDefault:"development"`
	Port              string        `env:"PORT" envDefault:"8080"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	JWTSecret         string        `env:"JWT_SECRET"`
	UploadDir         string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	GeoIPDBPath       string        `env:"GEOIP_DB_PATH"`
	RazorpayKeyID     string        `env:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string        `env:"RAZORPAY_KEY_SECRET"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	HTTPReadTimeout   time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout  time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout   time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	RateLimitPerMin   int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
}

// LoadConfig parses configuration from the environment and validates the
// variables the service cannot run without.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// PaymentConfigured reports whether Razorpay credentials are present.
func (c *Config) PaymentConfigured() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}
