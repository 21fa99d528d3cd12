package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Port           int           `env:"PORT" envDefault:"8080"`
	Env            string        `env:"APP_ENV" envDefault:"development"`
	DatabasePath   string        `env:"DATABASE_PATH" envDefault:"./scribe.db"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	CookieDomain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	GuestTTL       time.Duration `env:"GUEST_TTL" envDefault:"168h"`
	ReaperSchedule string        `env:"REAPER_SCHEDULE" envDefault:"*/30 * * * *"`
	LogLevel       int           `env:"LOG_LEVEL" envDefault:"1"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether production cookie settings apply.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
