package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET, required"`
	// TokenTTL of zero issues tokens that never expire.
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=0s"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type StoreConfig struct {
	// Driver is sqlite, postgres or mongo.
	Driver string `env:"STORE_DRIVER, default=sqlite"`
	DSN    string `env:"DATABASE_DSN, default=file:blog.db?_busy_timeout=5000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB, default=blog"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	// Addr empty disables login throttling.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type ThrottleConfig struct {
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW,       default=15m"`
}

// IsProduction reports whether ENV selects production behaviour (JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "sqlite", "postgres", "mongo":
	default:
		return fmt.Errorf("STORE_DRIVER must be sqlite, postgres or mongo, got %q", c.Store.Driver)
	}
	if c.Auth.TokenTTL < 0 {
		return errors.New("TOKEN_TTL must not be negative")
	}
	if c.Throttle.LoginMaxAttempts <= 0 || c.Throttle.LoginWindow <= 0 {
		return errors.New("LOGIN_MAX_ATTEMPTS and LOGIN_WINDOW must be positive")
	}
	return nil
}
