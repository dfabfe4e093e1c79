// Package config loads runtime settings from the environment, optionally seeded by a
// .env.local file in the working directory.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `env:"APP_ADDR,default=:3000"`
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,default=1h"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS"`
	CatalogFile     string        `env:"CATALOG_FILE"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES,default=1048576"`
	LogDebug        bool          `env:"LOG_DEBUG,default=false"`
	LogFormat       string        `env:"LOG_FORMAT,default=json"`
	EnableHSTS      bool          `env:"ENABLE_HSTS,default=false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	// GeneratedSecret is set when JWT_SECRET was empty and a random one was used.
	GeneratedSecret bool
}

// Load reads .env.local when present and decodes the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	return FromEnv()
}

// FromEnv decodes the current environment without touching any .env file.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.JWTSecret = secret
		cfg.GeneratedSecret = true
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// ConsoleLogs reports whether logs should be human-readable.
func (c *Config) ConsoleLogs() bool {
	return c.LogFormat == "console"
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
