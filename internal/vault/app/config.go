package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrMissingEncryptionKey = errors.New("VAULT_ENCRYPTION_KEY is required")

type Config struct {
	EncryptionKey string        `env:"VAULT_ENCRYPTION_KEY,required,notEmpty"`    // Required: vault key, every other key is derived from it
	DatabaseFile  string        `env:"VAULT_DATABASE_FILE" envDefault:"vault.db"` // Path to SQLite database file
	Issuer        string        `env:"VAULT_ISSUER" envDefault:"credvault"`       // Session issuer and otpauth issuer label
	SessionTTL    time.Duration `env:"VAULT_SESSION_TTL" envDefault:"24h"`        // Lifetime of an operator session
	TOTPSkew      uint          `env:"VAULT_TOTP_SKEW" envDefault:"1"`            // Windows accepted either side when verifying a code
	SecureCookies bool          `env:"VAULT_SECURE_COOKIES" envDefault:"false"`   // Set the Secure attribute on session cookies
	ExportTZ      string        `env:"VAULT_EXPORT_TZ" envDefault:"Local"`        // Zone used for export timestamps

	Env                 string        `env:"ENV" envDefault:"dev"`                   // Environment (dev, staging, prod)
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`            // Log level (debug, info, warn, error)
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"json"`           // Log format (json, text)
	Port                int           `env:"PORT" envDefault:"8080"`                 // HTTP server port
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"` // Graceful shutdown timeout
}

// LoadConfig reads a .env file when one exists and then the environment.
// Variables already set in the environment win over the file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate reports configuration the server cannot start with. The key
// check repeats the env tag for configs built in code.
func (c Config) Validate() error {
	if c.EncryptionKey == "" {
		return ErrMissingEncryptionKey
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("invalid VAULT_SESSION_TTL %s", c.SessionTTL)
	}
	if _, err := time.LoadLocation(c.ExportTZ); err != nil {
		return fmt.Errorf("invalid VAULT_EXPORT_TZ %q: %w", c.ExportTZ, err)
	}
	return nil
}
