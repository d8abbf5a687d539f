// Package config reads server settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"daytrack/internal/crypto"
	"daytrack/internal/db"
)

type Config struct {
	DatabaseURL   string
	DBDriver      string
	JWTSecret     []byte
	EncryptionKey []byte
	BlindIndexKey []byte
	Port          string
	Env           string
	LogFile       string
	CORSOrigins   []string
}

// Development reports whether APP_ENV selects the development profile.
func (c Config) Development() bool { return c.Env == "development" }

func (c Config) Addr() string { return ":" + c.Port }

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

// Load reads .env if present and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBDriver:    getenv("DB_DRIVER", db.DriverPostgres),
		Port:        getenv("PORT", "8080"),
		Env:         getenv("APP_ENV", "production"),
		LogFile:     os.Getenv("LOG_FILE"),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	cfg.JWTSecret = []byte(secret)

	switch cfg.DBDriver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER %q: want %s or %s", cfg.DBDriver, db.DriverPostgres, db.DriverSQLite)
	}

	for _, o := range strings.Split(getenv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.DatabaseURL == "" {
		return cfg, nil
	}
	var err error
	if cfg.EncryptionKey, err = crypto.DecodeKey("ENCRYPTION_KEY", os.Getenv("ENCRYPTION_KEY")); err != nil {
		return Config{}, err
	}
	if cfg.BlindIndexKey, err = crypto.DecodeKey("BLIND_INDEX_KEY", os.Getenv("BLIND_INDEX_KEY")); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
