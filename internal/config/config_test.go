package config

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr() != ":8080" || cfg.DBDriver != "pgx" || cfg.Development() {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := FromEnv(); err == nil {
		t.Error("missing JWT_SECRET accepted")
	}
}

func TestFromEnvKeysRequiredWithDatabase(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{5}, 32))
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file.db")
	t.Setenv("ENCRYPTION_KEY", key)
	t.Setenv("BLIND_INDEX_KEY", "")

	if _, err := FromEnv(); err == nil {
		t.Fatal("missing BLIND_INDEX_KEY accepted")
	}

	t.Setenv("BLIND_INDEX_KEY", key)
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("APP_ENV", "development")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.EncryptionKey) != 32 || len(cfg.BlindIndexKey) != 32 {
		t.Error("keys not decoded")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" || !cfg.Development() {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestFromEnvRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := FromEnv(); err == nil {
		t.Error("unknown driver accepted")
	}
}
