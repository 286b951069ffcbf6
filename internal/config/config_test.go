package config_test

import (
	"strings"
	"testing"

	"github.com/armature-dev/armature/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ARMATURE_DB_DRIVER", "sqlite3")
	t.Setenv("ARMATURE_DB_DSN", ":memory:")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("addr = %q, want %q", cfg.HTTP.Addr, ":8080")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_RequiresDatabase(t *testing.T) {
	t.Setenv("ARMATURE_DB_DRIVER", "")
	t.Setenv("ARMATURE_DB_DSN", "")

	_, err := config.Load()
	if err == nil || !strings.Contains(err.Error(), "ARMATURE_DB_DRIVER") {
		t.Fatalf("err = %v, want missing-driver error", err)
	}
}

func TestLoad_CryptKeysComeTogether(t *testing.T) {
	t.Setenv("ARMATURE_DB_DRIVER", "sqlite3")
	t.Setenv("ARMATURE_DB_DSN", ":memory:")
	t.Setenv("ARMATURE_CRYPT_KEY", "aa")

	_, err := config.Load()
	if err == nil || !strings.Contains(err.Error(), "CRYPT") {
		t.Fatalf("err = %v, want paired-keys error", err)
	}
}
