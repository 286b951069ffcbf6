// Package config loads the demo server's configuration from the
// environment (ARMATURE_ prefix) and an optional armature.yaml.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Crypt struct {
		// Hex-encoded 256-bit key and 128-bit IV for the share-token
		// cipher. Both must be set together; leaving both empty
		// disables share links.
		Key string
		IV  string
	}
	LogLevel string
}

// Load reads config from environment (ARMATURE_ prefix) and optional
// armature.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ARMATURE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("armature")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("log.level", "info")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Crypt.Key = v.GetString("crypt.key")
	cfg.Crypt.IV = v.GetString("crypt.iv")
	cfg.LogLevel = v.GetString("log.level")

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("ARMATURE_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("ARMATURE_DB_DSN is required")
	}
	if (cfg.Crypt.Key == "") != (cfg.Crypt.IV == "") {
		return nil, fmt.Errorf("ARMATURE_CRYPT_KEY and ARMATURE_CRYPT_IV must be set together")
	}

	return cfg, nil
}
