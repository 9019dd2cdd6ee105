// Package config loads server settings from defaults, an optional YAML file
// and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cart store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds the api process settings.
type Config struct {
	ServiceName   string  `yaml:"service_name"`
	Addr          string  `yaml:"addr"`
	TLSCert       string  `yaml:"tls_cert"`
	TLSKey        string  `yaml:"tls_key"`
	DatabaseURL   string  `yaml:"database_url"`
	RedisAddr     string  `yaml:"redis_addr"`
	CartStore     string  `yaml:"cart_store"`
	OtelHost      string  `yaml:"otel_host"`
	OtelSample    float64 `yaml:"otel_sample_ratio"`
	LogLevel      string  `yaml:"log_level"`
	AllowedOrigin string  `yaml:"allowed_origin"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		ServiceName:   "cupstory",
		Addr:          ":3001",
		CartStore:     StoreMemory,
		OtelSample:    1.0,
		LogLevel:      "info",
		AllowedOrigin: "*",
	}
}

// Load reads CONFIG_FILE if set, applies environment overrides and validates.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.ServiceName, "SERVICE_NAME")
	setString(&cfg.Addr, "ADDR")
	setString(&cfg.TLSCert, "TLS_CERT")
	setString(&cfg.TLSKey, "TLS_KEY")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.CartStore, "CART_STORE")
	setString(&cfg.OtelHost, "OTEL_HOST")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.AllowedOrigin, "ALLOWED_ORIGIN")
	if v := strings.TrimSpace(os.Getenv("OTEL_SAMPLE_RATIO")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.OtelSample = f
		}
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks that the selected stores have their connection settings.
func (c Config) Validate() error {
	switch c.CartStore {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("cart_store postgres requires DATABASE_URL")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return errors.New("cart_store redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown cart_store %q", c.CartStore)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("tls_cert and tls_key must be set together")
	}
	if c.OtelSample < 0 || c.OtelSample > 1 {
		return fmt.Errorf("otel_sample_ratio %v out of range [0,1]", c.OtelSample)
	}
	return nil
}

// TLS reports whether the server should listen with TLS.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}
