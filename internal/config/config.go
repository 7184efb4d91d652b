// Package config provides environment-driven configuration for capec-rel.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Bama-S/capec-rel/internal/models"
)

var validate = validator.New()

// Config holds all application configuration values.
type Config struct {
	DataPath         string           `validate:"required"`
	ParseMode        models.ParseMode `validate:"oneof=lenient strict"`
	Port             string           `validate:"required,numeric"`
	ListenHost       string           `validate:"required"`
	CORSOrigins      []string         `validate:"dive,required"`
	LogLevel         string           `validate:"oneof=trace debug info warn warning error fatal panic"`
	LayoutSeed       int64
	LayoutIterations int `validate:"min=1,max=1000"`
	EnableGraphQL    bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DataPath:      envOrDefault("CAPEC_DATA", "parsed_relations_output.csv"),
		ParseMode:     models.ParseMode(envOrDefault("CAPEC_PARSE_MODE", string(models.ModeLenient))),
		Port:          envOrDefault("PORT", "8501"),
		ListenHost:    envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		EnableGraphQL: envOrDefault("ENABLE_GRAPHQL", "true") == "true",
	}

	seed, err := strconv.ParseInt(envOrDefault("LAYOUT_SEED", "42"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("LAYOUT_SEED must be an integer")
	}
	cfg.LayoutSeed = seed

	iterations, err := strconv.Atoi(envOrDefault("LAYOUT_ITERATIONS", "50"))
	if err != nil {
		return nil, fmt.Errorf("LAYOUT_ITERATIONS must be an integer")
	}
	cfg.LayoutIterations = iterations

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:8501")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
