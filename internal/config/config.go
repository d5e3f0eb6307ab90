// Package config loads service configuration from the environment and an
// optional .env file using Viper. Env vars override .env values.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	PrestoClientID     string `mapstructure:"PRESTO_CLIENT_ID"`
	PrestoClientSecret string `mapstructure:"PRESTO_CLIENT_SECRET"`
	PrestoRedirectURL  string `mapstructure:"PRESTO_REDIRECT_URL"`
	// PrestoBaseURL overrides the provider base URL, mainly for tests
	// against a local stub. Empty means production prestodoctor.com.
	PrestoBaseURL string `mapstructure:"PRESTO_BASE_URL"`

	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	DatabaseDSN string `mapstructure:"DATABASE_DSN"`
}

// Load reads .env (if present), then builds Config from the environment.
// A missing .env is not an error so CI and containers work unchanged.
func Load() (Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	// Every key needs a default so Unmarshal sees env-only values.
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PRESTO_CLIENT_ID", "")
	v.SetDefault("PRESTO_CLIENT_SECRET", "")
	v.SetDefault("PRESTO_REDIRECT_URL", "")
	v.SetDefault("PRESTO_BASE_URL", "")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("DATABASE_DSN", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseDSN == "" {
		return Config{}, errors.New("config: DATABASE_DSN is required")
	}

	return cfg, nil
}
