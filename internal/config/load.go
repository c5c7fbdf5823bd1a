package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and, when present, a
// config.yaml file in the working directory. Environment variables take
// precedence over values from the config file. Returns a populated Config
// struct or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("motivation.enabled", false)
	v.SetDefault("motivation.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("motivation.model", "openai/gpt-4o-mini")
	v.SetDefault("motivation.fallback_model", "meta-llama/llama-3.1-8b-instruct")
	v.SetDefault("motivation.timeout_seconds", 30)
	v.SetDefault("motivation.max_retries", 3)
	v.SetDefault("motivation.retry_delay_seconds", 1)
	v.SetDefault("motivation.cache_ttl_minutes", 15)
	v.SetDefault("motivation.site_url", "https://stride.app")
	v.SetDefault("motivation.site_name", "Stride")

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables with STRIDE_ prefix override file values
	v.SetEnvPrefix("STRIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"database.url", "STRIDE_DATABASE_URL"},
		{"auth.jwt_secret", "STRIDE_AUTH_JWT_SECRET"},
		{"motivation.enabled", "STRIDE_MOTIVATION_ENABLED"},
		{"motivation.api_key", "STRIDE_MOTIVATION_API_KEY"},
		{"motivation.model", "STRIDE_MOTIVATION_MODEL"},
		{"motivation.fallback_model", "STRIDE_MOTIVATION_FALLBACK_MODEL"},
		{"server.port", "STRIDE_SERVER_PORT"},
		{"server.log_level", "STRIDE_SERVER_LOG_LEVEL"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
