package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// SRS_ prefix with underscores for nesting (SRS_SERVER_PORT,
// SRS_DATABASE_URL, ...) and take precedence over file values.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real failure.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults for everything that has a sensible one.
// Database URL and JWT secret have no default on purpose: deployments must
// supply them explicitly.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("review.desired_retention", 0.9)
	v.SetDefault("review.maximum_interval_days", 36500)
	v.SetDefault("review.learning_step_minutes", 10)
	v.SetDefault("review.again_step_minutes", 1)
	v.SetDefault("review.log_cram_reviews", true)

	// Bind nested keys explicitly so AutomaticEnv sees them even when the
	// config file omits the section.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"auth.jwt_secret",
		"review.desired_retention",
		"review.maximum_interval_days",
		"review.learning_step_minutes",
		"review.again_step_minutes",
		"review.log_cram_reviews",
	} {
		// MustBindEnv is unavailable on older viper versions; BindEnv only
		// fails on an empty key.
		_ = v.BindEnv(key)
	}
}
