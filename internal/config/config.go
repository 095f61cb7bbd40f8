// Package config loads and validates application configuration from
// environment variables and optional config files.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Review   ReviewConfig   `mapstructure:"review" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains authentication settings for the HTTP surface.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// ReviewConfig contains the scheduling parameters handed to the engine.
// The weight table is optional; when omitted the engine's published default
// vector is used.
type ReviewConfig struct {
	DesiredRetention    float64   `mapstructure:"desired_retention"     validate:"required,gt=0,lte=1"`
	MaximumIntervalDays int       `mapstructure:"maximum_interval_days" validate:"required,gte=1"`
	LearningStepMinutes int       `mapstructure:"learning_step_minutes" validate:"required,gte=1"`
	AgainStepMinutes    int       `mapstructure:"again_step_minutes"    validate:"required,gte=1"`
	Weights             []float64 `mapstructure:"weights"               validate:"omitempty,len=21"`

	// LogCramReviews controls whether cram-mode reviews are appended to the
	// durable review log. They never alter scheduling state either way.
	LogCramReviews bool `mapstructure:"log_cram_reviews"`
}
