package config

import "time"

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins" validate:"required,dive,origin"`
	AllowedMethods   []string `mapstructure:"allowed_methods" validate:"required"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" validate:"gte=0"`
}

type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gt=0"`
	Health          RateLimitRule `mapstructure:"health"`
	Predict         RateLimitRule `mapstructure:"predict"`
}

// RateLimitRule allows Requests per Window for each client address.
type RateLimitRule struct {
	Requests int           `mapstructure:"requests" validate:"gt=0"`
	Window   time.Duration `mapstructure:"window" validate:"gt=0"`
}

type MCPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}
