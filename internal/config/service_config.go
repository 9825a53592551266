package config

import (
	"net"
	"strconv"
	"time"
)

type ServiceConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version" validate:"required"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP
	TrustProxy   bool   `mapstructure:"trust_proxy"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes" validate:"gt=0"`
	Predictor    string `mapstructure:"predictor" validate:"oneof=static"`
}

// Addr returns the listen address of the HTTP server.
func (s *ServiceConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
