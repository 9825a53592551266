package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/creativepathway/ml-service/internal/messages"
	"github.com/creativepathway/ml-service/internal/serviceerrors"
	"github.com/creativepathway/ml-service/internal/validation"
)

const (
	// EnvPrefix is prepended to every configuration key read from the environment,
	// e.g. ML_SERVICE_LOGGING_LEVEL for logging.level.
	EnvPrefix = "ML_SERVICE"

	DefaultPort = 5000
)

type Config struct {
	Service   *ServiceConfig   `mapstructure:"service" validate:"required"`
	Logging   *LoggingConfig   `mapstructure:"logging" validate:"required"`
	CORS      *CORSConfig      `mapstructure:"cors" validate:"required"`
	RateLimit *RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Metrics   *MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Tracing   *TracingConfig   `mapstructure:"tracing" validate:"required"`
	MCP       *MCPConfig       `mapstructure:"mcp" validate:"required"`
}

// Load builds the service configuration. Sources in increasing priority:
// defaults, the YAML config file, the .env file, environment variables and
// finally command line flags. The returned viper instance is needed to watch
// the config file for changes.
func Load(args []string) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	flags := pflag.NewFlagSet("ml-service", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to the YAML configuration file")
	envFile := flags.String("env-file", ".env", "path to an optional .env file")
	flags.Int("port", DefaultPort, "HTTP server port")
	flags.String("host", "0.0.0.0", "HTTP server listen host")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "json", "log format (json, console)")
	if err := flags.Parse(args); err != nil {
		return nil, nil, configurationError(err)
	}

	for key, flag := range map[string]string{
		"service.port":   "port",
		"service.host":   "host",
		"logging.level":  "log-level",
		"logging.format": "log-format",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, nil, configurationError(err)
		}
	}

	// .env values never override variables already present in the environment
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, configurationError(fmt.Errorf("error reading env file %s: %w", *envFile, err))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// FLASK_RUN_PORT and PORT are what existing deployments of the service set
	if err := v.BindEnv("service.port", "FLASK_RUN_PORT", "PORT", EnvPrefix+"_SERVICE_PORT"); err != nil {
		return nil, nil, configurationError(err)
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, nil, configurationError(fmt.Errorf("error reading config file: %w", err))
		}
	}

	serviceConfig, err := decode(v)
	if err != nil {
		return nil, nil, err
	}
	return serviceConfig, v, nil
}

// Watch reloads the configuration whenever the config file changes and hands the
// new configuration to onChange. Invalid configurations are logged and ignored.
func Watch(v *viper.Viper, logger *slog.Logger, onChange func(*Config)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		serviceConfig, err := decode(v)
		if err != nil {
			logger.Warn("Ignoring invalid configuration change", "file", e.Name, "error", err)
			return
		}
		logger.Info("Configuration reloaded", "file", e.Name)
		onChange(serviceConfig)
	})
	v.WatchConfig()
}

func decode(v *viper.Viper) (*Config, error) {
	serviceConfig := &Config{}
	err := v.Unmarshal(serviceConfig, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, configurationError(fmt.Errorf("error decoding configuration: %w", err))
	}

	validate, err := validation.NewValidator()
	if err != nil {
		return nil, configurationError(err)
	}
	if err := validate.Struct(serviceConfig); err != nil {
		return nil, configurationError(err)
	}
	return serviceConfig, nil
}

func configurationError(err error) error {
	return serviceerrors.NewServiceError(messages.ConfigurationFailed, "Error", err.Error())
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "ml-service")
	v.SetDefault("service.version", "1.0.0")
	v.SetDefault("service.host", "0.0.0.0")
	v.SetDefault("service.port", DefaultPort)
	v.SetDefault("service.read_timeout", 5*time.Second)
	v.SetDefault("service.write_timeout", 10*time.Second)
	v.SetDefault("service.idle_timeout", 60*time.Second)
	v.SetDefault("service.shutdown_timeout", 30*time.Second)
	v.SetDefault("service.trust_proxy", false)
	v.SetDefault("service.max_body_bytes", 10<<20)
	v.SetDefault("service.predictor", "static")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
	v.SetDefault("logging.compress", false)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Global-Transaction-Id"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 3600)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit.health.requests", 60)
	v.SetDefault("rate_limit.health.window", time.Minute)
	v.SetDefault("rate_limit.predict.requests", 100)
	v.SetDefault("rate_limit.predict.window", 15*time.Minute)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("tracing.exporter", "none")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("tracing.detect_ecs", false)

	v.SetDefault("mcp.enabled", false)
	v.SetDefault("mcp.path", "/mcp")
}
