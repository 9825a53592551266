package config

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	// File is an optional log file, rotated by size. Logs always go to stdout as well.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

const (
	TracingExporterNone     = "none"
	TracingExporterStdout   = "stdout"
	TracingExporterOTLPGRPC = "otlp-grpc"
	TracingExporterOTLPHTTP = "otlp-http"
)

type TracingConfig struct {
	Exporter    string  `mapstructure:"exporter" validate:"oneof=none stdout otlp-grpc otlp-http"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
	DetectECS   bool    `mapstructure:"detect_ecs"`
}
