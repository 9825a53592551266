package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/creativepathway/ml-service/internal/config"
)

// Logging owns the zap core behind the service's slog logger. The rest of the
// code only sees *slog.Logger; the level can be changed at runtime.
type Logging struct {
	Logger *slog.Logger
	level  zap.AtomicLevel
	core   zapcore.Core
	file   *lumberjack.Logger
}

// NewLogging builds the service logger from the logging configuration.
func NewLogging(cfg *config.LoggingConfig) (*Logging, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	atomicLevel := zap.NewAtomicLevelAt(level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "console":
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	syncers := []zapcore.WriteSyncer{zapcore.Lock(os.Stdout)}
	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		syncers = append(syncers, zapcore.AddSync(file))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), atomicLevel)

	return &Logging{
		Logger: slog.New(zapslog.NewHandler(core, zapslog.WithCaller(true))),
		level:  atomicLevel,
		core:   core,
		file:   file,
	}, nil
}

// SetLevel changes the level of every logger derived from this one.
func (l *Logging) SetLevel(level string) error {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l.level.SetLevel(parsed)
	return nil
}

// Level returns the current log level.
func (l *Logging) Level() string {
	return l.level.Level().String()
}

// LogrLogger adapts the logger for libraries that log through logr (OpenTelemetry).
func (l *Logging) LogrLogger() logr.Logger {
	return logr.FromSlogHandler(l.Logger.Handler())
}

// Sync flushes buffered log entries and closes the log file, if any.
func (l *Logging) Sync() error {
	// syncing stdout fails on some terminals, that is not worth reporting
	_ = l.core.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
