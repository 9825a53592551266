package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creativepathway/ml-service/cmd/ml_service/server"
	"github.com/creativepathway/ml-service/internal/config"
	"github.com/creativepathway/ml-service/internal/handlers"
	"github.com/creativepathway/ml-service/internal/logging"
	"github.com/creativepathway/ml-service/internal/mcpserver"
	"github.com/creativepathway/ml-service/internal/predictors"
	"github.com/creativepathway/ml-service/internal/telemetry"
	"github.com/creativepathway/ml-service/internal/validation"
	"github.com/creativepathway/ml-service/pkg/api"
)

func main() {
	os.Exit(run())
}

func run() int {
	serviceConfig, v, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logs, err := logging.NewLogging(serviceConfig.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer logs.Sync()
	logger := logs.Logger

	config.Watch(v, logger, func(updated *config.Config) {
		if err := logs.SetLevel(updated.Logging.Level); err != nil {
			logger.Warn("Failed to update log level", "error", err)
			return
		}
		logger.Info("Log level updated", "level", logs.Level())
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.NewTracerProvider(ctx, serviceConfig.Tracing, serviceConfig.Service, logs.LogrLogger())
	if err != nil {
		logger.Error("Failed to initialize tracing", "error", err)
		return 1
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("Failed to flush traces", "error", err)
		}
	}()

	validate, err := validation.NewValidator()
	if err != nil {
		logger.Error("Failed to create validator", "error", err)
		return 1
	}

	predictor, err := predictors.NewPredictor(logger, serviceConfig)
	if err != nil {
		logger.Error("Failed to create predictor", "error", err)
		return 1
	}

	var mcpHandler http.Handler
	if serviceConfig.MCP.Enabled {
		mcpHandler = mcpserver.NewHandler(mcpserver.NewServer(logger, predictor, serviceConfig.Service))
	}

	srv, err := server.NewServer(logger, serviceConfig, handlers.New(validate, predictor, serviceConfig), mcpHandler)
	if err != nil {
		logger.Error("Failed to create server", "error", err)
		return 1
	}

	logger.Info("ML Service starting",
		"service", serviceConfig.Service.Name,
		"version", serviceConfig.Service.Version,
		"port", serviceConfig.Service.Port,
		"predictor", predictor.Name(),
		"research", api.HealthResearch,
	)
	if serviceConfig.MCP.Enabled {
		logger.Info("MCP endpoint enabled", "path", serviceConfig.MCP.Path)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error("Server stopped with error", "error", err)
		return 1
	}

	logger.Info("ML Service stopped")
	return 0
}
