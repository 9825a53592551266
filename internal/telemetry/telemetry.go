package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/detectors/aws/ecs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/creativepathway/ml-service/internal/config"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// NewTracerProvider installs the global tracer provider and propagators for
// the configured exporter. With the "none" exporter only the propagators are
// installed so incoming trace context is still forwarded.
func NewTracerProvider(ctx context.Context, tracingConfig *config.TracingConfig, serviceConfig *config.ServiceConfig, logger logr.Logger) (ShutdownFunc, error) {
	otel.SetLogger(logger)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if tracingConfig == nil || tracingConfig.Exporter == config.TracingExporterNone {
		return noopShutdown, nil
	}

	exporter, err := newExporter(ctx, tracingConfig)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, tracingConfig, serviceConfig)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(tracingConfig.SampleRatio))),
	)
	otel.SetTracerProvider(tp)

	logger.Info("Tracing enabled", "exporter", tracingConfig.Exporter, "endpoint", tracingConfig.Endpoint)
	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, tracingConfig *config.TracingConfig) (sdktrace.SpanExporter, error) {
	switch tracingConfig.Exporter {
	case config.TracingExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case config.TracingExporterOTLPGRPC:
		opts := []otlptracegrpc.Option{}
		if tracingConfig.Endpoint != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(tracingConfig.Endpoint))
		}
		if tracingConfig.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, opts...)
	case config.TracingExporterOTLPHTTP:
		opts := []otlptracehttp.Option{}
		if tracingConfig.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(tracingConfig.Endpoint))
		}
		if tracingConfig.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unknown tracing exporter %q", tracingConfig.Exporter)
	}
}

func newResource(ctx context.Context, tracingConfig *config.TracingConfig, serviceConfig *config.ServiceConfig) (*resource.Resource, error) {
	opts := []resource.Option{
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", serviceConfig.Name),
			attribute.String("service.version", serviceConfig.Version),
		),
	}
	if tracingConfig.DetectECS {
		opts = append(opts, resource.WithDetectors(ecs.NewResourceDetector()))
	}

	res, err := resource.New(ctx, opts...)
	// outside of ECS the detector fails, the rest of the resource is still usable
	if err != nil && !errors.Is(err, resource.ErrPartialResource) {
		return nil, fmt.Errorf("failed to build tracing resource: %w", err)
	}
	return res, nil
}

// TraceID returns the trace id of the span in ctx, or "" when there is none.
func TraceID(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.HasTraceID() {
		return ""
	}
	return spanContext.TraceID().String()
}
