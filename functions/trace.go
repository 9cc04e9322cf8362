package functions

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

const tracerName = "emotion-detector-function"

// InitTracing exports spans over OTLP/HTTP and installs the global provider.
// GOOGLE_CLOUD_PROJECT must be set; the GCP detector fills in the resource.
func InitTracing(cfg *Config) (*trace.TracerProvider, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("GOOGLE_CLOUD_PROJECT must be set")
	}

	ctx := context.Background()

	var opts []otlptracehttp.Option
	if cfg.LocalOnly {
		// In local environment, TLS is not set up.
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	client := otlptracehttp.NewClient(opts...)

	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		slog.Error("Failed to create OTLP trace exporter",
			slog.Group("tracing", slog.Group("initTracing", "error", err)),
		)
		return nil, err
	}

	resources, err := resource.New(
		ctx,
		resource.WithDetectors(gcp.NewDetector()),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.AppName),
		),
	)
	if err != nil {
		slog.Error("Failed to create resource",
			slog.Group("tracing", slog.Group("initTracing", "error", err)),
		)
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(resources),
	)

	// Set the global TracerProvider to the SDK`s TracerProvider.
	otel.SetTracerProvider(tp)

	// W3C Trace Context propagator
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}

// initTracingOrFallback keeps the function serving when tracing cannot start.
// The returned provider has no exporter in that case.
func initTracingOrFallback(cfg *Config) *trace.TracerProvider {
	tp, err := InitTracing(cfg)
	if err != nil {
		slog.Warn("Tracing disabled",
			slog.Group("tracing", slog.Group("initTracing", "error", err)),
		)
		tp = trace.NewTracerProvider()
		otel.SetTracerProvider(tp)
	}
	return tp
}
