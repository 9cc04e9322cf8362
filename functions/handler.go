package functions

import (
	"context"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

type Flush interface {
	ForceFlush(ctx context.Context) error
}

type HttpHandler func(http.ResponseWriter, *http.Request)

// InstrumentedHandler wraps function in a server span and flushes spans once
// the request is served. Cloud Functions may freeze the instance right after
// the response, so the batcher cannot be trusted to export in the background.
func InstrumentedHandler(name string, function HttpHandler, flusher Flush) HttpHandler {
	handler := otelhttp.NewHandler(
		http.HandlerFunc(function),
		name,
		otelhttp.WithSpanOptions(trace.WithAttributes(semconv.FaaSTriggerHTTP)),
	)

	return func(w http.ResponseWriter, r *http.Request) {
		defer flushSpans(r.Context(), flusher)
		handler.ServeHTTP(w, r)
	}
}

func flushSpans(ctx context.Context, flusher Flush) {
	if err := flusher.ForceFlush(ctx); err != nil {
		// Spans left in the batcher may be lost; the response is already written.
		slog.Error(
			"Failed to flush spans",
			slog.Group("tracing", slog.Group("forceFlush", "error", err)),
		)
	}
}
