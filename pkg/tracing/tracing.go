// Package tracing configures an OpenTelemetry tracer provider with OTLP/gRPC
// export and provides HTTP instrumentation middleware.
package tracing

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/JaimeStill/promptlib/pkg/lifecycle"
)

const flushTimeout = 5 * time.Second

// System owns the process tracer provider.
type System interface {
	// Middleware returns HTTP middleware that opens a server span per request.
	Middleware(operation string) func(http.Handler) http.Handler
	// Start registers a shutdown hook that flushes and stops the exporter.
	Start(lc *lifecycle.Coordinator) error
}

type tracing struct {
	provider trace.TracerProvider
	shutdown func(context.Context) error
	logger   *slog.Logger
}

// New builds the tracer provider described by cfg and installs it as the
// global provider, so otel.Tracer spans are exported. A disabled config leaves
// the global provider untouched and instruments HTTP with a no-op provider.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "tracing")

	if !cfg.Enabled {
		logger.Info("tracing disabled")
		return &tracing{
			provider: noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
			logger:   logger,
		}, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing enabled", "endpoint", cfg.Endpoint, "service", cfg.ServiceName)

	return &tracing{
		provider: provider,
		shutdown: provider.Shutdown,
		logger:   logger,
	}, nil
}

func (t *tracing) Middleware(operation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(
			next,
			operation,
			otelhttp.WithTracerProvider(t.provider),
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}

func (t *tracing) Start(lc *lifecycle.Coordinator) error {
	lc.OnShutdown(func() {
		<-lc.Context().Done()

		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()

		if err := t.shutdown(ctx); err != nil {
			t.logger.Error("tracer shutdown failed", "error", err)
			return
		}
		t.logger.Info("tracer provider shut down")
	})
	return nil
}
