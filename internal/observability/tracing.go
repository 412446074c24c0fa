package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/udyam-portal/app-udyam/internal/config"
	"github.com/udyam-portal/app-udyam/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const serviceName = "app-udyam"

var tracerProvider *sdktrace.TracerProvider

// InitTracer installs a global tracer provider exporting to the configured
// OTLP collector. With tracing disabled the global no-op provider is kept.
func InitTracer(ctx context.Context, cfg *config.Config) error {
	if cfg == nil || !cfg.TracingEnabled {
		logging.Logger.Info("tracing is disabled")
		return nil
	}

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.TracingEndpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	))
	if err != nil {
		return fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(cfg.Version),
			semconv.DeploymentEnvironmentKey.String(cfg.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("create trace resource: %w", err)
	}

	// Honour the caller's sampling decision; sample root spans by ratio
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TracingSampleRatio))

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logging.Logger.Info("tracer initialized",
		zap.String("endpoint", cfg.TracingEndpoint),
		zap.Float64("sample_ratio", cfg.TracingSampleRatio),
	)
	return nil
}

// ShutdownTracer flushes pending spans. It is a no-op when tracing was never
// initialized.
func ShutdownTracer(ctx context.Context) error {
	if tracerProvider == nil {
		return nil
	}
	defer func() { tracerProvider = nil }()

	if err := tracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer provider: %w", err)
	}
	return nil
}
