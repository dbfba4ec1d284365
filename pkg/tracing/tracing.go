// Package tracing sets up OpenTelemetry tracing for a run. Without an
// endpoint it hands out a no-op tracer, so callers never branch on whether
// tracing is enabled.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
)

// InstrumentationName names the tracer used for platform operations.
const InstrumentationName = "ectf/session"

// ErrExporter indicates the OTLP exporter could not be created.
var ErrExporter = errors.New("tracing: exporter setup failed")

// Options configures Setup.
type Options struct {
	// Endpoint is the OTLP/gRPC collector address, e.g. "localhost:4317".
	// Empty disables tracing.
	Endpoint string

	// Insecure disables TLS towards the collector.
	Insecure bool

	// RunID is attached to the resource as ectf.run_id.
	RunID string

	// ShutdownTimeout bounds the final flush (default: 5s).
	ShutdownTimeout time.Duration
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Setup returns the tracer for the run and a shutdown function that must
// be called before exit. With an empty Endpoint both are no-ops.
func Setup(ctx context.Context, opts Options) (trace.Tracer, ShutdownFunc, error) {
	if opts.Endpoint == "" {
		return noop.NewTracerProvider().Tracer(InstrumentationName), func(context.Context) error { return nil }, nil
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaults.TelemetryShutdown
	}

	exporterOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(opts.Endpoint),
	}
	if opts.Insecure {
		exporterOpts = append(exporterOpts,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrExporter, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(opts.RunID)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, opts.ShutdownTimeout)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return tp.Tracer(InstrumentationName), shutdown, nil
}

// newResource describes this process. It is built standalone rather than
// merged with resource.Default to avoid schema URL conflicts.
func newResource(runID string) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(defaults.ToolName),
		semconv.ServiceVersion(defaults.Version),
	}
	if runID != "" {
		attrs = append(attrs, attribute.String("ectf.run_id", runID))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}
