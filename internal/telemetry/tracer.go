// Package telemetry wires up OpenTelemetry self-tracing for the
// analysis pipeline so dissect's own stages can be inspected with the
// same tools it analyzes.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config controls self-tracing behavior.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Exporter selects the span exporter: "console", "otlp", or "file".
	Exporter string
	// Endpoint is the OTLP receiver for the "otlp" exporter, or the
	// output path for the "file" exporter.
	Endpoint   string
	SampleRate float64
	Debug      bool
}

// Setup installs a global TracerProvider per the config and returns a
// shutdown function that flushes pending spans. Must be called before
// any pipeline stage starts a span.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	)

	sampler := sdktrace.TraceIDRatioBased(cfg.SampleRate)
	if cfg.Debug {
		sampler = sdktrace.AlwaysSample()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

func newExporter(cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case "console":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())

	case "otlp":
		opts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
		if cfg.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		return otlptracehttp.New(context.Background(), opts...)

	case "file":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("file exporter requires an output path")
		}
		f, err := os.Create(cfg.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace output file: %w", err)
		}
		return stdouttrace.New(stdouttrace.WithWriter(f))

	default:
		return nil, fmt.Errorf("unknown trace exporter: %s", cfg.Exporter)
	}
}
