// Package telemetry configures the global OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"io"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

type Options struct {
	ServiceName string
	Version     string
	// Endpoint is an OTLP/HTTP collector address such as "localhost:4318".
	Endpoint string
	// Stdout, when non-nil and no Endpoint is set, receives pretty-printed spans.
	Stdout io.Writer
}

// Setup installs a tracer provider and returns its shutdown func. Without an
// exporter spans are still created, so trace ids reach the request logs.
func Setup(ctx context.Context, opts Options) (func(context.Context) error, error) {
	var exp trace.SpanExporter
	var err error

	switch {
	case opts.Endpoint != "":
		exp, err = newOTLPExporter(ctx, opts.Endpoint)
	case opts.Stdout != nil:
		exp, err = stdouttrace.New(
			stdouttrace.WithWriter(opts.Stdout),
			stdouttrace.WithPrettyPrint(),
		)
	}
	if err != nil {
		return nil, err
	}

	tpOpts := []trace.TracerProviderOption{trace.WithResource(newResource(opts))}
	if exp != nil {
		tpOpts = append(tpOpts, trace.WithBatcher(exp))
	}
	tp := trace.NewTracerProvider(tpOpts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func newOTLPExporter(ctx context.Context, endpoint string) (trace.SpanExporter, error) {
	opts := []otlptracehttp.Option{}
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint = strings.TrimPrefix(endpoint, "https://")
	default:
		endpoint = strings.TrimPrefix(endpoint, "http://")
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	return otlptracehttp.New(ctx, opts...)
}

func newResource(opts Options) *resource.Resource {
	name := opts.ServiceName
	if name == "" {
		name = "backoffice"
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(name),
		semconv.ServiceVersion(version),
	)
}
