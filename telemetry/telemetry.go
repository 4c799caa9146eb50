// Package telemetry records spans and metrics for each request.
//
// Exporting only happens in debug mode, to rotating files next to the debug
// log. Otherwise every instrument is a no-op.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"proompter/config"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const instrumentationName = "proompter"

const (
	SpanTurn = "proompter.turn"
	SpanChat = "provider.chat"
)

// Telemetry holds the tracer and instruments used by the cli and provider
// wrapper.
type Telemetry struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	tokens   metric.Int64Histogram
	shutdown []func(context.Context) error
}

// Noop returns a Telemetry that records nothing.
func Noop() *Telemetry {
	t, _ := newTelemetry(tracenoop.NewTracerProvider().Tracer(instrumentationName),
		metricnoop.NewMeterProvider().Meter(instrumentationName))
	return t
}

// Init sets up exporters writing to dir when enabled, and returns Noop otherwise.
func Init(ctx context.Context, dir, version string, enabled bool) (*Telemetry, error) {
	if !enabled {
		return Noop(), nil
	}

	if err := config.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.AppName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceFile := rotatingFile(filepath.Join(dir, "traces.log"))
	traceExporter, err := stdouttrace.New(
		stdouttrace.WithWriter(traceFile),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	metricsFile := rotatingFile(filepath.Join(dir, "metrics.log"))
	metricExporter, err := stdoutmetric.New(
		stdoutmetric.WithWriter(metricsFile),
		stdoutmetric.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	// A single invocation is short-lived; Shutdown performs the final export.
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(30*time.Second)),
		),
		sdkmetric.WithResource(res),
	)

	t, err := newTelemetry(tp.Tracer(instrumentationName), mp.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}
	t.shutdown = []func(context.Context) error{
		tp.Shutdown,
		mp.Shutdown,
		func(context.Context) error { return traceFile.Close() },
		func(context.Context) error { return metricsFile.Close() },
	}

	config.Debugf("[Telemetry] exporting traces and metrics to %s", dir)
	return t, nil
}

func newTelemetry(tracer trace.Tracer, meter metric.Meter) (*Telemetry, error) {
	requests, err := meter.Int64Counter(
		"proompter.requests",
		metric.WithDescription("Completion requests sent, by provider and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	tokens, err := meter.Int64Histogram(
		"proompter.request.tokens",
		metric.WithDescription("Estimated prompt tokens per request"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token histogram: %w", err)
	}

	return &Telemetry{tracer: tracer, requests: requests, tokens: tokens}, nil
}

func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

// StartTurn opens the span covering one prompt/response cycle.
func (t *Telemetry) StartTurn(ctx context.Context, interactive bool) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanTurn, trace.WithAttributes(
		attribute.Bool("proompter.interactive", interactive),
	))
}

// RecordTokens records the estimated size of an outgoing request.
func (t *Telemetry) RecordTokens(ctx context.Context, providerName, modelName string, tokens, messages int) {
	t.tokens.Record(ctx, int64(tokens), metric.WithAttributes(
		attribute.String("provider", providerName),
		attribute.String("model", modelName),
	))
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("proompter.request.tokens", tokens),
		attribute.Int("proompter.request.messages", messages),
	)
}

func (t *Telemetry) countRequest(ctx context.Context, providerName, modelName string, err error) {
	t.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", providerName),
		attribute.String("model", modelName),
		attribute.String("outcome", outcome(err)),
	))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}

// Shutdown flushes exporters and closes their files.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range t.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	t.shutdown = nil
	return errors.Join(errs...)
}
