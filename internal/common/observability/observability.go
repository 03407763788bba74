// Package observability wires OpenTelemetry metrics and tracing for the server.
package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/logger"
)

type Observability struct {
	meterProvider   *sdkmetric.MeterProvider
	tracerProvider  *sdktrace.TracerProvider
	requestCounter  otelmetric.Int64Counter
	requestDuration otelmetric.Float64Histogram
}

// New exports metrics through the Prometheus registry and, when a Jaeger
// endpoint is configured, installs a batching tracer provider globally.
// Exporter failures are logged and leave that signal disabled.
func New(cfg config.ObservabilityConfig, log logger.Logger) *Observability {
	log = log.WithFields(map[string]interface{}{"component": "observability"})

	var o *Observability
	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("prometheus exporter unavailable", map[string]interface{}{"error": err.Error()})
		o = &Observability{}
	} else {
		o = NewWithReader(cfg.ServiceName, exporter)
		otel.SetMeterProvider(o.meterProvider)
	}

	if cfg.JaegerEndpoint == "" {
		return o
	}

	tp, err := newTracerProvider(cfg)
	if err != nil {
		log.Warn("jaeger exporter unavailable", map[string]interface{}{"error": err.Error()})
		return o
	}
	otel.SetTracerProvider(tp)
	o.tracerProvider = tp

	log.Info("tracing enabled", map[string]interface{}{"endpoint": cfg.JaegerEndpoint})
	return o
}

// NewWithReader builds the HTTP instruments on a meter provider fed by reader.
func NewWithReader(serviceName string, reader sdkmetric.Reader) *Observability {
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(serviceResource(serviceName)),
	)
	meter := provider.Meter(serviceName)

	requestCounter, _ := meter.Int64Counter(
		"http.server.requests",
		otelmetric.WithDescription("Number of HTTP requests served"),
	)
	requestDuration, _ := meter.Float64Histogram(
		"http.server.duration",
		otelmetric.WithDescription("HTTP request handling duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:   provider,
		requestCounter:  requestCounter,
		requestDuration: requestDuration,
	}
}

func newTracerProvider(cfg config.ObservabilityConfig) (*sdktrace.TracerProvider, error) {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerEndpoint)))
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(serviceResource(cfg.ServiceName)),
	), nil
}

func serviceResource(serviceName string) *resource.Resource {
	return resource.NewSchemaless(attribute.String("service.name", serviceName))
}

// TracingEnabled reports whether spans are exported.
func (o *Observability) TracingEnabled() bool {
	return o.tracerProvider != nil
}

func (o *Observability) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	if o.requestCounter != nil {
		o.requestCounter.Add(ctx, 1, attrs)
	}
	if o.requestDuration != nil {
		o.requestDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

// Shutdown flushes pending spans and metrics.
func (o *Observability) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracerProvider != nil {
		errs = append(errs, o.tracerProvider.Shutdown(ctx))
	}
	if o.meterProvider != nil {
		errs = append(errs, o.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
