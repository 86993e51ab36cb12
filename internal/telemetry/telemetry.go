// Package telemetry records client metrics through OpenTelemetry.
// Without a configured provider the global no-op meter is used.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "bitmax"

// Metrics holds the instruments shared by the REST and streaming layers.
type Metrics struct {
	requests       metric.Int64Counter
	requestErrors  metric.Int64Counter
	requestLatency metric.Float64Histogram
	framesReceived metric.Int64Counter
	frameErrors    metric.Int64Counter
}

// New creates instruments on provider, or on the global provider when nil.
func New(provider metric.MeterProvider) *Metrics {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)

	m := &Metrics{}
	m.requests, _ = meter.Int64Counter("bitmax.http.requests",
		metric.WithDescription("REST requests sent"),
		metric.WithUnit("{request}"))
	m.requestErrors, _ = meter.Int64Counter("bitmax.http.errors",
		metric.WithDescription("REST requests that failed, by error kind"),
		metric.WithUnit("{request}"))
	m.requestLatency, _ = meter.Float64Histogram("bitmax.http.duration",
		metric.WithDescription("REST round trip duration"),
		metric.WithUnit("ms"))
	m.framesReceived, _ = meter.Int64Counter("bitmax.stream.frames",
		metric.WithDescription("Stream messages decoded"),
		metric.WithUnit("{frame}"))
	m.frameErrors, _ = meter.Int64Counter("bitmax.stream.errors",
		metric.WithDescription("Stream items that failed, by error kind"),
		metric.WithUnit("{frame}"))
	return m
}

// RecordRequest records one finished REST call. kind is empty on success.
func (m *Metrics) RecordRequest(ctx context.Context, method, path string, elapsed time.Duration, kind string) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	)
	m.requests.Add(ctx, 1, attrs)
	m.requestLatency.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	if kind != "" {
		m.requestErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("path", path),
			attribute.String("kind", kind),
		))
	}
}

// RecordFrame records one stream item. kind is empty for a decoded message.
func (m *Metrics) RecordFrame(ctx context.Context, messageType, kind string) {
	if m == nil {
		return
	}
	if kind != "" {
		m.frameErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
		return
	}
	m.framesReceived.Add(ctx, 1, metric.WithAttributes(attribute.String("m", messageType)))
}
