package observability

import (
	"context"
	"log"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider   *metric.MeterProvider
	meter           otelmetric.Meter
	providerCalls   otelmetric.Int64Counter
	providerLatency otelmetric.Float64Histogram
	stageLatency    otelmetric.Float64Histogram
}

// New wires an otel meter provider to a Prometheus exporter. A nil registerer
// uses the default Prometheus registry served on /metrics.
func New(serviceName string, reg promclient.Registerer) *Observability {
	opts := []prometheus.Option{}
	if reg != nil {
		opts = append(opts, prometheus.WithRegisterer(reg))
	}

	exporter, err := prometheus.New(opts...)
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	providerCalls, _ := meter.Int64Counter(
		"provider.calls",
		otelmetric.WithDescription("Number of provider adapter calls"),
	)

	providerLatency, _ := meter.Float64Histogram(
		"provider.duration",
		otelmetric.WithDescription("Provider adapter call duration"),
		otelmetric.WithUnit("ms"),
	)

	stageLatency, _ := meter.Float64Histogram(
		"pipeline.stage.duration",
		otelmetric.WithDescription("Duration of a pipeline stage"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:   provider,
		meter:           meter,
		providerCalls:   providerCalls,
		providerLatency: providerLatency,
		stageLatency:    stageLatency,
	}
}

// NewNoop returns an Observability whose recorders do nothing.
func NewNoop() *Observability {
	return &Observability{}
}

func (o *Observability) RecordProviderCall(ctx context.Context, provider, outcome string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	)
	if o.providerCalls != nil {
		o.providerCalls.Add(ctx, 1, attrs)
	}
	if o.providerLatency != nil {
		o.providerLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) RecordStage(ctx context.Context, stage string, duration time.Duration) {
	if o == nil || o.stageLatency == nil {
		return
	}
	o.stageLatency.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("stage", stage),
	))
}

func (o *Observability) Shutdown() {
	if o != nil && o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
