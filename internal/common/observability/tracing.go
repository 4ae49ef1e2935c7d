package observability

import (
	"context"

	"neelakshi-ai/internal/common/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "neelakshi-ai"

type Tracing struct {
	provider *sdktrace.TracerProvider
}

// NewTracing builds a tracer provider sampling at ratio (parent-based) and
// installs it globally. Spans are handed to each processor on end.
func NewTracing(ratio float64, processors ...sdktrace.SpanProcessor) *Tracing {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return &Tracing{provider: tp}
}

func (t *Tracing) Tracer() trace.Tracer {
	if t == nil || t.provider == nil {
		return otel.Tracer(TracerName)
	}
	return t.provider.Tracer(TracerName)
}

func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// LogSpanProcessor writes every finished span to the structured logger at
// debug level.
type LogSpanProcessor struct {
	log logger.Logger
}

func NewLogSpanProcessor(log logger.Logger) *LogSpanProcessor {
	return &LogSpanProcessor{log: log}
}

func (p *LogSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *LogSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := map[string]interface{}{
		"span":       s.Name(),
		"traceId":    s.SpanContext().TraceID().String(),
		"durationMs": s.EndTime().Sub(s.StartTime()).Milliseconds(),
		"status":     s.Status().Code.String(),
	}
	for _, kv := range s.Attributes() {
		fields[string(kv.Key)] = attrValue(kv)
	}
	p.log.Debug("span finished", fields)
}

func (p *LogSpanProcessor) Shutdown(context.Context) error   { return nil }
func (p *LogSpanProcessor) ForceFlush(context.Context) error { return nil }

func attrValue(kv attribute.KeyValue) interface{} {
	return kv.Value.AsInterface()
}
