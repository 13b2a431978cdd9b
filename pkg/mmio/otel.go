package mmio

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// otelCounters carries the optional OpenTelemetry access counters. A nil
// receiver means instrumentation was not requested and every method is a
// no-op.
type otelCounters struct {
	reads  metric.Int64Counter
	writes metric.Int64Counter
}

func newOtelCounters(meter metric.Meter) *otelCounters {
	if meter == nil {
		return nil
	}
	reads, err := meter.Int64Counter("mmio.reads",
		metric.WithDescription("Register reads on the mapped window."))
	if err != nil {
		internalLogger.warnf("otel reads counter: %v", err)
		return nil
	}
	writes, err := meter.Int64Counter("mmio.writes",
		metric.WithDescription("Register writes on the mapped window."))
	if err != nil {
		internalLogger.warnf("otel writes counter: %v", err)
		return nil
	}
	return &otelCounters{reads: reads, writes: writes}
}

func (c *otelCounters) observe(op accessOp) {
	if c == nil {
		return
	}
	switch op {
	case opRead:
		c.reads.Add(context.Background(), 1)
	case opWrite:
		c.writes.Add(context.Background(), 1)
	}
}

// startSpan starts a span on tracer, or hands back a recording-free span
// when no tracer is configured.
func startSpan(tracer trace.Tracer, name string) trace.Span {
	if tracer == nil {
		return trace.SpanFromContext(context.Background())
	}
	_, span := tracer.Start(context.Background(), name)
	return span
}
