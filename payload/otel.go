package payload

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/wot/schema"
)

// instruments holds the OpenTelemetry metric instruments of an Encoder or a
// Decoder. They are created once and reused for every payload.
type instruments struct {
	// accepted increments for each payload that conforms to its schema
	accepted metric.Int64Counter

	// rejected increments for each payload that does not
	rejected metric.Int64Counter

	// size records the serialized size of accepted payloads in bytes
	size metric.Int64Histogram
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	inst := &instruments{}
	var err error

	inst.accepted, err = meter.Int64Counter(
		"wot.payload.accepted",
		metric.WithDescription("Number of payloads that conform to their data schema"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create accepted counter: %w", err)
	}

	inst.rejected, err = meter.Int64Counter(
		"wot.payload.rejected",
		metric.WithDescription("Number of payloads rejected by their data schema"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create rejected counter: %w", err)
	}

	inst.size, err = meter.Int64Histogram(
		"wot.payload.size",
		metric.WithDescription("Serialized payload size"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create size histogram: %w", err)
	}

	return inst, nil
}

// mustInstruments falls back to no-op instruments when the meter fails, so a
// broken metrics pipeline never blocks payloads.
func mustInstruments(o options) *instruments {
	inst, err := newInstruments(o.meter)
	if err != nil {
		o.logger.Warn("failed to create payload metrics, metrics disabled", "error", err)
		inst, _ = newInstruments(metricnoop.NewMeterProvider().Meter(instrumentationName))
	}
	return inst
}

// startSpan starts the span of one Encode or Decode call.
func startSpan(ctx context.Context, o options, name string, s schema.DataSchema) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("wot.content_type", o.contentType),
		attribute.String("wot.addressing", o.mode.String()),
	}
	if s != nil {
		attrs = append(attrs, attribute.String("wot.datatype", string(s.Datatype())))
	}
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func payloadID(id uuid.UUID) attribute.KeyValue {
	return attribute.String("wot.payload.id", id.String())
}

// recordAccepted marks the span as successful and updates the metrics.
func (i *instruments) recordAccepted(ctx context.Context, span trace.Span, direction string, size int) {
	opts := metric.WithAttributes(attribute.String("direction", direction))
	i.accepted.Add(ctx, 1, opts)
	i.size.Record(ctx, int64(size), opts)

	span.SetAttributes(attribute.Int("wot.payload.size", size))
	span.SetStatus(codes.Ok, "")
}

// recordRejected marks the span as failed. Only schema mismatches count as
// rejected payloads; encoding failures are recorded on the span alone.
func (i *instruments) recordRejected(ctx context.Context, span trace.Span, direction string, err error) {
	var mismatch *schema.MismatchError
	if errors.As(err, &mismatch) {
		i.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", direction)))
		span.SetAttributes(attribute.String("wot.mismatch.path", mismatch.Path))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
