package payload

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/wot/config"
	"github.com/zero-day-ai/wot/schema"
)

// instrumentationName is the OpenTelemetry scope of the default tracer and meter.
const instrumentationName = "github.com/zero-day-ai/wot/payload"

// Option configures an Encoder or a Decoder.
type Option func(*options)

// options holds configuration shared by Encoder and Decoder.
type options struct {
	logger      *slog.Logger
	tracer      trace.Tracer
	meter       metric.Meter
	mode        schema.AddressingMode
	contentType string

	tracingOff bool
	metricsOff bool
}

// WithLogger sets a custom logger.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer. Every Encode and Decode call
// runs in its own span.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for the accepted/rejected counters
// and the payload size histogram.
func WithMeter(meter metric.Meter) Option {
	return func(o *options) {
		o.meter = meter
	}
}

// WithMode forces the addressing mode of top-level object payloads.
func WithMode(mode schema.AddressingMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithContentType sets the media type payloads are rendered in:
// config.ContentTypeJSON (default) or config.ContentTypeText.
func WithContentType(contentType string) Option {
	return func(o *options) {
		o.contentType = contentType
	}
}

// WithConfig applies the payload and telemetry sections of cfg. A later
// WithMode or WithContentType overrides the payload section; a telemetry
// switch set to false disables the tracer or meter even when one is given.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		o.mode = cfg.GetAddressingMode()
		o.contentType = cfg.GetContentType()
		o.tracingOff = !cfg.TracingEnabled()
		o.metricsOff = !cfg.MetricsEnabled()
	}
}

func newOptions(opts []Option) options {
	o := options{
		mode:        schema.AddressAuto,
		contentType: config.ContentTypeJSON,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil || o.tracingOff {
		o.tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}
	if o.meter == nil || o.metricsOff {
		o.meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}
	o.logger = o.logger.With("component", "payload")
	return o
}
