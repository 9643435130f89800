package payload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/zero-day-ai/wot"
	"github.com/zero-day-ai/wot/config"
	"github.com/zero-day-ai/wot/schema"
)

// Body is a serialized payload ready to be handed to a protocol binding.
type Body struct {
	// ID identifies the payload in logs and traces.
	ID uuid.UUID

	// ContentType is the media type of Bytes.
	ContentType string

	// Bytes is the serialized payload.
	Bytes []byte
}

// Encoder validates values against a data schema and serializes the ones
// that conform. An Encoder is safe for concurrent use.
type Encoder struct {
	schema schema.DataSchema
	opts   options
	inst   *instruments
}

// NewEncoder creates an Encoder for request payloads described by s.
func NewEncoder(s schema.DataSchema, opts ...Option) *Encoder {
	o := newOptions(opts)
	return &Encoder{schema: s, opts: o, inst: mustInstruments(o)}
}

// Encode validates value, re-keys objects addressed by semantic type to
// property names and serializes the result in the configured content type.
//
// A value that does not conform returns a *wot.Error of kind
// wot.KindValidation matching wot.ErrPayloadRejected; nothing is serialized.
func (e *Encoder) Encode(ctx context.Context, value any) (Body, error) {
	const op = "Encoder.Encode"

	ctx, span := startSpan(ctx, e.opts, "payload.Encode", e.schema)
	defer span.End()

	instance, err := e.instantiate(op, value)
	if err != nil {
		e.inst.recordRejected(ctx, span, "request", err)
		return Body{}, err
	}

	data, err := render(e.opts.contentType, instance)
	if err != nil {
		err = wot.NewEncodingError(op, err).WithContext(map[string]any{"content_type": e.opts.contentType})
		e.opts.logger.ErrorContext(ctx, "failed to encode payload", "error", err)
		e.inst.recordRejected(ctx, span, "request", err)
		return Body{}, err
	}

	body := Body{ID: uuid.New(), ContentType: e.opts.contentType, Bytes: data}
	span.SetAttributes(payloadID(body.ID))
	e.inst.recordAccepted(ctx, span, "request", len(data))
	e.opts.logger.DebugContext(ctx, "payload encoded",
		"id", body.ID.String(),
		"content_type", body.ContentType,
		"size", len(data))
	return body, nil
}

// EncodeProto is like Encode but returns the instance as a protobuf Value,
// for bindings that carry payloads in protobuf messages. Numbers become
// doubles.
func (e *Encoder) EncodeProto(ctx context.Context, value any) (*structpb.Value, error) {
	const op = "Encoder.EncodeProto"

	ctx, span := startSpan(ctx, e.opts, "payload.EncodeProto", e.schema)
	defer span.End()

	instance, err := e.instantiate(op, value)
	if err != nil {
		e.inst.recordRejected(ctx, span, "request", err)
		return nil, err
	}

	pv, err := structpb.NewValue(protoCompatible(instance))
	if err != nil {
		err = wot.NewEncodingError(op, err)
		e.inst.recordRejected(ctx, span, "request", err)
		return nil, err
	}

	e.inst.recordAccepted(ctx, span, "request", proto.Size(pv))
	return pv, nil
}

func (e *Encoder) instantiate(op string, value any) (any, error) {
	instance, err := schema.InstantiateMode(e.schema, value, e.opts.mode)
	if err != nil {
		return nil, rejected(e.opts, op, err)
	}
	return instance, nil
}

// Decoder parses response payloads and validates them against a data schema.
// A Decoder is safe for concurrent use.
type Decoder struct {
	schema schema.DataSchema
	opts   options
	inst   *instruments
}

// NewDecoder creates a Decoder for response payloads described by s.
func NewDecoder(s schema.DataSchema, opts ...Option) *Decoder {
	o := newOptions(opts)
	return &Decoder{schema: s, opts: o, inst: mustInstruments(o)}
}

// Decode parses data in the configured content type and validates the result.
//
// JSON numbers are decoded as json.Number so that integral and fractional
// literals stay distinguishable. The decoded value is returned as is, keyed
// the way the sender keyed it.
func (d *Decoder) Decode(ctx context.Context, data []byte) (any, error) {
	const op = "Decoder.Decode"

	ctx, span := startSpan(ctx, d.opts, "payload.Decode", d.schema)
	defer span.End()

	value, err := parse(d.opts.contentType, d.schema, data)
	if err != nil {
		err = wot.NewEncodingError(op, err).WithContext(map[string]any{"content_type": d.opts.contentType})
		d.opts.logger.WarnContext(ctx, "failed to decode payload", "error", err)
		d.inst.recordRejected(ctx, span, "response", err)
		return nil, err
	}

	if err := schema.CheckMode(d.schema, value, d.opts.mode); err != nil {
		err = rejected(d.opts, op, err)
		d.inst.recordRejected(ctx, span, "response", err)
		return nil, err
	}

	d.inst.recordAccepted(ctx, span, "response", len(data))
	return value, nil
}

// rejected wraps a schema mismatch into the error returned to callers.
func rejected(o options, op string, err error) error {
	ctx := map[string]any{"addressing": o.mode.String()}
	var mismatch *schema.MismatchError
	if errors.As(err, &mismatch) {
		ctx["path"] = mismatch.Path
	}
	o.logger.Debug("payload rejected", "op", op, "error", err)
	return wot.NewValidationError(op, fmt.Errorf("%w: %w", wot.ErrPayloadRejected, err)).WithContext(ctx)
}

// render serializes an instance produced by schema.Instantiate.
func render(contentType string, instance any) ([]byte, error) {
	switch contentType {
	case config.ContentTypeJSON:
		return json.Marshal(instance)
	case config.ContentTypeText:
		s, ok := scalarText(instance)
		if !ok {
			return nil, fmt.Errorf("%w: %s cannot carry a %T", wot.ErrUnsupportedContentType, contentType, instance)
		}
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("%w: %q", wot.ErrUnsupportedContentType, contentType)
	}
}

// scalarText renders a scalar the way it reads in a text/plain body. ok is
// false for arrays and objects.
func scalarText(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "null", true
	case json.Number:
		return v.String(), true
	case *big.Int:
		return v.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), true
	default:
		return "", false
	}
}

// parse decodes a response body. text/plain bodies are read according to
// the datatype of s.
func parse(contentType string, s schema.DataSchema, data []byte) (any, error) {
	switch contentType {
	case config.ContentTypeJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("invalid JSON payload: %w", err)
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid JSON payload: trailing data")
		}
		return v, nil
	case config.ContentTypeText:
		return parseText(s, string(data))
	default:
		return nil, fmt.Errorf("%w: %q", wot.ErrUnsupportedContentType, contentType)
	}
}

func parseText(s schema.DataSchema, text string) (any, error) {
	if s == nil {
		return text, nil
	}
	switch s.Datatype() {
	case schema.DatatypeString:
		return text, nil
	case schema.DatatypeBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("invalid boolean payload %q", text)
		}
		return b, nil
	case schema.DatatypeNumber, schema.DatatypeInteger:
		n := json.Number(strings.TrimSpace(text))
		if _, err := n.Float64(); err != nil {
			return nil, fmt.Errorf("invalid numeric payload %q", text)
		}
		return n, nil
	case schema.DatatypeNull:
		if t := strings.TrimSpace(text); t != "" && t != "null" {
			return nil, fmt.Errorf("invalid null payload %q", text)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s cannot carry a %s", wot.ErrUnsupportedContentType, config.ContentTypeText, s.Datatype())
	}
}

// protoCompatible converts an instance into the types structpb.NewValue accepts.
func protoCompatible(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = protoCompatible(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = protoCompatible(e)
		}
		return out
	case json.Number:
		f, _ := v.Float64()
		return f
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return v
	}
}
