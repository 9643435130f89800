// Package payload turns application values into request bodies and response
// bodies into validated values, using the data schema of an interaction
// affordance.
//
// An Encoder validates a value before anything is serialized. Objects keyed by
// semantic type are re-keyed by property name, so the Thing always receives
// the names its Thing Description declares:
//
//	enc := payload.NewEncoder(personSchema, payload.WithLogger(logger))
//	body, err := enc.Encode(ctx, map[string]any{
//		"http://example.org#Height": 120,
//		"http://example.org#Age":    39,
//	})
//	if errors.Is(err, wot.ErrPayloadRejected) {
//		// the value does not conform; nothing was serialized
//	}
//	// body.Bytes == {"age":39,"height":120}
//
// A Decoder parses a response body and validates it:
//
//	dec := payload.NewDecoder(stateSchema)
//	value, err := dec.Decode(ctx, resp)
//
// Both accept a tracer and a meter. Without them, no-op implementations are
// used.
package payload
