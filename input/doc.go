// Package input provides type-safe helpers for reading values out of decoded
// payloads (map[string]any).
//
// A payload.Decoder hands back the value the Thing sent: numbers arrive as
// json.Number and object keys are whatever the sender chose, property names
// or semantic types. The getters coerce json.Number and Go numeric kinds, and
// never panic or error. A missing key, a nil value or a type mismatch yields
// the default.
//
// # Usage
//
//	value, err := dec.Decode(ctx, resp)
//	state, _ := value.(map[string]any)
//
//	// Works for {"level": 80} and {"https://w3id.org/saref#LightingLevel": 80}
//	state = input.ByName(stateSchema, state)
//	level := input.GetInt(state, "level", 0)
//	on := input.GetBool(state, "on", false)
//
// Lookup reads a single property without copying the map:
//
//	raw, ok := input.Lookup(stateSchema, state, "level")
package input
