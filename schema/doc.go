// Package schema provides the data schemas of Thing Descriptions and the
// validator that checks runtime values against them.
//
// A schema tree is built once with the New*Schema builders and is immutable
// afterwards. Validation is a pure function of a schema and a value.
//
// # Basic Usage
//
// Creating and using scalar schemas:
//
//	str := schema.NewStringSchema().Build()
//	schema.Validate(str, "on")  // true
//	schema.Validate(str, 1)     // false: no coercion
//
//	level := schema.NewIntegerSchema().Minimum(0).Maximum(100).Build()
//	schema.Validate(level, 42)   // true
//	schema.Validate(level, 42.5) // false: not an integer
//
// # Objects
//
// Object schemas declare properties and the names of the required ones. Build
// fails when a required property is not declared:
//
//	person, err := schema.NewObjectSchema().
//		AddProperty("height", schema.NewIntegerSchema().
//			AddSemanticType("http://example.org#Height").Build()).
//		AddProperty("age", schema.NewIntegerSchema().
//			AddSemanticType("http://example.org#Age").Build()).
//		AddRequired("height", "age").
//		Build()
//
// The keys of an object value address properties either by name or by
// semantic type, never both in the same object:
//
//	schema.Validate(person, map[string]any{"height": 120, "age": 39})          // true
//	schema.Validate(person, map[string]any{
//		"http://example.org#Height": 120,
//		"http://example.org#Age":    39,
//	}) // true
//	schema.Validate(person, map[string]any{"height": 120, "http://example.org#Age": 39}) // false
//
// Keys that address no property are ignored. A semantic type shared by more
// than one property cannot be used as a key: the value is rejected.
//
// # Arrays
//
// An array schema with no item schema accepts any elements, one item schema
// applies to every element, and several item schemas are matched by position
// against a sequence of exactly that length.
//
// # Values
//
// Values are the in-memory result of decoding a payload: nil, bool, string,
// Go integer and floating point kinds, json.Number, *big.Int, slices and
// arrays, and maps with string keys. Integer schemas only accept integral
// representations: Go integer kinds, *big.Int and json.Number literals with no
// fraction or exponent. A float64 never matches an integer schema.
//
// # Diagnostics
//
// Validate returns a bool. Check returns a *MismatchError locating the first
// mismatch with a JSON Pointer, for logs and error messages.
package schema
