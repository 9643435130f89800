// Package wot validates runtime values against the data schemas of Web of
// Things (WoT) Thing Descriptions.
//
// A Thing Description declares, for every interaction affordance, the shape of
// the values a consumer may send and should expect back. Those shapes are data
// schema trees (see package schema). Protocol bindings check a value against
// its schema before it is written to the wire, and reject it when it does not
// conform, instead of sending a request the Thing would refuse.
//
// # Packages
//
//   - schema: immutable data schema trees, their builders and the recursive
//     validator, including addressing of object properties by name or by
//     semantic type
//   - payload: encoders and decoders that validate request and response
//     payloads and render them as JSON or protobuf values
//   - config: YAML configuration for payload encoders
//
// # Quick Start
//
//	heightAge, err := schema.NewObjectSchema().
//		AddProperty("height", schema.NewIntegerSchema().Minimum(0).Maximum(300).Build()).
//		AddProperty("age", schema.NewIntegerSchema().Minimum(0).Maximum(150).Build()).
//		AddRequired("height", "age").
//		Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ok := schema.Validate(heightAge, map[string]any{"height": 120, "age": 39}) // true
//
// # Errors
//
// Validation never fails with an error: a mismatch is an ordinary false result.
// Errors are reserved for misuse at construction time (KindConstruction), bad
// configuration (KindConfiguration) and for payloads a binding refused to send
// (KindValidation wrapping ErrPayloadRejected). All of them are *Error values
// and support errors.Is and errors.As.
//
// # Concurrency
//
// Schemas cannot be modified once built, so a single schema may be validated
// against from any number of goroutines without synchronization.
package wot
