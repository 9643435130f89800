package input_test

import (
	"encoding/json"
	"fmt"

	"github.com/zero-day-ai/wot/input"
	"github.com/zero-day-ai/wot/schema"
)

// Example reads a decoded response keyed by semantic type.
func Example() {
	state := schema.NewObjectSchema().
		AddProperty("on", schema.NewBooleanSchema().AddSemanticType("https://w3id.org/saref#OnOffState").Build()).
		AddProperty("level", schema.NewIntegerSchema().AddSemanticType("https://w3id.org/saref#LightingLevel").Build()).
		MustBuild()

	decoded := map[string]any{
		"https://w3id.org/saref#OnOffState":    true,
		"https://w3id.org/saref#LightingLevel": json.Number("80"),
	}

	byName := input.ByName(state, decoded)
	fmt.Println(input.GetBool(byName, "on", false))
	fmt.Println(input.GetInt(byName, "level", 0))
	fmt.Println(input.GetString(byName, "label", "lamp"))
	// Output:
	// true
	// 80
	// lamp
}

func ExampleLookup() {
	person := schema.NewObjectSchema().
		AddProperty("age", schema.NewIntegerSchema().AddSemanticType("http://example.org#Age").Build()).
		MustBuild()

	v, ok := input.Lookup(person, map[string]any{"http://example.org#Age": 39}, "age")
	fmt.Println(v, ok)

	_, ok = input.Lookup(person, map[string]any{"http://example.org#Age": 39}, "height")
	fmt.Println(ok)
	// Output:
	// 39 true
	// false
}

func ExampleGetFloat64() {
	m := map[string]any{
		"duration": json.Number("1.5"),
		"steps":    4,
		"bad":      "slow",
	}
	fmt.Println(input.GetFloat64(m, "duration", 0))
	fmt.Println(input.GetFloat64(m, "steps", 0))
	fmt.Println(input.GetFloat64(m, "bad", -1))
	// Output:
	// 1.5
	// 4
	// -1
}
