package schema

import (
	"encoding/json"
	"math"
)

// schemaJSON is the TD data schema rendering of a schema node.
type schemaJSON struct {
	SemanticTypes    []string              `json:"@type,omitempty"`
	Type             Datatype              `json:"type"`
	Enum             []any                 `json:"enum,omitempty"`
	ContentMediaType string                `json:"contentMediaType,omitempty"`
	Minimum          any                   `json:"minimum,omitempty"`
	Maximum          any                   `json:"maximum,omitempty"`
	Items            any                   `json:"items,omitempty"`
	MinItems         *int                  `json:"minItems,omitempty"`
	MaxItems         *int                  `json:"maxItems,omitempty"`
	Properties       map[string]DataSchema `json:"properties,omitempty"`
	Required         []string              `json:"required,omitempty"`
}

func (c *common) render(t Datatype) schemaJSON {
	return schemaJSON{
		SemanticTypes:    c.SemanticTypes(),
		Type:             t,
		Enum:             c.Enum(),
		ContentMediaType: c.mediaType,
	}
}

// render leaves out NaN and infinite bounds, which have no JSON number form.
func (b bounds) render(out *schemaJSON) {
	if b.hasMin {
		out.Minimum = boundValue(b.integral, b.minInt, b.min)
	}
	if b.hasMax {
		out.Maximum = boundValue(b.integral, b.maxInt, b.max)
	}
}

func boundValue(integral bool, i int64, f float64) any {
	if integral {
		return i
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// MarshalJSON renders the schema as a TD data schema.
func (s *NullSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.render(DatatypeNull))
}

// MarshalJSON renders the schema as a TD data schema.
func (s *BooleanSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.render(DatatypeBoolean))
}

// MarshalJSON renders the schema as a TD data schema.
func (s *StringSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.render(DatatypeString))
}

// MarshalJSON renders the schema as a TD data schema. NaN and infinite bounds
// are omitted.
func (s *NumberSchema) MarshalJSON() ([]byte, error) {
	out := s.common.render(DatatypeNumber)
	s.bounds.render(&out)
	return json.Marshal(out)
}

// MarshalJSON renders the schema as a TD data schema.
func (s *IntegerSchema) MarshalJSON() ([]byte, error) {
	out := s.common.render(DatatypeInteger)
	s.bounds.render(&out)
	return json.Marshal(out)
}

// MarshalJSON renders the schema as a TD data schema. A single item schema
// is rendered as an object, several as an array.
func (s *ArraySchema) MarshalJSON() ([]byte, error) {
	out := s.render(DatatypeArray)
	switch len(s.items) {
	case 0:
	case 1:
		out.Items = s.items[0]
	default:
		out.Items = s.Items()
	}
	if s.hasMinItems {
		n := s.minItems
		out.MinItems = &n
	}
	if s.hasMaxItems {
		n := s.maxItems
		out.MaxItems = &n
	}
	return json.Marshal(out)
}

// MarshalJSON renders the schema as a TD data schema.
func (s *ObjectSchema) MarshalJSON() ([]byte, error) {
	out := s.render(DatatypeObject)
	if len(s.properties) > 0 {
		out.Properties = s.Properties()
	}
	if len(s.required) > 0 {
		out.Required = s.Required()
	}
	return json.Marshal(out)
}
