package schema

import (
	"math"
	"math/big"
	"sort"
)

// Datatype is the value of the TD "type" keyword of a data schema.
type Datatype string

const (
	DatatypeNull    Datatype = "null"
	DatatypeBoolean Datatype = "boolean"
	DatatypeString  Datatype = "string"
	DatatypeNumber  Datatype = "number"
	DatatypeInteger Datatype = "integer"
	DatatypeArray   Datatype = "array"
	DatatypeObject  Datatype = "object"
)

// DataSchema is a node of an immutable schema tree.
//
// The set of implementations is closed: *NullSchema, *BooleanSchema,
// *StringSchema, *NumberSchema, *IntegerSchema, *ArraySchema and *ObjectSchema.
// Schemas are obtained from the New*Schema builders and cannot be modified
// afterwards; all accessors return copies.
type DataSchema interface {
	// Datatype returns the TD type keyword of the schema.
	Datatype() Datatype

	// SemanticTypes returns the sorted semantic type URIs attached to the schema.
	SemanticTypes() []string

	// HasSemanticType reports whether uri is one of the schema's semantic types.
	HasSemanticType(uri string) bool

	// Enum returns the permitted values, or nil when no enumeration is declared.
	Enum() []any

	// ContentMediaType returns the declared media type of string content, if any.
	ContentMediaType() string

	sealed()
}

// common holds the attributes shared by every schema variant.
type common struct {
	semanticTypes []string
	enum          []any
	mediaType     string
}

func (c *common) SemanticTypes() []string {
	if len(c.semanticTypes) == 0 {
		return nil
	}
	out := make([]string, len(c.semanticTypes))
	copy(out, c.semanticTypes)
	return out
}

func (c *common) HasSemanticType(uri string) bool {
	i := sort.SearchStrings(c.semanticTypes, uri)
	return i < len(c.semanticTypes) && c.semanticTypes[i] == uri
}

func (c *common) Enum() []any {
	if c.enum == nil {
		return nil
	}
	out := make([]any, len(c.enum))
	copy(out, c.enum)
	return out
}

func (c *common) ContentMediaType() string {
	return c.mediaType
}

func (c *common) sealed() {}

// NullSchema matches only the null value.
type NullSchema struct {
	common
}

func (*NullSchema) Datatype() Datatype { return DatatypeNull }

// BooleanSchema matches boolean values.
type BooleanSchema struct {
	common
}

func (*BooleanSchema) Datatype() Datatype { return DatatypeBoolean }

// StringSchema matches string values.
type StringSchema struct {
	common
}

func (*StringSchema) Datatype() Datatype { return DatatypeString }

// bounds is an optional inclusive numeric range. Integer schemas keep the
// exact int64 bounds in minInt and maxInt; min and max are their float64 views.
type bounds struct {
	min, max       float64
	minInt, maxInt int64
	hasMin, hasMax bool
	integral       bool
}

// lower returns the exact lower bound, or nil when it is NaN.
func (b bounds) lower() *big.Float {
	if b.integral {
		return new(big.Float).SetInt64(b.minInt)
	}
	if math.IsNaN(b.min) {
		return nil
	}
	return big.NewFloat(b.min)
}

// upper returns the exact upper bound, or nil when it is NaN.
func (b bounds) upper() *big.Float {
	if b.integral {
		return new(big.Float).SetInt64(b.maxInt)
	}
	if math.IsNaN(b.max) {
		return nil
	}
	return big.NewFloat(b.max)
}

// NumberSchema matches any numeric value, integral or fractional, within
// its optional inclusive bounds.
type NumberSchema struct {
	common
	bounds
}

func (*NumberSchema) Datatype() Datatype { return DatatypeNumber }

// Minimum returns the inclusive lower bound, if declared.
func (s *NumberSchema) Minimum() (float64, bool) { return s.min, s.hasMin }

// Maximum returns the inclusive upper bound, if declared.
func (s *NumberSchema) Maximum() (float64, bool) { return s.max, s.hasMax }

// IntegerSchema matches numeric values with an integral representation.
type IntegerSchema struct {
	common
	bounds
}

func (*IntegerSchema) Datatype() Datatype { return DatatypeInteger }

// Minimum returns the inclusive lower bound as a float64, which rounds
// bounds beyond 2^53; see MinimumInt.
func (s *IntegerSchema) Minimum() (float64, bool) { return s.min, s.hasMin }

// Maximum returns the inclusive upper bound as a float64; see MaximumInt.
func (s *IntegerSchema) Maximum() (float64, bool) { return s.max, s.hasMax }

// MinimumInt returns the lower bound as an integer, if declared.
func (s *IntegerSchema) MinimumInt() (int64, bool) { return s.minInt, s.hasMin }

// MaximumInt returns the upper bound as an integer, if declared.
func (s *IntegerSchema) MaximumInt() (int64, bool) { return s.maxInt, s.hasMax }

// ArraySchema matches ordered sequences.
//
// With no item schemas any element is accepted, with one item schema every
// element must match it, and with several item schemas the sequence must have
// exactly that many elements, matched by position.
type ArraySchema struct {
	common
	items                    []DataSchema
	minItems, maxItems       int
	hasMinItems, hasMaxItems bool
}

func (*ArraySchema) Datatype() Datatype { return DatatypeArray }

// Items returns the item schemas in declaration order.
func (s *ArraySchema) Items() []DataSchema {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]DataSchema, len(s.items))
	copy(out, s.items)
	return out
}

// MinItems returns the inclusive lower bound on the sequence length, if declared.
func (s *ArraySchema) MinItems() (int, bool) { return s.minItems, s.hasMinItems }

// MaxItems returns the inclusive upper bound on the sequence length, if declared.
func (s *ArraySchema) MaxItems() (int, bool) { return s.maxItems, s.hasMaxItems }

// ObjectSchema matches keyed mappings whose keys address its properties either
// by property name or by semantic type.
type ObjectSchema struct {
	common
	properties map[string]DataSchema
	names      []string // sorted property names
	required   []string
}

func (*ObjectSchema) Datatype() Datatype { return DatatypeObject }

// Properties returns a copy of the property map.
func (s *ObjectSchema) Properties() map[string]DataSchema {
	out := make(map[string]DataSchema, len(s.properties))
	for k, v := range s.properties {
		out[k] = v
	}
	return out
}

// Property returns the schema of the named property.
func (s *ObjectSchema) Property(name string) (DataSchema, bool) {
	p, ok := s.properties[name]
	return p, ok
}

// PropertyNames returns the declared property names, sorted.
func (s *ObjectSchema) PropertyNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Required returns the required property names in declaration order.
func (s *ObjectSchema) Required() []string {
	out := make([]string, len(s.required))
	copy(out, s.required)
	return out
}

// IsRequired reports whether name is a required property.
func (s *ObjectSchema) IsRequired(name string) bool {
	for _, r := range s.required {
		if r == name {
			return true
		}
	}
	return false
}

// PropertiesBySemanticType returns the sorted names of the properties whose
// schema carries the semantic type uri.
func (s *ObjectSchema) PropertiesBySemanticType(uri string) []string {
	var out []string
	for _, name := range s.names {
		if s.properties[name].HasSemanticType(uri) {
			out = append(out, name)
		}
	}
	return out
}

var (
	_ DataSchema = (*NullSchema)(nil)
	_ DataSchema = (*BooleanSchema)(nil)
	_ DataSchema = (*StringSchema)(nil)
	_ DataSchema = (*NumberSchema)(nil)
	_ DataSchema = (*IntegerSchema)(nil)
	_ DataSchema = (*ArraySchema)(nil)
	_ DataSchema = (*ObjectSchema)(nil)
)
