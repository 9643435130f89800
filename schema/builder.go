package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zero-day-ai/wot"
)

var (
	// ErrRequiredNotDeclared indicates a required property name that is not a
	// key of the object's property map.
	ErrRequiredNotDeclared = fmt.Errorf("required property is not in the list of properties: %w", wot.ErrInvalidSchema)

	// ErrNilSchema indicates a nil schema was passed where a property schema was expected.
	ErrNilSchema = fmt.Errorf("nil property schema: %w", wot.ErrInvalidSchema)
)

// builder carries the attributes every schema variant accepts. B is the
// concrete builder type returned by the fluent methods.
type builder[B any] struct {
	self          B
	semanticTypes map[string]struct{}
	enum          []any
	mediaType     string
}

// AddSemanticType attaches one or more semantic type URIs to the schema.
// Duplicates and empty strings are ignored.
func (b *builder[B]) AddSemanticType(uris ...string) B {
	for _, uri := range uris {
		if uri == "" {
			continue
		}
		if b.semanticTypes == nil {
			b.semanticTypes = make(map[string]struct{})
		}
		b.semanticTypes[uri] = struct{}{}
	}
	return b.self
}

// AddEnum adds permitted values. A schema with an enumeration only matches
// values equal to one of its members.
func (b *builder[B]) AddEnum(values ...any) B {
	b.enum = append(b.enum, values...)
	return b.self
}

// ContentMediaType records the media type of string content (e.g. "text/plain").
func (b *builder[B]) ContentMediaType(mediaType string) B {
	b.mediaType = mediaType
	return b.self
}

func (b *builder[B]) attrs() common {
	c := common{mediaType: b.mediaType}
	if len(b.semanticTypes) > 0 {
		c.semanticTypes = make([]string, 0, len(b.semanticTypes))
		for uri := range b.semanticTypes {
			c.semanticTypes = append(c.semanticTypes, uri)
		}
		sort.Strings(c.semanticTypes)
	}
	if len(b.enum) > 0 {
		c.enum = make([]any, len(b.enum))
		copy(c.enum, b.enum)
	}
	return c
}

// NullBuilder builds a *NullSchema.
type NullBuilder struct {
	builder[*NullBuilder]
}

// NewNullSchema starts building a null schema.
func NewNullSchema() *NullBuilder {
	b := &NullBuilder{}
	b.self = b
	return b
}

// Build returns the schema.
func (b *NullBuilder) Build() *NullSchema {
	return &NullSchema{common: b.attrs()}
}

// BooleanBuilder builds a *BooleanSchema.
type BooleanBuilder struct {
	builder[*BooleanBuilder]
}

// NewBooleanSchema starts building a boolean schema.
func NewBooleanSchema() *BooleanBuilder {
	b := &BooleanBuilder{}
	b.self = b
	return b
}

// Build returns the schema.
func (b *BooleanBuilder) Build() *BooleanSchema {
	return &BooleanSchema{common: b.attrs()}
}

// StringBuilder builds a *StringSchema.
type StringBuilder struct {
	builder[*StringBuilder]
}

// NewStringSchema starts building a string schema.
func NewStringSchema() *StringBuilder {
	b := &StringBuilder{}
	b.self = b
	return b
}

// Build returns the schema.
func (b *StringBuilder) Build() *StringSchema {
	return &StringSchema{common: b.attrs()}
}

// NumberBuilder builds a *NumberSchema.
type NumberBuilder struct {
	builder[*NumberBuilder]
	bounds bounds
}

// NewNumberSchema starts building a number schema.
func NewNumberSchema() *NumberBuilder {
	b := &NumberBuilder{}
	b.self = b
	return b
}

// Minimum sets the inclusive lower bound.
func (b *NumberBuilder) Minimum(v float64) *NumberBuilder {
	b.bounds.min, b.bounds.hasMin = v, true
	return b
}

// Maximum sets the inclusive upper bound.
func (b *NumberBuilder) Maximum(v float64) *NumberBuilder {
	b.bounds.max, b.bounds.hasMax = v, true
	return b
}

// Build returns the schema. Bounds are not cross-checked: a minimum above the
// maximum yields a schema no value satisfies.
func (b *NumberBuilder) Build() *NumberSchema {
	return &NumberSchema{common: b.attrs(), bounds: b.bounds}
}

// IntegerBuilder builds an *IntegerSchema.
type IntegerBuilder struct {
	builder[*IntegerBuilder]
	bounds bounds
}

// NewIntegerSchema starts building an integer schema.
func NewIntegerSchema() *IntegerBuilder {
	b := &IntegerBuilder{}
	b.self = b
	return b
}

// Minimum sets the inclusive lower bound.
func (b *IntegerBuilder) Minimum(v int64) *IntegerBuilder {
	b.bounds.min, b.bounds.minInt, b.bounds.hasMin = float64(v), v, true
	return b
}

// Maximum sets the inclusive upper bound.
func (b *IntegerBuilder) Maximum(v int64) *IntegerBuilder {
	b.bounds.max, b.bounds.maxInt, b.bounds.hasMax = float64(v), v, true
	return b
}

// Build returns the schema. Bounds are not cross-checked.
func (b *IntegerBuilder) Build() *IntegerSchema {
	bs := b.bounds
	bs.integral = true
	return &IntegerSchema{common: b.attrs(), bounds: bs}
}

// ArrayBuilder builds an *ArraySchema.
type ArrayBuilder struct {
	builder[*ArrayBuilder]
	items                    []DataSchema
	minItems, maxItems       int
	hasMinItems, hasMaxItems bool
}

// NewArraySchema starts building an array schema.
func NewArraySchema() *ArrayBuilder {
	b := &ArrayBuilder{}
	b.self = b
	return b
}

// AddItem appends an item schema. Nil schemas, typed or untyped, are ignored.
func (b *ArrayBuilder) AddItem(items ...DataSchema) *ArrayBuilder {
	for _, item := range items {
		if !isNilSchema(item) {
			b.items = append(b.items, item)
		}
	}
	return b
}

// MinItems sets the inclusive lower bound on the number of elements.
func (b *ArrayBuilder) MinItems(n int) *ArrayBuilder {
	b.minItems, b.hasMinItems = n, true
	return b
}

// MaxItems sets the inclusive upper bound on the number of elements.
func (b *ArrayBuilder) MaxItems(n int) *ArrayBuilder {
	b.maxItems, b.hasMaxItems = n, true
	return b
}

// Build returns the schema.
func (b *ArrayBuilder) Build() *ArraySchema {
	s := &ArraySchema{
		common:      b.attrs(),
		minItems:    b.minItems,
		maxItems:    b.maxItems,
		hasMinItems: b.hasMinItems,
		hasMaxItems: b.hasMaxItems,
	}
	if len(b.items) > 0 {
		s.items = make([]DataSchema, len(b.items))
		copy(s.items, b.items)
	}
	return s
}

// ObjectBuilder builds an *ObjectSchema.
type ObjectBuilder struct {
	builder[*ObjectBuilder]
	properties map[string]DataSchema
	required   []string
	nilProps   []string
}

// NewObjectSchema starts building an object schema.
func NewObjectSchema() *ObjectBuilder {
	b := &ObjectBuilder{properties: make(map[string]DataSchema)}
	b.self = b
	return b
}

// AddProperty declares a property. Declaring a name twice replaces the
// earlier schema.
func (b *ObjectBuilder) AddProperty(name string, s DataSchema) *ObjectBuilder {
	if isNilSchema(s) {
		b.nilProps = append(b.nilProps, name)
		return b
	}
	b.properties[name] = s
	return b
}

// AddRequired marks properties as required. Every name must also be declared
// with AddProperty before Build is called.
func (b *ObjectBuilder) AddRequired(names ...string) *ObjectBuilder {
	for _, name := range names {
		if !contains(b.required, name) {
			b.required = append(b.required, name)
		}
	}
	return b
}

// Build returns the schema, or a construction error when a required property
// is not declared or a property was declared with a nil schema.
func (b *ObjectBuilder) Build() (*ObjectSchema, error) {
	const op = "ObjectBuilder.Build"

	if len(b.nilProps) > 0 {
		return nil, wot.NewConstructionError(op, fmt.Errorf("%w: %s", ErrNilSchema, strings.Join(b.nilProps, ", ")))
	}

	var missing []string
	for _, name := range b.required {
		if _, ok := b.properties[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, wot.NewConstructionError(op, fmt.Errorf("%w: %s", ErrRequiredNotDeclared, strings.Join(missing, ", ")))
	}

	s := &ObjectSchema{
		common:     b.attrs(),
		properties: make(map[string]DataSchema, len(b.properties)),
		names:      make([]string, 0, len(b.properties)),
		required:   make([]string, len(b.required)),
	}
	for name, p := range b.properties {
		s.properties[name] = p
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	copy(s.required, b.required)
	return s, nil
}

// MustBuild is like Build but panics on a construction error. It is intended
// for schemas declared at package level.
func (b *ObjectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
