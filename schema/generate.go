package schema

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// FromType derives a schema from the Go type of t using reflection. The
// schema describes the values the type serializes to, not t itself.
//
// Supported types:
//   - struct: an object schema with a property per exported field
//   - slice/array: an array schema with one item schema; an empty array
//     schema when the element type is an interface
//   - map with string keys: an object schema with no declared properties
//   - string, bool, int*, uint*, float*, json.Number, *big.Int
//   - time.Time: a string schema
//
// Struct tags:
//   - `json:"name"`: uses the JSON name for the property; `json:"-"` skips it
//   - `json:"name,omitempty"`: the property is optional
//   - `wot:"uri uri..."`: space-separated semantic types of the property
//
// Interface-typed fields are left undeclared, so any value is accepted for
// them. Recursive types are reported as an error.
func FromType(t any) (DataSchema, error) {
	if t == nil {
		return nil, fmt.Errorf("schema: cannot derive a schema from nil")
	}
	return fromReflectType(reflect.TypeOf(t), nil, map[reflect.Type]bool{})
}

var timeType = reflect.TypeOf(time.Time{})

func fromReflectType(t reflect.Type, semanticTypes []string, visiting map[reflect.Type]bool) (DataSchema, error) {
	for t.Kind() == reflect.Pointer {
		if t == bigIntPtrType {
			return NewIntegerSchema().AddSemanticType(semanticTypes...).Build(), nil
		}
		t = t.Elem()
	}

	switch {
	case t == timeType:
		return NewStringSchema().AddSemanticType(semanticTypes...).Build(), nil
	case t == jsonNumberType:
		return NewNumberSchema().AddSemanticType(semanticTypes...).Build(), nil
	}

	switch t.Kind() {
	case reflect.Struct:
		if visiting[t] {
			return nil, fmt.Errorf("schema: recursive type %s", t)
		}
		visiting[t] = true
		defer delete(visiting, t)
		return fromStruct(t, semanticTypes, visiting)
	case reflect.Slice, reflect.Array:
		b := NewArraySchema().AddSemanticType(semanticTypes...)
		if t.Elem().Kind() != reflect.Interface {
			item, err := fromReflectType(t.Elem(), nil, visiting)
			if err != nil {
				return nil, err
			}
			b.AddItem(item)
		}
		if t.Kind() == reflect.Array {
			b.MinItems(t.Len()).MaxItems(t.Len())
		}
		return b.Build(), nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("schema: map key type %s is not a string", t.Key())
		}
		return buildObject(NewObjectSchema().AddSemanticType(semanticTypes...))
	case reflect.String:
		return NewStringSchema().AddSemanticType(semanticTypes...).Build(), nil
	case reflect.Bool:
		return NewBooleanSchema().AddSemanticType(semanticTypes...).Build(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewIntegerSchema().AddSemanticType(semanticTypes...).Build(), nil
	case reflect.Float32, reflect.Float64:
		return NewNumberSchema().AddSemanticType(semanticTypes...).Build(), nil
	default:
		return nil, fmt.Errorf("schema: unsupported type %s", t)
	}
}

func fromStruct(t reflect.Type, semanticTypes []string, visiting map[reflect.Type]bool) (DataSchema, error) {
	b := NewObjectSchema().AddSemanticType(semanticTypes...)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Type.Kind() == reflect.Interface {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		name := field.Name
		omitempty := false
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				name = parts[0]
			}
			for _, part := range parts[1:] {
				if part == "omitempty" {
					omitempty = true
					break
				}
			}
		}

		prop, err := fromReflectType(field.Type, strings.Fields(field.Tag.Get("wot")), visiting)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		b.AddProperty(name, prop)

		// Pointers, slices and maps may serialize as null, so they are never required.
		if !omitempty && !nullable(field.Type) {
			b.AddRequired(name)
		}
	}

	return buildObject(b)
}

func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map:
		return true
	default:
		return false
	}
}

// buildObject avoids returning a typed nil DataSchema on error.
func buildObject(b *ObjectBuilder) (DataSchema, error) {
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	return s, nil
}
