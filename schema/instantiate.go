package schema

import (
	"reflect"
)

// Instantiate validates value against s and returns the instance a protocol
// binding should serialize: a copy of value in which every object addressed by
// semantic type is re-keyed by property name, at any depth.
//
// Mappings come back as map[string]any and sequences as []any. In objects
// addressed by name, keys that match no property are kept; in objects addressed
// by semantic type they are dropped, since they have no property name.
// When value does not conform, the *MismatchError from Check is returned.
func Instantiate(s DataSchema, value any) (any, error) {
	return InstantiateMode(s, value, AddressAuto)
}

// InstantiateMode is like Instantiate but forces the addressing mode of a
// top-level object.
func InstantiateMode(s DataSchema, value any, mode AddressingMode) (any, error) {
	if err := CheckMode(s, value, mode); err != nil {
		return nil, err
	}
	return instantiate(s, indirect(value), mode), nil
}

// instantiate assumes rv has already been checked against s.
func instantiate(s DataSchema, rv reflect.Value, mode AddressingMode) any {
	if !rv.IsValid() {
		return nil
	}

	switch s := s.(type) {
	case *ObjectSchema:
		b, err := bind(s, rv, "", mode)
		if err != nil {
			return plain(rv)
		}
		out := make(map[string]any, len(b.keys))
		if b.mode == AddressBySemanticType && len(s.properties) > 0 {
			for name, key := range b.byProp {
				out[name] = instantiate(s.properties[name], indirect(mappingEntry(rv, key)), AddressAuto)
			}
			return out
		}
		for _, key := range b.keys {
			entry := indirect(mappingEntry(rv, key))
			if _, bound := b.byProp[key]; bound {
				out[key] = instantiate(s.properties[key], entry, AddressAuto)
			} else {
				out[key] = plain(entry)
			}
		}
		return out
	case *ArraySchema:
		out := make([]any, rv.Len())
		for i := range out {
			elem := indirect(rv.Index(i).Interface())
			switch len(s.items) {
			case 0:
				out[i] = plain(elem)
			case 1:
				out[i] = instantiate(s.items[0], elem, AddressAuto)
			default:
				out[i] = instantiate(s.items[i], elem, AddressAuto)
			}
		}
		return out
	default:
		return plain(rv)
	}
}

// plain converts rv into the generic map[string]any / []any form without
// consulting a schema.
func plain(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	switch shapeOf(rv) {
	case shapeMapping:
		keys, ok := mappingKeys(rv)
		if !ok {
			return rv.Interface()
		}
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			out[k] = plain(indirect(mappingEntry(rv, k)))
		}
		return out
	case shapeSequence:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = plain(indirect(rv.Index(i).Interface()))
		}
		return out
	default:
		return rv.Interface()
	}
}
