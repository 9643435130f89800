package schema

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"strings"
)

// shape is the runtime category of a candidate value.
type shape int

const (
	shapeNull shape = iota
	shapeBoolean
	shapeString
	shapeIntegral
	shapeFractional
	shapeSequence
	shapeMapping
	shapeUnsupported
)

func (s shape) String() string {
	switch s {
	case shapeNull:
		return "null"
	case shapeBoolean:
		return "boolean"
	case shapeString:
		return "string"
	case shapeIntegral:
		return "integer"
	case shapeFractional:
		return "number"
	case shapeSequence:
		return "array"
	case shapeMapping:
		return "object"
	default:
		return "unsupported"
	}
}

var (
	jsonNumberType = reflect.TypeOf(json.Number(""))
	bigIntPtrType  = reflect.TypeOf((*big.Int)(nil))
)

// indirect dereferences pointers and interfaces. It returns the zero Value for
// nil, a nil pointer, a nil interface, a nil map or a nil slice.
func indirect(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.IsValid() {
		switch rv.Kind() {
		case reflect.Pointer:
			if rv.IsNil() {
				return reflect.Value{}
			}
			if rv.Type() == bigIntPtrType {
				return rv
			}
			rv = rv.Elem()
		case reflect.Interface:
			if rv.IsNil() {
				return reflect.Value{}
			}
			rv = rv.Elem()
		case reflect.Map, reflect.Slice:
			if rv.IsNil() {
				return reflect.Value{}
			}
			return rv
		default:
			return rv
		}
	}
	return rv
}

// shapeOf classifies rv. Integral and fractional numbers are told apart by
// their representation, never by their value: float64(2) is fractional.
func shapeOf(rv reflect.Value) shape {
	if !rv.IsValid() {
		return shapeNull
	}
	if rv.Type() == jsonNumberType {
		return jsonNumberShape(json.Number(rv.String()))
	}
	if rv.Type() == bigIntPtrType {
		return shapeIntegral
	}
	switch rv.Kind() {
	case reflect.Bool:
		return shapeBoolean
	case reflect.String:
		return shapeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return shapeIntegral
	case reflect.Float32, reflect.Float64:
		return shapeFractional
	case reflect.Slice, reflect.Array:
		return shapeSequence
	case reflect.Map:
		return shapeMapping
	default:
		return shapeUnsupported
	}
}

func jsonNumberShape(n json.Number) shape {
	s := string(n)
	if strings.ContainsAny(s, ".eE") {
		if _, err := n.Float64(); err != nil {
			return shapeUnsupported
		}
		return shapeFractional
	}
	if _, ok := new(big.Int).SetString(s, 10); !ok {
		return shapeUnsupported
	}
	return shapeIntegral
}

// numericValue returns the exact value of a numeric rv. ok is false for
// non-numeric values and for NaN, which is not ordered.
func numericValue(rv reflect.Value) (*big.Float, bool) {
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Type() == jsonNumberType {
		n := json.Number(rv.String())
		switch jsonNumberShape(n) {
		case shapeIntegral:
			i, _ := new(big.Int).SetString(string(n), 10)
			return new(big.Float).SetInt(i), true
		case shapeFractional:
			f, _ := n.Float64()
			return new(big.Float).SetFloat64(f), true
		default:
			return nil, false
		}
	}
	if rv.Type() == bigIntPtrType {
		return new(big.Float).SetInt(rv.Interface().(*big.Int)), true
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Float).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Float).SetUint64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return nil, false
		}
		return new(big.Float).SetFloat64(f), true
	default:
		return nil, false
	}
}

// mappingKeys returns the keys of a mapping as strings. ok is false when a key
// is not a string, e.g. an int key of a map[any]any.
func mappingKeys(rv reflect.Value) (keys []string, ok bool) {
	keys = make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		if k.Kind() == reflect.Interface {
			if k.IsNil() {
				return nil, false
			}
			k = k.Elem()
		}
		if k.Kind() != reflect.String {
			return nil, false
		}
		keys = append(keys, k.String())
	}
	return keys, true
}

// mappingEntry returns the entry stored under key.
func mappingEntry(rv reflect.Value, key string) any {
	kt := rv.Type().Key()
	var kv reflect.Value
	if kt.Kind() == reflect.String {
		kv = reflect.ValueOf(key).Convert(kt)
	} else {
		kv = reflect.ValueOf(key)
	}
	ev := rv.MapIndex(kv)
	if !ev.IsValid() {
		return nil
	}
	return ev.Interface()
}

// equalValues compares an enumeration member with a candidate value. Numbers
// compare by value across representations; everything else by deep equality.
func equalValues(member, value any) bool {
	mv, vv := indirect(member), indirect(value)
	ms, vs := shapeOf(mv), shapeOf(vv)
	if isNumeric(ms) && isNumeric(vs) {
		a, okA := numericValue(mv)
		b, okB := numericValue(vv)
		return okA && okB && a.Cmp(b) == 0
	}
	if ms == shapeString && vs == shapeString {
		return mv.String() == vv.String()
	}
	if ms == shapeBoolean && vs == shapeBoolean {
		return mv.Bool() == vv.Bool()
	}
	return reflect.DeepEqual(member, value)
}

func isNumeric(s shape) bool {
	return s == shapeIntegral || s == shapeFractional
}
