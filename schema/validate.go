package schema

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// MismatchError describes why a value does not conform to a schema.
type MismatchError struct {
	// Path is a JSON Pointer (RFC 6901) to the offending value; empty for the root.
	Path string

	// Reason is a human-readable description of the mismatch.
	Reason string
}

func (e *MismatchError) Error() string {
	if e == nil {
		return "schema mismatch"
	}
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func mismatch(path, format string, args ...any) *MismatchError {
	return &MismatchError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Validate reports whether value conforms to s. It never panics for schemas
// obtained from the builders, and a nil schema matches nothing.
//
// Object values are addressed by property name or, when none of their keys is
// a property name, by semantic type; see ValidateByPropertyNames and
// ValidateByPropertySemanticTypes.
func Validate(s DataSchema, value any) bool {
	return Check(s, value) == nil
}

// Check is like Validate but describes the first mismatch found. It returns
// nil when value conforms to s, and a *MismatchError otherwise.
func Check(s DataSchema, value any) error {
	if err := check(s, value, "", AddressAuto); err != nil {
		return err
	}
	return nil
}

// ValidateByPropertyNames validates value against s treating every key of the
// top-level object as a literal property name. Nested objects are addressed
// automatically.
func ValidateByPropertyNames(s *ObjectSchema, value any) bool {
	if s == nil {
		return false
	}
	return check(s, value, "", AddressByName) == nil
}

// ValidateByPropertySemanticTypes validates value against s treating every key
// of the top-level object as a semantic type URI. Nested objects are addressed
// automatically.
func ValidateByPropertySemanticTypes(s *ObjectSchema, value any) bool {
	if s == nil {
		return false
	}
	return check(s, value, "", AddressBySemanticType) == nil
}

// CheckMode is like Check but forces the addressing mode of a top-level object.
// For non-object schemas the mode is ignored.
func CheckMode(s DataSchema, value any, mode AddressingMode) error {
	if err := check(s, value, "", mode); err != nil {
		return err
	}
	return nil
}

// check dispatches on the schema variant. mode only applies when s is an
// object schema; nested values are always checked with AddressAuto.
func check(s DataSchema, value any, path string, mode AddressingMode) *MismatchError {
	if isNilSchema(s) {
		return mismatch(path, "no schema")
	}
	rv := indirect(value)

	switch s := s.(type) {
	case *NullSchema:
		if rv.IsValid() {
			return mismatch(path, "expected null, got %s", describe(rv))
		}
		return nil
	case *BooleanSchema:
		if shapeOf(rv) != shapeBoolean {
			return mismatch(path, "expected boolean, got %s", describe(rv))
		}
		return checkEnum(&s.common, value, path)
	case *StringSchema:
		if shapeOf(rv) != shapeString {
			return mismatch(path, "expected string, got %s", describe(rv))
		}
		return checkEnum(&s.common, value, path)
	case *NumberSchema:
		if err := checkNumber(s.bounds, rv, path, false); err != nil {
			return err
		}
		return checkEnum(&s.common, value, path)
	case *IntegerSchema:
		if err := checkNumber(s.bounds, rv, path, true); err != nil {
			return err
		}
		return checkEnum(&s.common, value, path)
	case *ArraySchema:
		if err := checkArray(s, rv, path); err != nil {
			return err
		}
		return checkEnum(&s.common, value, path)
	case *ObjectSchema:
		if err := checkObject(s, rv, path, mode); err != nil {
			return err
		}
		return checkEnum(&s.common, value, path)
	default:
		return mismatch(path, "unsupported schema %T", s)
	}
}

func isNilSchema(s DataSchema) bool {
	switch s := s.(type) {
	case nil:
		return true
	case *NullSchema:
		return s == nil
	case *BooleanSchema:
		return s == nil
	case *StringSchema:
		return s == nil
	case *NumberSchema:
		return s == nil
	case *IntegerSchema:
		return s == nil
	case *ArraySchema:
		return s == nil
	case *ObjectSchema:
		return s == nil
	default:
		return false
	}
}

func checkNumber(b bounds, rv reflect.Value, path string, integral bool) *MismatchError {
	sh := shapeOf(rv)
	if integral && sh != shapeIntegral {
		return mismatch(path, "expected integer, got %s", describe(rv))
	}
	if !isNumeric(sh) {
		return mismatch(path, "expected number, got %s", describe(rv))
	}

	n, ok := numericValue(rv)
	if !ok {
		return mismatch(path, "value %v is not an ordered number", rv.Interface())
	}
	if b.hasMin {
		if lo := b.lower(); lo == nil || n.Cmp(lo) < 0 {
			return mismatch(path, "value %s is less than minimum %s", n.Text('g', -1), boundText(lo, b.min))
		}
	}
	if b.hasMax {
		if hi := b.upper(); hi == nil || n.Cmp(hi) > 0 {
			return mismatch(path, "value %s is greater than maximum %s", n.Text('g', -1), boundText(hi, b.max))
		}
	}
	return nil
}

// boundText formats a bound; a nil exact bound is NaN.
func boundText(exact *big.Float, v float64) string {
	if exact == nil {
		return fmt.Sprint(v)
	}
	return exact.Text('g', -1)
}

func checkArray(s *ArraySchema, rv reflect.Value, path string) *MismatchError {
	if shapeOf(rv) != shapeSequence {
		return mismatch(path, "expected array, got %s", describe(rv))
	}

	n := rv.Len()
	if s.hasMinItems && n < s.minItems {
		return mismatch(path, "array has %d items, fewer than minItems %d", n, s.minItems)
	}
	if s.hasMaxItems && n > s.maxItems {
		return mismatch(path, "array has %d items, more than maxItems %d", n, s.maxItems)
	}

	switch len(s.items) {
	case 0:
		return nil
	case 1:
		for i := 0; i < n; i++ {
			if err := check(s.items[0], rv.Index(i).Interface(), itemPath(path, i), AddressAuto); err != nil {
				return err
			}
		}
		return nil
	default:
		if n != len(s.items) {
			return mismatch(path, "array has %d items, want exactly %d", n, len(s.items))
		}
		for i, item := range s.items {
			if err := check(item, rv.Index(i).Interface(), itemPath(path, i), AddressAuto); err != nil {
				return err
			}
		}
		return nil
	}
}

func checkEnum(c *common, value any, path string) *MismatchError {
	if len(c.enum) == 0 {
		return nil
	}
	for _, member := range c.enum {
		if equalValues(member, value) {
			return nil
		}
	}
	return mismatch(path, "value %v is not one of the allowed values: %v", value, c.enum)
}

func describe(rv reflect.Value) string {
	if !rv.IsValid() {
		return "null"
	}
	return rv.Type().String()
}

// pointerToken escapes a key for use in a JSON Pointer.
func pointerToken(key string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
}

func itemPath(path string, i int) string {
	return path + "/" + strconv.Itoa(i)
}

func propertyPath(path, key string) string {
	return path + "/" + pointerToken(key)
}
