package schema

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"
)

// AddressingMode selects how the keys of an object value are resolved to the
// properties of an object schema.
type AddressingMode int

const (
	// AddressAuto uses AddressByName when at least one key is a declared
	// property name, AddressBySemanticType when none is but at least one key
	// looks like a URI, and AddressByName otherwise.
	AddressAuto AddressingMode = iota

	// AddressByName treats every key as a literal property name.
	AddressByName

	// AddressBySemanticType treats every key as a semantic type URI and
	// resolves it to the unique property carrying that semantic type.
	AddressBySemanticType
)

func (m AddressingMode) String() string {
	switch m {
	case AddressAuto:
		return "auto"
	case AddressByName:
		return "names"
	case AddressBySemanticType:
		return "semantic_types"
	default:
		return fmt.Sprintf("AddressingMode(%d)", int(m))
	}
}

// ParseAddressingMode parses the String form of an addressing mode. The empty
// string parses as AddressAuto.
func ParseAddressingMode(s string) (AddressingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return AddressAuto, nil
	case "names", "name":
		return AddressByName, nil
	case "semantic_types", "semantic_type", "semantic-types":
		return AddressBySemanticType, nil
	default:
		return AddressAuto, fmt.Errorf("unknown addressing mode %q", s)
	}
}

// Resolution is the outcome of resolving one key against an object schema.
type Resolution int

const (
	// Unresolved means no declared property matches the key.
	Unresolved Resolution = iota

	// Resolved means exactly one declared property matches the key.
	Resolved

	// Ambiguous means several properties share the semantic type used as key.
	Ambiguous
)

func (r Resolution) String() string {
	switch r {
	case Unresolved:
		return "unresolved"
	case Resolved:
		return "resolved"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// Resolve maps key to a declared property name of s. With AddressAuto the key
// is tried as a property name first and as a semantic type second.
//
// An ambiguous semantic type never resolves: callers validating values treat
// it as a mismatch, not as an error.
func Resolve(s *ObjectSchema, key string, mode AddressingMode) (string, Resolution) {
	if s == nil {
		return "", Unresolved
	}
	switch mode {
	case AddressByName:
		if _, ok := s.properties[key]; ok {
			return key, Resolved
		}
		return "", Unresolved
	case AddressBySemanticType:
		names := s.PropertiesBySemanticType(key)
		switch len(names) {
		case 0:
			return "", Unresolved
		case 1:
			return names[0], Resolved
		default:
			return "", Ambiguous
		}
	default:
		if name, res := Resolve(s, key, AddressByName); res == Resolved {
			return name, res
		}
		return Resolve(s, key, AddressBySemanticType)
	}
}

// IsSemanticTypeKey reports whether key looks like a semantic type: an
// absolute IRI ("http://example.org#Height") or a compact IRI ("saref:State").
func IsSemanticTypeKey(key string) bool {
	if key == "" || strings.ContainsAny(key, " \t\n") {
		return false
	}
	u, err := url.Parse(key)
	return err == nil && u.Scheme != ""
}

// SelectMode returns the addressing mode AddressAuto picks for an object value
// with the given keys.
func (s *ObjectSchema) SelectMode(keys []string) AddressingMode {
	for _, k := range keys {
		if _, ok := s.properties[k]; ok {
			return AddressByName
		}
	}
	for _, k := range keys {
		if IsSemanticTypeKey(k) {
			return AddressBySemanticType
		}
	}
	return AddressByName
}

// binding records which value key addresses which property.
type binding struct {
	mode   AddressingMode
	byProp map[string]string // property name -> value key
	keys   []string          // all value keys, sorted
}

// bind resolves every key of an object value under one addressing mode. Keys
// that resolve only under the other mode make the object a mixed-mode object,
// which is a mismatch; keys that resolve under neither are left unbound.
func bind(s *ObjectSchema, rv reflect.Value, path string, mode AddressingMode) (*binding, *MismatchError) {
	keys, ok := mappingKeys(rv)
	if !ok {
		return nil, mismatch(path, "object keys must be strings")
	}
	sort.Strings(keys)

	if mode == AddressAuto {
		mode = s.SelectMode(keys)
	}
	b := &binding{mode: mode, byProp: make(map[string]string), keys: keys}
	if len(s.properties) == 0 {
		return b, nil
	}

	for _, key := range keys {
		switch mode {
		case AddressBySemanticType:
			name, res := Resolve(s, key, AddressBySemanticType)
			switch res {
			case Ambiguous:
				return nil, mismatch(propertyPath(path, key), "semantic type %q is shared by properties %s",
					key, strings.Join(s.PropertiesBySemanticType(key), ", "))
			case Unresolved:
				if _, isName := s.properties[key]; isName {
					return nil, mismatch(propertyPath(path, key), "property name %q used in an object addressed by semantic type", key)
				}
				continue
			}
			if other, dup := b.byProp[name]; dup {
				return nil, mismatch(propertyPath(path, key), "keys %q and %q both address property %q", other, key, name)
			}
			b.byProp[name] = key
		default:
			if _, ok := s.properties[key]; ok {
				b.byProp[key] = key
				continue
			}
			if len(s.PropertiesBySemanticType(key)) > 0 {
				return nil, mismatch(propertyPath(path, key), "semantic type %q used in an object addressed by property name", key)
			}
		}
	}
	return b, nil
}

func checkObject(s *ObjectSchema, rv reflect.Value, path string, mode AddressingMode) *MismatchError {
	if shapeOf(rv) != shapeMapping {
		return mismatch(path, "expected object, got %s", describe(rv))
	}

	b, err := bind(s, rv, path, mode)
	if err != nil {
		return err
	}

	for _, name := range s.required {
		key, ok := b.byProp[name]
		if !ok {
			return mismatch(path, "required property %q is missing", name)
		}
		if _, isNull := s.properties[name].(*NullSchema); !isNull && !indirect(mappingEntry(rv, key)).IsValid() {
			return mismatch(propertyPath(path, key), "required property %q is null", name)
		}
	}

	for _, name := range s.names {
		key, ok := b.byProp[name]
		if !ok {
			continue
		}
		if err := check(s.properties[name], mappingEntry(rv, key), propertyPath(path, key), AddressAuto); err != nil {
			return err
		}
	}
	return nil
}
