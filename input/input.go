package input

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/zero-day-ai/wot/schema"
)

// Lookup returns the value stored for property in m, whether m addresses the
// property by name or by one of its semantic types. A semantic type shared
// with another property is never used.
func Lookup(s *schema.ObjectSchema, m map[string]any, property string) (any, bool) {
	if m == nil {
		return nil, false
	}
	if v, ok := m[property]; ok {
		return v, true
	}
	if s == nil {
		return nil, false
	}
	p, ok := s.Property(property)
	if !ok {
		return nil, false
	}
	for _, uri := range p.SemanticTypes() {
		if name, res := schema.Resolve(s, uri, schema.AddressBySemanticType); res != schema.Resolved || name != property {
			continue
		}
		if v, ok := m[uri]; ok {
			return v, true
		}
	}
	return nil, false
}

// ByName returns a copy of m keyed by property name. The keys of m are
// resolved in the single addressing mode the schema selects for them, so a
// property name is never overwritten by a semantic type. Keys that address no
// property, or a property another key already addressed, are kept as they are.
func ByName(s *schema.ObjectSchema, m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	if s == nil {
		for k, v := range m {
			out[k] = v
		}
		return out
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mode := s.SelectMode(keys)
	bound := make(map[string]bool, len(keys))
	var unbound []string
	for _, k := range keys {
		name, res := schema.Resolve(s, k, mode)
		if res != schema.Resolved || bound[name] {
			unbound = append(unbound, k)
			continue
		}
		bound[name] = true
		out[name] = m[k]
	}
	for _, k := range unbound {
		if _, taken := out[k]; !taken {
			out[k] = m[k]
		}
	}
	return out
}

// GetString extracts a string value from the map with a default fallback.
// Returns defaultVal if the key doesn't exist, the value is nil, or not a string.
func GetString(m map[string]any, key string, defaultVal string) string {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	str, ok := val.(string)
	if !ok {
		return defaultVal
	}

	return str
}

// GetInt extracts an int64 value from the map with a default fallback.
// Handles Go integer kinds, integral json.Number literals and numeric strings.
// Fractional values return defaultVal rather than being truncated.
func GetInt(m map[string]any, key string, defaultVal int64) int64 {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	if i, ok := toInt64(val); ok {
		return i
	}
	return defaultVal
}

func toInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		return int64(v), uint64(v) <= math.MaxInt64
	case uint64:
		return int64(v), v <= math.MaxInt64
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// GetBool extracts a bool value from the map with a default fallback.
// Returns defaultVal if the key doesn't exist, the value is nil, or not a bool.
func GetBool(m map[string]any, key string, defaultVal bool) bool {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	b, ok := val.(bool)
	if !ok {
		return defaultVal
	}

	return b
}

// GetFloat64 extracts a float64 value from the map with type coercion and default fallback.
// Handles float64, float32, Go integer kinds, json.Number and numeric strings.
func GetFloat64(m map[string]any, key string, defaultVal float64) float64 {
	if m == nil {
		return defaultVal
	}

	val, ok := m[key]
	if !ok || val == nil {
		return defaultVal
	}

	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed
		}
		return defaultVal
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
		return defaultVal
	}

	if i, ok := toInt64(val); ok {
		return float64(i)
	}
	return defaultVal
}

// GetStringSlice extracts a []string value from the map.
// Handles []string, []any (converting each element to string), and single string values.
// Returns nil if the key doesn't exist, the value is nil, or cannot be converted.
func GetStringSlice(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}

	val, ok := m[key]
	if !ok || val == nil {
		return nil
	}

	if slice, ok := val.([]string); ok {
		return slice
	}

	if slice, ok := val.([]any); ok {
		result := make([]string, 0, len(slice))
		for _, item := range slice {
			if item == nil {
				continue
			}
			result = append(result, fmt.Sprintf("%v", item))
		}
		return result
	}

	if str, ok := val.(string); ok {
		return []string{str}
	}

	return nil
}

// GetMap extracts a nested map[string]any from the map.
// Returns nil if the key doesn't exist, the value is nil, or not a map.
func GetMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}

	val, ok := m[key]
	if !ok || val == nil {
		return nil
	}

	nested, ok := val.(map[string]any)
	if !ok {
		return nil
	}

	return nested
}
