package normalize

import (
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// TYPED PARTIAL VIEW
// =============================================================================
//
// Agent output has no guaranteed schema. View reads fields from a normalized
// map without ever panicking on a type mismatch: a missing or null field
// resolves to the caller's default, and compatible representations are
// coerced (numbers given as strings, strings given as numbers, arrays read
// as joined strings).

// View is a read-only typed accessor over a normalized map.
type View struct {
	m map[string]any
}

// NewView wraps m. A nil map behaves like an empty one.
func NewView(m map[string]any) View {
	return View{m: m}
}

// Of normalizes raw and wraps the result.
func Of(raw any) View {
	return View{m: Normalize(raw)}
}

// Map returns the underlying map.
func (v View) Map() map[string]any {
	if v.m == nil {
		return map[string]any{}
	}
	return v.m
}

// Has reports whether key is present with a non-null value.
func (v View) Has(key string) bool {
	val, ok := v.m[key]
	return ok && val != nil
}

// Empty reports whether the view carries no fields at all.
func (v View) Empty() bool {
	return len(v.m) == 0
}

// String returns the field as a string. Numbers and booleans are formatted,
// arrays of scalars are joined with ", ". Missing, null and object values
// resolve to def. An empty string is a value, not a missing field.
func (v View) String(key, def string) string {
	return v.Joined(key, ", ", def)
}

// Joined is String with a caller-chosen array separator.
func (v View) Joined(key, sep, def string) string {
	val, ok := v.m[key]
	if !ok || val == nil {
		return def
	}
	if s, ok := scalarString(val); ok {
		return s
	}
	if arr, ok := val.([]any); ok {
		parts := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := scalarString(item); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, sep)
	}
	return def
}

// Int returns the field as an int, rounding fractional numbers.
func (v View) Int(key string, def int) int {
	f, ok := v.number(key)
	if !ok {
		return def
	}
	return int(math.Round(f))
}

// Float returns the field as a float64.
func (v View) Float(key string, def float64) float64 {
	f, ok := v.number(key)
	if !ok {
		return def
	}
	return f
}

func (v View) number(key string) (float64, bool) {
	switch n := v.m[key].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Strings returns the field as a list of strings. A single scalar becomes a
// one-element list; objects inside an array are skipped. Missing → nil.
func (v View) Strings(key string) []string {
	val, ok := v.m[key]
	if !ok || val == nil {
		return nil
	}
	switch t := val.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := scalarString(item); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	if s, ok := scalarString(val); ok {
		return []string{s}
	}
	return nil
}

// Objects returns the object elements of an array field. Non-object
// elements are skipped; a single object is treated as a one-element array.
func (v View) Objects(key string) []View {
	switch t := v.m[key].(type) {
	case []any:
		out := make([]View, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, View{m: m})
			}
		}
		return out
	case []map[string]any:
		out := make([]View, 0, len(t))
		for _, m := range t {
			out = append(out, View{m: m})
		}
		return out
	case map[string]any:
		return []View{{m: t}}
	}
	return nil
}

// Items returns every element of an array field as a raw value.
func (v View) Items(key string) []any {
	if arr, ok := v.m[key].([]any); ok {
		return arr
	}
	return nil
}

// Object returns the nested object at key.
func (v View) Object(key string) (View, bool) {
	m, ok := v.m[key].(map[string]any)
	if !ok {
		return View{}, false
	}
	return View{m: m}, true
}

// scalarString formats strings, numbers and booleans. Everything else is
// reported as not a scalar.
func scalarString(val any) (string, bool) {
	switch t := val.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}
