// Package resolve locates canonical fields inside loosely-typed backend
// payloads. Every lookup takes an ordered list of candidate dotted paths and
// returns the first present, non-nil value, so callers never chain optional
// accessors by hand. Lookups never panic and never return NaN: a candidate
// that is absent, malformed, or non-coercible simply falls through to the
// next one, and absence is encoded via the caller-supplied default.
package resolve

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Resolve walks each candidate path against payload in order and returns
// the first value that is present and non-nil.
func Resolve(payload map[string]any, paths []string) (any, bool) {
	for _, p := range paths {
		if v, ok := lookup(payload, p); ok {
			return v, true
		}
	}
	return nil, false
}

func lookup(payload map[string]any, path string) (any, bool) {
	if payload == nil {
		return nil, false
	}
	var cur any = payload
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// String returns the first candidate that holds a non-empty string.
func String(payload map[string]any, paths []string, def string) string {
	for _, p := range paths {
		v, ok := lookup(payload, p)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}

// Float returns the first candidate that coerces to a finite float64.
func Float(payload map[string]any, paths []string, def float64) float64 {
	for _, p := range paths {
		v, ok := lookup(payload, p)
		if !ok {
			continue
		}
		if f, ok := coerceFloat(v); ok {
			return f
		}
	}
	return def
}

// Int returns the first candidate that coerces to a finite number, rounded
// toward zero.
func Int(payload map[string]any, paths []string, def int) int {
	for _, p := range paths {
		v, ok := lookup(payload, p)
		if !ok {
			continue
		}
		if f, ok := coerceFloat(v); ok {
			return int(f)
		}
	}
	return def
}

// Strings returns the first candidate that is a list, keeping its string
// elements in order. Non-string elements are dropped.
func Strings(payload map[string]any, paths []string) []string {
	for _, p := range paths {
		v, ok := lookup(payload, p)
		if !ok {
			continue
		}
		items, ok := asSlice(v)
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Floats returns the first candidate that is a list, coercing its elements
// in order. Elements that fail strict coercion are dropped rather than
// surfacing as NaN or a silent zero.
func Floats(payload map[string]any, paths []string) []float64 {
	for _, p := range paths {
		v, ok := lookup(payload, p)
		if !ok {
			continue
		}
		items, ok := asSlice(v)
		if !ok {
			continue
		}
		out := make([]float64, 0, len(items))
		for _, it := range items {
			if f, ok := coerceFloat(it); ok {
				out = append(out, f)
			}
		}
		return out
	}
	return nil
}

// Slice returns the first candidate that is a non-empty list.
func Slice(payload map[string]any, paths []string) []any {
	for _, p := range paths {
		v, ok := lookup(payload, p)
		if !ok {
			continue
		}
		if items, ok := asSlice(v); ok && len(items) > 0 {
			return items
		}
	}
	return nil
}

// Map returns the first candidate that is a non-empty object.
func Map(payload map[string]any, paths []string) map[string]any {
	for _, p := range paths {
		v, ok := lookup(payload, p)
		if !ok {
			continue
		}
		if m, ok := v.(map[string]any); ok && len(m) > 0 {
			return m
		}
	}
	return nil
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}

// Number applies the strict numeric parser to a single value.
func Number(v any) (float64, bool) {
	return coerceFloat(v)
}

// coerceFloat applies the strict numeric parser: JSON numbers, Go numeric
// types and numeric strings are accepted; NaN and infinities are rejected so
// they fall through to the next candidate.
func coerceFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
