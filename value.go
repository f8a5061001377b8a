package verity

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// The helpers in this file form the dynamic boundary of the engine: values
// under test arrive as untyped any (often freshly decoded JSON/YAML), so
// structural classification happens through reflection here and nowhere else.

// isNilValue reports whether v is nil or a typed nil pointer/map/slice/etc.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isString(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(json.Number); ok {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.String
}

func isBool(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Bool
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

func isSequence(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// isObject treats maps, structs and pointers to structs as objects. Strings,
// numbers and sequences are not objects even though reflect could walk them.
func isObject(v any) bool {
	if isNilValue(v) {
		return false
	}
	rt := reflect.TypeOf(v)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	switch rt.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	}
	return false
}

// asFloat converts numeric values (including json.Number) to float64.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case nil:
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isNumber(v any) bool {
	_, ok := asFloat(v)
	return ok
}

// isInteger reports whether v is a whole number: any int/uint kind, or a
// float/json.Number with no fractional part.
func isInteger(v any) bool {
	if v == nil {
		return false
	}
	if n, ok := v.(json.Number); ok {
		_, err := n.Int64()
		return err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
	}
	return false
}

// isEmpty reports whether v is nil, a blank string, or a zero-length
// sequence/map.
func isEmpty(v any) bool {
	if isNilValue(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// identical compares with Go equality when both operands are comparable.
// Non-comparable operands are never identical to anything.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.Comparable() || !rb.Comparable() {
		return false
	}
	return a == b
}

// deepEqual is the deep comparison used by EqualTo and In.
func deepEqual(a, b any) bool { return reflect.DeepEqual(a, b) }

// element is one member of an iterable value, paired with its local path
// segment.
type element struct {
	seg   string
	value any
}

// elements enumerates a sequence or map in deterministic order: sequences in
// index order, maps sorted by stringified key. The second result is false for
// non-iterable values.
func elements(v any) ([]element, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]element, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = element{seg: indexSegment(i), value: rv.Index(i).Interface()}
		}
		return out, true
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			ks := stringifyKey(k)
			keys = append(keys, ks)
			byKey[ks] = rv.MapIndex(k).Interface()
		}
		sort.Strings(keys)
		out := make([]element, len(keys))
		for i, k := range keys {
			out[i] = element{seg: keySegment(k), value: byKey[k]}
		}
		return out, true
	}
	return nil, false
}

func stringifyKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

// contains reports deep membership of want in the iterable collection.
func contains(collection, want any) (bool, bool) {
	elems, ok := elements(collection)
	if !ok {
		return false, false
	}
	for _, e := range elems {
		if deepEqual(e.value, want) {
			return true, true
		}
	}
	return false, true
}

// resolveStructKey resolves the external name of a struct field: the json
// tag name when present, the field name otherwise. "-" disables the field.
func resolveStructKey(sf reflect.StructField) string {
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// resolveValuePath walks v along a dotted/bracketed path. Maps, structs,
// pointers and sequences are traversed; a miss at any step yields (nil,
// false).
func resolveValuePath(v any, path string) (any, bool) {
	cur := v
	for _, seg := range splitSegments(path) {
		key := seg
		if len(seg) >= 2 && seg[0] == '[' && seg[len(seg)-1] == ']' {
			key = seg[1 : len(seg)-1]
		}
		next, ok := resolveSegment(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func resolveSegment(v any, key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			name := resolveStructKey(sf)
			if name == "-" {
				continue
			}
			if name == key || sf.Name == key {
				return rv.Field(i).Interface(), true
			}
		}
		return nil, false
	case reflect.Slice, reflect.Array:
		idx, ok := parseIndex(key)
		if !ok || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	}
	return nil, false
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
