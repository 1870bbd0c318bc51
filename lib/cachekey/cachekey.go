// Package cachekey derives deterministic fragment-cache keys from component
// identity and parameters.
//
// Parameters are first canonicalized - mappings sorted by key, sequences in
// order, scalars by string form - then serialized with msgpack and hashed
// with xxhash. The same input always produces the same key, bit for bit,
// across runs.
package cachekey

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"reflect"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// CacheKeyer is implemented by parameter values that supply their own cache
// key contribution instead of being canonicalized structurally.
type CacheKeyer interface {
	CacheKey() string
}

// NotCacheableError reports a parameter value that supports neither
// iteration nor export and therefore cannot participate in key derivation.
// Callers are expected to catch it and fall back to an uncached render.
type NotCacheableError struct {
	Value any
}

func (e *NotCacheableError) Error() string {
	return fmt.Sprintf("cachekey: value of type %T is not cacheable", e.Value)
}

// Key derives the cache key for a component/state/parameter triple:
//
//	component + "|" + state + "|" + base64(xxhash64(msgpack(canonical(params))))
func Key(component, state string, params map[string]any) (string, error) {
	canonical, err := Canonicalize(params)
	if err != nil {
		return "", err
	}
	packed, err := msgpack.Marshal(canonical)
	if err != nil {
		return "", err
	}
	sum := xxhash.Sum64(packed)
	var digest [8]byte
	binary.BigEndian.PutUint64(digest[:], sum)
	return component + "|" + state + "|" + base64.RawURLEncoding.EncodeToString(digest[:]), nil
}

// Canonicalize reduces a parameter value to a deterministic shape:
//
//   - mappings become key-sorted [key, value] pair lists
//   - sequences keep their order, elements canonicalized
//   - scalars (strings, booleans, numbers, type references) become their
//     string form; nil becomes the empty string
//   - a CacheKeyer contributes its CacheKey() string
//   - a zero-argument callable is invoked and its result canonicalized;
//     evaluation failure is an empty contribution, never an error
//   - anything else yields *NotCacheableError
func Canonicalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case CacheKeyer:
		return t.CacheKey(), nil
	case func() any:
		return evalContribution(t)
	case string:
		return t, nil
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(t), nil
	case reflect.Type:
		return t.String(), nil
	case map[string]any:
		return canonicalStringMap(t)
	case []any:
		return canonicalSlice(t)
	}
	return canonicalizeReflect(v)
}

func canonicalStringMap(m map[string]any) (any, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]any, 0, len(keys))
	for _, k := range keys {
		cv, err := Canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, []any{k, cv})
	}
	return pairs, nil
}

func canonicalSlice(s []any) (any, error) {
	out := make([]any, 0, len(s))
	for _, v := range s {
		cv, err := Canonicalize(v)
		if err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, nil
}

// evalContribution invokes a zero-argument callable, treating panics as an
// empty contribution rather than failing key derivation.
func evalContribution(fn func() any) (result any, err error) {
	defer func() {
		if recover() != nil {
			result, err = "", nil
		}
	}()
	return Canonicalize(fn())
}

// canonicalizeReflect handles mappings, sequences, scalars, and callables
// arriving as concrete types not covered by the fast paths above.
func canonicalizeReflect(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", nil
		}
		return Canonicalize(rv.Elem().Interface())
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v), nil
	case reflect.Map:
		return canonicalReflectMap(rv)
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			cv, err := Canonicalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, cv)
		}
		return out, nil
	case reflect.Func:
		if rv.Type().NumIn() == 0 && rv.Type().NumOut() == 1 {
			return evalReflectCall(rv)
		}
	}
	return nil, &NotCacheableError{Value: v}
}

func canonicalReflectMap(rv reflect.Value) (any, error) {
	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: fmt.Sprint(iter.Key().Interface()), value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	pairs := make([]any, 0, len(entries))
	for _, e := range entries {
		cv, err := Canonicalize(e.value.Interface())
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, []any{e.key, cv})
	}
	return pairs, nil
}

func evalReflectCall(rv reflect.Value) (result any, err error) {
	defer func() {
		if recover() != nil {
			result, err = "", nil
		}
	}()
	out := rv.Call(nil)
	return Canonicalize(out[0].Interface())
}
