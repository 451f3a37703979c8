package lazycache

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

const argsSeparator = "-"

func handleSlice(v reflect.Value) string {
	if v.Len() < 1 {
		return "empty"
	}

	sliceStrings := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		sliceStrings = append(sliceStrings, fmt.Sprintf("%v", v.Index(i).Interface()))
	}

	return strings.Join(sliceStrings, ",")
}

// handleTime turns the time.Time into an epoch string.
func handleTime(v reflect.Value) string {
	if timestamp, ok := v.Interface().(time.Time); ok && !timestamp.IsZero() {
		return strconv.FormatInt(timestamp.Unix(), 10)
	}
	return "empty-time"
}

// handleStruct concatenates the exported fields of a flat struct.
func (c *Cache[T]) handleStruct(v reflect.Value) string {
	var sb strings.Builder
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)

		// Skip unexported fields
		if !field.CanInterface() {
			c.log.Warn("lazycache: key struct contains an unexported field which won't be part of the cache key",
				"field", v.Type().Field(i).Name,
			)
			continue
		}

		if i > 0 {
			sb.WriteString("-")
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				sb.WriteString("nil")
				continue
			}
			// If it's not nil we'll dereference the pointer to handle its value.
			field = field.Elem()
		}

		//nolint:exhaustive // We don't need special logic for every kind.
		switch field.Kind() {
		case reflect.Slice, reflect.Array:
			if field.Kind() == reflect.Slice && field.IsNil() {
				sb.WriteString("nil")
			} else {
				sb.WriteString(handleSlice(field))
			}
		case reflect.Struct:
			// Only handle time.Time structs.
			if field.Type() == reflect.TypeOf(time.Time{}) {
				sb.WriteString(handleTime(field))
			}
		// All of these types makes for bad keys.
		case reflect.Map, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
			continue
		default:
			sb.WriteString(fmt.Sprintf("%v", field.Interface()))
		}
	}
	return sb.String()
}

// canonicalKey turns any key into the string the cache stores it under.
// Keys that print the same are the same key, so 2 and "2" collide.
func (c *Cache[T]) canonicalKey(key any) string {
	// Nil pointers are handled first so that a Stringer with a pointer
	// receiver is never called on nil.
	if v := reflect.ValueOf(key); v.Kind() == reflect.Pointer && v.IsNil() {
		return "nil"
	}

	switch k := key.(type) {
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	case bool:
		return strconv.FormatBool(k)
	case []byte:
		return string(k)
	case time.Time:
		return handleTime(reflect.ValueOf(k))
	case fmt.Stringer:
		return k.String()
	case nil:
		return "nil"
	}

	v := reflect.ValueOf(key)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	//nolint:exhaustive // Everything else is formatted with %v.
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return handleSlice(v)
	case reflect.Struct:
		return c.handleStruct(v)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// argsKey derives the cache key for a call to Provide.
func (c *Cache[T]) argsKey(args ...any) string {
	if c.cfg.argsKeyFn != nil {
		return c.cfg.argsKeyFn(args...)
	}

	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, c.canonicalKey(arg))
	}
	key := strings.Join(parts, argsSeparator)

	if c.cfg.hashProviderKeys {
		return strconv.FormatUint(xxhash.Sum64String(key), 16)
	}
	return key
}

// Keys vacuums the cache and returns a sequence over the keys that remain.
// The sequence never yields an expired key. The keys are snapshotted when
// Keys is called, and they are yielded in no particular order.
func (c *Cache[T]) Keys() iter.Seq[string] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.vacuum()
	keys := make([]string, 0, len(c.index))
	for key := range c.index {
		keys = append(keys, key)
	}
	return slices.Values(keys)
}
