package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// KeySeparator delimits cache key segments.
const KeySeparator = "::"

// defaultKeySerializer produces deterministic keys for the argument shapes
// the store decorator passes: ids, codes, and parameter structs. Structs,
// maps and slices go through encoding/json, which marshals struct fields in
// declaration order and map keys sorted, so equal inputs always serialize
// to equal keys within and across processes.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates the default serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

func (s *defaultKeySerializer) SerializeKey(method string, args ...any) string {
	if len(args) == 0 {
		return method
	}
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, method)
	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func (s *defaultKeySerializer) serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if t == nil {
			return "nil"
		}
		return t.UTC().Format(time.RFC3339Nano)
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return s.serializeValue(rv.Elem().Interface())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%v", v)
	case reflect.Func, reflect.Chan:
		// Pointer identity is the best stable handle within a process.
		return fmt.Sprintf("%s:%p", rv.Kind(), v)
	default:
		return s.jsonKey(v)
	}
}

func (s *defaultKeySerializer) jsonKey(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("unserializable:%T", v)
	}
	return "json:" + string(data)
}
