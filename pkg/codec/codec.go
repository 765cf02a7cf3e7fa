package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// Object is a decoded JSON object
type Object = map[string]interface{}

// Func converts an untyped JSON value into T
type Func[T any] func(v interface{}) (T, error)

// Serialize converts v into a plain JSON tree, stripping the keys in omit at any depth
func Serialize(v interface{}, omit ...string) (interface{}, error) {
	if v == nil {
		return nil, &SerializationError{Err: errors.New("value is nil")}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}

	var tree interface{}
	if err := json.Unmarshal(b, &tree); err != nil {
		return nil, &SerializationError{Err: err}
	}

	if len(omit) == 0 {
		return tree, nil
	}

	keys := make(map[string]bool, len(omit))
	for _, key := range omit {
		keys[key] = true
	}

	return strip(tree, keys), nil
}

// SerializeObject is Serialize for values which must produce a JSON object
func SerializeObject(v interface{}, omit ...string) (Object, error) {
	tree, err := Serialize(v, omit...)
	if err != nil {
		return nil, err
	}

	obj, ok := tree.(Object)
	if !ok {
		return nil, &SerializationError{Err: fmt.Errorf("expected object, got %s", typeName(tree))}
	}

	return obj, nil
}

func strip(tree interface{}, keys map[string]bool) interface{} {
	switch val := tree.(type) {
	case map[string]interface{}:
		for key, child := range val {
			if keys[key] {
				delete(val, key)
				continue
			}

			val[key] = strip(child, keys)
		}
	case []interface{}:
		for i, child := range val {
			val[i] = strip(child, keys)
		}
	}

	return tree
}

// Field extracts the named field from obj and converts it with fn
// An absent field is passed to fn as nil
func Field[T any](obj Object, name string, fn Func[T]) (T, error) {
	val, err := fn(obj[name])
	if err != nil {
		var zero T
		return zero, Annotate(name, err)
	}

	return val, nil
}

// Optional passes through null or absent values as nil, otherwise it delegates to fn
func Optional[T any](fn Func[T]) Func[*T] {
	return func(v interface{}) (*T, error) {
		if v == nil {
			return nil, nil
		}

		val, err := fn(v)
		if err != nil {
			return nil, err
		}

		return &val, nil
	}
}

// Array maps a JSON array with fn, annotating failures with the offending index
func Array[T any](fn Func[T]) Func[[]T] {
	return func(v interface{}) ([]T, error) {
		items, ok := v.([]interface{})
		if !ok {
			return nil, mismatch("array", v)
		}

		values := make([]T, len(items))
		for i, item := range items {
			val, err := fn(item)
			if err != nil {
				return nil, Annotate(Index(i), err)
			}

			values[i] = val
		}

		return values, nil
	}
}

// Tuple is an Array that must contain exactly n elements
func Tuple[T any](n int, fn Func[T]) Func[[]T] {
	array := Array(fn)
	return func(v interface{}) ([]T, error) {
		if items, ok := v.([]interface{}); ok && len(items) != n {
			return nil, Errorf("expected tuple of length %d, got %d", n, len(items))
		}

		return array(v)
	}
}

// MaxLength is an Array that cannot contain more than n elements
func MaxLength[T any](n int, fn Func[T]) Func[[]T] {
	array := Array(fn)
	return func(v interface{}) ([]T, error) {
		if items, ok := v.([]interface{}); ok && len(items) > n {
			return nil, Errorf("expected at most %d elements, got %d", n, len(items))
		}

		return array(v)
	}
}

// AsObject asserts v is a JSON object
func AsObject(v interface{}) (Object, error) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, mismatch("object", v)
	}

	return obj, nil
}

// String asserts v is a string
func String(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", mismatch("string", v)
	}

	return s, nil
}

// NonEmptyString asserts v is a string with at least one character
func NonEmptyString(v interface{}) (string, error) {
	s, err := String(v)
	if err != nil {
		return "", err
	}

	if s == "" {
		return "", Errorf("expected non-empty string")
	}

	return s, nil
}

// Bool asserts v is a boolean
func Bool(v interface{}) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, mismatch("boolean", v)
	}

	return b, nil
}

// Number asserts v is a finite number
func Number(v interface{}) (float64, error) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, mismatch("number", v)
		}
		f = parsed
	default:
		return 0, mismatch("number", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, Errorf("expected finite number, got %v", f)
	}

	return f, nil
}

// Int asserts v is an integral number
func Int(v interface{}) (int, error) {
	f, err := Number(v)
	if err != nil {
		return 0, err
	}

	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, Errorf("expected integer, got %v", f)
	}

	return int(f), nil
}

// NonNegativeInt asserts v is an integer >= 0
func NonNegativeInt(v interface{}) (int, error) {
	i, err := Int(v)
	if err != nil {
		return 0, err
	}

	if i < 0 {
		return 0, Errorf("expected integer >= 0, got %d", i)
	}

	return i, nil
}

// PositiveInt asserts v is an integer > 0
func PositiveInt(v interface{}) (int, error) {
	i, err := Int(v)
	if err != nil {
		return 0, err
	}

	if i <= 0 {
		return 0, Errorf("expected integer > 0, got %d", i)
	}

	return i, nil
}

// Enum returns a Func accepting only the listed string values
func Enum[T ~string](values ...T) Func[T] {
	allowed := make(map[string]T, len(values))
	names := make([]string, len(values))
	for i, val := range values {
		allowed[string(val)] = val
		names[i] = string(val)
	}

	expected := strings.Join(names, ", ")
	return func(v interface{}) (T, error) {
		s, err := String(v)
		if err != nil {
			var zero T
			return zero, err
		}

		val, ok := allowed[s]
		if !ok {
			var zero T
			return zero, Errorf("expected one of %s, got %q", expected, s)
		}

		return val, nil
	}
}

func mismatch(expected string, v interface{}) error {
	return Errorf("expected %s, got %s", expected, typeName(v))
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, json.Number:
		return "number"
	}

	return fmt.Sprintf("%T", v)
}
