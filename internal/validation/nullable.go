package validation

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Nullable is an update value for a nullable column. It separates a field
// that was not sent from one explicitly set to null.
type Nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value returns a Nullable holding v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: v}
}

// Null returns a Nullable that clears the column.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true, Null: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		n.Null = true
		n.Value = zero
		return nil
	}
	n.Null = false
	return json.Unmarshal(b, &n.Value)
}

// MarshalJSON implements json.Marshaler.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Null {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns nil for an explicit null and a pointer to the value otherwise.
func (n Nullable[T]) Ptr() *T {
	if n.Null {
		return nil
	}
	v := n.Value
	return &v
}

// applyTo writes the update into dst when the field was sent.
func (n Nullable[T]) applyTo(dst **T) {
	if n.Set {
		*dst = n.Ptr()
	}
}

func (n Nullable[T]) validationValue() interface{} {
	if !n.Set || n.Null {
		return nil
	}
	return n.Value
}

type nullableValue interface {
	validationValue() interface{}
}

func unwrapNullable(field reflect.Value) interface{} {
	if n, ok := field.Interface().(nullableValue); ok {
		return n.validationValue()
	}
	return nil
}
