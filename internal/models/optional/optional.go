// Package optional описывает поле частичного обновления с тремя состояниями:
// поле не передано, передан null, передано значение.
package optional

import (
	"encoding/json"
)

type Field[T any] struct {
	Set   bool
	Value *T
}

func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// IsNull - поле передано явно как null
func (f Field[T]) IsNull() bool {
	return f.Set && f.Value == nil
}

// ApplyTo заменяет dst, только если поле было передано
func (f Field[T]) ApplyTo(dst **T) {
	if !f.Set {
		return
	}
	if f.Value == nil {
		*dst = nil
		return
	}
	v := *f.Value
	*dst = &v
}

// UnmarshalJSON вызывается и для null, поэтому Set отличает null от отсутствия ключа
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}
