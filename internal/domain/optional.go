package domain

import (
	"bytes"
	"encoding/json"
)

// Optional хранит значение поля из тела PATCH-запроса.
// Set выставляется, если ключ присутствовал в JSON, в том числе со значением null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some возвращает заданное значение.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null возвращает заданное значение null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// OrZero возвращает значение или нулевое значение типа для null.
func (o Optional[T]) OrZero() T {
	if o.Value == nil {
		var zero T
		return zero
	}
	return *o.Value
}
