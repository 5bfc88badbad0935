package dto

import "encoding/json"

// Optional tracks whether a JSON field was present and whether it was null.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some builds a present, non-null optional value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

// Null builds an optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked when the key is present in the payload.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON writes null for unset or null values.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the field carried a non-null value.
func (o Optional[T]) Present() bool {
	return o.Set && o.Valid
}

// Pointer returns nil for null values and a copy of the value otherwise.
func (o Optional[T]) Pointer() *T {
	if !o.Valid {
		return nil
	}
	value := o.Value
	return &value
}

// Pagination describes the page returned by list endpoints.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListQuery carries the query parameters shared by list endpoints.
type ListQuery struct {
	Page   int
	Limit  int
	Sort   string
	Search string
}

// ListResult wraps one page of responses.
type ListResult[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
