package serializer

import (
	"bytes"

	"github.com/goccy/go-json"
)

var jsonNull = []byte("null")

// Optional holds a value that may be absent.
//
// The zero value is absent. A present value is written as the value itself.
// The JSON serializer leaves an absent Optional struct field or map entry out
// of the document; elsewhere, and with other encoders, it is written as null.
// A missing field or null decodes to absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, ok: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPointer converts a nil-able pointer into an Optional.
func FromPointer[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Optional[T]) IsSome() bool {
	return o.ok
}

// IsZero reports whether the value is absent.
func (o Optional[T]) IsZero() bool {
	return !o.ok
}

func (o Optional[T]) isAbsent() bool {
	return !o.ok
}

// OrElse returns the value when present and fallback otherwise.
func (o Optional[T]) OrElse(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// Pointer returns a pointer to a copy of the value, or nil when absent.
func (o Optional[T]) Pointer() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*o = None[T]()
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*o = Some(value)
	return nil
}
