package serializer

import (
	"errors"
	"fmt"
)

// ErrDeserialization is returned when stored JSON does not match the shape of
// the requested type.
var ErrDeserialization = errors.New("deserialization failed")

// DeserializationError carries the requested target type and the decoder error.
type DeserializationError struct {
	Target string
	Err    error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("cannot deserialize into %s: %v", e.Target, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// Is reports ErrDeserialization as a match so callers can use errors.Is.
func (e *DeserializationError) Is(target error) bool {
	return target == ErrDeserialization
}

// IsDeserializationError checks if the error is a deserialization error.
func IsDeserializationError(err error) bool {
	return errors.Is(err, ErrDeserialization)
}
