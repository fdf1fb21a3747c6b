package serializer

// Serializer converts values to and from their JSON text representation.
//
// Deserialize must return an error wrapping ErrDeserialization when text cannot
// be decoded into target.
type Serializer interface {
	Serialize(value any) (string, error)
	Deserialize(text string, target any) error
}

// Default returns the stock serializer used when none has been configured.
func Default() Serializer {
	return NewJSON()
}

// Deserialize decodes text into a new value of type T using s.
func Deserialize[T any](s Serializer, text string) (T, error) {
	var value T
	if err := s.Deserialize(text, &value); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}
