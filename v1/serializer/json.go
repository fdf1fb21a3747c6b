package serializer

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/goccy/go-json"
)

// JSON is the stock Serializer. It encodes with github.com/goccy/go-json and
// honours json.Marshaler / json.Unmarshaler implementations, which is how
// wrapper types such as Optional control their own encoding.
type JSON struct {
	useNumber             bool
	disallowUnknownFields bool
	escapeHTML            bool
}

// JSONOption configures a JSON serializer.
type JSONOption func(*JSON)

// WithUseNumber decodes numbers into json.Number instead of float64 when the
// target is an interface value.
func WithUseNumber() JSONOption {
	return func(j *JSON) {
		j.useNumber = true
	}
}

// WithDisallowUnknownFields makes Deserialize fail when the stored document
// has fields the target struct does not declare.
func WithDisallowUnknownFields() JSONOption {
	return func(j *JSON) {
		j.disallowUnknownFields = true
	}
}

// WithoutHTMLEscape keeps <, > and & unescaped in serialized strings.
func WithoutHTMLEscape() JSONOption {
	return func(j *JSON) {
		j.escapeHTML = false
	}
}

// NewJSON creates a JSON serializer.
func NewJSON(opts ...JSONOption) *JSON {
	j := &JSON{escapeHTML: true}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Serialize encodes value as compact JSON text. Struct fields and map
// entries holding an absent Optional are omitted.
func (j *JSON) Serialize(value any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(j.escapeHTML)
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("failed to serialize %T: %w", value, err)
	}

	out, err := dropAbsent(bytes.TrimSuffix(buf.Bytes(), []byte("\n")), reflect.TypeOf(value))
	if err != nil {
		return "", fmt.Errorf("failed to serialize %T: %w", value, err)
	}
	return string(out), nil
}

// Deserialize decodes text into target, which must be a non-nil pointer.
// Decoder failures are returned as *DeserializationError.
func (j *JSON) Deserialize(text string, target any) error {
	dec := json.NewDecoder(strings.NewReader(text))
	if j.useNumber {
		dec.UseNumber()
	}
	if j.disallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(target); err != nil {
		return &DeserializationError{Target: fmt.Sprintf("%T", target), Err: err}
	}
	return nil
}
