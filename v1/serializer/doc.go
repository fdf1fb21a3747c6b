// Package serializer converts documents to and from the JSON text stored in
// a JSONB column.
//
// The package defines the Serializer capability and ships one implementation,
// JSON, backed by github.com/goccy/go-json. Callers may plug any other
// implementation into document.Store; a swap only affects calls made after it.
//
// Basic Usage:
//
//	s := serializer.Default()
//	text, err := s.Serialize(User{Id: "u1", Name: "Ada"})
//	if err != nil {
//		return err
//	}
//
//	user, err := serializer.Deserialize[User](s, text)
//	if errors.Is(err, serializer.ErrDeserialization) {
//		// stored JSON does not fit the User shape
//	}
//
// Optional values:
//
// Optional[T] encodes as the bare value when present. An absent Optional
// struct field or map entry is left out of the document, so a partial update
// does not overwrite it and containment criteria do not require it. A missing
// field and an explicit null both decode as absent. It never appears as a
// wrapper object in stored JSON:
//
//	type Profile struct {
//		Id       string
//		Nickname serializer.Optional[string]
//	}
package serializer
