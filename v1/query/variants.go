package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidIndexVariant is returned when an index variant outside Full and
	// Optimized is supplied.
	ErrInvalidIndexVariant = errors.New("invalid index variant")

	// ErrInvalidStrategy is returned when a table strategy name is not recognized.
	ErrInvalidStrategy = errors.New("invalid table strategy")
)

// Strategy selects how a table stores document identity.
type Strategy int

const (
	// EmbeddedKey keeps the identity inside the JSON document.
	EmbeddedKey Strategy = iota
	// KeyColumn keeps the identity in a dedicated id column.
	KeyColumn
)

func (s Strategy) String() string {
	switch s {
	case EmbeddedKey:
		return "embedded-key"
	case KeyColumn:
		return "key-column"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration value into a Strategy.
// The empty string selects EmbeddedKey.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "embedded-key", "embedded":
		return EmbeddedKey, nil
	case "key-column", "column":
		return KeyColumn, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
	}
}

// IndexVariant selects the operator class of the GIN index over the data column.
type IndexVariant int

const (
	// Full indexes the whole document for all jsonb operators.
	Full IndexVariant = iota
	// Optimized uses jsonb_path_ops, which only supports @>, @? and @@ but is
	// smaller and faster for them.
	Optimized
)

func (v IndexVariant) String() string {
	switch v {
	case Full:
		return "full"
	case Optimized:
		return "optimized"
	default:
		return fmt.Sprintf("IndexVariant(%d)", int(v))
	}
}

// Valid reports whether v is one of the known variants.
func (v IndexVariant) Valid() bool {
	return v == Full || v == Optimized
}

// ParseIndexVariant converts a configuration value into an IndexVariant.
func ParseIndexVariant(name string) (IndexVariant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "full":
		return Full, nil
	case "optimized":
		return Optimized, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndexVariant, name)
	}
}

func (v IndexVariant) opsSuffix() (string, error) {
	switch v {
	case Full:
		return "", nil
	case Optimized:
		return " jsonb_path_ops", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidIndexVariant, int(v))
	}
}
