package document

import (
	"github.com/Aleph-Alpha/pgdoc/v1/query"
)

// Config defines the document layout the store targets.
type Config struct {
	// IDField is the JSON property holding the document identity.
	// Defaults to "Id".
	IDField string `yaml:"id_field" envconfig:"PGDOC_ID_FIELD"`

	// Strategy selects where identity lives: "embedded-key" (the default,
	// single data column with a unique expression index) or "key-column"
	// (a separate id primary-key column).
	Strategy string `yaml:"strategy" envconfig:"PGDOC_STRATEGY"`
}

func (c Config) strategy() (query.Strategy, error) {
	return query.ParseStrategy(c.Strategy)
}
