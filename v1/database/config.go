package database

import "github.com/Aleph-Alpha/pgdoc/v1/postgres"

const (
	DriverPgx   = "pgx"
	DriverGorm  = "gorm"
	DriverLibpq = "libpq"
)

// Config selects the driver backing a document connection source.
// Use one of the helper functions (PgxConfig, GormConfig, LibpqConfig) to create it.
type Config struct {
	// Driver is "pgx", "gorm" or "libpq". Empty selects pgx.
	Driver string `yaml:"driver" envconfig:"PGDOC_DRIVER"`

	Postgres postgres.Config `yaml:"postgres"`
}

// PgxConfig creates a database.Config for a pgx connection pool.
//
// Example:
//
//	fx.Provide(func() database.Config {
//	    return database.PgxConfig(postgres.Config{
//	        Connection: postgres.Connection{Host: "localhost", Port: "5432"},
//	    })
//	})
func PgxConfig(cfg postgres.Config) Config {
	return Config{Driver: DriverPgx, Postgres: cfg}
}

// GormConfig creates a database.Config for a monitored gorm connection.
func GormConfig(cfg postgres.Config) Config {
	return Config{Driver: DriverGorm, Postgres: cfg}
}

// LibpqConfig creates a database.Config for database/sql over lib/pq.
func LibpqConfig(cfg postgres.Config) Config {
	return Config{Driver: DriverLibpq, Postgres: cfg}
}
