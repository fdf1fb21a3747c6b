package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/Aleph-Alpha/pgdoc/v1/logger"
	"github.com/Aleph-Alpha/pgdoc/v1/postgres"
)

// ErrUnsupportedDriver is returned by Open for an unknown Config.Driver.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Open connects with the driver named in cfg and returns the resulting
// connection source. On error the returned source is nil. The concrete type is *postgres.Pool, *postgres.Postgres
// or *postgres.SQLSource; all of them support transactions.
func Open(ctx context.Context, cfg Config, log logger.Logger) (document.ConnectionSource, error) {
	if log == nil {
		log = logger.Nop()
	}

	var (
		src document.ConnectionSource
		err error
	)
	switch cfg.Driver {
	case "", DriverPgx:
		var pool *postgres.Pool
		if pool, err = postgres.NewPool(ctx, cfg.Postgres); err == nil {
			src = pool
		}
	case DriverGorm:
		var pg *postgres.Postgres
		if pg, err = postgres.NewPostgres(cfg.Postgres, log); err == nil {
			src = pg
		}
	case DriverLibpq:
		var db *postgres.SQLSource
		if db, err = postgres.OpenSQL(ctx, cfg.Postgres); err == nil {
			src = db
		}
	default:
		err = fmt.Errorf("%w: %q (must be %q, %q or %q)", ErrUnsupportedDriver, cfg.Driver, DriverPgx, DriverGorm, DriverLibpq)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}
