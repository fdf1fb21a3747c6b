// Package database opens a document connection source for one of the
// supported PostgreSQL drivers.
//
// The driver is chosen at configuration time:
//
//   - "pgx" (default): a pgxpool connection pool (postgres.Pool)
//   - "gorm": a gorm handle with health monitoring and reconnects (postgres.Postgres)
//   - "libpq": database/sql over lib/pq (postgres.SQLSource)
//
// Basic Usage:
//
//	src, err := database.Open(ctx, database.Config{
//	    Driver:   database.DriverLibpq,
//	    Postgres: postgres.Config{Connection: postgres.Connection{ConnectionString: dsn}},
//	}, log)
//	if err != nil {
//	    return err
//	}
//	store, _ := document.NewStore(document.Config{})
//	_ = store.UseSource(src)
//
// FX Integration:
//
// FXModule provides document.ConnectionSource, which document.FXModule
// picks up as the store's source.
package database
