// Package postgres provides the connection sources document operations run on.
//
// Three sources implement document.ConnectionSource and document.Transactor:
//   - Pool: a pgx v5 pool. Named parameters are rewritten by pgx itself.
//   - Postgres: a gorm handle with background health checks and reconnection.
//   - SQLSource: database/sql with the lib/pq driver.
//
// All of them are configured from the same Config:
//
//	cfg := postgres.Config{
//		Connection: postgres.Connection{
//			Host:     "localhost",
//			Port:     "5432",
//			User:     "postgres",
//			Password: "password",
//			DbName:   "app",
//		},
//	}
//
//	pool, err := postgres.NewPool(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store, _ := document.NewStore(document.Config{})
//	_ = store.UseSource(pool)
//
// With fx, FXModule (pgx) or GormFXModule (gorm) provides the source and
// document.FXModule picks it up:
//
//	app := fx.New(
//		fx.Provide(loadPostgresConfig, loadDocumentConfig),
//		postgres.FXModule,
//		document.FXModule,
//	)
package postgres
