package postgres

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/Aleph-Alpha/pgdoc/v1/logger"
	"go.uber.org/fx"
)

// FXModule provides a pgx *Pool and exposes it as document.ConnectionSource.
// The pool is closed on application stop.
var FXModule = fx.Module("postgres",
	fx.Provide(
		fx.Annotate(
			NewPoolWithDI,
			fx.As(fx.Self()),
			fx.As(new(document.ConnectionSource)),
		),
	),
	fx.Invoke(RegisterPoolLifecycle),
)

// GormFXModule provides the gorm-backed *Postgres and exposes it as
// document.ConnectionSource. Connection monitoring runs while the
// application is started.
var GormFXModule = fx.Module("postgres-gorm",
	fx.Provide(
		fx.Annotate(
			NewPostgresClientWithDI,
			fx.As(fx.Self()),
			fx.As(new(document.ConnectionSource)),
		),
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// PostgresParams groups the dependencies needed to create a source via dependency injection.
type PostgresParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewPoolWithDI opens the pool when the application starts.
func NewPoolWithDI(params PostgresParams) (*Pool, error) {
	return NewPool(context.Background(), params.Config)
}

// RegisterPoolLifecycle closes the pool on application stop.
func RegisterPoolLifecycle(lc fx.Lifecycle, pool *Pool) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return pool.Close()
		},
	})
}

// NewPostgresClientWithDI creates the gorm-backed source.
func NewPostgresClientWithDI(params PostgresParams) (*Postgres, error) {
	return NewPostgres(params.Config, params.Logger)
}

// RegisterPostgresLifecycle runs MonitorConnection and RetryConnection
// between application start and stop, then closes the connection.
func RegisterPostgresLifecycle(lc fx.Lifecycle, pg *Postgres) {
	done := make(chan struct{})
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				pg.Watch(runCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			err := pg.Close()
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			return err
		},
	})
}
