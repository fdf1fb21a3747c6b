package database

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/Aleph-Alpha/pgdoc/v1/logger"
	"github.com/Aleph-Alpha/pgdoc/v1/postgres"
	"go.uber.org/fx"
)

// FXModule provides a document.ConnectionSource selected by Config.Driver.
//
// Usage:
//
//	app := fx.New(
//	    database.FXModule,
//	    document.FXModule,
//	    fx.Provide(func() database.Config {
//	        return database.GormConfig(postgres.Config{...})
//	    }),
//	)
//
// When the gorm driver is selected the health monitor and reconnect loops run for the
// lifetime of the application.
var FXModule = fx.Module("database",
	fx.Provide(NewSourceWithDI),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// DatabaseParams groups the dependencies needed to open a connection source.
type DatabaseParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// DatabaseLifecycleParams groups the dependencies needed for lifecycle management.
type DatabaseLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Source    document.ConnectionSource
}

// NewSourceWithDI opens the configured connection source.
func NewSourceWithDI(params DatabaseParams) (document.ConnectionSource, error) {
	return Open(context.Background(), params.Config, params.Logger)
}

// RegisterDatabaseLifecycle closes the source on shutdown. For the gorm
// driver it defers to postgres.RegisterPostgresLifecycle, which also runs the
// health monitor and reconnect loops while the application is up.
func RegisterDatabaseLifecycle(params DatabaseLifecycleParams) {
	if pg, ok := params.Source.(*postgres.Postgres); ok {
		postgres.RegisterPostgresLifecycle(params.Lifecycle, pg)
		return
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return params.Source.Close()
		},
	})
}
