package document

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/logger"
	"github.com/Aleph-Alpha/pgdoc/v1/observability"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// FXModule is an fx module that provides the document Store.
// A ConnectionSource in the container (for example from postgres.FXModule)
// is registered as the default connection, and the store closes it when the
// application stops.
var FXModule = fx.Module("document",
	fx.Provide(NewStoreWithDI),
	fx.Invoke(RegisterStoreLifecycle),
)

// StoreParams groups the dependencies needed to create a Store via dependency injection.
// Everything except Config is optional.
type StoreParams struct {
	fx.In

	Config         Config
	Source         ConnectionSource       `optional:"true"`
	Logger         logger.Logger          `optional:"true"`
	Observer       observability.Observer `optional:"true"`
	TracerProvider trace.TracerProvider   `optional:"true"`
}

// NewStoreWithDI creates a Store and wires whatever optional collaborators
// the container provides.
func NewStoreWithDI(params StoreParams) (*Store, error) {
	store, err := NewStore(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		store.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		store.WithObserver(params.Observer)
	}
	if params.TracerProvider != nil {
		store.WithTracerProvider(params.TracerProvider)
	}
	if params.Source != nil {
		if err := store.UseSource(params.Source); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// RegisterStoreLifecycle closes the store's connection source on application stop.
func RegisterStoreLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}
