package tracer

import (
	"context"

	"github.com/Aleph-Alpha/pgdoc/v1/logger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// FXModule provides *Tracer and its trace.TracerProvider, which
// document.FXModule uses for operation spans. The provider is shut down
// (flushing pending spans) when the application stops.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
		func(t *Tracer) trace.TracerProvider { return t.Provider() },
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// NewClientWithDI creates the tracer from the injected Config.
func NewClientWithDI(cfg Config) (*Tracer, error) {
	return NewClient(cfg)
}

// TracerLifecycleParams groups the dependencies of RegisterTracerLifecycle.
type TracerLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Tracer    *Tracer
	Logger    logger.Logger `optional:"true"`
}

// RegisterTracerLifecycle shuts the provider down on application stop.
func RegisterTracerLifecycle(params TracerLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("shutting down tracer", nil, nil)
			}
			return params.Tracer.Shutdown(ctx)
		},
	})
}
