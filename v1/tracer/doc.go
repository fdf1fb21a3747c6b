// Package tracer sets up OpenTelemetry tracing for pgdoc.
//
// NewClient builds an SDK TracerProvider with service resource attributes,
// optionally exporting over OTLP HTTP, and installs it globally. Hand the
// provider to a document store so every operation produces a client span:
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "orders", AppEnv: "prod", EnableExport: true})
//	if err != nil {
//		return err
//	}
//	defer t.Shutdown(ctx)
//	store.WithTracerProvider(t.Provider())
package tracer
