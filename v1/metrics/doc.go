// Package metrics exports document operation metrics to Prometheus.
//
// A *Metrics value is an observability.Observer. Attach it to a store and
// every operation is counted by outcome, timed, and its row count added:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "orders"})
//	store.WithObserver(m)
//	go m.Server.ListenAndServe()
//
// Exposed metrics (namespace "pgdoc" unless configured):
//   - pgdoc_operations_total{component, operation, table, status}
//   - pgdoc_operation_duration_seconds{component, operation, table}
//   - pgdoc_rows_total{component, operation, table}
//
// All of them carry the constant label service="<ServiceName>".
package metrics
