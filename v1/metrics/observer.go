package metrics

import (
	"github.com/Aleph-Alpha/pgdoc/v1/observability"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var _ observability.Observer = (*Metrics)(nil)

// ObserveOperation records one completed operation.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	status := statusSuccess
	if op.Error != nil {
		status = statusError
	}

	m.operationsTotal.WithLabelValues(op.Component, op.Operation, op.Resource, status).Inc()
	m.operationDuration.WithLabelValues(op.Component, op.Operation, op.Resource).Observe(op.Duration.Seconds())
	if op.Size > 0 {
		m.rowsTotal.WithLabelValues(op.Component, op.Operation, op.Resource).Add(float64(op.Size))
	}
}
