// Package observability defines the hook through which pgdoc components report
// completed operations to metrics or tracing backends.
package observability

import "time"

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "document".
	Component string
	// Operation is the operation name, e.g. "insert" or "find_by_contains".
	Operation string
	// Resource is the table the operation ran against.
	Resource string
	// SubResource carries extra context such as the index variant.
	SubResource string
	Duration    time.Duration
	Error       error
	// Size is the number of rows returned or affected, when known.
	Size     int64
	Metadata map[string]interface{}
}

// Observer receives OperationContext values. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
