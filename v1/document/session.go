package document

import (
	"context"
	"strings"
	"time"

	"github.com/Aleph-Alpha/pgdoc/v1/observability"
	"github.com/Aleph-Alpha/pgdoc/v1/query"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const component = "document"

// Session runs operations on one explicit connection, typically a
// transaction. Obtain one from Store.WithConn or Store.Transaction.
type Session struct {
	store   *Store
	querier Querier
}

func (s *Session) session() (*Session, error) {
	return s, nil
}

// Store returns the store the session takes its configuration from.
func (s *Session) Store() *Store {
	return s.store
}

func (s *Session) builder() query.Builder {
	return s.store.Builder()
}

// begin opens a span for op and returns a function completing it. The
// function logs, records the span status and notifies the observer.
// Only parameter names are logged; bound values may hold document content.
func (s *Session) begin(ctx context.Context, op, table, sql string, params query.Parameters) (context.Context, func(size int64, err error)) {
	log, observer, tracer := s.store.telemetry()

	ctx, span := tracer.Start(ctx, "document."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
			attribute.String("db.sql.table", table),
		),
	)
	start := time.Now()

	fields := map[string]interface{}{
		"operation": op,
		"table":     table,
		"statement":  sql,
		"parameters": strings.Join(params.Names(), ","),
	}
	log.DebugWithContext(ctx, "executing document statement", nil, fields)

	return ctx, func(size int64, err error) {
		duration := time.Since(start)
		span.SetAttributes(attribute.Int64("db.rows", size))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.DebugWithContext(ctx, "document statement failed", err, fields)
		}
		span.End()

		if observer != nil {
			observer.ObserveOperation(observability.OperationContext{
				Component: component,
				Operation: op,
				Resource:  table,
				Duration:  duration,
				Error:     err,
				Size:      size,
			})
		}
	}
}

func (s *Session) exec(ctx context.Context, op, table, sql string, params query.Parameters) (int64, error) {
	ctx, done := s.begin(ctx, op, table, sql, params)
	n, err := s.querier.Exec(ctx, sql, params)
	err = TranslateError(err)
	done(n, err)
	return n, err
}

// query runs sql and hands the open rows to scan, which returns the number of
// rows it consumed.
func (s *Session) query(ctx context.Context, op, table, sql string, params query.Parameters, scan func(rows Rows) (int64, error)) error {
	ctx, done := s.begin(ctx, op, table, sql, params)

	rows, err := s.querier.Query(ctx, sql, params)
	if err != nil {
		err = TranslateError(err)
		done(0, err)
		return err
	}

	n, err := scan(rows)
	if closeErr := rows.Close(); err == nil {
		err = closeErr
	}
	err = TranslateError(err)
	done(n, err)
	return err
}
