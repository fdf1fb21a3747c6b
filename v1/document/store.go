package document

import (
	"context"
	"fmt"
	"sync"

	"github.com/Aleph-Alpha/pgdoc/v1/logger"
	"github.com/Aleph-Alpha/pgdoc/v1/observability"
	"github.com/Aleph-Alpha/pgdoc/v1/query"
	"github.com/Aleph-Alpha/pgdoc/v1/serializer"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Aleph-Alpha/pgdoc/v1/document"

// Store holds the process-wide configuration used by every document
// operation: the connection source, the serializer and the identity layout.
// Settings are read on each call, so a replacement applies to every call made
// after it returns. Store is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	source     ConnectionSource
	serializer serializer.Serializer
	idField    string
	strategy   query.Strategy

	logger   logger.Logger
	observer observability.Observer
	tracer   trace.Tracer
}

// NewStore creates a Store from cfg. No connection source is registered yet;
// see UseSource.
func NewStore(cfg Config) (*Store, error) {
	strategy, err := cfg.strategy()
	if err != nil {
		return nil, err
	}
	idField := cfg.IDField
	if idField == "" {
		idField = query.DefaultIDField
	}
	return &Store{
		serializer: serializer.Default(),
		idField:    idField,
		strategy:   strategy,
		logger:     logger.Nop(),
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// WithLogger sets the logger used for statement and lifecycle logging.
func (s *Store) WithLogger(l logger.Logger) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil {
		l = logger.Nop()
	}
	s.logger = l
	return s
}

// WithObserver attaches an observer notified after every operation.
func (s *Store) WithObserver(o observability.Observer) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
	return s
}

// WithTracerProvider sets the provider spans are created from. Without it the
// global otel provider is used.
func (s *Store) WithTracerProvider(tp trace.TracerProvider) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tp == nil {
		s.tracer = otel.Tracer(tracerName)
	} else {
		s.tracer = tp.Tracer(tracerName)
	}
	return s
}

// UseSource registers the default connection source. A previously
// registered source is closed after the swap, outside the store lock, so
// statements still running on it can finish or abort. A close failure is
// returned, but the new source is registered regardless.
func (s *Store) UseSource(src ConnectionSource) error {
	s.mu.Lock()
	prev := s.source
	s.source = src
	log := s.logger
	s.mu.Unlock()

	log.Info("registered connection source", nil, map[string]interface{}{
		"source": fmt.Sprintf("%T", src),
	})

	if prev == nil || prev == src {
		return nil
	}
	if err := prev.Close(); err != nil {
		log.Error("failed to dispose previous connection source", err, nil)
		return fmt.Errorf("failed to dispose previous connection source: %w", err)
	}
	log.Info("disposed previous connection source", nil, map[string]interface{}{
		"source": fmt.Sprintf("%T", prev),
	})
	return nil
}

// Source returns the registered connection source or ErrNoConnectionSource.
func (s *Store) Source() (ConnectionSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.source == nil {
		return nil, ErrNoConnectionSource
	}
	return s.source, nil
}

// UseSerializer replaces the serializer. nil restores the default.
func (s *Store) UseSerializer(ser serializer.Serializer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ser == nil {
		ser = serializer.Default()
	}
	s.serializer = ser
}

// Serializer returns the current serializer.
func (s *Store) Serializer() serializer.Serializer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serializer
}

// UseIDField sets the identity property name. An empty name restores "Id".
func (s *Store) UseIDField(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		name = query.DefaultIDField
	}
	s.idField = name
}

// IDField returns the identity property name.
func (s *Store) IDField() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idField
}

// UseStrategy switches the table layout statements are built for.
func (s *Store) UseStrategy(strategy query.Strategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategy = strategy
}

// Strategy returns the table layout statements are built for.
func (s *Store) Strategy() query.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy
}

// Builder returns a statement builder for the current layout.
func (s *Store) Builder() query.Builder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return query.NewBuilder(s.strategy, s.idField)
}

// WithConn returns a Session running operations on q instead of the
// registered source. The session still follows the store's configuration.
func (s *Store) WithConn(q Querier) *Session {
	return &Session{store: s, querier: q}
}

// Transaction runs fn inside a transaction of the registered source. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Session) error) error {
	src, err := s.Source()
	if err != nil {
		return err
	}
	txr, ok := src.(Transactor)
	if !ok {
		return ErrTransactionsUnsupported
	}
	return txr.Transaction(ctx, func(q Querier) error {
		return fn(s.WithConn(q))
	})
}

// Close closes and unregisters the connection source.
func (s *Store) Close() error {
	s.mu.Lock()
	src := s.source
	s.source = nil
	s.mu.Unlock()

	if src == nil {
		return nil
	}
	return src.Close()
}

func (s *Store) session() (*Session, error) {
	src, err := s.Source()
	if err != nil {
		return nil, err
	}
	return &Session{store: s, querier: src.Querier()}, nil
}

func (s *Store) telemetry() (logger.Logger, observability.Observer, trace.Tracer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logger, s.observer, s.tracer
}
