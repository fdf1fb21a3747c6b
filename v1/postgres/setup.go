package postgres

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Aleph-Alpha/pgdoc/v1/document"
	"github.com/Aleph-Alpha/pgdoc/v1/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres is a document.ConnectionSource backed by gorm. It monitors the
// connection and reconnects in the background when health checks fail.
//
// Concurrency: the active *gorm.DB pointer is stored in an atomic pointer and
// swapped during reconnection without blocking readers. Statements already
// running on the previous handle are not interrupted.
type Postgres struct {
	cfg             Config
	log             logger.Logger
	client          atomic.Pointer[gorm.DB]
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewPostgres connects with gorm and returns a source ready for use.
// Background monitoring starts with MonitorConnection and RetryConnection,
// which GormFXModule runs for the application's lifetime.
func NewPostgres(cfg Config, log logger.Logger) (*Postgres, error) {
	if log == nil {
		log = logger.Nop()
	}
	conn, err := connectToPostgres(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres: %w", err)
	}

	pg := &Postgres{
		cfg:             cfg,
		log:             log,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	pg.client.Store(conn)
	return pg, nil
}

// connectToPostgres opens a gorm handle for cfg and applies the pool limits.
func connectToPostgres(cfg Config, log logger.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(
		postgres.Open(cfg.DSN()),
		&gorm.Config{
			TranslateError: true,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgresSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgresSQL database instance: %w", err)
	}

	databaseInstance.SetMaxOpenConns(cfg.ConnectionDetails.maxOpen())
	databaseInstance.SetMaxIdleConns(cfg.ConnectionDetails.maxIdle())
	databaseInstance.SetConnMaxLifetime(cfg.ConnectionDetails.maxLifetime())

	log.Info("successfully connected to PostgresSQL database", nil, nil)
	return database, nil
}

// DB returns the current gorm handle.
func (p *Postgres) DB() *gorm.DB {
	return p.client.Load()
}

// Querier runs statements on the pool behind the current gorm handle.
func (p *Postgres) Querier() document.Querier {
	return document.SQLQuerier(p.DB().ConnPool)
}

// Transaction runs fn in a gorm transaction, committing when fn returns nil.
func (p *Postgres) Transaction(ctx context.Context, fn func(q document.Querier) error) error {
	return p.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(document.SQLQuerier(tx.Statement.ConnPool))
	})
}

// Watch runs MonitorConnection and RetryConnection until ctx ends or the
// source is closed, and returns once both loops have exited.
func (p *Postgres) Watch(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.MonitorConnection(ctx)
	}()
	go func() {
		defer wg.Done()
		p.RetryConnection(ctx)
	}()
	wg.Wait()
}

// RetryConnection waits for failure signals from MonitorConnection and
// reconnects until it succeeds, the context ends or the source is closed.
func (p *Postgres) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-p.shutdownSignal:
			p.log.Info("stopping RetryConnection loop due to shutdown signal", nil, nil)
			return
		case <-ctx.Done():
			return
		case err, ok := <-p.retryChanSignal:
			if !ok {
				return
			}
			p.log.Warn("postgres health check failed, reconnecting", err, nil)
		innerLoop:
			for {
				select {
				case <-p.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToPostgres(p.cfg, p.log)
					if err != nil {
						p.log.Error("PostgresSQL reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					old := p.client.Swap(newConn)
					if sqlDB, err := old.DB(); err == nil {
						_ = sqlDB.Close()
					}
					p.log.Info("successfully reconnected to PostgresSQL database", nil, nil)
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection pings the database every HealthCheckInterval and signals
// RetryConnection on failure.
func (p *Postgres) MonitorConnection(ctx context.Context) {
	defer p.closeRetryChanOnce.Do(func() {
		close(p.retryChanSignal)
	})

	ticker := time.NewTicker(p.cfg.ConnectionDetails.healthCheckInterval())
	defer ticker.Stop()

	for {
		select {
		case <-p.shutdownSignal:
			p.log.Info("stopping MonitorConnection loop due to shutdown signal", nil, nil)
			return
		case <-ticker.C:
			if err := p.healthCheck(ctx); err != nil {
				select {
				case p.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// healthCheck pings the current handle with a five second timeout.
func (p *Postgres) healthCheck(ctx context.Context) error {
	dbConn := p.DB()
	if dbConn == nil {
		return fmt.Errorf("database client is not initialized")
	}

	db, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

// Close stops the background loops and closes the database handle.
func (p *Postgres) Close() error {
	p.closeShutdownOnce.Do(func() {
		close(p.shutdownSignal)
	})

	conn := p.DB()
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
