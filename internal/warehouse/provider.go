// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
	sf "github.com/snowflakedb/gosnowflake"

	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/metrics"
)

// OpenFunc opens the underlying pool. Tests replace it with sqlmock or an
// in-memory DuckDB.
type OpenFunc func(ctx context.Context, cfg *config.WarehouseConfig) (*sql.DB, error)

// Provider hands out the single shared warehouse handle. The handle is opened
// on the first call to Conn and reused until Close.
type Provider struct {
	cfg  config.WarehouseConfig
	open OpenFunc

	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithOpenFunc overrides how the pool is opened.
func WithOpenFunc(fn OpenFunc) Option {
	return func(p *Provider) {
		p.open = fn
	}
}

// New creates a provider. It does not connect.
func New(cfg *config.WarehouseConfig, opts ...Option) *Provider {
	p := &Provider{cfg: *cfg, open: openDriver}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Conn returns the shared handle, opening it on first use. Concurrent first
// callers block on the same open; a failed open is not remembered, so the
// next call tries again.
func (p *Provider) Conn(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	if p.db != nil {
		return p.db, nil
	}

	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	db, err := p.open(ctx, &p.cfg)
	if err != nil {
		return nil, p.classify(err)
	}

	configureConnectionPool(db, &p.cfg)

	pingCtx := ctx
	if p.cfg.LoginTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, p.cfg.LoginTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		closeQuietly(db)
		return nil, p.classify(err)
	}

	p.db = db
	metrics.WarehouseConnectionsOpened.Inc()
	logging.Info().
		Str("warehouse", p.cfg.Describe()).
		Dur("elapsed", time.Since(start)).
		Msg("Connected to warehouse")

	return db, nil
}

// Ping checks that the warehouse is reachable, opening the handle if needed.
func (p *Provider) Ping(ctx context.Context) error {
	db, err := p.Conn(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return &ConnectError{Target: p.cfg.Describe(), Err: err}
	}
	return nil
}

// Connected reports whether the handle has been opened.
func (p *Provider) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db != nil
}

// Dialect returns the configured driver name.
func (p *Provider) Dialect() string {
	return p.cfg.Driver
}

// Target returns a log-safe description of the warehouse.
func (p *Provider) Target() string {
	return p.cfg.Describe()
}

// Close releases the handle. It is safe to call more than once.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	if err != nil {
		return fmt.Errorf("failed to close warehouse connection: %w", err)
	}
	logging.Info().Str("warehouse", p.cfg.Describe()).Msg("Warehouse connection closed")
	return nil
}

// classify maps an open or ping failure to the error kinds callers act on.
func (p *Provider) classify(err error) error {
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return err
	}
	if field, ok := configFieldForError(err); ok {
		return &config.ConfigurationError{Fields: []string{field}, Reason: "missing warehouse credentials"}
	}
	logging.Warn().
		Str("warehouse", p.cfg.Describe()).
		Str("cause", logging.RedactSecrets(err.Error(), p.cfg.Password)).
		Msg("Warehouse connection failed")
	if isAuthFailure(err) {
		return &AuthenticationError{Account: p.cfg.Account, User: p.cfg.User, Err: err}
	}
	return &ConnectError{Target: p.cfg.Describe(), Err: err}
}

func openDriver(_ context.Context, cfg *config.WarehouseConfig) (*sql.DB, error) {
	driverName, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	return sql.Open(driverName, dsn)
}

// DSN builds the driver name and data source name for cfg.
func DSN(cfg *config.WarehouseConfig) (string, string, error) {
	switch cfg.Driver {
	case config.DriverSnowflake:
		dsn, err := sf.DSN(snowflakeConfig(cfg))
		if err != nil {
			return "", "", err
		}
		return "snowflake", dsn, nil
	case config.DriverDuckDB:
		return "duckdb", duckDBDSN(cfg.Path), nil
	default:
		return "", "", &config.ConfigurationError{
			Fields: []string{"WAREHOUSE_DRIVER"},
			Reason: fmt.Sprintf("unknown warehouse driver %q", cfg.Driver),
		}
	}
}

func snowflakeConfig(cfg *config.WarehouseConfig) *sf.Config {
	return &sf.Config{
		Account:      cfg.Account,
		User:         cfg.User,
		Password:     cfg.Password,
		Warehouse:    cfg.Warehouse,
		Database:     cfg.Database,
		Schema:       cfg.Schema,
		Role:         cfg.Role,
		LoginTimeout: cfg.LoginTimeout,
		Application:  "taxiboard",
	}
}

// duckDBDSN opens files read-only. In-memory databases cannot be read-only.
func duckDBDSN(path string) string {
	if path == "" || path == ":memory:" || strings.HasPrefix(path, ":memory:") {
		return path
	}
	return path + "?access_mode=read_only"
}

// configureConnectionPool sets connection pool parameters. MaxOpenConns of
// one keeps a single warehouse session per process.
func configureConnectionPool(db *sql.DB, cfg *config.WarehouseConfig) {
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)
}

func closeQuietly(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}
