// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tomtom215/taxiboard/internal/cache"
	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/metrics"
)

const breakerName = "warehouse"

// Connector supplies the shared warehouse handle. *warehouse.Provider
// satisfies it.
type Connector interface {
	Conn(ctx context.Context) (*sql.DB, error)
}

// Loader is the contract the dashboard renderer depends on.
type Loader interface {
	Load(ctx context.Context, sqlText string) (*Result, error)
}

// Executor runs fixed SQL text against the warehouse and caches results by
// the exact query string.
type Executor struct {
	conn  Connector
	store cache.Cacher
	cfg   config.QueryConfig

	group   singleflight.Group
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[*Result]

	// sleep is replaced in tests to skip backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ Loader = (*Executor)(nil)

// NewExecutor creates an executor. Query text is always executed verbatim
// with no bind arguments.
func NewExecutor(conn Connector, store cache.Cacher, cfg *config.QueryConfig) *Executor {
	e := &Executor{
		conn:  conn,
		store: store,
		cfg:   *cfg,
		sleep: sleepCtx,
	}

	if cfg.RateLimitQPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		e.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitQPS), burst)
	}

	e.breaker = newBreaker(cfg)
	return e
}

func newBreaker(cfg *config.QueryConfig) *gobreaker.CircuitBreaker[*Result] {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	minRequests := cfg.BreakerMinRequests
	ratio := cfg.BreakerFailureRatio

	return gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerOpenTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= ratio
			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// SQL and schema errors say nothing about warehouse health.
		IsSuccessful: func(err error) bool {
			return err == nil || !isTransient(err)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
}

// Load returns the result for sqlText, from cache when present. On a miss the
// query runs once even if several callers ask for it at the same time.
func (e *Executor) Load(ctx context.Context, sqlText string) (*Result, error) {
	if res, ok := e.cached(sqlText); ok {
		metrics.RecordCacheLookup(true)
		return res, nil
	}
	metrics.RecordCacheLookup(false)

	// The shared execution must outlive any single caller that gives up.
	ch := e.group.DoChan(sqlText, func() (interface{}, error) {
		// Another flight may have stored the result since the lookup above.
		if v, ok := e.store.Peek(sqlText); ok {
			if res, ok := v.(*Result); ok {
				return res, nil
			}
		}
		res, err := e.executeWithRetry(context.WithoutCancel(ctx), sqlText)
		if err != nil {
			return nil, err
		}
		e.store.Set(sqlText, res)
		metrics.QueryCacheEntries.Set(float64(e.store.Len()))
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, &QueryExecutionError{Query: sqlText, Err: ctx.Err()}
	case r := <-ch:
		if r.Shared {
			metrics.QueryCoalesced.Inc()
		}
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Result), nil
	}
}

func (e *Executor) cached(sqlText string) (*Result, bool) {
	v, ok := e.store.Get(sqlText)
	if !ok {
		return nil, false
	}
	res, ok := v.(*Result)
	return res, ok
}

// executeWithRetry retries transient failures with exponential backoff.
// Fatal errors are returned as they are.
func (e *Executor) executeWithRetry(ctx context.Context, sqlText string) (*Result, error) {
	delay := e.cfg.RetryDelay
	for attempt := 0; ; attempt++ {
		res, err := e.executeOnce(ctx, sqlText)
		if err == nil {
			return res, nil
		}
		if IsFatal(err) {
			return nil, err
		}

		var qe *QueryExecutionError
		if !errors.As(err, &qe) {
			qe = &QueryExecutionError{Query: sqlText, Err: err, Transient: isTransient(err)}
		}
		// An open breaker stays open for BreakerOpenTimeout; backing off here
		// would only delay the panel error.
		if !qe.Transient || errors.Is(qe, ErrCircuitOpen) || attempt >= e.cfg.MaxRetries {
			return nil, qe
		}

		logging.Warn().
			Err(qe.Err).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Str("query", logging.QuerySnippet(sqlText)).
			Msg("Transient query failure, retrying")
		metrics.WarehouseQueryRetries.Inc()

		if err := e.sleep(ctx, delay); err != nil {
			return nil, qe
		}
		delay *= 2
		if e.cfg.MaxRetryDelay > 0 && delay > e.cfg.MaxRetryDelay {
			delay = e.cfg.MaxRetryDelay
		}
	}
}

// executeOnce performs a single warehouse round-trip.
func (e *Executor) executeOnce(ctx context.Context, sqlText string) (*Result, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, &QueryExecutionError{Query: sqlText, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	db, err := e.conn.Conn(ctx)
	if err != nil {
		if IsFatal(err) {
			metrics.WarehouseQueryErrors.WithLabelValues(errorKind(err)).Inc()
			return nil, err
		}
		return nil, &QueryExecutionError{Query: sqlText, Err: err, Transient: isTransient(err)}
	}

	start := time.Now()
	res, err := e.breaker.Execute(func() (*Result, error) {
		return e.run(ctx, db, sqlText)
	})
	elapsed := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
			err = fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		default:
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		kind := errorKind(err)
		metrics.RecordWarehouseQuery(elapsed, 0, kind)
		logging.Error().
			Err(err).
			Str("kind", kind).
			Dur("elapsed", elapsed).
			Str("query", logging.QuerySnippet(sqlText)).
			Msg("Warehouse query failed")
		return nil, &QueryExecutionError{Query: sqlText, Err: err, Transient: isTransient(err)}
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	metrics.RecordWarehouseQuery(elapsed, res.Len(), "")
	logging.Debug().
		Int("rows", res.Len()).
		Dur("elapsed", elapsed).
		Str("query", logging.QuerySnippet(sqlText)).
		Msg("Warehouse query executed")

	return res, nil
}

// run executes sqlText under the per-query timeout and materialises every row.
func (e *Executor) run(ctx context.Context, db *sql.DB, sqlText string) (*Result, error) {
	qctx := ctx
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := db.QueryContext(qctx, sqlText)
	if err != nil {
		return nil, e.timeoutOr(qctx, err)
	}
	defer func() { _ = rows.Close() }()

	res, err := scanResult(rows)
	if err != nil {
		return nil, e.timeoutOr(qctx, err)
	}
	res.FetchedAt = time.Now()
	res.Duration = res.FetchedAt.Sub(start)
	return res, nil
}

func (e *Executor) timeoutOr(qctx context.Context, err error) error {
	if errors.Is(qctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %v", ErrTimeout, e.cfg.Timeout, err)
	}
	return err
}

// Invalidate drops the cached result for sqlText.
func (e *Executor) Invalidate(sqlText string) bool {
	e.group.Forget(sqlText)
	removed := e.store.Delete(sqlText)
	metrics.RecordInvalidation("panel", e.store.Len())
	return removed
}

// InvalidateAll drops every cached result and returns how many were removed.
func (e *Executor) InvalidateAll(reason string) int {
	n := e.store.Clear()
	metrics.RecordInvalidation(reason, 0)
	logging.Info().Str("reason", reason).Int("entries", n).Msg("Query cache cleared")
	return n
}

// Stats summarises cache and breaker state.
type Stats struct {
	Entries      int     `json:"entries"`
	Hits         int64   `json:"hits"`
	Misses       int64   `json:"misses"`
	HitRate      float64 `json:"hit_rate"`
	BreakerState string  `json:"breaker_state"`
}

// Stats returns a snapshot of executor statistics.
func (e *Executor) Stats() Stats {
	s := e.store.GetStats()
	return Stats{
		Entries:      e.store.Len(),
		Hits:         s.Hits,
		Misses:       s.Misses,
		HitRate:      e.store.HitRate(),
		BreakerState: e.breaker.State().String(),
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
