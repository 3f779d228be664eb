// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/dashboard"
)

var _ suture.Service = (*CacheRefreshService)(nil)

type countingCache struct {
	clears  atomic.Int32
	reasons atomic.Value
}

func (c *countingCache) InvalidateAll(reason string) int {
	c.reasons.Store(reason)
	return int(c.clears.Add(1))
}

type countingWarmer struct {
	warms atomic.Int32
	err   error
}

func (w *countingWarmer) Warm(context.Context) (*dashboard.WarmReport, error) {
	w.warms.Add(1)
	if w.err != nil {
		return nil, w.err
	}
	return &dashboard.WarmReport{Panels: 10, Failed: []string{"trend"}}, nil
}

// everySchedule fires at a fixed sub-second interval, which cron's own
// @every descriptor rounds up to one second.
type everySchedule time.Duration

func (e everySchedule) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCacheRefreshService_Refresh(t *testing.T) {
	t.Parallel()

	c := &countingCache{}
	w := &countingWarmer{}
	svc := NewCacheRefreshService(c, w, nil)

	svc.Refresh(context.Background())

	if c.clears.Load() != 1 || w.warms.Load() != 1 {
		t.Errorf("clears = %d, warms = %d", c.clears.Load(), w.warms.Load())
	}
	if got := c.reasons.Load(); got != refreshReason {
		t.Errorf("reason = %v", got)
	}
}

func TestCacheRefreshService_WarmErrorDoesNotStopRefresh(t *testing.T) {
	t.Parallel()

	c := &countingCache{}
	w := &countingWarmer{err: &config.ConfigurationError{Reason: "missing credentials"}}
	svc := NewCacheRefreshService(c, w, nil)

	svc.Refresh(context.Background())
	svc.Refresh(context.Background())

	if c.clears.Load() != 2 || w.warms.Load() != 2 {
		t.Errorf("clears = %d, warms = %d", c.clears.Load(), w.warms.Load())
	}
}

func TestCacheRefreshService_Serve(t *testing.T) {
	t.Parallel()

	t.Run("warms at start without schedule", func(t *testing.T) {
		t.Parallel()
		c := &countingCache{}
		w := &countingWarmer{}
		svc := NewCacheRefreshService(c, w, nil)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		waitFor(t, func() bool { return w.warms.Load() == 1 })
		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v", err)
		}
		if c.clears.Load() != 0 {
			t.Errorf("cache cleared %d times without a schedule", c.clears.Load())
		}
	})

	t.Run("clears on schedule", func(t *testing.T) {
		t.Parallel()
		c := &countingCache{}
		svc := NewCacheRefreshService(c, nil, everySchedule(20*time.Millisecond))

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		waitFor(t, func() bool { return c.clears.Load() >= 2 })
		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v", err)
		}
	})

	t.Run("skips warm when canceled", func(t *testing.T) {
		t.Parallel()
		w := &countingWarmer{}
		svc := NewCacheRefreshService(&countingCache{}, w, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v", err)
		}
		if w.warms.Load() != 0 {
			t.Error("warmed after cancellation")
		}
	})
}
