// Package daemon schedules reconciliation runs on a fixed interval.
package daemon

import (
	"context"
	"sync/atomic"
	"time"
)

// RunFunc executes one reconciliation pass.
type RunFunc func(ctx context.Context) error

// Daemon runs reconciliation on an interval. Runs never overlap: the loop
// is single-threaded, one pass completes before the next tick is consumed.
type Daemon struct {
	interval time.Duration
	runOnce  RunFunc

	startTime time.Time
	runCount  atomic.Int64
}

// New creates a daemon.
func New(interval time.Duration, runOnce RunFunc) *Daemon {
	return &Daemon{
		interval:  interval,
		runOnce:   runOnce,
		startTime: time.Now(),
	}
}

// Start runs an immediate pass, then one per tick until the context is
// cancelled. A fatal run error stops the daemon; the same auth breakdown
// would fail every subsequent pass identically.
func (d *Daemon) Start(ctx context.Context) error {
	if err := d.run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := d.run(ctx); err != nil {
				return err
			}
		}
	}
}

func (d *Daemon) run(ctx context.Context) error {
	d.runCount.Add(1)
	return d.runOnce(ctx)
}

// RunCount returns total passes started.
func (d *Daemon) RunCount() int64 {
	return d.runCount.Load()
}

// HealthStatus reports daemon liveness.
type HealthStatus struct {
	Status string `json:"status"`
	Uptime int64  `json:"uptime_seconds"`
	Runs   int64  `json:"runs"`
}

// Health returns current daemon health.
func (d *Daemon) Health() HealthStatus {
	return HealthStatus{
		Status: "healthy",
		Uptime: int64(time.Since(d.startTime).Seconds()),
		Runs:   d.runCount.Load(),
	}
}
