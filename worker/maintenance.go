package worker

import (
	"context"
	"log/slog"
	"time"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	"github.com/magicyuan876/mineru-tianshu/internal"
)

// MaintenanceConfig defines the scheduling parameters for a
// MaintenanceWorker.
//
// Interval is how often both maintenance operations run.
// StaleTimeout is the visibility timeout passed to Maintainer.ResetStale:
// a Processing task whose StartedAt is older than now-StaleTimeout is
// assumed to belong to a crashed worker.
// RetentionAge is the age passed to Maintainer.CleanupOld.
type MaintenanceConfig struct {
	Interval     time.Duration
	StaleTimeout time.Duration
	RetentionAge time.Duration
}

// MaintenanceWorker periodically invokes a tianshu.Maintainer to recover
// stale leases and prune old terminal tasks.
//
// MaintenanceWorker does not participate in task processing and never
// runs implicitly as a side effect of leasing or completing a task. It is
// the scheduled trigger for stale recovery and retention cleanup; the
// admin HTTP endpoints run the same operations on demand.
//
// MaintenanceWorker has the same strict lifecycle as Runtime: Start may
// only be called once, and Stop waits for the in-flight run to finish or
// the timeout to elapse.
type MaintenanceWorker struct {
	lc         internal.Lifecycle
	maintainer tianshu.Maintainer
	task       internal.TimerTask
	log        *slog.Logger
	cfg        MaintenanceConfig
}

// NewMaintenanceWorker creates a MaintenanceWorker. It is not started
// automatically.
func NewMaintenanceWorker(maintainer tianshu.Maintainer, cfg MaintenanceConfig, log *slog.Logger) *MaintenanceWorker {
	return &MaintenanceWorker{
		maintainer: maintainer,
		log:        log,
		cfg:        cfg,
	}
}

func (mw *MaintenanceWorker) run(ctx context.Context) {
	reset, err := mw.maintainer.ResetStale(ctx, mw.cfg.StaleTimeout)
	if err != nil {
		mw.log.Error("reset stale failed", "err", err)
	} else if reset > 0 {
		mw.log.Warn("recovered stale leases", "count", reset)
	}

	cleaned, err := mw.maintainer.CleanupOld(ctx, mw.cfg.RetentionAge)
	if err != nil {
		mw.log.Error("cleanup old failed", "err", err)
	} else if cleaned > 0 {
		mw.log.Info("cleaned up old tasks", "count", cleaned)
	}
}

// Start begins periodic execution of stale recovery and retention
// cleanup.
func (mw *MaintenanceWorker) Start(ctx context.Context) error {
	if err := mw.lc.TryStart(); err != nil {
		return err
	}
	mw.task.Start(ctx, mw.run, mw.cfg.Interval)
	return nil
}

// Stop terminates the background maintenance loop.
func (mw *MaintenanceWorker) Stop(timeout time.Duration) error {
	return mw.lc.TryStop(timeout, mw.task.Stop)
}
