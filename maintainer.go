package tianshu

import (
	"context"
	"time"
)

// Maintainer provides the two administrative operations spec.md groups
// under queue maintenance: stale-lease recovery and retention cleanup
// (§4.1 reset_stale, cleanup_old).
//
// Maintainer is invoked by an operator, a cron job (worker.MaintenanceWorker),
// or the admin HTTP endpoints (§6 POST /admin/reset-stale, POST
// /admin/cleanup). It never runs implicitly as part of normal task
// processing — the system never silently re-dispatches in-flight work
// (spec.md §7).
type Maintainer interface {

	// ResetStale finds every task in Processing whose StartedAt is older
	// than now-timeout, transitions it back to Pending, increments
	// RetryCount, and clears StartedAt and WorkerId. Returns the number
	// of tasks reset.
	//
	// This is the sole recovery mechanism for crashed or hung workers.
	ResetStale(ctx context.Context, timeout time.Duration) (int64, error)

	// CleanupOld deletes terminal-status tasks whose CompletedAt is older
	// than now-age. Returns the number of rows deleted.
	//
	// CleanupOld does not touch the filesystem; result directories are
	// swept by a separate, out-of-scope filesystem retention policy that
	// is expected to agree with the same retention window (spec.md §4.1).
	CleanupOld(ctx context.Context, age time.Duration) (int64, error)
}
