package sqlite

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// Maintainer implements tianshu.Maintainer using a SQLite-backed bun.DB.
type Maintainer struct {
	db *bun.DB
}

// NewMaintainer creates a SQLite-backed Maintainer. db must already have
// InitDB applied.
func NewMaintainer(db *bun.DB) *Maintainer {
	return &Maintainer{db: db}
}

// ResetStale transitions every Processing task whose started_at predates
// now-timeout back to Pending, bumping retry_count and clearing
// started_at and worker_id. Returns the number of rows reset.
func (m *Maintainer) ResetStale(ctx context.Context, timeout time.Duration) (int64, error) {
	cutoff := time.Now().Add(-timeout)
	res, err := m.db.NewUpdate().
		Model((*taskModel)(nil)).
		Set("status = ?", task.Pending).
		Set("retry_count = retry_count + 1").
		Set("started_at = NULL").
		Set("worker_id = ?", "").
		Where("status = ?", task.Processing).
		Where("started_at <= ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}

// CleanupOld deletes terminal-status tasks whose completed_at predates
// now-age. Returns the number of rows deleted.
func (m *Maintainer) CleanupOld(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	res, err := m.db.NewDelete().
		Model((*taskModel)(nil)).
		Where("status IN (?, ?, ?)", task.Completed, task.Failed, task.Cancelled).
		Where("completed_at <= ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
