package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// Leaser implements tianshu.Leaser using a SQLite-backed bun.DB.
//
// LeaseNext performs a single atomic UPDATE ... WHERE id IN (subquery)
// statement so no two concurrent callers can ever lease the same row.
type Leaser struct {
	db *bun.DB
}

// NewLeaser creates a SQLite-backed Leaser. db must already have InitDB
// applied.
func NewLeaser(db *bun.DB) *Leaser {
	return &Leaser{db: db}
}

// LeaseNext selects the highest-priority, oldest Pending task, transitions
// it to Processing, and stamps workerId and the current time as
// StartedAt. Returns (nil, nil) if no Pending task exists.
func (l *Leaser) LeaseNext(ctx context.Context, workerId string) (*task.Task, error) {
	now := time.Now()
	subQuery := l.db.NewSelect().
		Model((*taskModel)(nil)).
		Column("id").
		Where("status = ?", task.Pending).
		Order("priority DESC", "created_at ASC").
		Limit(1)

	var rows []*taskModel
	err := l.db.NewUpdate().
		Model((*taskModel)(nil)).
		Set("status = ?", task.Processing).
		Set("worker_id = ?", workerId).
		Set("started_at = ?", now).
		Where("id IN (?)", subQuery).
		Returning("*").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toTask(), nil
}

// Complete transitions a Processing task to newStatus, stamping
// CompletedAt and, respectively, resultPath or errorMessage. The update
// is scoped to rows currently Processing and owned by workerId; if the
// owning worker has changed (e.g. after stale recovery reassigned the
// lease), Complete returns (false, nil) and applies no change.
func (l *Leaser) Complete(ctx context.Context, id uuid.UUID, newStatus task.Status, resultPath, errorMessage, workerId string) (bool, error) {
	res, err := l.db.NewUpdate().
		Model((*taskModel)(nil)).
		Set("status = ?", newStatus).
		Set("result_path = ?", resultPath).
		Set("error_message = ?", errorMessage).
		Set("completed_at = ?", time.Now()).
		Where("id = ?", id).
		Where("status = ?", task.Processing).
		Where("worker_id = ?", workerId).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	return isAffected(res), nil
}

// Cancel transitions a Pending task to Cancelled. Returns false without
// error if id does not exist or is not currently Pending.
func (l *Leaser) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := l.db.NewUpdate().
		Model((*taskModel)(nil)).
		Set("status = ?", task.Cancelled).
		Set("completed_at = ?", time.Now()).
		Where("id = ?", id).
		Where("status = ?", task.Pending).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	return isAffected(res), nil
}
