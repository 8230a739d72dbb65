package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	"github.com/magicyuan876/mineru-tianshu/task"
)

// Observer implements tianshu.Observer using a SQLite-backed bun.DB.
type Observer struct {
	db *bun.DB
}

// NewObserver creates a SQLite-backed Observer. db must already have
// InitDB applied.
func NewObserver(db *bun.DB) *Observer {
	return &Observer{db: db}
}

// Get retrieves a task by id, or (nil, nil) if it does not exist.
func (o *Observer) Get(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	var model taskModel
	err := o.db.NewSelect().
		Model(&model).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return model.toTask(), nil
}

// List returns up to limit tasks matching filter, newest first.
func (o *Observer) List(ctx context.Context, filter tianshu.ListFilter, limit int) ([]*task.Task, error) {
	var models []*taskModel
	query := o.db.NewSelect().Model(&models).Order("created_at DESC")
	if filter.Status != task.Unknown {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserId != "" {
		query = query.Where("user_id = ?", filter.UserId)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	ret := make([]*task.Task, len(models))
	for i, m := range models {
		ret[i] = m.toTask()
	}
	return ret, nil
}

// Stats returns the current count of tasks per status, keyed by the
// canonical Status.String() name.
func (o *Observer) Stats(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status task.Status `bun:"status"`
		Count  int64       `bun:"count"`
	}
	err := o.db.NewSelect().
		Model((*taskModel)(nil)).
		ColumnExpr("status").
		ColumnExpr("count(*) AS count").
		Group("status").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]int64, len(rows))
	for _, row := range rows {
		ret[row.Status.String()] = row.Count
	}
	return ret, nil
}
