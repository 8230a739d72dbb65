package tianshu

import (
	"context"

	"github.com/google/uuid"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// ListFilter narrows Observer.List. A zero-value UserId disables the
// owner filter; a zero-value Status disables the status filter.
type ListFilter struct {
	Status task.Status
	UserId string
}

// Observer provides read-only access to tasks stored in the queue.
//
// Observer does not modify task state. It is intended for status polling,
// listing and administrative/monitoring use cases (spec.md §6 GET
// endpoints, §4.1 get/list/stats).
//
// Methods of Observer return authoritative snapshots of storage state at
// the time of the call. Returned Task values must be treated as immutable
// views; mutating them does not affect the underlying queue.
type Observer interface {

	// Get returns the task identified by id, or (nil, nil) if no such
	// task exists.
	Get(ctx context.Context, id uuid.UUID) (*task.Task, error)

	// List returns up to limit tasks matching filter, newest first.
	//
	// If limit is zero or negative, implementations may return all
	// matching rows, subject to storage-specific constraints.
	List(ctx context.Context, filter ListFilter, limit int) ([]*task.Task, error)

	// Stats returns the current count of tasks per status, keyed by the
	// canonical Status.String() name (spec.md GET /queue/stats).
	Stats(ctx context.Context) (map[string]int64, error)
}
