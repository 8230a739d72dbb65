package tianshu

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/magicyuan876/mineru-tianshu/task"
)

var (
	// ErrTaskNotFound indicates that the referenced task no longer exists
	// in storage.
	ErrTaskNotFound = errors.New("task not found")

	// ErrWorkerMismatch indicates that Complete was called with a
	// worker_id different from the one currently recorded on the task
	// (spec invariant: the call must be rejected, no mutation applied).
	//
	// This protects against a stale worker overwriting work that was
	// re-leased elsewhere after stale recovery (property P3).
	ErrWorkerMismatch = errors.New("worker id mismatch")

	// ErrNotPending indicates Cancel was called on a task that is not
	// currently Pending.
	ErrNotPending = errors.New("task not pending")
)

// Leaser defines the read-write contract for leasing and transitioning
// tasks through their lifecycle (spec.md §4.1).
//
// Leaser provides at-least-once delivery semantics: a task may be
// delivered more than once if a worker crashes before completing it and
// the lease is later recovered by Maintainer.ResetStale.
type Leaser interface {

	// LeaseNext atomically selects the single Pending task with the
	// highest Priority, breaking ties by oldest CreatedAt (invariant I5),
	// transitions it to Processing, and stamps WorkerId and StartedAt.
	//
	// Returns (nil, nil) if no Pending task exists.
	//
	// Must be safe under arbitrary worker concurrency: no two concurrent
	// callers may ever receive the same task (property P1).
	LeaseNext(ctx context.Context, workerId string) (*task.Task, error)

	// Complete transitions a Processing task to a terminal status
	// (Completed or Failed), stamping CompletedAt and, respectively,
	// ResultPath or ErrorMessage.
	//
	// The call is rejected — returns (false, nil) with no mutation — if
	// the row's current WorkerId differs from workerId (property P3).
	Complete(ctx context.Context, id uuid.UUID, newStatus task.Status, resultPath, errorMessage, workerId string) (bool, error)

	// Cancel transitions a Pending task to Cancelled. Rejects (returns
	// false) from any other state.
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
}
