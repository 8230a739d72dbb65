// Package tianshu provides a durable, multi-tenant document-processing
// task queue and the interfaces its worker runtime and API gateway are
// built against.
//
// # Overview
//
// Tianshu models a durable priority queue with explicit state transitions.
// It separates the task payload location and submission parameters
// (task.Task) from the storage-agnostic interfaces that manage its
// lifecycle (Submitter, Leaser, Observer, Maintainer). The package does
// not mandate a particular storage backend; storage/sqlite is the
// reference implementation over github.com/uptrace/bun and
// modernc.org/sqlite.
//
// # Delivery Semantics
//
// Tianshu provides at-least-once processing guarantees. A task may be
// delivered more than once if a worker crashes after leasing it and
// before completing it; the stale lease is recovered only by the
// explicit ResetStale operation (invoked by an operator, a cron job, or
// the admin HTTP endpoint), never automatically. Engine handlers invoked
// by the worker runtime (package worker) must therefore tolerate being
// re-run against the same inbound file should a retry occur.
//
// # State Machine
//
// Tasks follow this lifecycle (task.Status):
//
//	Pending    -> Processing
//	Processing -> Completed
//	Processing -> Failed
//	Pending    -> Cancelled
//	Processing -> Pending   (via ResetStale only; bumps RetryCount)
//
// Terminal states (Completed, Failed, Cancelled) are not retried unless
// a worker crash triggers stale recovery from Processing.
//
// # Interfaces
//
// Tianshu defines the following primary interfaces, together composing
// the Task Store (spec.md §4.1):
//
//	Submitter  — enqueue new tasks
//	Leaser     — lease, complete and cancel tasks
//	Observer   — inspect task state
//	Maintainer — stale-lease recovery and retention cleanup
//
// These interfaces allow storage implementations to be plugged in
// without coupling queue logic, the worker runtime, or the API gateway
// to a specific database.
//
// # Concurrency Model
//
// There is no central scheduler. Contention for work is resolved by
// Leaser.LeaseNext's atomicity: under arbitrary worker concurrency no two
// concurrent callers ever receive the same task (property P1). Dispatch
// order is priority-then-FIFO (property P2); no ordering is guaranteed
// across tasks handled by distinct workers.
//
// # Summary
//
// Tianshu provides a minimal yet structured foundation for a
// multi-tenant background document-processing system with explicit
// lifecycle control, priority dispatch and pluggable storage and engine
// backends.
package tianshu
