// Package sqlite provides a bun-based SQLite storage implementation of
// the tianshu.Submitter, tianshu.Leaser, tianshu.Observer and
// tianshu.Maintainer interfaces.
//
// # Overview
//
// The storage backend provides:
//
//   - durable persistence of tasks
//   - atomic lease transitions via UPDATE ... RETURNING
//   - priority-ordered, FIFO-tiebroken dispatch
//   - worker-identity-checked completion
//
// It targets github.com/uptrace/bun over modernc.org/sqlite (a cgo-free
// SQLite driver), which keeps the worker and API binaries free of a C
// toolchain dependency. The same bun.DB abstraction would let a
// deployment swap in a server-grade dialect without touching any
// interface implementation, though only the SQLite path is exercised
// here.
//
// # Concurrency Model
//
// LeaseNext is implemented as a single atomic UPDATE statement with a
// subquery selecting the highest-priority, oldest-eligible Pending row,
// so no two concurrent callers can ever receive the same task.
//
// SQLite users should enable WAL mode and set a busy_timeout; InitDB does
// not set either, so both belong in the DSN passed to sql.Open.
//
// # Schema
//
// The backend expects a "tasks" table corresponding to taskModel. InitDB
// creates:
//
//   - the tasks table (if not exists)
//   - index (status, priority)
//   - index (status, created_at)
//   - index (user_id)
//
// LeaseNext's ORDER BY mixes priority DESC with created_at ASC, which
// SQLite cannot satisfy from a single composite index with mixed sort
// directions; splitting into two indexes still lets the planner narrow by
// status before sorting.
//
// InitDB is idempotent and runs inside a transaction. It does not perform
// destructive migrations; schema evolution is handled externally.
//
// # Limitations
//
// Delivery is at-least-once, never exactly-once. Leases are not renewed:
// a task is considered stale, and eligible for recovery by
// Maintainer.ResetStale, purely by how long it has sat in Processing.
package sqlite
