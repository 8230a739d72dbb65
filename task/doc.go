// Package task defines the stateful representation of a submission within
// the Tianshu queue lifecycle.
//
// A Task extends a user submission with scheduling and delivery metadata.
// Unlike the payload a client uploads, Task contains state-machine fields
// such as Status, RetryCount, worker ownership and result/error location.
// These fields are maintained exclusively by the Task Store (package
// storage/sqlite) and the worker runtime (package worker).
//
// Task values are typically returned by Store.LeaseNext and Store.Get and
// passed back to storage for state transitions (Complete, Cancel, etc.).
// Task is not intended to be constructed manually by user code; use
// Store.Create.
package task
