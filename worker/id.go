// Package worker implements the Tianshu worker runtime: the
// polling/executing loop that leases tasks from a tianshu.Leaser, binds a
// device, dispatches to a processing engine, and reports completion, plus
// the periodic maintenance loop that recovers stale leases and prunes old
// rows.
package worker

import (
	"fmt"
	"os"
)

// NewID builds a worker_id of the form "{prefix}-{host}-{device}-{pid}".
//
// The format exists so a worker_id alone is enough to tell which host and
// device produced it when triaging a stuck task, without a side lookup.
func NewID(prefix, device string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%s-%s-%d", prefix, host, device, os.Getpid())
}
