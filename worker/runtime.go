package worker

import (
	"context"
	"log/slog"
	"os"
	"time"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	"github.com/magicyuan876/mineru-tianshu/internal"
	"github.com/magicyuan876/mineru-tianshu/task"
)

// TaskHandler dispatches a leased task to a processing engine and returns
// the path of the produced result, or an error if processing failed.
//
// The handler must be idempotent: a task may be handed to it more than
// once if a prior attempt crashed before Complete was recorded and
// Maintainer.ResetStale later made the task eligible again.
type TaskHandler func(ctx context.Context, t *task.Task) (resultPath string, err error)

// RuntimeConfig parameterizes a Runtime.
//
// PollInterval is the base delay between LeaseNext attempts when the
// queue is empty. MaxPollInterval caps how far repeated empty polls are
// allowed to back off (defaults to PollInterval, i.e. no backoff). Jitter
// is the randomization factor applied to each computed interval, which
// exists to keep a fleet of workers from hammering the Task Store in
// lockstep.
type RuntimeConfig struct {
	WorkerId        string
	PollInterval    time.Duration
	MaxPollInterval time.Duration
	Jitter          float64
}

// Runtime is a single worker's polling/executing loop: it leases at most
// one task at a time from a tianshu.Leaser, dispatches it to a
// TaskHandler, and records the outcome.
//
// Runtime moves through a fixed sequence of states: init, ready,
// polling, executing (polling and executing alternate for the life of
// the loop), draining, stopped. Query the current state via State.
//
// Runtime has a strict lifecycle: Start may only be called once, and
// Stop waits for the in-flight poll-or-execute cycle to finish or the
// timeout to elapse.
type Runtime struct {
	lc       internal.Lifecycle
	leaser   tianshu.Leaser
	handler  TaskHandler
	log      *slog.Logger
	workerId string
	backoff  *internal.BackoffCounter
	state    atomicState
	cancel   context.CancelFunc
	done     internal.DoneChan
}

// NewRuntime creates a Runtime. The runtime is not started automatically.
func NewRuntime(leaser tianshu.Leaser, handler TaskHandler, cfg RuntimeConfig, log *slog.Logger) *Runtime {
	maxInterval := cfg.MaxPollInterval
	if maxInterval < cfg.PollInterval {
		maxInterval = cfg.PollInterval
	}
	return &Runtime{
		leaser:   leaser,
		handler:  handler,
		log:      log,
		workerId: cfg.WorkerId,
		backoff: internal.NewBackoffCounter(internal.BackoffConfig{
			InitialInterval:     cfg.PollInterval,
			MaxInterval:         maxInterval,
			Multiplier:          1.5,
			RandomizationFactor: cfg.Jitter,
		}),
	}
}

// State reports the runtime's current position in its lifecycle.
func (r *Runtime) State() State {
	return r.state.load()
}

// Start begins the background polling/executing loop.
//
// Start returns internal.ErrDoubleStarted if the runtime has already been
// started.
func (r *Runtime) Start(ctx context.Context) error {
	if err := r.lc.TryStart(); err != nil {
		return err
	}
	r.state.store(StateReady)
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(internal.DoneChan)
	go r.run(runCtx)
	return nil
}

// Stop initiates graceful shutdown: the loop finishes its current
// poll-or-execute cycle, then exits. If shutdown does not complete within
// timeout, internal.ErrStopTimeout is returned and the loop may still be
// winding down in the background.
func (r *Runtime) Stop(timeout time.Duration) error {
	return r.lc.TryStop(timeout, func() internal.DoneChan {
		r.cancel()
		return r.done
	})
}

func (r *Runtime) run(ctx context.Context) {
	defer close(r.done)
	defer r.state.store(StateStopped)
	var attempt uint32
	for {
		r.state.store(StatePolling)
		var wait time.Duration
		if attempt > 0 {
			wait, _ = r.backoff.Next(attempt)
		}
		select {
		case <-ctx.Done():
			r.state.store(StateDraining)
			return
		case <-time.After(wait):
		}

		t, err := r.leaser.LeaseNext(ctx, r.workerId)
		if err != nil {
			r.log.Error("lease failed", "worker_id", r.workerId, "err", err)
			attempt++
			continue
		}
		if t == nil {
			attempt++
			continue
		}

		attempt = 0
		r.state.store(StateExecuting)
		// Stop must not abort the engine or the Complete call of a task
		// already leased; the loop checks ctx again before the next lease.
		r.execute(context.WithoutCancel(ctx), t)
	}
}

func (r *Runtime) execute(ctx context.Context, t *task.Task) {
	resultPath, err := r.handler(ctx, t)
	status := task.Completed
	errMsg := ""
	if err != nil {
		status = task.Failed
		errMsg = err.Error()
		resultPath = ""
		r.log.Error("task processing failed", "id", t.Id, "worker_id", r.workerId, "err", err)
	}

	ok, cerr := r.leaser.Complete(ctx, t.Id, status, resultPath, errMsg, r.workerId)
	if cerr != nil {
		r.log.Error("cannot record task outcome", "id", t.Id, "err", cerr)
		return
	}
	if !ok {
		r.log.Warn("worker id mismatch completing task, lease was likely reassigned by stale recovery",
			"id", t.Id, "worker_id", r.workerId)
	}

	// The inbound file has already been fully read by this point
	// regardless of the Complete outcome above, so it is safe to remove
	// unconditionally rather than branch on ok.
	if rmErr := os.Remove(t.FilePath); rmErr != nil && !os.IsNotExist(rmErr) {
		r.log.Warn("cannot remove inbound file", "id", t.Id, "path", t.FilePath, "err", rmErr)
	}
}
