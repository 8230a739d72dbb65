package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magicyuan876/mineru-tianshu/internal"
)

// RuntimeFactory builds and returns a Runtime bound to device, identified
// by workerId. The factory is responsible for calling BindDevice and
// initializing whatever engine instance the returned Runtime's
// TaskHandler closes over — both must happen before the runtime starts
// leasing tasks.
type RuntimeFactory func(device string, workerId string) (*Runtime, error)

// PoolConfig configures a Pool.
//
// Devices lists the physical devices to run workers on (e.g.
// ["cuda:0", "cuda:1"], or ["cpu"] for CPU-only deployments).
// WorkersPerDevice is how many Runtime instances share each device,
// mirroring the original project's --workers-per-device flag.
// InitConcurrency bounds how many RuntimeFactory calls run at once during
// Start, since concurrent device binding and engine initialization can
// race against a shared CUDA context.
// IdPrefix is passed to NewID when minting each runtime's worker_id.
type PoolConfig struct {
	Devices          []string
	WorkersPerDevice int
	InitConcurrency  int
	IdPrefix         string
}

// Pool manages a fleet of Runtime instances, one per (device,
// worker-slot) pair, and bounds how many are brought up concurrently to
// InitConcurrency; with InitConcurrency 1, device binding and engine
// initialization run one at a time.
type Pool struct {
	lc       internal.Lifecycle
	factory  RuntimeFactory
	cfg      PoolConfig
	log      *slog.Logger
	mu       sync.Mutex
	runtimes []*Runtime
}

// NewPool creates a Pool. The pool is not started automatically.
func NewPool(factory RuntimeFactory, cfg PoolConfig, log *slog.Logger) *Pool {
	if cfg.WorkersPerDevice < 1 {
		cfg.WorkersPerDevice = 1
	}
	if cfg.InitConcurrency < 1 {
		cfg.InitConcurrency = 1
	}
	return &Pool{
		factory: factory,
		cfg:     cfg,
		log:     log,
	}
}

// Start brings up WorkersPerDevice runtimes for every configured device,
// binding and initializing them with at most InitConcurrency in flight at
// once, then starts each runtime's poll loop.
//
// Start returns the first initialization error encountered, if any. Other
// runtimes that failed to start are reported via log; runtimes that
// started successfully remain running and must still be stopped via Stop.
func (p *Pool) Start(ctx context.Context) error {
	if err := p.lc.TryStart(); err != nil {
		return err
	}

	total := len(p.cfg.Devices) * p.cfg.WorkersPerDevice
	initPool := internal.NewWorkerPool[string](p.cfg.InitConcurrency, total, p.log)
	completed := make(chan error, total)

	initPool.Start(ctx, func(_ context.Context, device string) {
		id := NewID(p.cfg.IdPrefix, device)
		rt, err := p.factory(device, id)
		if err != nil {
			completed <- fmt.Errorf("init worker %s: %w", id, err)
			return
		}
		if err := rt.Start(ctx); err != nil {
			completed <- fmt.Errorf("start worker %s: %w", id, err)
			return
		}
		p.mu.Lock()
		p.runtimes = append(p.runtimes, rt)
		p.mu.Unlock()
		completed <- nil
	})

	for _, device := range p.cfg.Devices {
		for i := 0; i < p.cfg.WorkersPerDevice; i++ {
			initPool.Push(device)
		}
	}

	var firstErr error
	for i := 0; i < total; i++ {
		if err := <-completed; err != nil {
			p.log.Error("worker init failed", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	initPool.Stop()
	return firstErr
}

// Stop stops every running Runtime, allotting timeout to each in turn.
// It returns the first error encountered, but attempts to stop every
// runtime regardless.
func (p *Pool) Stop(timeout time.Duration) error {
	if err := p.lc.TryStop(timeout, func() internal.DoneChan {
		done := make(internal.DoneChan)
		close(done)
		return done
	}); err != nil {
		return err
	}

	p.mu.Lock()
	runtimes := append([]*Runtime(nil), p.runtimes...)
	p.mu.Unlock()

	var firstErr error
	for _, rt := range runtimes {
		if err := rt.Stop(timeout); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Runtimes returns the runtimes that were brought up successfully.
func (p *Pool) Runtimes() []*Runtime {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Runtime(nil), p.runtimes...)
}
