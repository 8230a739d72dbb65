package worker_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/magicyuan876/mineru-tianshu/worker"
)

type mockMaintainer struct {
	resetCalls   atomic.Int64
	cleanupCalls atomic.Int64
}

func (m *mockMaintainer) ResetStale(ctx context.Context, timeout time.Duration) (int64, error) {
	m.resetCalls.Add(1)
	return 1, nil
}

func (m *mockMaintainer) CleanupOld(ctx context.Context, age time.Duration) (int64, error) {
	m.cleanupCalls.Add(1)
	return 1, nil
}

func TestMaintenanceWorkerRunsBothOperations(t *testing.T) {
	m := &mockMaintainer{}
	mw := worker.NewMaintenanceWorker(m, worker.MaintenanceConfig{
		Interval:     30 * time.Millisecond,
		StaleTimeout: time.Minute,
		RetentionAge: 24 * time.Hour,
	}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := mw.Start(ctx); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if err := mw.Stop(time.Second); err != nil {
		t.Fatal(err)
	}

	if m.resetCalls.Load() == 0 {
		t.Fatal("expected ResetStale to run at least once")
	}
	if m.cleanupCalls.Load() == 0 {
		t.Fatal("expected CleanupOld to run at least once")
	}
}

func TestMaintenanceWorkerLifecycleErrors(t *testing.T) {
	m := &mockMaintainer{}
	mw := worker.NewMaintenanceWorker(m, worker.MaintenanceConfig{Interval: time.Second}, slog.Default())

	ctx := context.Background()

	if err := mw.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := mw.Start(ctx); err == nil {
		t.Fatal("expected ErrDoubleStarted")
	}
	if err := mw.Stop(time.Second); err != nil {
		t.Fatal(err)
	}
	if err := mw.Stop(time.Second); err == nil {
		t.Fatal("expected ErrDoubleStopped")
	}
}
