package worker_test

import (
	"context"
	"database/sql"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"

	"github.com/magicyuan876/mineru-tianshu/storage/sqlite"
	"github.com/magicyuan876/mineru-tianshu/task"
	"github.com/magicyuan876/mineru-tianshu/worker"
)

func TestPoolBringsUpOneRuntimePerDeviceSlot(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", "file::memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := sqlite.InitDB(context.Background(), db); err != nil {
		t.Fatal(err)
	}
	store := sqlite.NewStore(db)

	var initCount atomic.Int32
	factory := func(device, workerId string) (*worker.Runtime, error) {
		initCount.Add(1)
		handler := func(ctx context.Context, tk *task.Task) (string, error) { return "", nil }
		return worker.NewRuntime(store, handler, worker.RuntimeConfig{
			WorkerId:     workerId,
			PollInterval: 50 * time.Millisecond,
		}, slog.Default()), nil
	}

	pool := worker.NewPool(factory, worker.PoolConfig{
		Devices:          []string{"cpu"},
		WorkersPerDevice: 2,
		InitConcurrency:  2,
		IdPrefix:         "test",
	}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pool.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if initCount.Load() != 2 {
		t.Fatalf("expected 2 runtimes initialized, got %d", initCount.Load())
	}
	if len(pool.Runtimes()) != 2 {
		t.Fatalf("expected 2 tracked runtimes, got %d", len(pool.Runtimes()))
	}

	if err := pool.Stop(time.Second); err != nil {
		t.Fatal(err)
	}
}
