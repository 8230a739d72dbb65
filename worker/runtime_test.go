package worker_test

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	"github.com/magicyuan876/mineru-tianshu/internal"
	"github.com/magicyuan876/mineru-tianshu/storage/sqlite"
	"github.com/magicyuan876/mineru-tianshu/task"
	"github.com/magicyuan876/mineru-tianshu/worker"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", "file::memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1) // important for sqlite
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := sqlite.InitDB(context.Background(), db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestRuntimeProcessesLeasedTask(t *testing.T) {
	db := newTestDB(t)
	store := sqlite.NewStore(db)

	handlerCalled := make(chan struct{}, 1)
	handler := func(ctx context.Context, tk *task.Task) (string, error) {
		handlerCalled <- struct{}{}
		return "/output/" + tk.Id.String(), nil
	}

	rt := worker.NewRuntime(store, handler, worker.RuntimeConfig{
		WorkerId:        "test-worker-0",
		PollInterval:    20 * time.Millisecond,
		MaxPollInterval: 100 * time.Millisecond,
		Jitter:          0,
	}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rt.Start(ctx); err != nil {
		t.Fatal(err)
	}

	id, err := store.Create(ctx, tianshu.Submission{
		FileName: "a.pdf",
		FilePath: "/in/a.pdf",
		Backend:  "pipeline",
	})
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-handlerCalled:
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}

	time.Sleep(100 * time.Millisecond)

	tk, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if tk.Status != task.Completed {
		t.Fatalf("expected Completed, got %v", tk.Status)
	}
	if tk.ResultPath == "" {
		t.Fatal("expected non-empty result path")
	}

	if err := rt.Stop(time.Second); err != nil {
		t.Fatal(err)
	}
}

func TestRuntimeRecordsFailure(t *testing.T) {
	db := newTestDB(t)
	store := sqlite.NewStore(db)

	handler := func(ctx context.Context, tk *task.Task) (string, error) {
		return "", context.DeadlineExceeded
	}

	rt := worker.NewRuntime(store, handler, worker.RuntimeConfig{
		WorkerId:     "test-worker-1",
		PollInterval: 20 * time.Millisecond,
	}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rt.Start(ctx); err != nil {
		t.Fatal(err)
	}

	id, _ := store.Create(ctx, tianshu.Submission{FileName: "b.pdf", FilePath: "/in/b.pdf", Backend: "pipeline"})

	time.Sleep(200 * time.Millisecond)

	tk, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if tk.Status != task.Failed {
		t.Fatalf("expected Failed, got %v", tk.Status)
	}
	if tk.ErrorMessage == "" {
		t.Fatal("expected non-empty error message")
	}

	_ = rt.Stop(time.Second)
}

func TestRuntimeDoubleStartRejected(t *testing.T) {
	db := newTestDB(t)
	store := sqlite.NewStore(db)

	handler := func(ctx context.Context, tk *task.Task) (string, error) { return "", nil }
	rt := worker.NewRuntime(store, handler, worker.RuntimeConfig{PollInterval: time.Second}, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rt.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := rt.Start(ctx); err != internal.ErrDoubleStarted {
		t.Fatalf("expected ErrDoubleStarted, got %v", err)
	}
	_ = rt.Stop(time.Second)
}
