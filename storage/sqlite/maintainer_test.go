package sqlite_test

import (
	"context"
	"testing"
	"time"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	tsqlite "github.com/magicyuan876/mineru-tianshu/storage/sqlite"
	"github.com/magicyuan876/mineru-tianshu/task"
)

func TestMaintainerResetStale(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	leaser := tsqlite.NewLeaser(db)
	maintainer := tsqlite.NewMaintainer(db)

	id, err := submitter.Create(ctx, tianshu.Submission{FileName: "a.pdf"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := leaser.LeaseNext(ctx, "worker-1"); err != nil {
		t.Fatal(err)
	}

	count, err := maintainer.ResetStale(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 reset task, got %d", count)
	}

	observer := tsqlite.NewObserver(db)
	got, err := observer.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != task.Pending {
		t.Fatalf("expected Pending, got %v", got.Status)
	}
	if got.RetryCount != 1 {
		t.Fatalf("expected RetryCount 1, got %d", got.RetryCount)
	}
}

func TestMaintainerCleanupOld(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	leaser := tsqlite.NewLeaser(db)
	maintainer := tsqlite.NewMaintainer(db)

	id, err := submitter.Create(ctx, tianshu.Submission{FileName: "a.pdf"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := leaser.LeaseNext(ctx, "worker-1"); err != nil {
		t.Fatal(err)
	}
	ok, err := leaser.Complete(ctx, id, task.Completed, "/out/a.md", "", "worker-1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected Complete to succeed")
	}

	count, err := maintainer.CleanupOld(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 deleted task, got %d", count)
	}
}
