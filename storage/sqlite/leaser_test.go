package sqlite_test

import (
	"context"
	"testing"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	tsqlite "github.com/magicyuan876/mineru-tianshu/storage/sqlite"
	"github.com/magicyuan876/mineru-tianshu/task"
)

func TestLeaseAndComplete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	leaser := tsqlite.NewLeaser(db)

	id, err := submitter.Create(ctx, tianshu.Submission{FileName: "a.pdf", FilePath: "/tmp/a.pdf"})
	if err != nil {
		t.Fatal(err)
	}

	leased, err := leaser.LeaseNext(ctx, "worker-1")
	if err != nil {
		t.Fatal(err)
	}
	if leased == nil {
		t.Fatal("expected a leased task")
	}
	if leased.Id != id {
		t.Fatalf("expected id %v, got %v", id, leased.Id)
	}
	if leased.Status != task.Processing {
		t.Fatalf("expected Processing, got %v", leased.Status)
	}
	if leased.WorkerId != "worker-1" {
		t.Fatalf("expected worker-1, got %q", leased.WorkerId)
	}

	ok, err := leaser.Complete(ctx, id, task.Completed, "/out/a.md", "", "worker-1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected Complete to succeed")
	}
}

func TestLeaseNextReturnsNilWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	leaser := tsqlite.NewLeaser(db)
	leased, err := leaser.LeaseNext(ctx, "worker-1")
	if err != nil {
		t.Fatal(err)
	}
	if leased != nil {
		t.Fatalf("expected nil, got %v", leased)
	}
}

func TestLeaseNextOrdersByPriorityThenAge(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	leaser := tsqlite.NewLeaser(db)

	low, err := submitter.Create(ctx, tianshu.Submission{FileName: "low.pdf", Priority: 0})
	if err != nil {
		t.Fatal(err)
	}
	high, err := submitter.Create(ctx, tianshu.Submission{FileName: "high.pdf", Priority: 10})
	if err != nil {
		t.Fatal(err)
	}

	leased, err := leaser.LeaseNext(ctx, "worker-1")
	if err != nil {
		t.Fatal(err)
	}
	if leased.Id != high {
		t.Fatalf("expected high priority task %v leased first, got %v (low=%v)", high, leased.Id, low)
	}
}

func TestCompleteRejectsWorkerMismatch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	leaser := tsqlite.NewLeaser(db)

	id, err := submitter.Create(ctx, tianshu.Submission{FileName: "a.pdf"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := leaser.LeaseNext(ctx, "worker-1"); err != nil {
		t.Fatal(err)
	}

	ok, err := leaser.Complete(ctx, id, task.Completed, "", "", "worker-2")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected Complete to reject a mismatched worker id")
	}
}

func TestCancelPendingTask(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	leaser := tsqlite.NewLeaser(db)

	id, err := submitter.Create(ctx, tianshu.Submission{FileName: "a.pdf"})
	if err != nil {
		t.Fatal(err)
	}

	ok, err := leaser.Cancel(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected Cancel to succeed on a pending task")
	}
}

func TestCancelRejectsNonPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	leaser := tsqlite.NewLeaser(db)

	id, err := submitter.Create(ctx, tianshu.Submission{FileName: "a.pdf"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := leaser.LeaseNext(ctx, "worker-1"); err != nil {
		t.Fatal(err)
	}

	ok, err := leaser.Cancel(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected Cancel to reject a task already in Processing")
	}
}
