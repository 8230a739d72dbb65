package sqlite_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	tsqlite "github.com/magicyuan876/mineru-tianshu/storage/sqlite"
	"github.com/magicyuan876/mineru-tianshu/task"
)

func TestSubmitterAndObserver(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	observer := tsqlite.NewObserver(db)

	id, err := submitter.Create(ctx, tianshu.Submission{FileName: "a.pdf", UserId: "alice"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := observer.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("task not found")
	}
	if got.Status != task.Pending {
		t.Fatalf("expected Pending, got %v", got.Status)
	}
}

func TestObserverGetMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	observer := tsqlite.NewObserver(db)
	got, err := observer.Get(ctx, uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestObserverListFiltersByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	observer := tsqlite.NewObserver(db)

	if _, err := submitter.Create(ctx, tianshu.Submission{FileName: "a.pdf", UserId: "alice"}); err != nil {
		t.Fatal(err)
	}
	if _, err := submitter.Create(ctx, tianshu.Submission{FileName: "b.pdf", UserId: "bob"}); err != nil {
		t.Fatal(err)
	}

	got, err := observer.List(ctx, tianshu.ListFilter{UserId: "alice"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got))
	}
	if got[0].UserId != "alice" {
		t.Fatalf("expected alice, got %q", got[0].UserId)
	}
}

func TestObserverStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	submitter := tsqlite.NewSubmitter(db)
	observer := tsqlite.NewObserver(db)

	if _, err := submitter.Create(ctx, tianshu.Submission{FileName: "a.pdf"}); err != nil {
		t.Fatal(err)
	}
	if _, err := submitter.Create(ctx, tianshu.Submission{FileName: "b.pdf"}); err != nil {
		t.Fatal(err)
	}

	stats, err := observer.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats["pending"] != 2 {
		t.Fatalf("expected 2 pending, got %d", stats["pending"])
	}
}
