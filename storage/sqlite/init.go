package sqlite

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
)

func createTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*taskModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createPriorityIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*taskModel)(nil)).
		Index("idx_tasks_status_priority").
		Column("status", "priority").
		IfNotExists().
		Exec(ctx)
	return err
}

func createCreatedIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*taskModel)(nil)).
		Index("idx_tasks_status_created").
		Column("status", "created_at").
		IfNotExists().
		Exec(ctx)
	return err
}

func createUserIndex(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateIndex().
		Model((*taskModel)(nil)).
		Index("idx_tasks_user").
		Column("user_id").
		IfNotExists().
		Exec(ctx)
	return err
}

func initDB(ctx context.Context, db *bun.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := createTable(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := createPriorityIndex(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := createCreatedIndex(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := createUserIndex(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}

// InitDB initializes the schema required by the SQLite backend: the
// tasks table and its supporting indexes, all inside a single
// transaction.
//
// InitDB is idempotent and may be called multiple times safely. It never
// drops or alters existing objects beyond creating missing ones.
func InitDB(ctx context.Context, db *bun.DB) error {
	return initDB(ctx, db)
}

// MustInitDB behaves like InitDB but panics on failure. Intended for
// application bootstrap where a broken schema is unrecoverable.
func MustInitDB(ctx context.Context, db *bun.DB) {
	if err := initDB(ctx, db); err != nil {
		panic(err)
	}
}
