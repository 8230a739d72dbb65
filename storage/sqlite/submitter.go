package sqlite

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	tianshu "github.com/magicyuan876/mineru-tianshu"
)

// Submitter implements tianshu.Submitter using a SQLite-backed bun.DB.
type Submitter struct {
	db *bun.DB
}

// NewSubmitter creates a SQLite-backed Submitter. db must already have
// InitDB applied.
func NewSubmitter(db *bun.DB) *Submitter {
	return &Submitter{db: db}
}

// Create inserts sub as a fresh Pending task and returns its id.
func (s *Submitter) Create(ctx context.Context, sub tianshu.Submission) (uuid.UUID, error) {
	id := uuid.New()
	model := fromSubmission(id, sub)
	if _, err := s.db.NewInsert().Model(model).Exec(ctx); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
