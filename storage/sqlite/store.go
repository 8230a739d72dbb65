package sqlite

import (
	"github.com/uptrace/bun"

	tianshu "github.com/magicyuan876/mineru-tianshu"
)

// Store bundles Submitter, Leaser, Observer and Maintainer into the full
// tianshu.Store contract over a single bun.DB connection.
type Store struct {
	*Submitter
	*Leaser
	*Observer
	*Maintainer
}

var _ tianshu.Store = (*Store)(nil)

// NewStore builds a Store over db. db must already have InitDB applied.
func NewStore(db *bun.DB) *Store {
	return &Store{
		Submitter:  NewSubmitter(db),
		Leaser:     NewLeaser(db),
		Observer:   NewObserver(db),
		Maintainer: NewMaintainer(db),
	}
}
