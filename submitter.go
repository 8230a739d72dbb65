package tianshu

import (
	"context"

	"github.com/google/uuid"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// Submission carries every caller-supplied field needed to create a Task.
// It is the write-side counterpart of task.Task: everything a client
// controls at submission time, before the store stamps scheduling and
// lifecycle metadata.
type Submission struct {
	FileName      string
	FilePath      string
	Backend       string
	Lang          string
	Method        string
	FormulaEnable bool
	TableEnable   bool
	Options       task.Options
	Priority      int32
	UserId        string
}

// Submitter defines the write-side entry point of the Task Store.
type Submitter interface {

	// Create inserts a fresh task row in Pending status with
	// RetryCount == 0 and CreatedAt == now, and returns the assigned id.
	//
	// Create never fails other than on storage I/O; it performs no
	// validation of sub beyond what storage itself requires (e.g. NOT
	// NULL columns).
	Create(ctx context.Context, sub Submission) (uuid.UUID, error)
}
