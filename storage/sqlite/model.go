package sqlite

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	"github.com/magicyuan876/mineru-tianshu/task"
)

type taskModel struct {
	bun.BaseModel `bun:"table:tasks"`
	Id            uuid.UUID `bun:"id,pk,type:uuid"`

	UserId   string `bun:"user_id,notnull"`
	FileName string `bun:"file_name,notnull"`
	FilePath string `bun:"file_path,notnull"`
	Backend  string `bun:"backend,notnull"`

	Lang          string `bun:"lang,notnull,default:''"`
	Method        string `bun:"method,notnull,default:''"`
	FormulaEnable bool   `bun:"formula_enable,notnull,default:true"`
	TableEnable   bool   `bun:"table_enable,notnull,default:true"`

	Options task.Options `bun:"options,type:jsonb"`

	Priority int32       `bun:"priority,notnull,default:0"`
	Status   task.Status `bun:"status,notnull,default:0"`
	WorkerId string      `bun:"worker_id,notnull,default:''"`

	RetryCount   uint32 `bun:"retry_count,notnull,default:0"`
	ResultPath   string `bun:"result_path,notnull,default:''"`
	ErrorMessage string `bun:"error_message,notnull,default:''"`

	CreatedAt   time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	StartedAt   *time.Time `bun:"started_at,nullzero,default:null"`
	CompletedAt *time.Time `bun:"completed_at,nullzero,default:null"`
}

func (tm *taskModel) toTask() *task.Task {
	t := &task.Task{
		Id:            tm.Id,
		UserId:        tm.UserId,
		FileName:      tm.FileName,
		FilePath:      tm.FilePath,
		Backend:       tm.Backend,
		Lang:          tm.Lang,
		Method:        tm.Method,
		FormulaEnable: tm.FormulaEnable,
		TableEnable:   tm.TableEnable,
		Options:       tm.Options,
		Priority:      tm.Priority,
		Status:        tm.Status,
		WorkerId:      tm.WorkerId,
		RetryCount:    tm.RetryCount,
		ResultPath:    tm.ResultPath,
		ErrorMessage:  tm.ErrorMessage,
		CreatedAt:     tm.CreatedAt,
	}
	if tm.StartedAt != nil {
		t.StartedAt = *tm.StartedAt
	}
	if tm.CompletedAt != nil {
		t.CompletedAt = *tm.CompletedAt
	}
	return t
}

func fromSubmission(id uuid.UUID, sub tianshu.Submission) *taskModel {
	return &taskModel{
		Id:            id,
		UserId:        sub.UserId,
		FileName:      sub.FileName,
		FilePath:      sub.FilePath,
		Backend:       sub.Backend,
		Lang:          sub.Lang,
		Method:        sub.Method,
		FormulaEnable: sub.FormulaEnable,
		TableEnable:   sub.TableEnable,
		Options:       sub.Options,
		Priority:      sub.Priority,
		Status:        task.Pending,
		CreatedAt:     time.Now(),
	}
}
