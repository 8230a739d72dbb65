package task

import (
	"time"

	"github.com/google/uuid"
)

// Task is the central entity of the queue: one unit of file-processing
// work, uniquely identified by Id.
//
// Task values returned by the Task Store are snapshots; mutating them does
// not change underlying storage state. Transitions must be performed
// through the Submitter/Leaser/Maintainer interfaces.
type Task struct {
	Id uuid.UUID

	// UserId is the submitting principal; governs visibility (spec.md §4.4).
	UserId string

	FileName string
	// FilePath is the location of the inbound payload on shared storage.
	// Valid until the task terminates: the worker deletes it after
	// processing, and the API gateway deletes it on cancellation.
	FilePath string

	// Backend is the caller-chosen engine selector string, one of the
	// recognized engine names or "auto".
	Backend string

	// Lang, Method, FormulaEnable and TableEnable are promoted out of
	// Options because the dispatch layer and several engines consult them
	// directly; see SPEC_FULL.md §3.
	Lang          string
	Method        string
	FormulaEnable bool
	TableEnable   bool

	// Options carries every other engine-specific submission parameter
	// verbatim (DeepSeek resolution/prompt type, video keyframe/watermark
	// knobs, format-specific extras, etc).
	Options Options

	// Priority is the primary dispatch ordering key; higher goes first.
	Priority int32

	Status Status

	// WorkerId identifies the worker currently holding, or having last
	// touched, the task. Empty until first lease.
	WorkerId string

	// RetryCount counts re-leases after stale-lease recovery.
	RetryCount uint32

	// ResultPath is the directory containing the engine's output
	// artifacts. Non-empty iff Status == Completed and the directory has
	// not yet been garbage-collected.
	ResultPath string

	// ErrorMessage is a human-readable diagnostic, set on Status == Failed.
	ErrorMessage string

	CreatedAt time.Time
	// StartedAt is non-zero whenever Status is Processing or any terminal
	// state reached via processing (invariant I3).
	StartedAt time.Time
	// CompletedAt is stamped on the Completed/Failed/Cancelled transition.
	CompletedAt time.Time
}

// EngineOptions merges the promoted Lang/Method/FormulaEnable/TableEnable
// fields into a copy of Options, under the keys "lang", "method",
// "formula_enable" and "table_enable". Engines consult a single Options
// bag, so promotion to first-class Task fields (for the dispatch layer's
// benefit) must not hide these values from engines that read them back
// out of Options.
func (t *Task) EngineOptions() Options {
	merged := make(Options, len(t.Options)+4)
	for k, v := range t.Options {
		merged[k] = v
	}
	merged["lang"] = t.Lang
	merged["method"] = t.Method
	merged["formula_enable"] = t.FormulaEnable
	merged["table_enable"] = t.TableEnable
	return merged
}
