package engine

import (
	"context"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// Result is what a processing engine hands back after Parse succeeds.
//
// MarkdownPath is always set on success; JSONPath and ImagesDir are
// populated only when the engine produces them. The dispatch layer cares
// only about their presence and location, never their content.
type Result struct {
	MarkdownPath string
	JSONPath     string
	ImagesDir    string
}

// Engine is the contract every processing engine — OCR, audio
// transcription, video demux, the generic office-document pipeline —
// must satisfy. Engine internals (model loading, GPU memory, third-party
// SDKs) are out of scope; Tianshu only invokes Parse and interprets its
// Result.
type Engine interface {
	// Parse processes the file at inputPath, writes its output under
	// outputDir, and reports where the resulting artifacts live. opts
	// carries engine-specific parameters verbatim from the submission.
	Parse(ctx context.Context, inputPath, outputDir string, opts task.Options) (*Result, error)

	// IsAvailable reports whether this engine's dependencies (model
	// weights, a child binary, a required library) are present in the
	// current deployment. The registry consults this at dispatch time
	// (Resolve) and whenever it builds a snapshot (Describe); Register
	// does not call it.
	IsAvailable() bool
}
