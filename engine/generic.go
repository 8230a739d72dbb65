package engine

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// GenericEngine is the catch-all document-to-Markdown converter for file
// types that don't match any of the document/audio/video extension sets
// ChooseEngine recognizes — office formats and anything else a deployment
// wires a converter for.
type GenericEngine struct {
	Bin        string
	ScriptPath string
}

func NewGenericEngine(bin, scriptPath string) *GenericEngine {
	return &GenericEngine{Bin: bin, ScriptPath: scriptPath}
}

func (e *GenericEngine) IsAvailable() bool {
	_, err := exec.LookPath(e.Bin)
	return err == nil
}

func (e *GenericEngine) Parse(ctx context.Context, inputPath, outputDir string, opts task.Options) (*Result, error) {
	args := []string{e.ScriptPath, "--input", inputPath, "--output", outputDir}
	if err := runCommand(ctx, e.Bin, args); err != nil {
		return nil, fmt.Errorf("generic: %w", err)
	}
	return resolveResult(outputDir)
}
