package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// PaddleOCRVLEngine wraps the PaddleOCR-VL backend, a GPU-only
// document-OCR engine (the original project's check_environment.py
// explicitly rejects CPU inference for this backend).
type PaddleOCRVLEngine struct {
	Bin        string
	ScriptPath string
	ModelDir   string
}

func NewPaddleOCRVLEngine(bin, scriptPath, modelDir string) *PaddleOCRVLEngine {
	return &PaddleOCRVLEngine{Bin: bin, ScriptPath: scriptPath, ModelDir: modelDir}
}

func (e *PaddleOCRVLEngine) IsAvailable() bool {
	if _, err := exec.LookPath(e.Bin); err != nil {
		return false
	}
	info, err := os.Stat(e.ModelDir)
	return err == nil && info.IsDir()
}

func (e *PaddleOCRVLEngine) Parse(ctx context.Context, inputPath, outputDir string, opts task.Options) (*Result, error) {
	args := []string{e.ScriptPath, "--model-dir", e.ModelDir, "--input", inputPath, "--output", outputDir}
	if formula := task.GetOr(opts, "formula_enable", true); formula {
		args = append(args, "--formula")
	}
	if table := task.GetOr(opts, "table_enable", true); table {
		args = append(args, "--table")
	}
	if err := runCommand(ctx, e.Bin, args); err != nil {
		return nil, fmt.Errorf("paddleocr-vl: %w", err)
	}
	return resolveResult(outputDir)
}
