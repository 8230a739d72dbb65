package engine

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// DeepSeekOCREngine wraps the DeepSeek-OCR backend, a document-OCR engine
// requiring a CUDA-capable GPU and a local model directory.
type DeepSeekOCREngine struct {
	Bin        string
	ScriptPath string
	ModelDir   string
}

func NewDeepSeekOCREngine(bin, scriptPath, modelDir string) *DeepSeekOCREngine {
	return &DeepSeekOCREngine{Bin: bin, ScriptPath: scriptPath, ModelDir: modelDir}
}

// IsAvailable requires both the runner binary and the model directory to
// be present; DeepSeek-OCR has no CPU fallback (see check_environment.py
// in the original project), so a missing model directory means the
// engine cannot serve any request regardless of GPU presence.
func (e *DeepSeekOCREngine) IsAvailable() bool {
	if _, err := exec.LookPath(e.Bin); err != nil {
		return false
	}
	info, err := os.Stat(e.ModelDir)
	return err == nil && info.IsDir()
}

func (e *DeepSeekOCREngine) Parse(ctx context.Context, inputPath, outputDir string, opts task.Options) (*Result, error) {
	args := []string{e.ScriptPath, "--model-dir", e.ModelDir, "--input", inputPath, "--output", outputDir}
	if resolution, ok := task.Get[string](opts, "resolution"); ok && resolution != "" {
		args = append(args, "--resolution", resolution)
	}
	if promptType, ok := task.Get[string](opts, "prompt_type"); ok && promptType != "" {
		args = append(args, "--prompt-type", promptType)
	}
	if err := runCommand(ctx, e.Bin, args); err != nil {
		return nil, fmt.Errorf("deepseek-ocr: %w", err)
	}
	return resolveResult(outputDir)
}
