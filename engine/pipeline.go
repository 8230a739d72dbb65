package engine

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// PipelineEngine wraps the default MinerU pipeline backend: a general
// document-to-Markdown converter that handles any document or image
// extension not claimed by a more specific OCR engine. It is the engine
// ChooseEngine falls back to for document extensions when no specific
// backend was requested.
type PipelineEngine struct {
	Bin        string
	ScriptPath string
}

// NewPipelineEngine builds a PipelineEngine that invokes bin scriptPath
// for each task.
func NewPipelineEngine(bin, scriptPath string) *PipelineEngine {
	return &PipelineEngine{Bin: bin, ScriptPath: scriptPath}
}

func (e *PipelineEngine) IsAvailable() bool {
	_, err := exec.LookPath(e.Bin)
	return err == nil
}

func (e *PipelineEngine) Parse(ctx context.Context, inputPath, outputDir string, opts task.Options) (*Result, error) {
	args := []string{e.ScriptPath, "--input", inputPath, "--output", outputDir}
	if lang, ok := task.Get[string](opts, "lang"); ok && lang != "" {
		args = append(args, "--lang", NormalizeLang(lang))
	}
	if method, ok := task.Get[string](opts, "method"); ok && method != "" {
		args = append(args, "--method", method)
	}
	if task.GetOr(opts, "remove_watermark", false) {
		// Numeric options come back from the JSON-persisted bag as JSON
		// numbers rather than their submitted Go types, so parse them
		// from their printed form.
		conf, dilation := 0.35, 10
		if v, err := strconv.ParseFloat(fmt.Sprint(opts.Get("watermark_conf_threshold")), 64); err == nil {
			conf = v
		}
		if v, err := strconv.ParseFloat(fmt.Sprint(opts.Get("watermark_dilation")), 64); err == nil {
			dilation = int(v)
		}
		args = append(args,
			"--remove-watermark",
			"--watermark-conf-threshold", fmt.Sprintf("%g", conf),
			"--watermark-dilation", fmt.Sprintf("%d", dilation),
		)
	}
	if err := runCommand(ctx, e.Bin, args); err != nil {
		return nil, err
	}
	return resolveResult(outputDir)
}
