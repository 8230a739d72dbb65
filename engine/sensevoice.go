package engine

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// SenseVoiceEngine wraps the FunASR/SenseVoice audio transcription
// backend. Unlike the OCR engines it degrades to CPU rather than
// refusing to run, so availability only requires ffmpeg (for audio
// decoding) and the runner binary, not a GPU.
type SenseVoiceEngine struct {
	Bin        string
	ScriptPath string
}

func NewSenseVoiceEngine(bin, scriptPath string) *SenseVoiceEngine {
	return &SenseVoiceEngine{Bin: bin, ScriptPath: scriptPath}
}

func (e *SenseVoiceEngine) IsAvailable() bool {
	if _, err := exec.LookPath(e.Bin); err != nil {
		return false
	}
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

func (e *SenseVoiceEngine) Parse(ctx context.Context, inputPath, outputDir string, opts task.Options) (*Result, error) {
	args := []string{e.ScriptPath, "--input", inputPath, "--output", outputDir}
	if lang, ok := task.Get[string](opts, "lang"); ok && lang != "" {
		args = append(args, "--lang", NormalizeLang(lang))
	}
	if err := runCommand(ctx, e.Bin, args); err != nil {
		return nil, fmt.Errorf("sensevoice: %w", err)
	}
	return resolveResult(outputDir)
}
