package engine

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// VideoEngine wraps the video-to-document pipeline: keyframe extraction
// via ffmpeg, with document OCR over the extracted frames only when the
// enable_keyframe_ocr option is set. It passes no watermark-removal
// options to the runner.
type VideoEngine struct {
	Bin        string
	ScriptPath string
}

func NewVideoEngine(bin, scriptPath string) *VideoEngine {
	return &VideoEngine{Bin: bin, ScriptPath: scriptPath}
}

func (e *VideoEngine) IsAvailable() bool {
	if _, err := exec.LookPath(e.Bin); err != nil {
		return false
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return false
	}
	_, err := exec.LookPath("ffprobe")
	return err == nil
}

func (e *VideoEngine) Parse(ctx context.Context, inputPath, outputDir string, opts task.Options) (*Result, error) {
	args := []string{e.ScriptPath, "--input", inputPath, "--output", outputDir}
	if task.GetOr(opts, "keep_audio", false) {
		args = append(args, "--keep-audio")
	}
	if task.GetOr(opts, "keep_keyframes", false) {
		args = append(args, "--keep-keyframes")
	}
	if task.GetOr(opts, "enable_keyframe_ocr", false) {
		args = append(args, "--enable-keyframe-ocr")
		backend := task.GetOr(opts, "ocr_backend", "paddleocr-vl")
		args = append(args, "--ocr-backend", backend)
	}
	if err := runCommand(ctx, e.Bin, args); err != nil {
		return nil, fmt.Errorf("video: %w", err)
	}
	return resolveResult(outputDir)
}
