package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	tianshu "github.com/magicyuan876/mineru-tianshu"
	"github.com/magicyuan876/mineru-tianshu/task"
)

const maxUploadMemory = 8 << 20 // 8 MiB held in memory; the rest spills to disk.

// receiveUpload streams the multipart "file" field to cfg.UploadDir and
// builds the Submission from the accompanying form fields. The caller
// identity (UserId) is filled in separately by the handler.
func (s *Server) receiveUpload(r *http.Request) (tianshu.Submission, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return tianshu.Submission{}, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return tianshu.Submission{}, fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	destName := uuid.New().String() + filepath.Ext(header.Filename)
	destPath := filepath.Join(s.cfg.UploadDir, destName)

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return tianshu.Submission{}, fmt.Errorf("create upload dir: %w", err)
	}
	out, err := os.Create(destPath)
	if err != nil {
		return tianshu.Submission{}, fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		return tianshu.Submission{}, fmt.Errorf("write upload file: %w", err)
	}

	sub := tianshu.Submission{
		FileName:      header.Filename,
		FilePath:      destPath,
		Backend:       r.FormValue("backend"),
		Lang:          r.FormValue("lang"),
		Method:        r.FormValue("method"),
		FormulaEnable: formBool(r, "formula_enable", true),
		TableEnable:   formBool(r, "table_enable", true),
		Priority:      int32(formInt(r, "priority", 0)),
		Options:       make(task.Options),
	}

	// Known engine-specific knobs are parsed into bool or numeric values
	// rather than kept as strings; everything else rides through as a raw
	// string. After the JSON round-trip through the store, booleans keep
	// their type but numbers come back as JSON numbers, which the engines
	// parse accordingly.
	typedBoolKeys := []string{"keep_audio", "enable_keyframe_ocr", "keep_keyframes", "remove_watermark"}
	for _, key := range typedBoolKeys {
		if r.FormValue(key) != "" {
			sub.Options[key] = formBool(r, key, false)
		}
	}
	if r.FormValue("watermark_conf_threshold") != "" {
		sub.Options["watermark_conf_threshold"] = formFloat(r, "watermark_conf_threshold", 0.35)
	}
	if r.FormValue("watermark_dilation") != "" {
		sub.Options["watermark_dilation"] = formInt(r, "watermark_dilation", 10)
	}
	if v := r.FormValue("deepseek_resolution"); v != "" {
		sub.Options["resolution"] = v
	}
	if v := r.FormValue("deepseek_prompt_type"); v != "" {
		sub.Options["prompt_type"] = v
	}

	knownKeys := map[string]bool{
		"backend": true, "lang": true, "method": true,
		"formula_enable": true, "table_enable": true, "priority": true,
		"keep_audio": true, "enable_keyframe_ocr": true, "keep_keyframes": true,
		"remove_watermark": true, "watermark_conf_threshold": true, "watermark_dilation": true,
		"deepseek_resolution": true, "deepseek_prompt_type": true,
	}
	for key, values := range r.MultipartForm.Value {
		if knownKeys[key] || len(values) == 0 {
			continue
		}
		sub.Options[key] = values[0]
	}

	return sub, nil
}

func formBool(r *http.Request, key string, def bool) bool {
	v := r.FormValue(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func formInt(r *http.Request, key string, def int) int {
	v := r.FormValue(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func formFloat(r *http.Request, key string, def float64) float64 {
	v := r.FormValue(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
