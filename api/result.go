package api

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var jsonArtifactSuffixes = []string{"_content_list.json"}
var jsonArtifactNames = map[string]bool{"content.json": true, "result.json": true}

func isJSONArtifact(name string) bool {
	if jsonArtifactNames[name] {
		return true
	}
	for _, suffix := range jsonArtifactSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// resultContent is what GET /tasks/{id} inlines for a completed task,
// shaped by the caller's format query parameter.
type resultContent struct {
	Markdown   string `json:"content,omitempty"`
	JSON       any    `json:"json_content,omitempty"`
	MarkdownAt string `json:"-"`
	ImagesDir  string `json:"-"`
}

// resolveTaskContent lazily scans a completed task's result directory for
// a Markdown artifact (required) and, if requested, a companion JSON
// artifact. format is one of "markdown", "json" or "both".
func resolveTaskContent(resultPath, format string) (*resultContent, error) {
	var mdPath, jsonPath, imagesDir string
	if err := scanResultLevel(resultPath, &mdPath, &jsonPath, &imagesDir); err != nil {
		return nil, err
	}
	if mdPath == "" {
		return nil, fmt.Errorf("no markdown artifact under %s", resultPath)
	}

	ret := &resultContent{MarkdownAt: mdPath, ImagesDir: imagesDir}
	if format == "markdown" || format == "both" {
		raw, err := os.ReadFile(mdPath)
		if err != nil {
			return nil, fmt.Errorf("reading markdown artifact: %w", err)
		}
		ret.Markdown = string(raw)
	}
	if (format == "json" || format == "both") && jsonPath != "" {
		raw, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, fmt.Errorf("reading json artifact: %w", err)
		}
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, fmt.Errorf("decoding json artifact: %w", err)
		}
		ret.JSON = decoded
	}
	return ret, nil
}

func scanResultLevel(dir string, mdPath, jsonPath, imagesDir *string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading result directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		switch {
		case entry.IsDir() && name == "images":
			*imagesDir = path
		case !entry.IsDir() && strings.HasSuffix(name, ".md") && *mdPath == "":
			*mdPath = path
		case !entry.IsDir() && isJSONArtifact(name) && *jsonPath == "":
			*jsonPath = path
		case entry.IsDir():
			if err := scanResultLevel(path, mdPath, jsonPath, imagesDir); err != nil {
				continue
			}
		}
	}
	return nil
}
