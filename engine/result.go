package engine

import (
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

// resolveResult walks outputDir for a Markdown artifact (required) and an
// optional JSON artifact and images/ subdirectory — the same
// lazy-resolution rule the API gateway applies when serving a completed
// task's result.
func resolveResult(outputDir string) (*Result, error) {
	ret := &Result{}
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("reading engine output directory %s: %w", outputDir, err)
	}
	if err := scanLevel(outputDir, entries, ret); err != nil {
		return nil, err
	}
	if ret.MarkdownPath == "" {
		return nil, fmt.Errorf("engine produced no markdown artifact under %s", outputDir)
	}
	return ret, nil
}

func scanLevel(dir string, entries []os.DirEntry, ret *Result) error {
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		switch {
		case entry.IsDir() && name == "images":
			ret.ImagesDir = path
		case !entry.IsDir() && strings.HasSuffix(name, ".md") && ret.MarkdownPath == "":
			ret.MarkdownPath = path
		case !entry.IsDir() && isJSONArtifact(name) && ret.JSONPath == "":
			ret.JSONPath = path
		case entry.IsDir():
			nested, err := os.ReadDir(path)
			if err != nil {
				continue
			}
			if err := scanLevel(path, nested, ret); err != nil {
				return err
			}
		}
	}
	return nil
}
