package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/magicyuan876/mineru-tianshu/task"
)

// Dispatcher adapts a Registry into a worker.TaskHandler: it chooses an
// engine via ChooseEngine, resolves it against the registry, and invokes
// Parse under outputRoot/<task id>.
type Dispatcher struct {
	registry   *Registry
	outputRoot string
}

// NewDispatcher creates a Dispatcher serving tasks out of outputRoot,
// one subdirectory per task id.
func NewDispatcher(registry *Registry, outputRoot string) *Dispatcher {
	return &Dispatcher{registry: registry, outputRoot: outputRoot}
}

// Handle implements worker.TaskHandler: choose the engine, resolve its
// availability, run it, and return the path clients will be served
// results from.
func (d *Dispatcher) Handle(ctx context.Context, t *task.Task) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(t.FileName), ".")
	name := ChooseEngine(ext, t.Backend)

	e, err := d.registry.Resolve(name)
	if err != nil {
		return "", err
	}

	outputDir := filepath.Join(d.outputRoot, t.Id.String())
	if _, err := e.Parse(ctx, t.FilePath, outputDir, t.EngineOptions()); err != nil {
		return "", fmt.Errorf("engine %s: %w", name, err)
	}
	return outputDir, nil
}
