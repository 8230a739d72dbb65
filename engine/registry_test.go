package engine_test

import (
	"context"
	"testing"

	"github.com/magicyuan876/mineru-tianshu/engine"
	"github.com/magicyuan876/mineru-tianshu/task"
)

type fakeEngine struct {
	available bool
}

func (f *fakeEngine) IsAvailable() bool { return f.available }

func (f *fakeEngine) Parse(ctx context.Context, inputPath, outputDir string, opts task.Options) (*engine.Result, error) {
	return &engine.Result{MarkdownPath: outputDir + "/out.md"}, nil
}

func TestRegistryResolveMissing(t *testing.T) {
	r := engine.NewRegistry()
	if _, err := r.Resolve("pipeline"); err == nil {
		t.Fatal("expected error for unregistered engine")
	}
}

func TestRegistryResolveUnavailable(t *testing.T) {
	r := engine.NewRegistry()
	r.Register("pipeline", &fakeEngine{available: false}, []string{"pdf"}, "test")
	if _, err := r.Resolve("pipeline"); err == nil {
		t.Fatal("expected error for unavailable engine")
	}
}

func TestRegistryResolveAvailable(t *testing.T) {
	r := engine.NewRegistry()
	r.Register("pipeline", &fakeEngine{available: true}, []string{"pdf"}, "test")
	e, err := r.Resolve("pipeline")
	if err != nil {
		t.Fatal(err)
	}
	if e == nil {
		t.Fatal("expected a non-nil engine")
	}
}

func TestRegistryDescribe(t *testing.T) {
	r := engine.NewRegistry()
	r.Register("video", &fakeEngine{available: true}, []string{"mp4"}, "video engine")
	r.Register("pipeline", &fakeEngine{available: false}, []string{"pdf"}, "pipeline engine")

	descs := r.Describe()
	if len(descs) != 2 {
		t.Fatalf("expected 2 descriptions, got %d", len(descs))
	}
	if descs[0].Name != "pipeline" {
		t.Fatalf("expected sorted by name, got %s first", descs[0].Name)
	}
	if descs[0].Available {
		t.Fatal("expected pipeline to be unavailable")
	}
	if !descs[1].Available {
		t.Fatal("expected video to be available")
	}
}
