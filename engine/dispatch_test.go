package engine_test

import (
	"testing"

	"github.com/magicyuan876/mineru-tianshu/engine"
)

func TestChooseEngineDocument(t *testing.T) {
	if got := engine.ChooseEngine("pdf", "auto"); got != engine.Pipeline {
		t.Fatalf("expected pipeline, got %s", got)
	}
	if got := engine.ChooseEngine(".PDF", "deepseek-ocr"); got != engine.DeepSeekOCR {
		t.Fatalf("expected deepseek-ocr, got %s", got)
	}
	if got := engine.ChooseEngine("png", "paddleocr-vl"); got != engine.PaddleOCRVL {
		t.Fatalf("expected paddleocr-vl, got %s", got)
	}
}

func TestChooseEngineAudioAndVideo(t *testing.T) {
	if got := engine.ChooseEngine("mp3", "auto"); got != engine.SenseVoice {
		t.Fatalf("expected sensevoice, got %s", got)
	}
	if got := engine.ChooseEngine("mp4", "auto"); got != engine.Video {
		t.Fatalf("expected video, got %s", got)
	}
}

func TestChooseEngineExplicitBackendOverridesFileType(t *testing.T) {
	if got := engine.ChooseEngine("pdf", "sensevoice"); got != engine.SenseVoice {
		t.Fatalf("expected sensevoice to override document extension, got %s", got)
	}
	if got := engine.ChooseEngine("txt", "video"); got != engine.Video {
		t.Fatalf("expected video to override unrecognized extension, got %s", got)
	}
}

func TestChooseEngineFallsBackToGeneric(t *testing.T) {
	if got := engine.ChooseEngine("docx", "auto"); got != engine.Generic {
		t.Fatalf("expected generic, got %s", got)
	}
}

func TestNormalizeLang(t *testing.T) {
	if got := engine.NormalizeLang("ch"); got != "zh" {
		t.Fatalf("expected zh, got %s", got)
	}
	if got := engine.NormalizeLang("en"); got != "en" {
		t.Fatalf("expected en unchanged, got %s", got)
	}
}
