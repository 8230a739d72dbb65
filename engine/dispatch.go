package engine

import "strings"

const (
	Pipeline    = "pipeline"
	DeepSeekOCR = "deepseek-ocr"
	PaddleOCRVL = "paddleocr-vl"
	SenseVoice  = "sensevoice"
	Video       = "video"
	Generic     = "generic"
)

var documentExtensions = map[string]bool{
	"pdf": true, "png": true, "jpg": true, "jpeg": true,
	"bmp": true, "tiff": true, "webp": true,
}

var audioExtensions = map[string]bool{
	"mp3": true, "wav": true, "m4a": true, "flac": true,
	"ogg": true, "aac": true, "wma": true, "opus": true,
}

var videoExtensions = map[string]bool{
	"mp4": true, "avi": true, "mkv": true, "mov": true, "flv": true,
	"webm": true, "m4v": true, "wmv": true, "mpeg": true, "mpg": true,
}

var documentOCREngines = map[string]bool{
	DeepSeekOCR: true,
	PaddleOCRVL: true,
}

// ChooseEngine is a pure routing function mapping a file extension and a
// requested backend to an engine name. It never consults the registry:
// availability is checked separately once a name is chosen, so a
// requested-but-unavailable engine fails the task with a specific error
// instead of silently falling back to another engine.
//
// ext is matched case-insensitively and without a leading dot. backend
// may be empty or "auto" to mean "let the extension decide".
//
// Rules, evaluated in order:
//
//  1. sensevoice or video as an explicit backend overrides file type.
//  2. Document extensions (pdf, png, jpg, jpeg, bmp, tiff, webp): if
//     backend names a document OCR engine, dispatch there; otherwise
//     dispatch to the default pipeline engine.
//  3. Audio extensions: dispatch to the audio engine.
//  4. Video extensions: dispatch to the video engine.
//  5. Everything else: dispatch to the generic converter.
func ChooseEngine(ext, backend string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	backend = strings.ToLower(backend)

	if backend == SenseVoice || backend == Video {
		return backend
	}

	if documentExtensions[ext] {
		if documentOCREngines[backend] {
			return backend
		}
		return Pipeline
	}
	if audioExtensions[ext] {
		return SenseVoice
	}
	if videoExtensions[ext] {
		return Video
	}
	return Generic
}

var langAliases = map[string]string{
	"ch": "zh",
}

// NormalizeLang canonicalizes caller-supplied language codes that the
// original project's various engines spell inconsistently (e.g. "ch" for
// Chinese). Normalization is done at the dispatch site rather than inside
// each engine so every engine sees the same canonical codes.
func NormalizeLang(lang string) string {
	if canon, ok := langAliases[strings.ToLower(lang)]; ok {
		return canon
	}
	return lang
}
