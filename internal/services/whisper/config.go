package whisper

// Config captures runtime settings for transcription.
type Config struct {
	// Model is the preferred high-accuracy variant (e.g. "medium").
	Model string
	// FallbackModel is used when the preferred weights are not cached
	// locally (e.g. "small").
	FallbackModel string
	// ModelDir is the local weight cache consulted by SelectModel. The
	// check is a filesystem stat only; weights are never downloaded here.
	ModelDir string
	// Language is the expected spoken language (ISO 639-1), passed to the
	// engine to skip detection.
	Language string
}

// Engine invocation constants.
const (
	DefaultModel         = "medium"
	DefaultFallbackModel = "small"
	OutputFormat         = "json"

	// verbatimPrompt steers the engine to transcribe speech exactly as
	// spoken, without softening or omitting content.
	verbatimPrompt = "Transcribe all speech verbatim, exactly as spoken, without censoring, filtering, or paraphrasing any content."
)
