// Package whisper adapts the whisper speech-to-text engine.
//
// It selects a model variant based on which weights are already cached
// locally (never triggering a download), invokes the engine with word-level
// timestamps and a verbatim transcription prompt, and parses the timed
// segments from the JSON output.
package whisper
