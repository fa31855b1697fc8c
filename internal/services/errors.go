package services

import (
	"errors"
	"fmt"
	"strings"
)

// Generic failure markers shared by all external collaborators.
var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Pipeline failure markers. Each maps to one abort condition of the run;
// ErrNoManualSubtitles is a branch signal rather than a failure and must be
// handled by the caller, never surfaced to the operator as fatal.
var (
	ErrNoUsableFormats     = errors.New("no usable formats")
	ErrMissingVideoAsset   = errors.New("missing video asset")
	ErrNoManualSubtitles   = errors.New("no manual subtitles")
	ErrMissingAudioAsset   = errors.New("missing audio asset")
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrNoSubtitleBlocks    = errors.New("no subtitle blocks")
	ErrSubtitleReformat    = errors.New("subtitle reformat failed")
	ErrMuxFailed           = errors.New("mux failed")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error should abort the run. Branch signals and
// nil errors are not fatal.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrNoManualSubtitles)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
