package subtitles

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"subweave/internal/logging"
	"subweave/internal/services"
	"subweave/internal/services/whisper"
)

// Engine produces timed transcription segments from an audio file.
type Engine interface {
	Transcribe(ctx context.Context, audioPath, outputDir string) ([]whisper.Segment, error)
}

// Generator turns speech-to-text output into an SRT file. It runs only when
// the selector reported ErrNoManualSubtitles.
type Generator struct {
	engine Engine
	logger *slog.Logger
}

// NewGenerator constructs a transcription-backed subtitle generator.
func NewGenerator(engine Engine, logger *slog.Logger) *Generator {
	return &Generator{
		engine: engine,
		logger: logging.NewComponentLogger(logger, "subtitle-generator"),
	}
}

// Generate transcribes audioPath and writes the serialized track to
// workDir. Segments with no spoken content are dropped; an engine run that
// yields nothing usable wraps ErrTranscriptionFailed.
func (g *Generator) Generate(ctx context.Context, audioPath, workDir string) (string, error) {
	raw, err := g.engine.Transcribe(ctx, audioPath, workDir)
	if err != nil {
		return "", services.Wrap(
			services.ErrTranscriptionFailed,
			"transcribe",
			"engine",
			"speech-to-text engine failed",
			err,
		)
	}

	segments := buildTrack(raw)
	if len(segments) == 0 {
		return "", services.Wrap(
			services.ErrTranscriptionFailed,
			"transcribe",
			"build track",
			"engine produced no usable segments",
			nil,
		)
	}

	srtPath := filepath.Join(workDir, "generated.srt")
	if err := os.WriteFile(srtPath, Render(segments), 0o644); err != nil {
		return "", fmt.Errorf("write generated subtitles: %w", err)
	}

	g.logger.Info("generated subtitle track from transcription",
		logging.String(logging.FieldEventType, "subtitle_generated"),
		logging.Int("segments", len(segments)),
		logging.String("path", srtPath),
	)
	return srtPath, nil
}

// buildTrack converts engine segments into an ordered track honoring the
// non-overlap invariant: a stable sort by start time, ends clamped to the
// following start.
func buildTrack(raw []whisper.Segment) []Segment {
	segments := make([]Segment, 0, len(raw))
	for _, seg := range raw {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		end := seg.End
		if end < seg.Start {
			end = seg.Start
		}
		segments = append(segments, Segment{Start: seg.Start, End: end, Text: text})
	}
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	for i := 1; i < len(segments); i++ {
		if segments[i-1].End > segments[i].Start {
			segments[i-1].End = segments[i].Start
		}
	}
	for i := range segments {
		segments[i].Index = i + 1
	}
	return segments
}
