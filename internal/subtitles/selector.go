package subtitles

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"subweave/internal/language"
	"subweave/internal/logging"
	"subweave/internal/services"
)

// Format identifies a subtitle file format by extension.
type Format string

const (
	FormatVTT Format = "vtt"
	FormatSRT Format = "srt"
)

// Candidate is one subtitle file written by the remote source, classified
// once at the boundary instead of re-globbing the filesystem downstream.
type Candidate struct {
	Path     string
	Language string // tag embedded in the filename, e.g. "en", "en-US"
	Format   Format
}

// SubtitleSource fetches manually authored subtitle files for a URL without
// downloading media.
type SubtitleSource interface {
	FetchSubtitles(ctx context.Context, url, lang, destDir string) ([]string, error)
}

// Converter transcodes a subtitle file into the format implied by the
// output extension.
type Converter interface {
	Convert(ctx context.Context, input, output string) error
}

// Selector decides between manually authored subtitle tracks. It owns no
// transcription logic: when nothing usable exists it reports
// ErrNoManualSubtitles and the caller branches to the transcription path.
type Selector struct {
	source    SubtitleSource
	converter Converter
	language  string
	logger    *slog.Logger
}

// NewSelector constructs a subtitle source selector for one language scope.
func NewSelector(source SubtitleSource, converter Converter, lang string, logger *slog.Logger) *Selector {
	return &Selector{
		source:    source,
		converter: converter,
		language:  language.ToISO2(lang),
		logger:    logging.NewComponentLogger(logger, "subtitle-selector"),
	}
}

// Select fetches available manual subtitles into workDir and returns the
// path of an adopted SRT file. Preference order: a language-matching VTT
// converted to SRT (the VTT is discarded), then an existing SRT. When no
// manual track is usable the returned error wraps ErrNoManualSubtitles.
func (s *Selector) Select(ctx context.Context, url, workDir string) (string, error) {
	files, err := s.source.FetchSubtitles(ctx, url, s.language, workDir)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "subtitles", "fetch manual tracks", "subtitle listing failed", err)
	}
	candidates := classifyCandidates(files)
	s.logger.Debug("manual subtitle candidates",
		logging.Int("count", len(candidates)),
		logging.String("language", s.language),
	)

	if vtt, ok := findCandidate(candidates, FormatVTT, s.language); ok {
		srtPath := strings.TrimSuffix(vtt.Path, filepath.Ext(vtt.Path)) + ".srt"
		if err := s.converter.Convert(ctx, vtt.Path, srtPath); err != nil {
			return "", services.Wrap(services.ErrExternalTool, "subtitles", "convert vtt", "VTT to SRT conversion failed", err)
		}
		_ = os.Remove(vtt.Path)
		s.logger.Info("adopted manual subtitle track",
			logging.String(logging.FieldEventType, "manual_subtitle_adopted"),
			logging.String("origin", "vtt"),
			logging.String("path", srtPath),
		)
		return srtPath, nil
	}

	if srt, ok := findCandidate(candidates, FormatSRT, s.language); ok {
		s.logger.Info("adopted manual subtitle track",
			logging.String(logging.FieldEventType, "manual_subtitle_adopted"),
			logging.String("origin", "srt"),
			logging.String("path", srt.Path),
		)
		return srt.Path, nil
	}

	return "", services.Wrap(
		services.ErrNoManualSubtitles,
		"subtitles",
		"select",
		"no manually authored subtitle track available",
		nil,
	)
}

// classifyCandidates parses subtitle filenames of the form
// <base>.<lang>.<ext> into typed candidates. Files without a language tag
// get an empty Language.
func classifyCandidates(paths []string) []Candidate {
	candidates := make([]Candidate, 0, len(paths))
	for _, path := range paths {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		var format Format
		switch ext {
		case "vtt":
			format = FormatVTT
		case "srt":
			format = FormatSRT
		default:
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		lang := strings.TrimPrefix(filepath.Ext(stem), ".")
		candidates = append(candidates, Candidate{Path: path, Language: lang, Format: format})
	}
	return candidates
}

// findCandidate returns the first candidate of the wanted format whose
// language tag matches lang; for SRT a tagless candidate is acceptable as a
// last resort.
func findCandidate(candidates []Candidate, format Format, lang string) (Candidate, bool) {
	for _, candidate := range candidates {
		if candidate.Format == format && language.MatchesTag(candidate.Language, lang) {
			return candidate, true
		}
	}
	if format == FormatSRT {
		for _, candidate := range candidates {
			if candidate.Format == format && candidate.Language == "" {
				return candidate, true
			}
		}
	}
	return Candidate{}, false
}
