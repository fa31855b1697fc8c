package mux

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"subweave/internal/fileutil"
	"subweave/internal/language"
	"subweave/internal/logging"
	"subweave/internal/services"
	"subweave/internal/services/ffprobe"
	"subweave/internal/services/mkvmerge"
	"subweave/internal/textutil"
)

// Packager writes the final container from a media file and subtitle tracks.
type Packager interface {
	Package(ctx context.Context, output, media string, tracks []mkvmerge.Track) error
}

// Inspector examines a finished container. Optional; inspection problems
// are logged, never fatal.
type Inspector func(ctx context.Context, path string) (ffprobe.Result, error)

// Request describes one packaging job.
type Request struct {
	MediaPath string
	// SubtitlePath is the normalized SRT to embed. Empty means package the
	// media as-is.
	SubtitlePath string
	Title        string
	Language     string
	OutputDir    string
}

// Muxer packages the final deliverable into the output directory. Writes go
// through a temp file in the same directory so a crash never leaves a
// half-written file under the final name.
type Muxer struct {
	packager Packager
	inspect  Inspector
	logger   *slog.Logger
}

// New constructs a muxer. inspect may be nil to skip verification.
func New(packager Packager, inspect Inspector, logger *slog.Logger) *Muxer {
	return &Muxer{
		packager: packager,
		inspect:  inspect,
		logger:   logging.NewComponentLogger(logger, "muxer"),
	}
}

// Mux produces the final container and returns its path. The subtitle
// sidecar is deleted once it is embedded; without a subtitle the media is
// copied through unchanged.
func (m *Muxer) Mux(ctx context.Context, req Request) (string, error) {
	if req.MediaPath == "" {
		return "", services.Wrap(services.ErrMissingVideoAsset, "mux", "package", "no media asset to package", nil)
	}
	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("mux: ensure output dir: %w", err)
	}

	finalName := textutil.SanitizeFileName(req.Title) + ".mkv"
	finalPath := filepath.Join(req.OutputDir, finalName)
	tempPath := filepath.Join(req.OutputDir, ".mux-"+finalName+".tmp")
	defer os.Remove(tempPath)

	if req.SubtitlePath == "" {
		if err := fileutil.CopyFileVerified(req.MediaPath, tempPath); err != nil {
			return "", services.Wrap(services.ErrMuxFailed, "mux", "copy media", "copy without subtitles failed", err)
		}
	} else {
		tracks := []mkvmerge.Track{{
			Path:     req.SubtitlePath,
			Language: req.Language,
			Name:     language.DisplayName(req.Language),
			Default:  true,
			Forced:   true,
		}}
		if err := m.packager.Package(ctx, tempPath, req.MediaPath, tracks); err != nil {
			return "", services.Wrap(services.ErrMuxFailed, "mux", "package", "container packaging failed", err)
		}
	}

	if !fileutil.NonEmptyFile(tempPath) {
		return "", services.Wrap(services.ErrMuxFailed, "mux", "verify", "packager produced no output", nil)
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		return "", services.Wrap(services.ErrMuxFailed, "mux", "publish", "final rename failed", err)
	}

	if req.SubtitlePath != "" {
		_ = os.Remove(req.SubtitlePath)
		m.verify(ctx, finalPath)
	}

	m.logger.Info("packaged final container",
		logging.String(logging.FieldEventType, "mux_complete"),
		logging.String("path", finalPath),
	)
	return finalPath, nil
}

// verify probes the finished container and warns when the subtitle track
// that was just embedded is not visible.
func (m *Muxer) verify(ctx context.Context, path string) {
	if m.inspect == nil {
		return
	}
	result, err := m.inspect(ctx, path)
	if err != nil {
		m.logger.Warn("container verification skipped", logging.Error(err))
		return
	}
	if len(result.SubtitleStreams()) == 0 {
		m.logger.Warn("no subtitle stream visible in packaged container",
			logging.String("path", path),
		)
	}
}
