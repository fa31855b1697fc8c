package acquire

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"subweave/internal/catalog"
	"subweave/internal/fileutil"
	"subweave/internal/logging"
	"subweave/internal/services"
	"subweave/internal/services/ytdlp"
)

const (
	mergedAssetName = "video.mkv"
	audioAssetName  = "audio.m4a"

	// bestSelector asks the source for its own best-quality policy when the
	// operator made no explicit stream choice.
	bestSelector = "bestvideo+bestaudio/best"
	// bestAudioSelector fetches a standalone audio stream, either for merging
	// with a video-only stream or for transcription.
	bestAudioSelector = "bestaudio/best"
)

// Fetcher downloads media assets described by a fetch request.
type Fetcher interface {
	Fetch(ctx context.Context, req ytdlp.FetchRequest) (string, error)
}

// Merger combines separate video and audio streams into one container.
type Merger interface {
	Remux(ctx context.Context, video, audio, output string, reencodeAudio bool) error
}

// Result describes the media assets an acquisition produced. AudioPath is
// set when a standalone audio asset exists in the work directory, whether or
// not it was merged. Degraded marks a video-only outcome after audio
// acquisition or merging failed.
type Result struct {
	MediaPath string
	AudioPath string
	Degraded  bool
}

// Acquirer downloads the primary media asset for a run, merging separate
// audio when the chosen stream carries none.
type Acquirer struct {
	fetcher Fetcher
	merger  Merger
	logger  *slog.Logger
}

// New constructs an acquirer.
func New(fetcher Fetcher, merger Merger, logger *slog.Logger) *Acquirer {
	return &Acquirer{
		fetcher: fetcher,
		merger:  merger,
		logger:  logging.NewComponentLogger(logger, "acquirer"),
	}
}

// Acquire downloads the media for url into workDir. A nil selection defers
// to the source's best-quality policy. Streams that already carry audio are
// remuxed into the working container; video-only streams get a separate
// audio fetch and a local merge. Audio trouble on the video-only path never
// fails the run: the result degrades to video-only instead.
func (a *Acquirer) Acquire(ctx context.Context, url string, selection *catalog.StreamDescriptor, workDir string) (Result, error) {
	mergedPath := filepath.Join(workDir, mergedAssetName)

	if selection == nil {
		path, err := a.fetcher.Fetch(ctx, ytdlp.FetchRequest{
			URL:         url,
			Selector:    bestSelector,
			Output:      mergedPath,
			MergeFormat: "mkv",
		})
		if err != nil {
			return Result{}, services.Wrap(services.ErrExternalTool, "acquire", "fetch best", "media download failed", err)
		}
		return Result{MediaPath: path}, nil
	}

	if selection.HasAudio() {
		path, err := a.fetcher.Fetch(ctx, ytdlp.FetchRequest{
			URL:         url,
			Selector:    selection.ID,
			Output:      mergedPath,
			RemuxFormat: "mkv",
		})
		if err != nil {
			return Result{}, services.Wrap(services.ErrExternalTool, "acquire", "fetch combined", "media download failed", err)
		}
		return Result{MediaPath: path}, nil
	}

	videoPath := filepath.Join(workDir, "video-only."+videoExt(selection.Ext))
	videoPath, err := a.fetcher.Fetch(ctx, ytdlp.FetchRequest{
		URL:      url,
		Selector: selection.ID,
		Output:   videoPath,
	})
	if err != nil {
		return Result{}, services.Wrap(services.ErrExternalTool, "acquire", "fetch video", "video stream download failed", err)
	}

	audioPath, err := a.ensureAudio(ctx, url, workDir)
	if err != nil {
		a.logger.Warn("audio acquisition failed, continuing without audio",
			logging.String(logging.FieldEventType, "acquisition_degraded"),
			logging.Error(err),
		)
		return Result{MediaPath: videoPath, Degraded: true}, nil
	}

	if err := a.merger.Remux(ctx, videoPath, audioPath, mergedPath, reencodeAudioFor(mergedPath, audioPath)); err != nil {
		a.logger.Warn("stream merge failed, continuing with video only",
			logging.String(logging.FieldEventType, "acquisition_degraded"),
			logging.Error(err),
		)
		return Result{MediaPath: videoPath, AudioPath: audioPath, Degraded: true}, nil
	}
	return Result{MediaPath: mergedPath, AudioPath: audioPath}, nil
}

// FetchBestAudio downloads a standalone audio asset into workDir, reusing a
// previous fetch when one is already present and non-empty.
func (a *Acquirer) FetchBestAudio(ctx context.Context, url, workDir string) (string, error) {
	return a.ensureAudio(ctx, url, workDir)
}

func (a *Acquirer) ensureAudio(ctx context.Context, url, workDir string) (string, error) {
	audioPath := filepath.Join(workDir, audioAssetName)
	if fileutil.NonEmptyFile(audioPath) {
		a.logger.Debug("reusing existing audio asset", logging.String("path", audioPath))
		return audioPath, nil
	}
	return a.fetcher.Fetch(ctx, ytdlp.FetchRequest{
		URL:      url,
		Selector: bestAudioSelector,
		Output:   audioPath,
	})
}

// videoExt keeps the stream's native container for the intermediate
// video-only asset so no transcode happens before the merge.
func videoExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return "mp4"
	}
	return ext
}

// reencodeAudioFor reports whether the audio stream must be re-encoded for
// the output container. Matroska accepts any codec by copy; only mp4-family
// outputs reject webm-family audio.
func reencodeAudioFor(output, audio string) bool {
	outExt := strings.ToLower(filepath.Ext(output))
	audioExt := strings.ToLower(filepath.Ext(audio))
	mp4Family := outExt == ".mp4" || outExt == ".m4v" || outExt == ".mov"
	webmFamily := audioExt == ".webm" || audioExt == ".opus" || audioExt == ".ogg"
	return mp4Family && webmFamily
}
