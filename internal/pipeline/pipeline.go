package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	langtag "golang.org/x/text/language"

	"subweave/internal/acquire"
	"subweave/internal/catalog"
	"subweave/internal/config"
	"subweave/internal/fileutil"
	"subweave/internal/logging"
	"subweave/internal/mux"
	"subweave/internal/services"
	"subweave/internal/services/ffmpeg"
	"subweave/internal/services/ffprobe"
	"subweave/internal/services/mkvmerge"
	"subweave/internal/services/whisper"
	"subweave/internal/services/ytdlp"
	"subweave/internal/subtitles"
)

// Source answers metadata queries about a remote video URL.
type Source interface {
	FetchTitle(ctx context.Context, url string) (string, error)
	ListFormats(ctx context.Context, url string) (string, error)
}

// MediaAcquirer downloads the media assets for a run.
type MediaAcquirer interface {
	Acquire(ctx context.Context, url string, selection *catalog.StreamDescriptor, workDir string) (acquire.Result, error)
	FetchBestAudio(ctx context.Context, url, workDir string) (string, error)
}

// ManualSelector adopts a manually authored subtitle track when one exists.
type ManualSelector interface {
	Select(ctx context.Context, url, workDir string) (string, error)
}

// TrackGenerator produces a subtitle track from audio via transcription.
type TrackGenerator interface {
	Generate(ctx context.Context, audioPath, workDir string) (string, error)
}

// AudioExtractor prepares a speech-to-text friendly audio file.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, source, dest string) error
}

// FinalMuxer publishes the finished deliverable.
type FinalMuxer interface {
	Mux(ctx context.Context, req mux.Request) (string, error)
}

// Pipeline orchestrates one run end to end: catalog resolution, media
// acquisition, subtitle selection or transcription, normalization, and the
// final mux. All scratch state lives in a per-run staging directory that is
// removed when the run ends, successful or not.
type Pipeline struct {
	cfg       *config.Config
	source    Source
	acquirer  MediaAcquirer
	selector  ManualSelector
	generator TrackGenerator
	extractor AudioExtractor
	muxer     FinalMuxer
	logger    *slog.Logger
}

// New wires a pipeline from configuration using the real external tools.
func New(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	source, err := ytdlp.New(cfg.Tools.YtDlp, cfg.Source.CookiesPath)
	if err != nil {
		return nil, err
	}
	ffmpegClient := ffmpeg.New(cfg.Tools.FFmpeg)
	engine := whisper.NewService(whisper.Config{
		Model:         cfg.Whisper.Model,
		FallbackModel: cfg.Whisper.FallbackModel,
		ModelDir:      cfg.Whisper.ModelDir,
		Language:      cfg.Source.SubtitleLanguage,
	}, cfg.Tools.Whisper)

	inspect := func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, cfg.Tools.FFprobe, path)
	}

	return NewWithDependencies(
		cfg,
		source,
		acquire.New(source, ffmpegClient, logger),
		subtitles.NewSelector(source, ffmpegClient, cfg.Source.SubtitleLanguage, logger),
		subtitles.NewGenerator(engine, logger),
		ffmpegClient,
		mux.New(mkvmerge.New(cfg.Tools.MkvMerge), inspect, logger),
		logger,
	), nil
}

// NewWithDependencies wires a pipeline from explicit collaborators.
func NewWithDependencies(
	cfg *config.Config,
	source Source,
	acquirer MediaAcquirer,
	selector ManualSelector,
	generator TrackGenerator,
	extractor AudioExtractor,
	muxer FinalMuxer,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		source:    source,
		acquirer:  acquirer,
		selector:  selector,
		generator: generator,
		extractor: extractor,
		muxer:     muxer,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Formats resolves the selectable stream catalog for a URL.
func (p *Pipeline) Formats(ctx context.Context, videoURL string) ([]catalog.StreamDescriptor, error) {
	raw, err := p.source.ListFormats(ctx, videoURL)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "catalog", "list formats", "format listing failed", err)
	}
	return catalog.Resolve(raw, p.cfg.Source.MinHeight)
}

// Run executes one full run for a URL. formatIndex selects a stream by its
// 1-based catalog position; zero or negative defers to the source's best
// policy. The final container path is returned.
func (p *Pipeline) Run(ctx context.Context, videoURL string, formatIndex int) (string, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger)

	lock := flock.New(filepath.Join(p.cfg.Paths.StagingDir, "subweave.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("acquire staging lock: %w", err)
	}
	if !locked {
		return "", services.Wrap(services.ErrValidation, "run", "lock", "another run is already active", nil)
	}
	defer func() { _ = lock.Unlock() }()

	pctx := &Context{
		RunID:   runID,
		URL:     videoURL,
		WorkDir: filepath.Join(p.cfg.Paths.StagingDir, "run-"+runID[:8]),
	}
	if err := os.MkdirAll(pctx.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	// Scratch state never outlives the run, whatever the outcome.
	defer os.RemoveAll(pctx.WorkDir)

	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_started"),
		logging.String("url", videoURL),
	)

	if err := p.resolveTitle(ctx, pctx); err != nil {
		return "", err
	}
	if err := p.selectStream(ctx, pctx, formatIndex); err != nil {
		return "", err
	}
	if err := p.acquireMedia(ctx, pctx); err != nil {
		return "", err
	}
	if err := p.resolveSubtitles(ctx, pctx); err != nil {
		return "", err
	}
	if err := p.publish(ctx, pctx); err != nil {
		return "", err
	}

	logger.Info("run complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("output", pctx.FinalPath),
	)
	return pctx.FinalPath, nil
}

func (p *Pipeline) resolveTitle(ctx context.Context, pctx *Context) error {
	ctx = logging.WithStage(ctx, "title")
	logger := logging.WithContext(ctx, p.logger)

	title, err := p.source.FetchTitle(ctx, pctx.URL)
	if err != nil || strings.TrimSpace(title) == "" {
		title = deriveTitle(pctx.URL)
		logger.Warn("remote title unavailable, derived one from the URL",
			logging.String("title", title),
			logging.Error(err),
		)
	}
	pctx.Title = strings.TrimSpace(title)
	return nil
}

func (p *Pipeline) selectStream(ctx context.Context, pctx *Context, formatIndex int) error {
	ctx = logging.WithStage(ctx, "catalog")
	logger := logging.WithContext(ctx, p.logger)

	if formatIndex <= 0 {
		logger.Debug("no stream selection, deferring to best policy")
		return nil
	}
	descriptors, err := p.Formats(ctx, pctx.URL)
	if err != nil {
		return err
	}
	for i := range descriptors {
		if descriptors[i].Index == formatIndex {
			pctx.Selection = &descriptors[i]
			logger.Info("stream selected",
				logging.String("id", descriptors[i].ID),
				logging.Int("height", descriptors[i].Height),
			)
			return nil
		}
	}
	logger.Warn("requested format index not in catalog, using best policy",
		logging.Int("requested", formatIndex),
		logging.Int("available", len(descriptors)),
	)
	return nil
}

func (p *Pipeline) acquireMedia(ctx context.Context, pctx *Context) error {
	ctx = logging.WithStage(ctx, "acquire")

	result, err := p.acquirer.Acquire(ctx, pctx.URL, pctx.Selection, pctx.WorkDir)
	if err != nil {
		return err
	}
	if !fileutil.NonEmptyFile(result.MediaPath) {
		return services.Wrap(
			services.ErrMissingVideoAsset,
			"acquire",
			"verify",
			"acquisition finished without a usable video asset",
			nil,
		)
	}
	pctx.Media = result
	return nil
}

// resolveSubtitles adopts a manual track when one exists, otherwise falls
// back to transcription. A manual track that fails normalization is
// abandoned in favor of transcription rather than failing the run.
func (p *Pipeline) resolveSubtitles(ctx context.Context, pctx *Context) error {
	ctx = logging.WithStage(ctx, "subtitles")
	logger := logging.WithContext(ctx, p.logger)

	manual, err := p.selector.Select(ctx, pctx.URL, pctx.WorkDir)
	if err == nil {
		path, manualErr := p.finishManualTrack(manual, logger)
		if manualErr == nil {
			pctx.SubtitlePath = path
			return nil
		}
		logger.Warn("manual subtitle track unusable, falling back to transcription",
			logging.Error(manualErr),
		)
	} else if !errors.Is(err, services.ErrNoManualSubtitles) {
		return err
	}

	generated, err := p.transcribe(ctx, pctx)
	if err != nil {
		if pctx.Media.Degraded && errors.Is(err, services.ErrMissingAudioAsset) {
			logger.Warn("no audio available for transcription, publishing without subtitles",
				logging.String(logging.FieldEventType, "run_degraded"),
			)
			return nil
		}
		return err
	}
	pctx.SubtitlePath = generated
	return nil
}

// finishManualTrack strips advertisement cues and normalizes the track in
// place.
func (p *Pipeline) finishManualTrack(path string, logger *slog.Logger) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read manual track: %w", err)
	}
	cleaned, removed := subtitles.Clean(raw)
	if removed > 0 {
		logger.Info("removed advertisement cues from manual track",
			logging.Int("removed", removed),
		)
		if err := os.WriteFile(path, cleaned, 0o644); err != nil {
			return "", fmt.Errorf("write cleaned track: %w", err)
		}
	}
	if err := subtitles.NormalizeFile(path); err != nil {
		return "", err
	}
	return path, nil
}

func (p *Pipeline) transcribe(ctx context.Context, pctx *Context) (string, error) {
	audioSrc := pctx.Media.AudioPath
	if audioSrc == "" {
		if pctx.Media.Degraded {
			fetched, err := p.acquirer.FetchBestAudio(ctx, pctx.URL, pctx.WorkDir)
			if err != nil {
				return "", services.Wrap(services.ErrMissingAudioAsset, "subtitles", "fetch audio", "no audio asset for transcription", err)
			}
			audioSrc = fetched
		} else {
			audioSrc = pctx.Media.MediaPath
		}
	}

	wavPath := filepath.Join(pctx.WorkDir, "audio.wav")
	if err := p.extractor.ExtractAudio(ctx, audioSrc, wavPath); err != nil {
		return "", services.Wrap(services.ErrMissingAudioAsset, "subtitles", "extract audio", "audio extraction failed", err)
	}

	generated, err := p.generator.Generate(ctx, wavPath, pctx.WorkDir)
	if err != nil {
		return "", err
	}
	if err := subtitles.NormalizeFile(generated); err != nil {
		return "", err
	}
	return generated, nil
}

func (p *Pipeline) publish(ctx context.Context, pctx *Context) error {
	ctx = logging.WithStage(ctx, "mux")

	final, err := p.muxer.Mux(ctx, mux.Request{
		MediaPath:    pctx.Media.MediaPath,
		SubtitlePath: pctx.SubtitlePath,
		Title:        pctx.Title,
		Language:     p.cfg.Source.SubtitleLanguage,
		OutputDir:    p.cfg.Paths.OutputDir,
	})
	if err != nil {
		return err
	}
	pctx.FinalPath = final
	return nil
}

var titleSeparators = strings.NewReplacer("-", " ", "_", " ", "+", " ", ".", " ")

// deriveTitle builds a presentable title from the URL when the source does
// not provide one.
func deriveTitle(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "Video"
	}
	segment := path.Base(parsed.Path)
	if segment == "" || segment == "/" || segment == "." {
		segment = parsed.Hostname()
	}
	segment = titleSeparators.Replace(segment)
	title := strings.TrimSpace(cases.Title(langtag.English).String(segment))
	if title == "" {
		return "Video"
	}
	return title
}
