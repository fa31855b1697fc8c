package config

const (
	defaultStagingDir       = "~/.local/share/subweave/staging"
	defaultOutputDir        = "~/videos"
	defaultLogDir           = "~/.local/share/subweave/logs"
	defaultSubtitleLanguage = "en"
	defaultMinHeight        = 1080
	defaultWhisperModel     = "medium"
	defaultWhisperFallback  = "small"
	defaultWhisperModelDir  = "~/.cache/whisper"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Source: Source{
			SubtitleLanguage: defaultSubtitleLanguage,
			MinHeight:        defaultMinHeight,
		},
		Tools: Tools{
			YtDlp:    "yt-dlp",
			FFmpeg:   "ffmpeg",
			FFprobe:  "ffprobe",
			MkvMerge: "mkvmerge",
			Whisper:  "whisper",
		},
		Whisper: Whisper{
			Model:         defaultWhisperModel,
			FallbackModel: defaultWhisperFallback,
			ModelDir:      defaultWhisperModelDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
