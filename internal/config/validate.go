package config

import (
	"errors"
	"fmt"
	"strings"

	"subweave/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.CookiesPath == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/subweave/config.toml"
		}
		return fmt.Errorf("source.cookies_path is required; edit %s (create with 'subweave config init')", defaultPath)
	}
	if language.ToISO2(c.Source.SubtitleLanguage) == "" {
		return fmt.Errorf("source.subtitle_language: unrecognized language %q", c.Source.SubtitleLanguage)
	}
	if c.Source.MinHeight < 0 {
		return errors.New("source.min_height must not be negative")
	}
	return nil
}

func (c *Config) validateTools() error {
	tools := map[string]string{
		"tools.ytdlp":    c.Tools.YtDlp,
		"tools.ffmpeg":   c.Tools.FFmpeg,
		"tools.ffprobe":  c.Tools.FFprobe,
		"tools.mkvmerge": c.Tools.MkvMerge,
		"tools.whisper":  c.Tools.Whisper,
	}
	for key, value := range tools {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}
	return nil
}

func (c *Config) validateWhisper() error {
	if strings.TrimSpace(c.Whisper.Model) == "" {
		return errors.New("whisper.model must be set")
	}
	if strings.TrimSpace(c.Whisper.FallbackModel) == "" {
		return errors.New("whisper.fallback_model must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
