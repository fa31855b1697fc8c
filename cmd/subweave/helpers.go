package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"subweave/internal/config"
	"subweave/internal/logging"
)

// newLogger builds the run logger: pretty console output on a terminal,
// JSON when stderr is piped, and a copy of everything in the log directory.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	format := cfg.Logging.Format
	if format == "console" && !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		format = "json"
	}

	fileWriter, err := logging.NewFileWriter(cfg.Paths.LogDir, "subweave.log")
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: format,
		Writer: io.MultiWriter(os.Stderr, fileWriter),
	})
	if err != nil {
		_ = fileWriter.Close()
		return nil, nil, err
	}
	return logger, func() { _ = fileWriter.Close() }, nil
}

func resolutionLabel(width, height int) string {
	if width > 0 {
		return fmt.Sprintf("%dx%d", width, height)
	}
	return fmt.Sprintf("%dp", height)
}
