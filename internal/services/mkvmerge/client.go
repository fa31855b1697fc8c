package mkvmerge

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	langpkg "subweave/internal/language"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// Track describes one subtitle track to package into the container.
type Track struct {
	Path     string
	Language string // ISO 639-1
	Name     string
	Default  bool
	Forced   bool
}

// Client wraps the mkvmerge container packaging tool.
type Client struct {
	binary string
	run    commandRunner
}

// New constructs an mkvmerge client.
func New(binary string) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "mkvmerge"
	}
	return &Client{binary: binary, run: defaultRunner}
}

// WithCommandRunner injects a custom command runner (used in tests).
func (c *Client) WithCommandRunner(r func(ctx context.Context, name string, args ...string) error) {
	if c != nil && r != nil {
		c.run = r
	}
}

// Package writes output containing the media file's streams unmodified plus
// the given subtitle tracks.
func (c *Client) Package(ctx context.Context, output, media string, tracks []Track) error {
	if output == "" || media == "" {
		return errors.New("package: output and media paths required")
	}
	args := buildArgs(output, media, tracks)
	if err := c.run(ctx, c.binary, args...); err != nil {
		return fmt.Errorf("package: %w", err)
	}
	return nil
}

func buildArgs(output, media string, tracks []Track) []string {
	args := []string{"-o", output, media}
	for _, track := range tracks {
		// Flags apply to track 0 of the following input file.
		args = append(args, "--language", "0:"+langpkg.ToISO3(track.Language))
		if track.Name != "" {
			args = append(args, "--track-name", "0:"+track.Name)
		}
		if track.Default {
			args = append(args, "--default-track", "0:yes")
		} else {
			args = append(args, "--default-track", "0:no")
		}
		if track.Forced {
			args = append(args, "--forced-track", "0:yes")
		}
		args = append(args, track.Path)
	}
	return args
}

func defaultRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
