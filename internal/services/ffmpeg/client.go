package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// Client wraps the ffmpeg command line tool for format conversion, stream
// merging, and audio extraction.
type Client struct {
	binary string
	run    commandRunner
}

// New constructs an ffmpeg client.
func New(binary string) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Client{binary: binary, run: defaultRunner}
}

// WithCommandRunner injects a custom command runner (used in tests).
func (c *Client) WithCommandRunner(r func(ctx context.Context, name string, args ...string) error) {
	if c != nil && r != nil {
		c.run = r
	}
}

// Convert transcodes one file into another format, inferred from the output
// extension. Used for VTT to SRT subtitle conversion.
func (c *Client) Convert(ctx context.Context, input, output string) error {
	if input == "" || output == "" {
		return errors.New("convert: input and output paths required")
	}
	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", input, output}
	if err := c.run(ctx, c.binary, args...); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	return nil
}

// Remux merges a video stream and an audio stream into output. Video is
// always stream-copied; audio is stream-copied unless reencodeAudio is set,
// in which case it is re-encoded to AAC for container compatibility.
func (c *Client) Remux(ctx context.Context, video, audio, output string, reencodeAudio bool) error {
	if video == "" || audio == "" || output == "" {
		return errors.New("remux: video, audio, and output paths required")
	}
	audioCodec := "copy"
	if reencodeAudio {
		audioCodec = "aac"
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", video,
		"-i", audio,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", audioCodec,
		output,
	}
	if err := c.run(ctx, c.binary, args...); err != nil {
		return fmt.Errorf("remux: %w", err)
	}
	return nil
}

// ExtractAudio writes the first audio stream of source as a mono 16kHz WAV
// suitable for speech-to-text.
func (c *Client) ExtractAudio(ctx context.Context, source, dest string) error {
	if source == "" || dest == "" {
		return errors.New("extract audio: source and dest paths required")
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	if err := c.run(ctx, c.binary, args...); err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	return nil
}

func defaultRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
