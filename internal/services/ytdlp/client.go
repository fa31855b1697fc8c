package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"subweave/internal/language"
	"subweave/internal/services"
)

type commandRunner func(ctx context.Context, name string, args ...string) (string, error)

// Client wraps the yt-dlp command line tool. Every call attaches the session
// cookie file; constructing a client without one fails because the remote
// source rejects anonymous requests.
type Client struct {
	binary  string
	cookies string
	run     commandRunner
}

// New constructs a yt-dlp client. cookiesPath is the opaque session
// credential and is required.
func New(binary, cookiesPath string) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "yt-dlp"
	}
	cookiesPath = strings.TrimSpace(cookiesPath)
	if cookiesPath == "" {
		return nil, services.Wrap(services.ErrConfiguration, "source", "new client", "session cookie file is required", nil)
	}
	return &Client{binary: binary, cookies: cookiesPath, run: defaultRunner}, nil
}

// WithCommandRunner injects a custom command runner (used in tests).
func (c *Client) WithCommandRunner(r func(ctx context.Context, name string, args ...string) (string, error)) {
	if c != nil && r != nil {
		c.run = r
	}
}

func (c *Client) baseArgs() []string {
	return []string{"--cookies", c.cookies, "--no-playlist", "--no-progress"}
}

// ListFormats returns the raw textual format catalog for a URL. The output
// is an untyped wire format; catalog.Resolve parses it once at the boundary.
func (c *Client) ListFormats(ctx context.Context, url string) (string, error) {
	args := append(c.baseArgs(), "--list-formats", url)
	output, err := c.run(ctx, c.binary, args...)
	if err != nil {
		return "", fmt.Errorf("list formats: %w", err)
	}
	return output, nil
}

// FetchTitle returns the remote title for a URL without downloading media.
func (c *Client) FetchTitle(ctx context.Context, url string) (string, error) {
	args := append(c.baseArgs(), "--skip-download", "--print", "%(title)s", url)
	output, err := c.run(ctx, c.binary, args...)
	if err != nil {
		return "", fmt.Errorf("fetch title: %w", err)
	}
	return strings.TrimSpace(output), nil
}

// FetchRequest describes one media download.
type FetchRequest struct {
	URL string
	// Selector is a yt-dlp format selector (stream id or policy expression).
	Selector string
	// Output is the exact destination path the caller expects.
	Output string
	// MergeFormat forces the container used when yt-dlp merges separate
	// video and audio streams.
	MergeFormat string
	// RemuxFormat remuxes a single downloaded stream into the container.
	RemuxFormat string
}

// Fetch downloads one media asset to the requested path. The destination
// path is returned once the file exists; a missing file is an error even if
// the tool exited zero.
func (c *Client) Fetch(ctx context.Context, req FetchRequest) (string, error) {
	if strings.TrimSpace(req.URL) == "" {
		return "", errors.New("fetch: url is required")
	}
	if strings.TrimSpace(req.Output) == "" {
		return "", errors.New("fetch: output path is required")
	}
	args := c.baseArgs()
	if req.Selector != "" {
		args = append(args, "--format", req.Selector)
	}
	if req.MergeFormat != "" {
		args = append(args, "--merge-output-format", req.MergeFormat)
	}
	if req.RemuxFormat != "" {
		args = append(args, "--remux-video", req.RemuxFormat)
	}
	args = append(args, "--output", req.Output, req.URL)

	if _, err := c.run(ctx, c.binary, args...); err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	if _, err := os.Stat(req.Output); err != nil {
		return "", fmt.Errorf("fetch: destination not produced: %w", err)
	}
	return req.Output, nil
}

// FetchSubtitles requests manually authored subtitle tracks for the given
// language scope without downloading media. It returns the subtitle files
// yt-dlp wrote under destDir, sorted by name. An empty slice is not an
// error; the caller decides whether to fall back to transcription.
func (c *Client) FetchSubtitles(ctx context.Context, url, lang, destDir string) ([]string, error) {
	base := language.ToISO2(lang)
	if base == "" {
		base = "en"
	}
	outputTemplate := filepath.Join(destDir, "manual.%(ext)s")
	args := append(c.baseArgs(),
		"--skip-download",
		"--write-subs",
		"--sub-langs", base+".*,"+base,
		"--output", outputTemplate,
		url,
	)
	if _, err := c.run(ctx, c.binary, args...); err != nil {
		return nil, fmt.Errorf("fetch subtitles: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(destDir, "manual.*"))
	if err != nil {
		return nil, fmt.Errorf("fetch subtitles: discover files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

func defaultRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return string(output), nil
}
