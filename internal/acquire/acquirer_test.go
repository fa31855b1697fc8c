package acquire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subweave/internal/catalog"
	"subweave/internal/logging"
	"subweave/internal/services"
	"subweave/internal/services/ytdlp"
)

type fakeFetcher struct {
	requests []ytdlp.FetchRequest
	failFor  string // selector substring that fails
}

func (f *fakeFetcher) Fetch(_ context.Context, req ytdlp.FetchRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.failFor != "" && strings.Contains(req.Selector, f.failFor) {
		return "", errors.New("fetch refused")
	}
	if err := os.WriteFile(req.Output, []byte("media"), 0o644); err != nil {
		return "", err
	}
	return req.Output, nil
}

type fakeMerger struct {
	calls    int
	err      error
	reencode bool
}

func (f *fakeMerger) Remux(_ context.Context, _, _, output string, reencodeAudio bool) error {
	f.calls++
	f.reencode = reencodeAudio
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(output, []byte("merged"), 0o644)
}

func TestAcquireDefaultsToBestPolicy(t *testing.T) {
	fetcher := &fakeFetcher{}
	acq := New(fetcher, &fakeMerger{}, logging.NewNop())

	result, err := acq.Acquire(context.Background(), "https://example.com/v", nil, t.TempDir())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if len(fetcher.requests) != 1 {
		t.Fatalf("expected one fetch, got %d", len(fetcher.requests))
	}
	req := fetcher.requests[0]
	if req.Selector != "bestvideo+bestaudio/best" || req.MergeFormat != "mkv" {
		t.Fatalf("unexpected request %+v", req)
	}
	if filepath.Base(result.MediaPath) != "video.mkv" || result.Degraded {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestAcquireCombinedStreamUsesExactID(t *testing.T) {
	fetcher := &fakeFetcher{}
	merger := &fakeMerger{}
	acq := New(fetcher, merger, logging.NewNop())

	selection := &catalog.StreamDescriptor{Index: 2, ID: "22", Ext: "mp4", Height: 720, Class: catalog.Combined}
	result, err := acq.Acquire(context.Background(), "https://example.com/v", selection, t.TempDir())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if len(fetcher.requests) != 1 {
		t.Fatalf("expected one fetch, got %d", len(fetcher.requests))
	}
	req := fetcher.requests[0]
	if req.Selector != "22" || req.RemuxFormat != "mkv" {
		t.Fatalf("unexpected request %+v", req)
	}
	if merger.calls != 0 {
		t.Fatal("combined stream must not trigger a merge")
	}
	if result.Degraded {
		t.Fatalf("unexpected degradation %+v", result)
	}
}

func TestAcquireVideoOnlyFetchesAudioAndMerges(t *testing.T) {
	fetcher := &fakeFetcher{}
	merger := &fakeMerger{}
	acq := New(fetcher, merger, logging.NewNop())

	dir := t.TempDir()
	selection := &catalog.StreamDescriptor{Index: 1, ID: "303", Ext: "webm", Height: 1080, Class: catalog.VideoOnly}
	result, err := acq.Acquire(context.Background(), "https://example.com/v", selection, dir)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if len(fetcher.requests) != 2 {
		t.Fatalf("expected video and audio fetches, got %d", len(fetcher.requests))
	}
	if fetcher.requests[0].Selector != "303" {
		t.Fatalf("unexpected video request %+v", fetcher.requests[0])
	}
	if fetcher.requests[1].Selector != "bestaudio/best" {
		t.Fatalf("unexpected audio request %+v", fetcher.requests[1])
	}
	if merger.calls != 1 {
		t.Fatalf("expected one merge, got %d", merger.calls)
	}
	if merger.reencode {
		t.Fatal("matroska output must not force an audio re-encode")
	}
	if filepath.Base(result.MediaPath) != "video.mkv" || result.AudioPath == "" || result.Degraded {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestAcquireVideoOnlyReusesExistingAudio(t *testing.T) {
	fetcher := &fakeFetcher{}
	acq := New(fetcher, &fakeMerger{}, logging.NewNop())

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "audio.m4a"), []byte("audio"), 0o644); err != nil {
		t.Fatalf("seed audio: %v", err)
	}
	selection := &catalog.StreamDescriptor{Index: 1, ID: "303", Ext: "webm", Height: 1080, Class: catalog.VideoOnly}
	if _, err := acq.Acquire(context.Background(), "https://example.com/v", selection, dir); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if len(fetcher.requests) != 1 {
		t.Fatalf("expected only the video fetch, got %d requests", len(fetcher.requests))
	}
}

func TestAcquireDegradesWhenAudioFails(t *testing.T) {
	fetcher := &fakeFetcher{failFor: "bestaudio"}
	merger := &fakeMerger{}
	acq := New(fetcher, merger, logging.NewNop())

	selection := &catalog.StreamDescriptor{Index: 1, ID: "303", Ext: "webm", Height: 1080, Class: catalog.VideoOnly}
	result, err := acq.Acquire(context.Background(), "https://example.com/v", selection, t.TempDir())
	if err != nil {
		t.Fatalf("audio failure must not fail the acquisition: %v", err)
	}
	if !result.Degraded {
		t.Fatalf("expected degraded result, got %+v", result)
	}
	if !strings.Contains(result.MediaPath, "video-only") {
		t.Fatalf("expected the video-only asset, got %q", result.MediaPath)
	}
	if merger.calls != 0 {
		t.Fatal("merge must not run without audio")
	}
}

func TestAcquireDegradesWhenMergeFails(t *testing.T) {
	fetcher := &fakeFetcher{}
	merger := &fakeMerger{err: errors.New("container rejected")}
	acq := New(fetcher, merger, logging.NewNop())

	selection := &catalog.StreamDescriptor{Index: 1, ID: "303", Ext: "webm", Height: 1080, Class: catalog.VideoOnly}
	result, err := acq.Acquire(context.Background(), "https://example.com/v", selection, t.TempDir())
	if err != nil {
		t.Fatalf("merge failure must not fail the acquisition: %v", err)
	}
	if !result.Degraded || result.AudioPath == "" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestAcquireFailsWhenVideoFetchFails(t *testing.T) {
	fetcher := &fakeFetcher{failFor: "303"}
	acq := New(fetcher, &fakeMerger{}, logging.NewNop())

	selection := &catalog.StreamDescriptor{Index: 1, ID: "303", Ext: "webm", Height: 1080, Class: catalog.VideoOnly}
	_, err := acq.Acquire(context.Background(), "https://example.com/v", selection, t.TempDir())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}
