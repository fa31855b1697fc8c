package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarkerAndDetail(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrMuxFailed, "mux", "mkvmerge", "destination not produced", cause)
	if !errors.Is(err, ErrMuxFailed) {
		t.Fatalf("expected ErrMuxFailed marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"mux", "mkvmerge", "destination not produced"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in message %q", want, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrNoUsableFormats, "catalog", "resolve", "catalog empty after filtering", nil)
	if !errors.Is(err, ErrNoUsableFormats) {
		t.Fatalf("expected ErrNoUsableFormats marker, got %v", err)
	}
}

func TestFatalClassification(t *testing.T) {
	if Fatal(nil) {
		t.Fatal("nil error must not be fatal")
	}
	branch := Wrap(ErrNoManualSubtitles, "subtitles", "select", "no manual tracks", nil)
	if Fatal(branch) {
		t.Fatal("ErrNoManualSubtitles is a branch signal, not fatal")
	}
	fatal := Wrap(ErrMissingAudioAsset, "transcribe", "precondition", "no audio asset", nil)
	if !Fatal(fatal) {
		t.Fatal("ErrMissingAudioAsset must be fatal")
	}
}
