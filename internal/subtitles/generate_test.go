package subtitles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"subweave/internal/logging"
	"subweave/internal/services"
	"subweave/internal/services/whisper"
)

type fakeEngine struct {
	segments []whisper.Segment
	err      error
}

func (f *fakeEngine) Transcribe(context.Context, string, string) ([]whisper.Segment, error) {
	return f.segments, f.err
}

func TestGenerateWritesOrderedTrack(t *testing.T) {
	engine := &fakeEngine{segments: []whisper.Segment{
		{Start: 5, End: 8, Text: " later segment "},
		{Start: 1, End: 6, Text: "first segment"},
		{Start: 9, End: 10, Text: "   "},
	}}
	gen := NewGenerator(engine, logging.NewNop())

	dir := t.TempDir()
	path, err := gen.Generate(context.Background(), filepath.Join(dir, "audio.wav"), dir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	segments, err := ParseStrict(data)
	if err != nil {
		t.Fatalf("generated track does not validate: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 cues (blank dropped), got %d", len(segments))
	}
	if segments[0].Text != "first segment" || segments[1].Text != "later segment" {
		t.Fatalf("unexpected ordering: %+v", segments)
	}
	// The overlapping first cue is clamped to the second cue's start.
	if segments[0].End != segments[1].Start {
		t.Fatalf("expected overlap clamp, got end=%v start=%v", segments[0].End, segments[1].Start)
	}
}

func TestGenerateFailsOnEngineError(t *testing.T) {
	gen := NewGenerator(&fakeEngine{err: errors.New("model load failed")}, logging.NewNop())
	_, err := gen.Generate(context.Background(), "audio.wav", t.TempDir())
	if !errors.Is(err, services.ErrTranscriptionFailed) {
		t.Fatalf("expected ErrTranscriptionFailed, got %v", err)
	}
}

func TestGenerateFailsOnEmptyTranscript(t *testing.T) {
	engine := &fakeEngine{segments: []whisper.Segment{{Start: 0, End: 1, Text: "  "}}}
	gen := NewGenerator(engine, logging.NewNop())
	_, err := gen.Generate(context.Background(), "audio.wav", t.TempDir())
	if !errors.Is(err, services.ErrTranscriptionFailed) {
		t.Fatalf("expected ErrTranscriptionFailed, got %v", err)
	}
}
