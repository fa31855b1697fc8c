package ffmpeg

import (
	"context"
	"strings"
	"testing"
)

func capture(args *[]string) func(ctx context.Context, name string, cmdArgs ...string) error {
	return func(ctx context.Context, name string, cmdArgs ...string) error {
		*args = cmdArgs
		return nil
	}
}

func TestRemuxCopiesVideoAlways(t *testing.T) {
	var got []string
	client := New("ffmpeg")
	client.WithCommandRunner(capture(&got))
	if err := client.Remux(context.Background(), "v.mkv", "a.m4a", "out.mkv", false); err != nil {
		t.Fatalf("Remux: %v", err)
	}
	joined := strings.Join(got, " ")
	if !strings.Contains(joined, "-c:v copy") {
		t.Fatalf("expected video stream copy in %q", joined)
	}
	if !strings.Contains(joined, "-c:a copy") {
		t.Fatalf("expected audio stream copy in %q", joined)
	}
}

func TestRemuxReencodesAudioOnRequest(t *testing.T) {
	var got []string
	client := New("ffmpeg")
	client.WithCommandRunner(capture(&got))
	if err := client.Remux(context.Background(), "v.mkv", "a.webm", "out.mkv", true); err != nil {
		t.Fatalf("Remux: %v", err)
	}
	if !strings.Contains(strings.Join(got, " "), "-c:a aac") {
		t.Fatalf("expected aac re-encode in %v", got)
	}
}

func TestExtractAudioProducesWhisperInput(t *testing.T) {
	var got []string
	client := New("ffmpeg")
	client.WithCommandRunner(capture(&got))
	if err := client.ExtractAudio(context.Background(), "in.mkv", "out.wav"); err != nil {
		t.Fatalf("ExtractAudio: %v", err)
	}
	joined := strings.Join(got, " ")
	for _, want := range []string{"-ac 1", "-ar 16000", "pcm_s16le"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in %q", want, joined)
		}
	}
}

func TestConvertRequiresPaths(t *testing.T) {
	client := New("")
	if err := client.Convert(context.Background(), "", "out.srt"); err == nil {
		t.Fatal("expected error for missing input")
	}
}
