package mkvmerge

import (
	"context"
	"strings"
	"testing"
)

func TestPackageBuildsTrackFlags(t *testing.T) {
	var got []string
	client := New("mkvmerge")
	client.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		got = args
		return nil
	})
	err := client.Package(context.Background(), "out.mkv", "in.mkv", []Track{
		{Path: "subs.srt", Language: "en", Name: "English", Default: true, Forced: true},
	})
	if err != nil {
		t.Fatalf("Package: %v", err)
	}
	joined := strings.Join(got, " ")
	for _, want := range []string{
		"-o out.mkv",
		"--language 0:eng",
		"--track-name 0:English",
		"--default-track 0:yes",
		"--forced-track 0:yes",
		"subs.srt",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in %q", want, joined)
		}
	}
	// Media file must precede subtitle inputs so its streams stay first.
	if !strings.HasPrefix(joined, "-o out.mkv in.mkv") {
		t.Fatalf("expected media before tracks in %q", joined)
	}
}

func TestPackageRequiresPaths(t *testing.T) {
	client := New("")
	if err := client.Package(context.Background(), "", "in.mkv", nil); err == nil {
		t.Fatal("expected error for missing output")
	}
}
