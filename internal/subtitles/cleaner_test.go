package subtitles

import (
	"strings"
	"testing"
)

func TestCleanRemovesAdvertisementCues(t *testing.T) {
	raw := `1
00:00:01,000 --> 00:00:03,000
www.OpenSubtitles.org

2
00:00:04,000 --> 00:00:06,000
Hello there!

3
00:00:07,000 --> 00:00:09,000
Subtitles by AwesomeSubs
`
	cleaned, removed := Clean([]byte(raw))
	if removed != 2 {
		t.Fatalf("expected 2 cues removed, got %d", removed)
	}
	output := strings.ToLower(string(cleaned))
	if strings.Contains(output, "opensubtitles") || strings.Contains(output, "subtitles by") {
		t.Fatalf("advertisement survived: %q", output)
	}
	if !strings.Contains(string(cleaned), "Hello there!") {
		t.Fatalf("dialogue removed: %q", cleaned)
	}
}

func TestCleanKeepsValidBlocks(t *testing.T) {
	raw := `1
00:00:01,000 --> 00:00:02,000
First line

2
00:00:03,000 --> 00:00:04,000
Second line
`
	cleaned, removed := Clean([]byte(raw))
	if removed != 0 {
		t.Fatalf("expected no cues removed, got %d", removed)
	}
	if strings.Count(string(cleaned), "\n\n") != 1 {
		t.Fatalf("expected cues separated by a single blank line, got %q", cleaned)
	}
}
