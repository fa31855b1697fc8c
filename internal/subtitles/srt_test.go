package subtitles

import (
	"strings"
	"testing"
)

func TestFormatTimestampTruncatesMilliseconds(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{75.4005, "00:01:15,400"},
		{0, "00:00:00,000"},
		{0.9999, "00:00:00,999"},
		{3661.5, "01:01:01,500"},
		{-1.2, "00:00:00,000"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("00:01:15,400")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if got != 75.4 {
		t.Fatalf("got %v", got)
	}
	if _, err := ParseTimestamp("1:15,400"); err == nil {
		t.Fatal("expected error for missing hours field")
	}
	// Period separator tolerated on input.
	if got, err := ParseTimestamp("00:00:02.500"); err != nil || got != 2.5 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestParseStrictRoundTrip(t *testing.T) {
	input := `1
00:00:01,000 --> 00:00:03,000
First cue

2
00:00:04,000 --> 00:00:06,000
Second cue
with two lines
`
	segments, err := ParseStrict([]byte(input))
	if err != nil {
		t.Fatalf("ParseStrict: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[1].Text != "Second cue\nwith two lines" {
		t.Fatalf("unexpected text %q", segments[1].Text)
	}

	rendered := Render(segments)
	again, err := ParseStrict(rendered)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(again) != len(segments) {
		t.Fatalf("segment count changed: %d vs %d", len(again), len(segments))
	}
	for i := range again {
		if again[i].Text != segments[i].Text {
			t.Fatalf("text changed in cue %d: %q vs %q", i+1, again[i].Text, segments[i].Text)
		}
	}
}

func TestParseStrictRejectsReversedTiming(t *testing.T) {
	input := `1
00:00:05,000 --> 00:00:03,000
Backwards
`
	if _, err := ParseStrict([]byte(input)); err == nil {
		t.Fatal("expected error for start after end")
	}
}

func TestParseStrictRejectsNonMonotonicStarts(t *testing.T) {
	input := `1
00:00:10,000 --> 00:00:11,000
Later

2
00:00:01,000 --> 00:00:02,000
Earlier
`
	if _, err := ParseStrict([]byte(input)); err == nil {
		t.Fatal("expected error for out-of-order cues")
	}
}

func TestParseStrictClampsOverlap(t *testing.T) {
	input := `1
00:00:01,000 --> 00:00:05,000
First

2
00:00:03,000 --> 00:00:06,000
Second
`
	segments, err := ParseStrict([]byte(input))
	if err != nil {
		t.Fatalf("ParseStrict: %v", err)
	}
	if segments[0].End != segments[1].Start {
		t.Fatalf("expected overlap clamp, got end=%v start=%v", segments[0].End, segments[1].Start)
	}
}

func TestRenderRenumbersFromOne(t *testing.T) {
	segments := []Segment{
		{Index: 5, Start: 1, End: 2, Text: "a"},
		{Index: 5, Start: 3, End: 4, Text: "b"},
		{Index: 9, Start: 5, End: 6, Text: "c"},
	}
	rendered := string(Render(segments))
	for _, want := range []string{"1\n00:00:01,000", "2\n00:00:03,000", "3\n00:00:05,000"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in %q", want, rendered)
		}
	}
	if strings.Contains(rendered, "5\n") || strings.Contains(rendered, "9\n") {
		t.Fatalf("input indices leaked into %q", rendered)
	}
}
