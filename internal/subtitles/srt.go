package subtitles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Segment is one timed caption. Start and End are seconds from stream
// start. After normalization, Index is contiguous from 1.
type Segment struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// timestampPattern matches an SRT cue timing line, tolerating period
// decimal separators and trailing cue settings.
var timestampPattern = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}[,.]\d{1,3}\s*-->\s*\d{1,2}:\d{2}:\d{2}[,.]\d{1,3}`)

// FormatTimestamp renders seconds using the SRT convention HH:MM:SS,mmm.
// The fractional second is truncated to milliseconds, not rounded.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds * 1000)
	hours := total / 3600000
	minutes := (total % 3600000) / 60000
	secs := (total % 60000) / 1000
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp converts an SRT timestamp to seconds. Period decimal
// separators are normalized to the comma the format specifies.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// ParseStrict parses SRT content into an ordered track, enforcing the track
// invariants: every segment's start <= end and starts are monotonically
// non-decreasing. Overlapping neighbors are repaired by clamping the earlier
// end to the later start.
func ParseStrict(data []byte) ([]Segment, error) {
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := splitBlocks(normalized)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no cue blocks")
	}

	segments := make([]Segment, 0, len(blocks))
	for i, block := range blocks {
		segment, err := parseBlock(block)
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", i+1, err)
		}
		segments = append(segments, segment)
	}

	for i := 1; i < len(segments); i++ {
		if segments[i].Start < segments[i-1].Start {
			return nil, fmt.Errorf("cue %d: start %s precedes previous cue", i+1, FormatTimestamp(segments[i].Start))
		}
		if segments[i-1].End > segments[i].Start {
			segments[i-1].End = segments[i].Start
		}
	}

	for i := range segments {
		segments[i].Index = i + 1
	}
	return segments, nil
}

func parseBlock(block string) (Segment, error) {
	lines := strings.Split(block, "\n")
	pos := 0
	if pos < len(lines) && isNumeric(lines[pos]) {
		pos++
	}
	if pos >= len(lines) || !timestampPattern.MatchString(strings.TrimSpace(lines[pos])) {
		return Segment{}, fmt.Errorf("missing timing line")
	}
	timing := timestampPattern.FindString(strings.TrimSpace(lines[pos]))
	pos++

	parts := strings.Split(timing, "-->")
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Segment{}, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Segment{}, err
	}
	if start > end {
		return Segment{}, fmt.Errorf("start %s after end %s", FormatTimestamp(start), FormatTimestamp(end))
	}

	text := make([]string, 0, len(lines)-pos)
	for _, line := range lines[pos:] {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			text = append(text, trimmed)
		}
	}
	return Segment{Start: start, End: end, Text: strings.Join(text, "\n")}, nil
}

// Render serializes a track to SRT, renumbering cues from 1 regardless of
// the indices the segments carry.
func Render(segments []Segment) []byte {
	var b strings.Builder
	for i, segment := range segments {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(FormatTimestamp(segment.Start))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(segment.End))
		b.WriteByte('\n')
		if segment.Text != "" {
			b.WriteString(segment.Text)
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}

func splitBlocks(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	raw := strings.Split(trimmed, "\n\n")
	blocks := make([]string, 0, len(raw))
	for _, block := range raw {
		if strings.TrimSpace(block) != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
