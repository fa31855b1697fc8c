package subtitles

import (
	"regexp"
	"strings"
)

// adPatterns match cues that carry uploader or subtitle-site advertising
// rather than dialogue. Applied only to manually authored tracks.
var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
}

// Clean removes advertisement cues from SRT content and reports how many
// were dropped.
func Clean(raw []byte) ([]byte, int) {
	normalized := strings.ReplaceAll(string(raw), "\r\n", "\n")
	blocks := splitBlocks(normalized)
	kept := make([]string, 0, len(blocks))
	removed := 0
	for _, block := range blocks {
		if blockIsAdvertisement(block) {
			removed++
			continue
		}
		kept = append(kept, strings.TrimRight(block, "\n"))
	}
	output := strings.Join(kept, "\n\n")
	if !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	return []byte(output), removed
}

func blockIsAdvertisement(block string) bool {
	text := blockTextLines(block)
	if len(text) == 0 {
		return false
	}
	payload := strings.TrimSpace(strings.ToLower(strings.Join(text, " ")))
	if payload == "" {
		return false
	}
	for _, pattern := range adPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}

// blockTextLines returns a cue block's caption lines, skipping the optional
// index line and the timing line.
func blockTextLines(block string) []string {
	lines := strings.Split(block, "\n")
	start := 0
	if start < len(lines) && isNumeric(lines[start]) {
		start++
	}
	if start < len(lines) && strings.Contains(lines[start], "-->") {
		start++
	}
	if start >= len(lines) {
		return nil
	}
	text := make([]string, 0, len(lines)-start)
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			text = append(text, trimmed)
		}
	}
	return text
}
