package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"subweave/internal/services"
)

// Classification describes how a stream carries its media.
type Classification string

const (
	// Combined streams carry muxed video and audio.
	Combined Classification = "combined"
	// VideoOnly streams need a separate audio fetch before merging.
	VideoOnly Classification = "video-only"
)

// StreamDescriptor describes one selectable remote stream. Descriptors are
// immutable once produced; Index is the 1-based position in the filtered
// catalog, preserving the source order.
type StreamDescriptor struct {
	Index  int
	ID     string
	Ext    string
	Width  int
	Height int
	Class  Classification
	Note   string
}

// HasAudio reports whether the stream carries an embedded audio track.
func (d StreamDescriptor) HasAudio() bool {
	return d.Class == Combined
}

var (
	extPattern        = regexp.MustCompile(`^[a-z0-9]+$`)
	resolutionPattern = regexp.MustCompile(`^(\d+)x(\d+)$`)
	heightPattern     = regexp.MustCompile(`^(\d+)p$`)
)

// Resolve parses the raw textual stream catalog into an ordered descriptor
// list. Audio-only entries and storyboard placeholders are excluded, and
// video-only entries below minHeight are dropped. An empty result is an
// error, never a silent empty list.
func Resolve(raw string, minHeight int) ([]StreamDescriptor, error) {
	var descriptors []StreamDescriptor
	for _, line := range strings.Split(raw, "\n") {
		entry, ok := parseLine(line)
		if !ok {
			continue
		}
		if entry.Class == VideoOnly && entry.Height < minHeight {
			continue
		}
		entry.Index = len(descriptors) + 1
		descriptors = append(descriptors, entry)
	}
	if len(descriptors) == 0 {
		return nil, services.Wrap(
			services.ErrNoUsableFormats,
			"catalog",
			"resolve",
			"no playable video formats after filtering",
			nil,
		)
	}
	return descriptors, nil
}

// parseLine classifies one catalog line. Header rows, separators, progress
// chatter, audio-only entries, and storyboard placeholders all report !ok.
func parseLine(line string) (StreamDescriptor, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "[") {
		return StreamDescriptor{}, false
	}
	fields := strings.Fields(trimmed)
	if len(fields) < 3 || fields[0] == "ID" {
		return StreamDescriptor{}, false
	}
	id, ext := fields[0], fields[1]
	if !extPattern.MatchString(ext) {
		return StreamDescriptor{}, false
	}

	lower := strings.ToLower(trimmed)
	if ext == "mhtml" || strings.Contains(lower, "storyboard") {
		return StreamDescriptor{}, false
	}
	if strings.Contains(lower, "audio only") {
		return StreamDescriptor{}, false
	}

	width, height, ok := parseResolution(fields[2])
	if !ok {
		return StreamDescriptor{}, false
	}

	class := Combined
	if strings.Contains(lower, "video only") {
		class = VideoOnly
	}

	return StreamDescriptor{
		ID:     id,
		Ext:    ext,
		Width:  width,
		Height: height,
		Class:  class,
		Note:   strings.Join(fields[3:], " "),
	}, true
}

func parseResolution(token string) (width, height int, ok bool) {
	if m := resolutionPattern.FindStringSubmatch(token); m != nil {
		width, _ = strconv.Atoi(m[1])
		height, _ = strconv.Atoi(m[2])
		return width, height, true
	}
	if m := heightPattern.FindStringSubmatch(token); m != nil {
		height, _ = strconv.Atoi(m[1])
		return 0, height, true
	}
	return 0, 0, false
}
