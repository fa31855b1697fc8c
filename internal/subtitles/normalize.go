package subtitles

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"subweave/internal/services"
)

// Reconstruct rebuilds raw subtitle text into well-formed SRT structure:
// lines that are purely a decimal index are discarded, every timing line is
// re-numbered sequentially from 1, caption text passes through, and blank
// lines keep separating blocks. The operation is idempotent.
func Reconstruct(raw []byte) ([]byte, error) {
	normalized := strings.ReplaceAll(string(raw), "\r\n", "\n")
	lines := strings.Split(normalized, "\n")

	out := make([]string, 0, len(lines)+len(lines)/3)
	counter := 0
	content := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			out = append(out, "")
		case isNumeric(trimmed):
			// Input indices are discarded; timing lines get fresh ones.
		case timestampPattern.MatchString(trimmed):
			counter++
			out = append(out, strconv.Itoa(counter), trimmed)
			content++
		default:
			out = append(out, trimmed)
			content++
		}
	}
	if content == 0 {
		return nil, services.Wrap(
			services.ErrNoSubtitleBlocks,
			"normalize",
			"reconstruct",
			"subtitle input contains no caption content",
			nil,
		)
	}

	joined := strings.Join(out, "\n")
	if !strings.HasSuffix(joined, "\n") {
		joined += "\n"
	}
	return []byte(joined), nil
}

// Reformat runs the validation pass: a strict re-parse and re-serialize that
// guarantees downstream compatibility. Output indices are exactly 1..N.
func Reformat(data []byte) ([]byte, error) {
	segments, err := ParseStrict(data)
	if err != nil {
		return nil, services.Wrap(
			services.ErrSubtitleReformat,
			"normalize",
			"validate",
			"subtitle track failed strict validation",
			err,
		)
	}
	return Render(segments), nil
}

// NormalizeFile rewrites the subtitle file at path through both passes:
// reconstruction followed by strict validation.
func NormalizeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read subtitle file: %w", err)
	}
	reconstructed, err := Reconstruct(data)
	if err != nil {
		return err
	}
	validated, err := Reformat(reconstructed)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, validated, 0o644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	return nil
}
