package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"subweave/internal/config"
)

// Requirement defines an external tool subweave invokes.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the dependency list from the configured tool binaries.
// whisper is optional: runs with manual subtitles never invoke it.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{Name: "yt-dlp", Command: cfg.Tools.YtDlp, Description: "remote media source client"},
		{Name: "ffmpeg", Command: cfg.Tools.FFmpeg, Description: "transcoder and stream merger"},
		{Name: "ffprobe", Command: cfg.Tools.FFprobe, Description: "container inspection"},
		{Name: "mkvmerge", Command: cfg.Tools.MkvMerge, Description: "container packaging"},
		{Name: "whisper", Command: cfg.Tools.Whisper, Description: "speech-to-text engine", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of unavailable non-optional dependencies.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status.Name)
		}
	}
	return missing
}
