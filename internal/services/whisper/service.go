package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "subweave/internal/language"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// Service invokes the whisper speech-to-text engine over audio files.
type Service struct {
	cfg    Config
	binary string
	run    commandRunner
}

// NewService creates a whisper service with the given configuration.
func NewService(cfg Config, binary string) *Service {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.FallbackModel == "" {
		cfg.FallbackModel = DefaultFallbackModel
	}
	if binary == "" {
		binary = "whisper"
	}
	return &Service{cfg: cfg, binary: binary, run: defaultRunner}
}

// WithCommandRunner injects a custom command runner (used in tests).
func (s *Service) WithCommandRunner(r func(ctx context.Context, name string, args ...string) error) {
	if s != nil && r != nil {
		s.run = r
	}
}

// SelectModel returns the model the engine will load: the preferred variant
// when its weights file already exists under the model dir, the fallback
// otherwise.
func (s *Service) SelectModel() string {
	if s.cfg.ModelDir != "" {
		weights := filepath.Join(s.cfg.ModelDir, s.cfg.Model+".pt")
		if info, err := os.Stat(weights); err == nil && info.Mode().IsRegular() {
			return s.cfg.Model
		}
	}
	return s.cfg.FallbackModel
}

// Word represents a single word with timing from engine output.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment represents a transcribed segment with timing in seconds.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words"`
}

type enginePayload struct {
	Segments []Segment `json:"segments"`
}

// Transcribe runs the engine over an audio file and returns the ordered
// timed segments. outputDir receives the engine's JSON output; a missing or
// empty output file is an error.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir string) ([]Segment, error) {
	if strings.TrimSpace(audioPath) == "" {
		return nil, fmt.Errorf("transcribe: audio path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	args := s.buildArgs(audioPath, outputDir)
	if err := s.run(ctx, s.binary, args...); err != nil {
		return nil, fmt.Errorf("whisper: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, base+".json")
	segments, err := LoadSegments(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("whisper output: %w", err)
	}
	for i := range segments {
		segments[i].Text = strings.TrimSpace(segments[i].Text)
	}
	return segments, nil
}

func (s *Service) buildArgs(audioPath, outputDir string) []string {
	args := []string{
		audioPath,
		"--model", s.SelectModel(),
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--word_timestamps", "True",
		"--initial_prompt", verbatimPrompt,
		"--fp16", "False",
	}
	if s.cfg.ModelDir != "" {
		args = append(args, "--model_dir", s.cfg.ModelDir)
	}
	if lang := langpkg.ToISO2(s.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	return args
}

// LoadSegments loads segments from an engine JSON output file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload enginePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	return payload.Segments, nil
}

func defaultRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
