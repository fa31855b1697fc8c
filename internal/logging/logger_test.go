package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"subweave/internal/services"
)

func TestNewConsoleWritesComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	NewComponentLogger(logger, "muxer").Info("packaged output", String("path", "/tmp/out.mkv"))
	line := buf.String()
	if !strings.Contains(line, "[muxer]") {
		t.Fatalf("expected component marker in %q", line)
	}
	if !strings.Contains(line, "path=/tmp/out.mkv") {
		t.Fatalf("expected attr in %q", line)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsStageAndRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := services.WithRunID(context.Background(), "run-42")
	ctx = WithStage(ctx, "acquire")
	WithContext(ctx, logger).Info("stage started")
	line := buf.String()
	if !strings.Contains(line, "run_id=run-42") {
		t.Fatalf("expected run id in %q", line)
	}
	if !strings.Contains(line, "stage=acquire") {
		t.Fatalf("expected stage in %q", line)
	}
}
