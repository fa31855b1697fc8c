package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateVideoURL(t *testing.T) {
	if err := validateVideoURL("https://example.com/watch?v=abc"); err != nil {
		t.Fatalf("valid url rejected: %v", err)
	}
	for _, bad := range []string{"", "   ", "example.com/watch", "ftp://example.com/x", "https://has space"} {
		if err := validateVideoURL(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestRootCommandWiresSubcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"run", "formats", "deps", "config"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Fatalf("subcommand %q not wired: %v", name, err)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out.String(), target) {
		t.Fatalf("output does not mention target: %q", out.String())
	}

	// A second init without --overwrite must refuse.
	root = newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err == nil {
		t.Fatal("expected existing config to be protected")
	}
}
