package deps

import (
	"testing"

	"subweave/internal/config"
)

func TestCheckBinariesReportsMissing(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "nonexistent", Command: "subweave-test-no-such-binary"},
		{Name: "unset", Command: ""},
	})
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	for _, status := range statuses {
		if status.Available {
			t.Fatalf("expected %q to be unavailable", status.Name)
		}
		if status.Detail == "" {
			t.Fatalf("expected detail for %q", status.Name)
		}
	}
}

func TestCheckBinariesFindsShell(t *testing.T) {
	statuses := CheckBinaries([]Requirement{{Name: "shell", Command: "sh"}})
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %s", statuses[0].Detail)
	}
}

func TestMissingRequiredSkipsOptional(t *testing.T) {
	statuses := []Status{
		{Name: "a", Available: false, Optional: false},
		{Name: "b", Available: false, Optional: true},
		{Name: "c", Available: true},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "a" {
		t.Fatalf("got %v", missing)
	}
}

func TestRequirementsUseConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.FFmpeg = "/opt/ffmpeg/bin/ffmpeg"
	reqs := Requirements(&cfg)
	found := false
	for _, req := range reqs {
		if req.Name == "ffmpeg" && req.Command == cfg.Tools.FFmpeg {
			found = true
		}
	}
	if !found {
		t.Fatal("expected ffmpeg requirement to carry configured binary path")
	}
}
