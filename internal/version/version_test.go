package version

import (
	"strings"
	"testing"
)

func TestSetInfo(t *testing.T) {
	originalVersion := Version
	originalBuildTime := BuildTime
	originalGitCommit := GitCommit
	originalGoVersion := GoVersion

	defer func() {
		Version = originalVersion
		BuildTime = originalBuildTime
		GitCommit = originalGitCommit
		GoVersion = originalGoVersion
	}()

	SetInfo("1.0.0", "2026-01-01T00:00:00Z", "abc123", "go1.26")

	if Version != "1.0.0" {
		t.Errorf("Version = %s, want 1.0.0", Version)
	}
	if BuildTime != "2026-01-01T00:00:00Z" {
		t.Errorf("BuildTime = %s, want 2026-01-01T00:00:00Z", BuildTime)
	}
	if GitCommit != "abc123" {
		t.Errorf("GitCommit = %s, want abc123", GitCommit)
	}
	if GoVersion != "go1.26" {
		t.Errorf("GoVersion = %s, want go1.26", GoVersion)
	}
}

func TestSetInfoIgnoresEmptyValues(t *testing.T) {
	originalVersion := Version
	defer func() { Version = originalVersion }()

	SetInfo("", "", "", "")
	if Version != originalVersion {
		t.Errorf("empty value must not overwrite Version, got %s", Version)
	}
}

func TestFormatStartupMessage(t *testing.T) {
	msg := FormatStartupMessage()
	if !strings.Contains(msg, Version) {
		t.Errorf("startup message missing version: %s", msg)
	}
}
