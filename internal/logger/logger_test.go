package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToOutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ghosthire.log")

	logger, err := New(true, false, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("getting a config")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"step":"getting a config"`) {
		t.Fatalf("expected json entry in log file, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry written without debug level: %q", out)
	}
}

func TestNewStderr(t *testing.T) {
	logger, err := New(false, true, "stderr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !logger.Core().Enabled(-1) {
		t.Fatalf("expected debug level to be enabled")
	}
}
