package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger_ConsoleOnly(t *testing.T) {
	logger, err := NewLogger("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger")
	}
	logger.Info("console only")
}

func TestNewLogger_FileLogging(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "xcmon.log"))
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected log file to have content")
	}
}
