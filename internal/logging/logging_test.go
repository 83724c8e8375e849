package logging

import (
	"os"
	"path/filepath"
	"testing"

	"echoai/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")

	logger, err := New(config.LoggingConfig{Level: "debug", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}
}

func TestNewToleratesBadLevel(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "shouty", Format: "text"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("still works")
}
