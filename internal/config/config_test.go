package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected default base URL: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout.Std() != 10*time.Second {
		t.Errorf("unexpected default timeout: %v", cfg.API.Timeout)
	}
	if cfg.Chat.DefaultService != "memory_companion" {
		t.Errorf("unexpected default service: %s", cfg.Chat.DefaultService)
	}
	if !cfg.Chat.SmartFallback {
		t.Error("smart fallback should default on")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: https://echo.example.com
  timeout: 30s
chat:
  preferred_provider: groq
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "https://echo.example.com" {
		t.Errorf("base URL not applied: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout.Std() != 30*time.Second {
		t.Errorf("timeout not applied: %v", cfg.API.Timeout)
	}
	if cfg.Chat.PreferredProvider != "groq" {
		t.Errorf("provider not applied: %s", cfg.Chat.PreferredProvider)
	}
	// Untouched keys keep defaults.
	if cfg.Chat.DefaultService != "memory_companion" {
		t.Errorf("default service lost: %s", cfg.Chat.DefaultService)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: https://file.example.com\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(EnvAPIBaseURL, "https://env.example.com")
	t.Setenv(EnvAPITimeout, "5s")
	t.Setenv(EnvDarkMode, "1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("env base URL should win, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout.Std() != 5*time.Second {
		t.Errorf("env timeout should win, got %v", cfg.API.Timeout)
	}
	if !cfg.UI.DarkMode {
		t.Error("dark mode env override not applied")
	}
}

func TestInvalidEnvTimeoutFailsLoad(t *testing.T) {
	t.Setenv(EnvAPITimeout, "not-a-duration")

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for unparseable timeout override")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Timeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}

	cfg = DefaultConfig()
	cfg.API.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty base URL")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Chat.PreferredProvider = "ollama"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Chat.PreferredProvider != "ollama" {
		t.Errorf("round trip lost provider: %s", loaded.Chat.PreferredProvider)
	}
}
