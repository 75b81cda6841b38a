package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TUITheme != "tokyonight" {
		t.Errorf("Expected default theme to be 'tokyonight', got '%s'", cfg.TUITheme)
	}

	if cfg.RequestTimeout != 120 {
		t.Errorf("Expected RequestTimeout to be 120, got %d", cfg.RequestTimeout)
	}

	if cfg.Debug != false {
		t.Errorf("Expected Debug to be false, got %v", cfg.Debug)
	}

	if cfg.GreetingText() != "Hello! How can I help you today?" {
		t.Errorf("Unexpected greeting: %s", cfg.GreetingText())
	}

	if cfg.Markdown.Style != "dark" {
		t.Errorf("Expected markdown style 'dark', got '%s'", cfg.Markdown.Style)
	}
}

func TestConfig_Timeout(t *testing.T) {
	tests := []struct {
		seconds int
		want    time.Duration
	}{
		{30, 30 * time.Second},
		{0, 120 * time.Second},
		{-5, 120 * time.Second},
	}

	for _, tt := range tests {
		cfg := Config{RequestTimeout: tt.seconds}
		if got := cfg.Timeout(); got != tt.want {
			t.Errorf("Timeout() with %d = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

func TestGetConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	got, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("GetConfigDir() = %s, want %s", got, dir)
	}

	path, _ := GetConfigPath()
	if path != filepath.Join(dir, "config.json") {
		t.Errorf("GetConfigPath() = %s", path)
	}

	logPath, _ := GetLogPath()
	if logPath != filepath.Join(dir, "debug.log") {
		t.Errorf("GetLogPath() = %s", logPath)
	}
}

func TestGetConfigDir_Home(t *testing.T) {
	t.Setenv(HomeEnv, "")
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir() returned relative path: %s", dir)
	}
	if filepath.Base(dir) != ".geminichat" {
		t.Errorf("Expected .geminichat directory, got %s", dir)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv(HomeEnv, t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv(HomeEnv, dir)

	cfg := DefaultConfig()
	cfg.TUITheme = "nord"
	cfg.RequestTimeout = 30
	cfg.CopyOnComplete = true
	cfg.Markdown.Style = "light"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("Config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected 0600 permissions, got %o", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded != cfg {
		t.Errorf("Loaded config = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"debug": true}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be true")
	}
	if cfg.TUITheme != "tokyonight" || cfg.RequestTimeout != 120 {
		t.Errorf("Expected defaults for missing fields, got %+v", cfg)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{not json`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("Expected parse error")
	}
	if cfg != DefaultConfig() {
		t.Error("Expected defaults on parse error")
	}
}
