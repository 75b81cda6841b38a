package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown", "model", "gemini-2.5-flash")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Debug record should be filtered at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "model=gemini-2.5-flash") {
		t.Errorf("Expected info record with attrs, got %q", out)
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing happens")

	if OrDiscard(nil) == nil {
		t.Error("OrDiscard(nil) should return a logger")
	}
	if OrDiscard(logger) != logger {
		t.Error("OrDiscard should return the given logger")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	logger, closer, err := OpenFile(path, true)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	logger.Debug("stream started", "session", "abc")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Log file not written: %v", err)
	}
	if !strings.Contains(string(data), "stream started") {
		t.Errorf("Expected record in log file, got %q", string(data))
	}
}

func TestOpenFile_Disabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, closer, err := OpenFile(path, false)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	logger.Debug("dropped")
	_ = closer.Close()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected no log file when debug is off")
	}
}
