package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dbjump.log")
	InitLogger(LevelInfo, path)
	t.Cleanup(func() {
		Close()
		Log = nil
	})

	Debug("hidden at info level")
	Info("launching client", "tool", "psql", "args", 4)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "launching client" || entry["tool"] != "psql" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if LogPath != path {
		t.Errorf("LogPath = %q, want %q", LogPath, path)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
