package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_WritesToFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shelf.log")

	logger, closeLog, err := newLogger(path, "warn")
	if err != nil {
		t.Fatalf("newLogger returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("request failed", "op", "list books")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("log = %q, info line should be filtered", out)
	}
	if !strings.Contains(out, `msg="request failed"`) || !strings.Contains(out, `op="list books"`) {
		t.Fatalf("log = %q, want warn line with attrs", out)
	}
}

func TestNewLogger_UnwritablePathFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, _, err := newLogger(filepath.Join(blocker, "shelf.log"), "info"); err == nil {
		t.Fatalf("newLogger returned nil error for path under a regular file")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		" WARN": slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
