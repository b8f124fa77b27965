// ABOUTME: Tests for logger construction.
// ABOUTME: Verifies the log file location and the debug stderr tee.
package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()

	l, err := New(Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Info("habit toggled", "id", "abc12345")

	data, err := os.ReadFile(filepath.Join(dir, "logs", FileName))
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	if !strings.Contains(string(data), "habit toggled") {
		t.Errorf("log file missing message:\n%s", data)
	}
}

func TestNewDebugTeesToStderr(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(Config{DataDir: t.TempDir(), Debug: true, Stderr: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Debug("day reset", "from", "2024-01-01")

	if !strings.Contains(buf.String(), "day reset") {
		t.Errorf("debug output missing from stderr tee: %q", buf.String())
	}
}

func TestNewNonDebugSkipsDebug(t *testing.T) {
	dir := t.TempDir()

	l, err := New(Config{DataDir: dir})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Debug("hidden detail")
	l.Info("visible")

	data, _ := os.ReadFile(filepath.Join(dir, "logs", FileName))
	if strings.Contains(string(data), "hidden detail") {
		t.Error("debug line should not be written at info level")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing happens")
}
