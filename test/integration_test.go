// ABOUTME: Integration tests for the habits CLI.
// ABOUTME: Builds the binary and drives a full add, toggle, report, and export workflow.
package test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	habitsBinary := filepath.Join(projectRoot, "habits")

	buildCmd := exec.Command("go", "build", "-o", habitsBinary, "./cmd/habits")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(habitsBinary)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--db", dbPath}, args...)
		cmd := exec.Command(habitsBinary, fullArgs...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
			"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
			"HABITS_AI_API_KEY=",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("add", "Morning run", "-c", "#ef4444")
	if err != nil {
		t.Fatalf("Failed to add habit: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added Morning run") {
		t.Errorf("Expected 'Added Morning run' in output, got: %s", output)
	}

	output, err = run("list", "--json")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	var habits []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(output), &habits); err != nil {
		t.Fatalf("Failed to decode list: %v\n%s", err, output)
	}
	if len(habits) != 1 {
		t.Fatalf("Expected one habit, got %d", len(habits))
	}
	id := habits[0].ID[:8]

	output, err = run("done", id)
	if err != nil {
		t.Fatalf("Failed to toggle: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Completed Morning run") {
		t.Errorf("Expected 'Completed Morning run' in output, got: %s", output)
	}

	output, err = run("done", id, "yesterday")
	if err != nil {
		t.Fatalf("Failed to toggle yesterday: %v\n%s", err, output)
	}

	output, err = run("show", id)
	if err != nil {
		t.Fatalf("Failed to show: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Morning run") {
		t.Errorf("Expected habit name in show output, got: %s", output)
	}

	output, err = run("week")
	if err != nil {
		t.Fatalf("Failed to report week: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Morning run") {
		t.Errorf("Expected habit in weekly report, got: %s", output)
	}

	output, err = run("export", "markdown")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if !strings.Contains(output, "## Morning run") {
		t.Errorf("Expected habit section in markdown export, got: %s", output)
	}
}
