// ABOUTME: Tests for export and import functionality.
// ABOUTME: Covers JSON round trips, YAML layout, and the markdown report.
package storage

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harperreed/habits/internal/engine"
	"gopkg.in/yaml.v3"
)

func TestExportImportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)

	h1 := newTestHabit(t, "Walk the dog", "2024-04-01", "2024-04-02")
	h2 := newTestHabit(t, "Drink water")
	if err := src.CreateHabit(h1); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if err := src.CreateHabit(h2); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if err := src.SetLastReset("2024-04-02"); err != nil {
		t.Fatalf("SetLastReset failed: %v", err)
	}

	data, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var decoded ExportData
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if decoded.Version != ExportVersion || decoded.Tool != AppName {
		t.Errorf("header = %q/%q", decoded.Version, decoded.Tool)
	}
	if len(decoded.Habits) != 2 {
		t.Fatalf("expected 2 exported habits, got %d", len(decoded.Habits))
	}

	dst := setupTestMarkdownStore(t)
	if err := ImportJSON(dst, data); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	habits, err := dst.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 2 {
		t.Fatalf("expected 2 imported habits, got %d", len(habits))
	}
	if habits[0].ID != h1.ID || habits[1].ID != h2.ID {
		t.Error("import should preserve export order")
	}
	if len(habits[0].CompletionHistory) != 2 {
		t.Errorf("history = %v", habits[0].CompletionHistory)
	}
	if got, ok, _ := dst.GetLastReset(); !ok || got != "2024-04-02" {
		t.Errorf("LastReset = %q, want 2024-04-02", got)
	}
}

func TestImportJSONReplacesExisting(t *testing.T) {
	db := setupTestDB(t)
	h := newTestHabit(t, "Practice piano")
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	data, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if err := ImportJSON(db, data); err != nil {
		t.Fatalf("re-import failed: %v", err)
	}

	habits, _ := db.ListHabits()
	if len(habits) != 1 {
		t.Errorf("re-import should not duplicate, got %d habits", len(habits))
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)
	if err := ImportJSON(db, []byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	h := newTestHabit(t, "Yoga", "2024-01-03", "2024-01-01")
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	out, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var doc struct {
		Tool   string `yaml:"tool"`
		Habits []struct {
			Name        string   `yaml:"name"`
			Completions []string `yaml:"completions"`
		} `yaml:"habits"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if doc.Tool != AppName || len(doc.Habits) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	got := doc.Habits[0].Completions
	if len(got) != 2 || got[0] != "2024-01-01" || got[1] != "2024-01-03" {
		t.Errorf("completions = %v, want sorted ascending", got)
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	h := newTestHabit(t, "Cold shower", "2024-01-01", "2024-01-02")
	if err := db.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	md, err := ExportMarkdown(db, engine.Date(2024, 1, 2))
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Habits Export - 2024-01-02",
		"| Cold shower | 2 | 2 |",
		"## Cold shower",
		"- 2024-01-02 (Tuesday)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Index(md, "- 2024-01-02") > strings.Index(md, "- 2024-01-01") {
		t.Error("history should list the newest day first")
	}
}

func TestExportMarkdownEmpty(t *testing.T) {
	db := setupTestDB(t)
	md, err := ExportMarkdown(db, engine.Date(2024, 1, 2))
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if !strings.Contains(md, "No habits tracked.") {
		t.Errorf("unexpected empty export:\n%s", md)
	}
}
