// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Verifies habits, histories, and the reset marker survive a migration.
package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMigrateSQLiteToMarkdown(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestMarkdownStore(t)

	h1 := newTestHabit(t, "Morning run", "2024-01-01", "2024-01-02", "2024-01-03")
	h2 := newTestHabit(t, "Evening read", "2024-01-02")
	if err := src.CreateHabit(h1); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if err := src.CreateHabit(h2); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if err := src.SetLastReset("2024-01-03"); err != nil {
		t.Fatalf("SetLastReset failed: %v", err)
	}

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Habits != 2 {
		t.Errorf("Habits = %d, want 2", summary.Habits)
	}
	if summary.Completions != 4 {
		t.Errorf("Completions = %d, want 4", summary.Completions)
	}
	if summary.LastReset != "2024-01-03" {
		t.Errorf("LastReset = %q, want 2024-01-03", summary.LastReset)
	}

	habits, err := dst.ListHabits()
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 2 || habits[0].Name != "Morning run" || habits[1].Name != "Evening read" {
		t.Fatalf("migrated habits out of order: %v", habits)
	}
	if len(habits[0].CompletionHistory) != 3 {
		t.Errorf("history = %v", habits[0].CompletionHistory)
	}
}

func TestMigrateDataInResolvesTimestamps(t *testing.T) {
	src := setupTestMarkdownStore(t)
	dst := setupTestDB(t)

	h := newTestHabit(t, "Night journal", "2024-01-03T02:00:00Z")
	if err := src.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	if _, err := MigrateDataIn(src, dst, time.FixedZone("EST", -5*3600)); err != nil {
		t.Fatalf("MigrateDataIn failed: %v", err)
	}
	got, err := dst.GetHabit(h.ID.String())
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if len(got.CompletionHistory) != 1 || got.CompletionHistory[0] != "2024-01-02" {
		t.Errorf("history = %v, want [2024-01-02]", got.CompletionHistory)
	}
}

func TestMigrateMarkdownToSQLite(t *testing.T) {
	src := setupTestMarkdownStore(t)
	dst := setupTestDB(t)

	h := newTestHabit(t, "Gratitude list", "2024-02-01")
	if err := src.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Habits != 1 || summary.LastReset != "" {
		t.Errorf("summary = %+v", summary)
	}

	got, err := dst.GetHabit(h.ID.String())
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Description != h.Description {
		t.Errorf("Description = %q, want %q", got.Description, h.Description)
	}
	if _, ok, _ := dst.GetLastReset(); ok {
		t.Error("destination should have no reset marker")
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || nonEmpty {
		t.Errorf("missing dir: got %v %v, want false nil", nonEmpty, err)
	}

	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || nonEmpty {
		t.Errorf("empty dir: got %v %v, want false nil", nonEmpty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "x.md"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		t.Errorf("populated dir: got %v %v, want true nil", nonEmpty, err)
	}
}
