// ABOUTME: Data migration between habit storage backends.
// ABOUTME: Copies habits, their histories, and the reset marker from source to destination.
package storage

import (
	"fmt"
	"os"
	"time"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Habits      int
	Completions int
	LastReset   string
}

// MigrateData copies all data from src to dst storage in insertion order.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	return MigrateDataIn(src, dst, nil)
}

// MigrateDataIn is MigrateData with timestamp history entries resolved in
// loc, for destinations that store plain dates.
func MigrateDataIn(src, dst Repository, loc *time.Location) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	habits, err := src.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("list source habits: %w", err)
	}

	for _, h := range habits {
		if loc != nil {
			h.SetLocation(loc)
		}
		if err := dst.CreateHabit(h); err != nil {
			return nil, fmt.Errorf("create habit %s: %w", h.ID, err)
		}
		summary.Habits++
		summary.Completions += h.Days().Len()
	}

	lastReset, ok, err := src.GetLastReset()
	if err != nil {
		return nil, fmt.Errorf("read source reset marker: %w", err)
	}
	if ok {
		if err := dst.SetLastReset(lastReset); err != nil {
			return nil, fmt.Errorf("write reset marker: %w", err)
		}
		summary.LastReset = lastReset
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
