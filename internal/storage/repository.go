// ABOUTME: Repository interface for the habit record store.
// ABOUTME: Defines the contract shared by the SQLite, markdown, and KV backends.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
)

var (
	// ErrNotFound is returned when no habit matches an ID or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when a prefix matches more than one habit.
	ErrAmbiguous = errors.New("ambiguous prefix")
)

// Repository defines the storage interface for habits.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Habit operations. ListHabits returns habits in insertion order.
	CreateHabit(h *models.Habit) error
	GetHabit(idOrPrefix string) (*models.Habit, error)
	ListHabits() ([]*models.Habit, error)
	UpsertHabit(h *models.Habit) error
	DeleteHabit(idOrPrefix string) error

	// Day-reset marker, stored as YYYY-MM-DD.
	GetLastReset() (string, bool, error)
	SetLastReset(day string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// IsFullID reports whether s looks like a complete UUID rather than a prefix.
func IsFullID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}

// MatchID resolves idOrPrefix against a list of full IDs. Matching ignores
// case since IDs are lower-case hex.
func MatchID(ids []string, idOrPrefix string) (string, error) {
	idOrPrefix = strings.ToLower(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	var matches []string
	for _, id := range ids {
		if id == idOrPrefix {
			return id, nil
		}
		if strings.HasPrefix(id, idOrPrefix) {
			matches = append(matches, id)
		}
	}
	return pickMatch(matches, idOrPrefix)
}

func pickMatch(matches []string, idOrPrefix string) (string, error) {
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches multiple records", ErrAmbiguous, idOrPrefix)
	}
	return matches[0], nil
}

// canonicalHistory normalizes every parseable entry to YYYY-MM-DD, keeping
// first-seen order and dropping duplicates and malformed dates. Timestamps
// resolve to their date in loc when loc is set.
func canonicalHistory(history []string, loc *time.Location) []string {
	out := make([]string, 0, len(history))
	seen := make(map[string]bool, len(history))
	for _, s := range history {
		c, ok := engine.CanonicalIn(s, loc)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
