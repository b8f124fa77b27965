// ABOUTME: Habit CRUD operations for SQLite storage.
// ABOUTME: Completion days live in their own table and cascade on delete.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
)

const lastResetKey = "last_reset"

// CreateHabit stores a new habit and its completion history.
func (d *DB) CreateHabit(h *models.Habit) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO habits (id, name, description, color, completed_today, streak, recent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		h.ID.String(),
		h.Name,
		h.Description,
		h.Color,
		h.CompletedToday,
		h.Streak,
		h.Recent.String(),
		h.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}

	if err := writeCompletions(tx, h); err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return tx.Commit()
}

// UpsertHabit inserts the habit or replaces an existing record with the same ID.
func (d *DB) UpsertHabit(h *models.Habit) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("upsert habit: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO habits (id, name, description, color, completed_today, streak, recent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			color = excluded.color,
			completed_today = excluded.completed_today,
			streak = excluded.streak,
			recent = excluded.recent
	`,
		h.ID.String(),
		h.Name,
		h.Description,
		h.Color,
		h.CompletedToday,
		h.Streak,
		h.Recent.String(),
		h.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert habit: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM completions WHERE habit_id = ?", h.ID.String()); err != nil {
		return fmt.Errorf("upsert habit: %w", err)
	}
	if err := writeCompletions(tx, h); err != nil {
		return fmt.Errorf("upsert habit: %w", err)
	}
	return tx.Commit()
}

func writeCompletions(tx *sql.Tx, h *models.Habit) error {
	for i, day := range canonicalHistory(h.CompletionHistory, h.Location()) {
		if _, err := tx.Exec(
			"INSERT INTO completions (habit_id, day, position) VALUES (?, ?, ?)",
			h.ID.String(), day, i,
		); err != nil {
			return fmt.Errorf("insert completion %s: %w", day, err)
		}
	}
	return nil
}

// GetHabit retrieves a habit by ID or ID prefix.
func (d *DB) GetHabit(idOrPrefix string) (*models.Habit, error) {
	id, err := d.resolveHabitID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`
		SELECT id, name, description, color, completed_today, streak, recent, created_at
		FROM habits
		WHERE id = ?
	`, id)
	h, err := scanHabit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
		}
		return nil, err
	}

	history, err := d.listCompletions(h.ID.String())
	if err != nil {
		return nil, err
	}
	h.CompletionHistory = history
	return h, nil
}

// ListHabits retrieves all habits in insertion order.
func (d *DB) ListHabits() ([]*models.Habit, error) {
	rows, err := d.db.Query(`
		SELECT id, name, description, color, completed_today, streak, recent, created_at
		FROM habits
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	var habits []*models.Habit
	byID := make(map[string]*models.Habit)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		h.CompletionHistory = []string{}
		habits = append(habits, h)
		byID[h.ID.String()] = h
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("list habits: %w", err)
	}
	_ = rows.Close()

	crows, err := d.db.Query("SELECT habit_id, day FROM completions ORDER BY habit_id, position")
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer crows.Close()
	for crows.Next() {
		var habitID, day string
		if err := crows.Scan(&habitID, &day); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		if h, ok := byID[habitID]; ok {
			h.CompletionHistory = append(h.CompletionHistory, day)
		}
	}
	return habits, crows.Err()
}

// DeleteHabit removes a habit and its completions (cascade delete).
func (d *DB) DeleteHabit(idOrPrefix string) error {
	id, err := d.resolveHabitID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete habit: %w: %s", ErrNotFound, idOrPrefix)
	}
	return nil
}

// GetLastReset returns the stored day-reset marker.
func (d *DB) GetLastReset() (string, bool, error) {
	var value string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = ?", lastResetKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get last reset: %w", err)
	}
	return value, true, nil
}

// SetLastReset stores the day-reset marker.
func (d *DB) SetLastReset(day string) error {
	c, ok := engine.Canonical(day)
	if !ok {
		return fmt.Errorf("set last reset: invalid day %q", day)
	}
	_, err := d.db.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, lastResetKey, c)
	if err != nil {
		return fmt.Errorf("set last reset: %w", err)
	}
	return nil
}

func (d *DB) listCompletions(habitID string) ([]string, error) {
	rows, err := d.db.Query("SELECT day FROM completions WHERE habit_id = ? ORDER BY position", habitID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	history := []string{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		history = append(history, day)
	}
	return history, rows.Err()
}

// resolveHabitID finds the full ID from a prefix.
func (d *DB) resolveHabitID(idOrPrefix string) (string, error) {
	prefix := strings.ToLower(idOrPrefix)
	if IsFullID(prefix) {
		return prefix, nil
	}
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	rows, err := d.db.Query(`SELECT id FROM habits WHERE id LIKE ? || '%' ESCAPE '\'`, likeEscaper.Replace(prefix))
	if err != nil {
		return "", fmt.Errorf("resolve habit ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan habit ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve habit ID: %w", err)
	}
	return MatchID(matches, prefix)
}

// likeEscaper makes LIKE wildcards in a user prefix match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanHabit scans a single row into a Habit without its history.
func scanHabit(row rowScanner) (*models.Habit, error) {
	var h models.Habit
	var idStr, recent, createdAt string
	var description sql.NullString

	err := row.Scan(&idStr, &h.Name, &description, &h.Color, &h.CompletedToday, &h.Streak, &recent, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan habit: %w", err)
	}

	h.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse habit ID %q: %w", idStr, err)
	}
	h.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	h.Description = description.String
	h.Recent = engine.ParseRecent(recent)
	return &h, nil
}
