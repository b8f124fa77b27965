// ABOUTME: Export and import functionality for habit data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export document.
const ExportVersion = "1.0"

// ExportData represents the full export format for habit data.
type ExportData struct {
	Version    string          `json:"version" yaml:"version"`
	ExportedAt time.Time       `json:"exported_at" yaml:"exported_at"`
	Tool       string          `json:"tool" yaml:"tool"`
	LastReset  string          `json:"last_reset,omitempty" yaml:"last_reset,omitempty"`
	Habits     []*models.Habit `json:"habits" yaml:"habits"`
}

// HabitLister is the read side needed to build an export.
type HabitLister interface {
	ListHabits() ([]*models.Habit, error)
	GetLastReset() (string, bool, error)
}

// HabitWriter is the write side needed to apply an import.
type HabitWriter interface {
	UpsertHabit(h *models.Habit) error
	SetLastReset(day string) error
}

// CollectData builds an export document from a backend's habits and marker.
func CollectData(r HabitLister) (*ExportData, error) {
	habits, err := r.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	lastReset, _, err := r.GetLastReset()
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []*models.Habit{}
	}
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       AppName,
		LastReset:  lastReset,
		Habits:     habits,
	}, nil
}

// ImportInto upserts every habit and restores the reset marker.
func ImportInto(r HabitWriter, data *ExportData) error {
	for _, h := range data.Habits {
		if h == nil {
			continue
		}
		if h.CompletionHistory == nil {
			h.CompletionHistory = []string{}
		}
		if err := r.UpsertHabit(h); err != nil {
			return fmt.Errorf("import habit %s: %w", h.ID, err)
		}
	}
	if data.LastReset != "" {
		if err := r.SetLastReset(data.LastReset); err != nil {
			return fmt.Errorf("import last reset: %w", err)
		}
	}
	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return CollectData(d)
}

// ImportData imports data from an export document. Existing habits with the
// same ID are replaced.
func (d *DB) ImportData(data *ExportData) error {
	return ImportInto(d, data)
}

// ExportJSON exports all data as JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

type yamlHabit struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Color       string   `yaml:"color"`
	CreatedAt   string   `yaml:"created_at"`
	Streak      int      `yaml:"streak"`
	Completions []string `yaml:"completions"`
}

// ExportYAML exports all data as YAML with sorted completion days.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string      `yaml:"version"`
		ExportedAt string      `yaml:"exported_at"`
		Tool       string      `yaml:"tool"`
		LastReset  string      `yaml:"last_reset,omitempty"`
		Habits     []yamlHabit `yaml:"habits"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		LastReset:  data.LastReset,
		Habits:     make([]yamlHabit, 0, len(data.Habits)),
	}

	for _, h := range data.Habits {
		completions := h.Days().Strings()
		if completions == nil {
			completions = []string{}
		}
		yamlData.Habits = append(yamlData.Habits, yamlHabit{
			ID:          h.ID.String(),
			Name:        h.Name,
			Description: h.Description,
			Color:       h.Color,
			CreatedAt:   h.CreatedAt.Format(time.RFC3339),
			Streak:      h.Streak,
			Completions: completions,
		})
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown renders a summary table plus a per-habit history as of today.
func ExportMarkdown(r Repository, today engine.Day) (string, error) {
	habits, err := r.ListHabits()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Habits Export - %s\n\n", today))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format(time.RFC3339)))

	if len(habits) == 0 {
		sb.WriteString("No habits tracked.\n")
		return sb.String(), nil
	}

	sb.WriteString("| Habit | Streak | Longest | 7d | 30d | Total |\n")
	sb.WriteString("|-------|--------|---------|----|-----|-------|\n")
	for _, h := range habits {
		s := h.Stats(today)
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d%% | %d%% | %d |\n",
			h.Name, s.CurrentStreak, s.LongestStreak, s.Rate7, s.Rate30, s.Total))
	}
	sb.WriteString("\n")

	for _, h := range habits {
		sb.WriteString(fmt.Sprintf("## %s\n\n", h.Name))
		if h.Description != "" {
			sb.WriteString(h.Description + "\n\n")
		}
		days := h.Days().Sorted()
		if len(days) == 0 {
			sb.WriteString("No completions yet.\n\n")
			continue
		}
		for i := len(days) - 1; i >= 0; i-- {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", days[i], days[i].Weekday()))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// DecodeJSON parses a JSON export document.
func DecodeJSON(data []byte) (*ExportData, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return &exportData, nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(r Repository, data []byte) error {
	exportData, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	return r.ImportData(exportData)
}
