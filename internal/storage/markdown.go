// ABOUTME: MarkdownStore keeps one markdown file per habit plus a state file.
// ABOUTME: Frontmatter holds the completion history; the body holds the description.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
	"gopkg.in/yaml.v3"
)

// MarkdownStore provides file-based storage for habits using markdown files.
type MarkdownStore struct {
	dataDir string
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(filepath.Join(dataDir, "habits"), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

func (s *MarkdownStore) habitsDir() string {
	return filepath.Join(s.dataDir, "habits")
}

func (s *MarkdownStore) statePath() string {
	return filepath.Join(s.dataDir, "state.yaml")
}

// habitFilePath returns habits/<slug>-<id_prefix>.md.
func (s *MarkdownStore) habitFilePath(h *models.Habit) string {
	return filepath.Join(s.habitsDir(), fmt.Sprintf("%s-%s.md", slugify(h.Name), h.ShortID()))
}

// habitFrontmatter holds the YAML frontmatter of a habit file.
type habitFrontmatter struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	Color             string   `yaml:"color"`
	Position          int      `yaml:"position"`
	CreatedAt         string   `yaml:"created_at"`
	CompletedToday    bool     `yaml:"completed_today"`
	Streak            int      `yaml:"streak"`
	Recent            string   `yaml:"recent"`
	CompletionHistory []string `yaml:"completion_history"`
}

type stateFile struct {
	LastReset string `yaml:"last_reset,omitempty"`
}

// habitEntry pairs a parsed habit with where it lives on disk.
type habitEntry struct {
	path     string
	position int
	habit    *models.Habit
}

func habitFromFrontmatter(fm *habitFrontmatter, description string) (*models.Habit, error) {
	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("parse habit ID %q: %w", fm.ID, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fm.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", fm.CreatedAt, err)
	}
	history := fm.CompletionHistory
	if history == nil {
		history = []string{}
	}
	return &models.Habit{
		ID:                id,
		Name:              fm.Name,
		Description:       description,
		Color:             fm.Color,
		CompletionHistory: history,
		CompletedToday:    fm.CompletedToday,
		Streak:            fm.Streak,
		Recent:            engine.ParseRecent(fm.Recent),
		CreatedAt:         createdAt,
	}, nil
}

func habitToFrontmatter(h *models.Habit, position int) habitFrontmatter {
	history := h.CompletionHistory
	if history == nil {
		history = []string{}
	}
	return habitFrontmatter{
		ID:                h.ID.String(),
		Name:              h.Name,
		Color:             h.Color,
		Position:          position,
		CreatedAt:         h.CreatedAt.UTC().Format(time.RFC3339Nano),
		CompletedToday:    h.CompletedToday,
		Streak:            h.Streak,
		Recent:            h.Recent.String(),
		CompletionHistory: history,
	}
}

// readHabitFile reads a habit from a markdown file.
func readHabitFile(path string) (*habitEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fm habitFrontmatter
	body, err := parseFrontmatter(data, &fm)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}

	h, err := habitFromFrontmatter(&fm, strings.TrimSpace(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &habitEntry{path: path, position: fm.Position, habit: h}, nil
}

// writeHabitFile writes h at its slug path and removes a stale file left
// behind by a rename.
func (s *MarkdownStore) writeHabitFile(h *models.Habit, position int, oldPath string) error {
	fm := habitToFrontmatter(h, position)

	body := ""
	if h.Description != "" {
		body = "\n" + h.Description + "\n"
	}

	content, err := renderFrontmatter(&fm, body)
	if err != nil {
		return fmt.Errorf("render habit file: %w", err)
	}

	path := s.habitFilePath(h)
	if err := atomicWrite(path, []byte(content)); err != nil {
		return err
	}
	if oldPath != "" && oldPath != path {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove renamed habit file: %w", err)
		}
	}
	return nil
}

// entries reads every habit file ordered by position.
func (s *MarkdownStore) entries() ([]*habitEntry, error) {
	files, err := os.ReadDir(s.habitsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read habits directory: %w", err)
	}

	var out []*habitEntry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
			continue
		}
		e, err := readHabitFile(filepath.Join(s.habitsDir(), f.Name()))
		if err != nil {
			return nil, fmt.Errorf("read habit file: %w", err)
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].position != out[j].position {
			return out[i].position < out[j].position
		}
		return out[i].habit.CreatedAt.Before(out[j].habit.CreatedAt)
	})
	return out, nil
}

// findHabit finds the entry for a habit by ID or prefix.
func (s *MarkdownStore) findHabit(idOrPrefix string) (*habitEntry, error) {
	all, err := s.entries()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, e := range all {
		ids[i] = e.habit.ID.String()
	}
	id, err := MatchID(ids, idOrPrefix)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.habit.ID.String() == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
}

func nextPosition(all []*habitEntry) int {
	next := 0
	for _, e := range all {
		if e.position >= next {
			next = e.position + 1
		}
	}
	return next
}

// CreateHabit stores a new habit as a markdown file.
func (s *MarkdownStore) CreateHabit(h *models.Habit) error {
	all, err := s.entries()
	if err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	for _, e := range all {
		if e.habit.ID == h.ID {
			return fmt.Errorf("create habit: %s already exists", h.ID)
		}
	}
	return s.writeHabitFile(h, nextPosition(all), "")
}

// GetHabit retrieves a habit by ID or ID prefix.
func (s *MarkdownStore) GetHabit(idOrPrefix string) (*models.Habit, error) {
	e, err := s.findHabit(idOrPrefix)
	if err != nil {
		return nil, err
	}
	return e.habit, nil
}

// ListHabits retrieves all habits in insertion order.
func (s *MarkdownStore) ListHabits() ([]*models.Habit, error) {
	all, err := s.entries()
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	habits := make([]*models.Habit, len(all))
	for i, e := range all {
		habits[i] = e.habit
	}
	return habits, nil
}

// UpsertHabit rewrites an existing habit in place or appends a new one.
func (s *MarkdownStore) UpsertHabit(h *models.Habit) error {
	all, err := s.entries()
	if err != nil {
		return fmt.Errorf("upsert habit: %w", err)
	}
	for _, e := range all {
		if e.habit.ID == h.ID {
			return s.writeHabitFile(h, e.position, e.path)
		}
	}
	return s.writeHabitFile(h, nextPosition(all), "")
}

// DeleteHabit removes a habit file by ID or prefix.
func (s *MarkdownStore) DeleteHabit(idOrPrefix string) error {
	e, err := s.findHabit(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	if err := os.Remove(e.path); err != nil {
		return fmt.Errorf("delete habit file: %w", err)
	}
	return nil
}

func (s *MarkdownStore) readState() (*stateFile, error) {
	data, err := os.ReadFile(s.statePath())
	if errors.Is(err, os.ErrNotExist) {
		return &stateFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	var st stateFile
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return &st, nil
}

// GetLastReset returns the stored day-reset marker.
func (s *MarkdownStore) GetLastReset() (string, bool, error) {
	st, err := s.readState()
	if err != nil {
		return "", false, err
	}
	return st.LastReset, st.LastReset != "", nil
}

// SetLastReset stores the day-reset marker.
func (s *MarkdownStore) SetLastReset(day string) error {
	c, ok := engine.Canonical(day)
	if !ok {
		return fmt.Errorf("set last reset: invalid day %q", day)
	}
	out, err := yaml.Marshal(&stateFile{LastReset: c})
	if err != nil {
		return fmt.Errorf("set last reset: %w", err)
	}
	return atomicWrite(s.statePath(), out)
}

// GetAllData retrieves all data for export.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	return CollectData(s)
}

// ImportData imports data from an export document.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	return ImportInto(s, data)
}
