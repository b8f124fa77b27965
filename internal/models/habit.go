// ABOUTME: Habit model with completion history and derived cache fields.
// ABOUTME: Toggling and cache refresh go through the engine's Day type.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/engine"
)

// DefaultColor is used when a habit is created without one.
const DefaultColor = "#0ea5e9"

// Habit is a tracked daily habit. CompletedToday, Streak and Recent are
// caches derived from CompletionHistory and must be refreshed before use.
type Habit struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	Color             string        `json:"color"`
	CompletionHistory []string      `json:"completionHistory"`
	CompletedToday    bool          `json:"completedToday"`
	Streak            int           `json:"streak"`
	Recent            engine.Recent `json:"recent"`
	CreatedAt         time.Time     `json:"createdAt"`

	// loc resolves timestamp entries in CompletionHistory to local dates.
	loc *time.Location
}

// NewHabit validates input and creates a habit with an empty history.
func NewHabit(in HabitInput) (*Habit, error) {
	in = in.Sanitized()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	color := in.Color
	if color == "" {
		color = DefaultColor
	}
	return &Habit{
		ID:                uuid.New(),
		Name:              in.Name,
		Description:       in.Description,
		Color:             color,
		CompletionHistory: []string{},
		CreatedAt:         time.Now(),
	}, nil
}

// Update applies edited metadata. Empty color keeps the current one.
func (h *Habit) Update(in HabitInput) error {
	in = in.Sanitized()
	if err := in.Validate(); err != nil {
		return err
	}
	h.Name = in.Name
	h.Description = in.Description
	if in.Color != "" {
		h.Color = in.Color
	}
	return nil
}

// SetLocation sets the zone used to read timestamp history entries.
func (h *Habit) SetLocation(loc *time.Location) {
	h.loc = loc
}

// Location returns the zone set by SetLocation, or nil.
func (h *Habit) Location() *time.Location {
	return h.loc
}

// Days parses the completion history into a set.
func (h *Habit) Days() engine.DaySet {
	return engine.NewDaySetIn(h.CompletionHistory, h.loc)
}

// IsCompleted reports whether day d is in the history.
func (h *Habit) IsCompleted(d engine.Day) bool {
	for _, s := range h.CompletionHistory {
		if pd, err := engine.ParseDayIn(s, h.loc); err == nil && pd == d {
			return true
		}
	}
	return false
}

// Toggle flips completion for day d and returns the new state. Turning a day
// off removes every entry that normalizes to d and nothing else.
func (h *Habit) Toggle(d engine.Day) bool {
	kept := make([]string, 0, len(h.CompletionHistory))
	removed := false
	for _, s := range h.CompletionHistory {
		if pd, err := engine.ParseDayIn(s, h.loc); err == nil && pd == d {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	if removed {
		h.CompletionHistory = kept
		return false
	}
	h.CompletionHistory = append(h.CompletionHistory, d.String())
	return true
}

// SetCompleted forces day d on or off and reports whether anything changed.
func (h *Habit) SetCompleted(d engine.Day, done bool) bool {
	if h.IsCompleted(d) == done {
		return false
	}
	h.Toggle(d)
	return true
}

// Refresh recomputes CompletedToday and Streak for today.
func (h *Habit) Refresh(today engine.Day) {
	days := h.Days()
	h.CompletedToday = days.Has(today)
	h.Streak = engine.CurrentStreak(days, today)
}

// Cached returns the derived fields in engine form.
func (h *Habit) Cached() engine.Cached {
	return engine.Cached{
		CompletedToday: h.CompletedToday,
		Streak:         h.Streak,
		Recent:         h.Recent,
	}
}

// ApplyCached stores derived fields computed by the engine.
func (h *Habit) ApplyCached(c engine.Cached) {
	h.CompletedToday = c.CompletedToday
	h.Streak = c.Streak
	h.Recent = c.Recent
}

// Subject is the read-only view used by cross-habit analysis.
func (h *Habit) Subject() engine.Subject {
	return engine.Subject{ID: h.ID.String(), Name: h.Name, Days: h.Days()}
}

// Stats summarizes the habit as of today.
func (h *Habit) Stats(today engine.Day) engine.Stats {
	return engine.Summarize(h.Days(), today)
}

// ShortID is the 8-character prefix shown in listings.
func (h *Habit) ShortID() string {
	return h.ID.String()[:8]
}

// Subjects converts a habit list for cross-habit analysis.
func Subjects(habits []*Habit) []engine.Subject {
	out := make([]engine.Subject, len(habits))
	for i, h := range habits {
		out[i] = h.Subject()
	}
	return out
}
