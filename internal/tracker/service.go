// ABOUTME: Tracker service tying the habit store to the engine.
// ABOUTME: Runs the day reset on load and keeps caches fresh after every mutation.
package tracker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/storage"
)

// ErrFutureDay is returned when a completion is recorded after today.
var ErrFutureDay = errors.New("cannot complete a habit on a future day")

// ErrWindowTooLarge is returned for heat map windows above engine.MaxHeatmapWindow.
var ErrWindowTooLarge = fmt.Errorf("heat map window exceeds %d days", engine.MaxHeatmapWindow)

// Service is the single entry point for habit mutations. All methods are
// safe for concurrent use; mutations are applied one at a time.
type Service struct {
	repo   storage.Repository
	now    func() time.Time
	loc    *time.Location
	logger *log.Logger
	mu     sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone deciding when today rolls over.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service over repo.
func New(repo storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
		loc:  time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repository returns the underlying store.
func (s *Service) Repository() storage.Repository {
	return s.repo
}

// Today is the current calendar day in the configured location.
func (s *Service) Today() engine.Day {
	return engine.DayOf(s.now().In(s.loc))
}

func (s *Service) debug(msg string, keyvals ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keyvals...)
	}
}

// localize makes timestamp history entries resolve to dates in the
// configured location.
func (s *Service) localize(h *models.Habit) *models.Habit {
	h.SetLocation(s.loc)
	return h
}

func (s *Service) resetState() (engine.ResetState, error) {
	raw, ok, err := s.repo.GetLastReset()
	if err != nil {
		return engine.ResetState{}, err
	}
	if !ok {
		return engine.ResetState{}, nil
	}
	d, err := engine.ParseDay(raw)
	if err != nil {
		s.debug("ignoring malformed reset marker", "value", raw)
		return engine.ResetState{}, nil
	}
	return engine.ResetState{LastReset: d, HasLast: true}, nil
}

// Load returns every habit in insertion order with caches valid for today.
// When the stored reset marker is from an earlier day the refreshed caches
// and the new marker are written back before returning.
func (s *Service) Load() ([]*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Service) load() ([]*models.Habit, error) {
	habits, err := s.repo.ListHabits()
	if err != nil {
		return nil, fmt.Errorf("load habits: %w", err)
	}
	state, err := s.resetState()
	if err != nil {
		return nil, fmt.Errorf("load reset marker: %w", err)
	}

	today := s.Today()
	items := make([]engine.ResetItem, len(habits))
	for i, h := range habits {
		s.localize(h)
		items[i] = engine.ResetItem{Days: h.Days(), Cached: h.Cached()}
	}

	res := engine.DayReset(state, items, today)
	if !res.Changed {
		for _, h := range habits {
			h.Refresh(today)
		}
		return habits, nil
	}

	s.debug("day reset", "from", state.LastReset, "had_marker", state.HasLast, "to", today, "habits", len(habits))
	for i, h := range habits {
		h.ApplyCached(res.Items[i])
		if err := s.repo.UpsertHabit(h); err != nil {
			return nil, fmt.Errorf("persist reset for %s: %w", h.ShortID(), err)
		}
	}
	if err := s.repo.SetLastReset(today.String()); err != nil {
		return nil, fmt.Errorf("persist reset marker: %w", err)
	}
	return habits, nil
}

// Get returns one habit by ID or prefix with caches valid for today.
func (s *Service) Get(idOrPrefix string) (*models.Habit, error) {
	h, err := s.repo.GetHabit(idOrPrefix)
	if err != nil {
		return nil, err
	}
	s.localize(h).Refresh(s.Today())
	return h, nil
}

// Add validates input and stores a new habit.
func (s *Service) Add(in models.HabitInput) (*models.Habit, error) {
	h, err := models.NewHabit(in)
	if err != nil {
		return nil, err
	}
	h.CreatedAt = s.now()
	s.localize(h)

	today := s.Today()
	h.Refresh(today)
	h.Recent = engine.RecentWindow(h.Days(), today)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.CreateHabit(h); err != nil {
		return nil, err
	}
	s.debug("habit added", "id", h.ShortID(), "name", h.Name)
	return h, nil
}

// Edit replaces a habit's name, description and color.
func (s *Service) Edit(idOrPrefix string, in models.HabitInput) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.repo.GetHabit(idOrPrefix)
	if err != nil {
		return nil, err
	}
	s.localize(h)
	if err := h.Update(in); err != nil {
		return nil, err
	}
	h.Refresh(s.Today())
	if err := s.repo.UpsertHabit(h); err != nil {
		return nil, err
	}
	return h, nil
}

// Toggle flips today's completion and returns the habit and its new state.
func (s *Service) Toggle(idOrPrefix string) (*models.Habit, bool, error) {
	return s.ToggleOn(idOrPrefix, s.Today())
}

// ToggleOn flips completion for day d. Days after today are rejected.
func (s *Service) ToggleOn(idOrPrefix string, d engine.Day) (*models.Habit, bool, error) {
	today := s.Today()
	if d > today {
		return nil, false, fmt.Errorf("%w: %s", ErrFutureDay, d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.repo.GetHabit(idOrPrefix)
	if err != nil {
		return nil, false, err
	}
	done := s.localize(h).Toggle(d)
	h.Refresh(today)
	if d < today && d >= today-engine.RecentDays {
		h.Recent = engine.RecentWindow(h.Days(), today)
	}
	if err := s.repo.UpsertHabit(h); err != nil {
		return nil, false, err
	}
	s.debug("habit toggled", "id", h.ShortID(), "day", d, "done", done, "streak", h.Streak)
	return h, done, nil
}

// Mark sets completion for day d to done and reports whether it changed.
func (s *Service) Mark(idOrPrefix string, d engine.Day, done bool) (*models.Habit, bool, error) {
	today := s.Today()
	if done && d > today {
		return nil, false, fmt.Errorf("%w: %s", ErrFutureDay, d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.repo.GetHabit(idOrPrefix)
	if err != nil {
		return nil, false, err
	}
	changed := s.localize(h).SetCompleted(d, done)
	h.Refresh(today)
	if d < today && d >= today-engine.RecentDays {
		h.Recent = engine.RecentWindow(h.Days(), today)
	}
	if !changed {
		return h, false, nil
	}
	if err := s.repo.UpsertHabit(h); err != nil {
		return nil, false, err
	}
	return h, true, nil
}

// Import upserts every habit in data and restores its reset marker.
// Timestamp history entries are resolved in the configured location.
func (s *Service) Import(data *storage.ExportData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range data.Habits {
		if h != nil {
			s.localize(h)
		}
	}
	if err := s.repo.ImportData(data); err != nil {
		return err
	}
	s.debug("data imported", "habits", len(data.Habits))
	return nil
}

// Delete removes a habit and its history.
func (s *Service) Delete(idOrPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.DeleteHabit(idOrPrefix)
}

// Detail is a habit with its derived statistics and earned badges.
type Detail struct {
	Habit  *models.Habit  `json:"habit"`
	Stats  engine.Stats   `json:"stats"`
	Badges []engine.Badge `json:"badges"`
}

// Stats summarizes one habit as of today.
func (s *Service) Stats(idOrPrefix string) (*Detail, error) {
	h, err := s.Get(idOrPrefix)
	if err != nil {
		return nil, err
	}
	stats := h.Stats(s.Today())
	return &Detail{Habit: h, Stats: stats, Badges: engine.Badges(stats)}, nil
}

// Week analyzes the seven days ending today across every habit.
func (s *Service) Week() (engine.WeeklyReport, error) {
	habits, err := s.Load()
	if err != nil {
		return engine.WeeklyReport{}, err
	}
	return engine.AnalyzeWeek(models.Subjects(habits), s.Today()), nil
}

// Dashboard summarizes all habits as of today.
func (s *Service) Dashboard() (engine.Dashboard, error) {
	habits, err := s.Load()
	if err != nil {
		return engine.Dashboard{}, err
	}
	return engine.BuildDashboard(models.Subjects(habits), s.Today()), nil
}

// Month builds the calendar grid for one habit.
func (s *Service) Month(idOrPrefix string, year int, month time.Month) (engine.MonthGrid, error) {
	h, err := s.Get(idOrPrefix)
	if err != nil {
		return engine.MonthGrid{}, err
	}
	return engine.BuildMonthGrid(year, month, h.Days(), s.Today()), nil
}

// Coverage builds the all-habits calendar for a month.
func (s *Service) Coverage(year int, month time.Month) (engine.CoverageGrid, error) {
	habits, err := s.Load()
	if err != nil {
		return engine.CoverageGrid{}, err
	}
	return engine.BuildCoverageGrid(year, month, models.Subjects(habits), s.Today()), nil
}

// Heatmap builds the trailing window heat map for one habit.
func (s *Service) Heatmap(idOrPrefix string, window int) (engine.Heatmap, error) {
	if window > engine.MaxHeatmapWindow {
		return engine.Heatmap{}, ErrWindowTooLarge
	}
	h, err := s.Get(idOrPrefix)
	if err != nil {
		return engine.Heatmap{}, err
	}
	return engine.BuildHeatmap(h.Days(), window, s.Today()), nil
}

// Overview aggregates streaks for the coach.
type Overview struct {
	TotalHabits   int
	AverageStreak int
	Consistency   int
}

// Overview computes cross-habit averages as of today.
func (s *Service) Overview(habits []*models.Habit) Overview {
	o := Overview{TotalHabits: len(habits)}
	if len(habits) == 0 {
		return o
	}
	today := s.Today()
	var streaks, rates int
	for _, h := range habits {
		days := h.Days()
		streaks += engine.CurrentStreak(days, today)
		rates += engine.Rate30(days, today)
	}
	o.AverageStreak = streaks / len(habits)
	o.Consistency = rates / len(habits)
	return o
}
