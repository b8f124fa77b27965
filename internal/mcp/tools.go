// ABOUTME: MCP tool implementations for habits.
// ABOUTME: Provides habit CRUD, toggling, statistics, calendars, and coaching.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/coach"
	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Create a new daily habit",
	}, s.handleAddHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List all habits with today's status and current streak",
	}, s.handleListHabits)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_habit",
		Description: "Toggle a habit's completion for today or a past date",
	}, s.handleToggleHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "edit_habit",
		Description: "Change a habit's name, description, or color",
	}, s.handleEditHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_habit",
		Description: "Delete a habit and its completion history",
	}, s.handleDeleteHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "habit_stats",
		Description: "Get streaks, completion rates, and badges for one habit",
	}, s.handleHabitStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weekly_report",
		Description: "Analyze the last seven days across all habits",
	}, s.handleWeeklyReport)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "dashboard",
		Description: "Summarize today across all habits: progress, streak leaders, habits still open, and a quote",
	}, s.handleDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "month_calendar",
		Description: "Get a month calendar for one habit, or coverage across all habits",
	}, s.handleMonthCalendar)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "motivate",
		Description: "Get a short motivational message for a habit",
	}, s.handleMotivate)
}

// Tool input/output types

type addHabitInput struct {
	Name        string `json:"name" jsonschema:"Habit name, 2 to 50 characters"`
	Description string `json:"description,omitempty" jsonschema:"Optional description, up to 200 characters"`
	Color       string `json:"color,omitempty" jsonschema:"Hex color such as #0ea5e9"`
}

type habitOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type listHabitsInput struct{}

type habitSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Color          string `json:"color"`
	CompletedToday bool   `json:"completed_today"`
	Streak         int    `json:"streak"`
	Recent         string `json:"recent"`
}

type listHabitsOutput struct {
	Date    string         `json:"date"`
	Count   int            `json:"count"`
	Done    int            `json:"done"`
	Habits  []habitSummary `json:"habits"`
	Message string         `json:"message,omitempty"`
}

type toggleHabitInput struct {
	ID   string `json:"id" jsonschema:"Habit ID or ID prefix"`
	Date string `json:"date,omitempty" jsonschema:"Day to toggle as YYYY-MM-DD, defaults to today"`
}

type toggleHabitOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Streak    int    `json:"streak"`
	Message   string `json:"message"`
}

type editHabitInput struct {
	ID          string `json:"id" jsonschema:"Habit ID or ID prefix"`
	Name        string `json:"name,omitempty" jsonschema:"New name, keeps the current one when empty"`
	Description string `json:"description,omitempty" jsonschema:"New description"`
	Color       string `json:"color,omitempty" jsonschema:"New hex color"`
}

type habitIDInput struct {
	ID string `json:"id" jsonschema:"Habit ID or ID prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type monthCalendarInput struct {
	ID    string `json:"id,omitempty" jsonschema:"Habit ID or prefix, omit for all habits"`
	Year  int    `json:"year,omitempty" jsonschema:"Year, defaults to the current year"`
	Month int    `json:"month,omitempty" jsonschema:"Month 1-12, defaults to the current month"`
}

type calendarDay struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Today     bool   `json:"today,omitempty"`
	Done      int    `json:"done,omitempty"`
	Total     int    `json:"total,omitempty"`
	Percent   int    `json:"percent,omitempty"`
}

type monthCalendarOutput struct {
	Habit     string        `json:"habit,omitempty"`
	Year      int           `json:"year"`
	Month     string        `json:"month"`
	Days      []calendarDay `json:"days"`
	Completed int           `json:"completed"`
}

type motivateOutput struct {
	Habit     string `json:"habit"`
	Message   string `json:"message"`
	Generated bool   `json:"generated"`
}

func summarize(h *models.Habit) habitSummary {
	return habitSummary{
		ID:             h.ShortID(),
		Name:           h.Name,
		Description:    h.Description,
		Color:          h.Color,
		CompletedToday: h.CompletedToday,
		Streak:         h.Streak,
		Recent:         h.Recent.String(),
	}
}

// Tool handlers

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input addHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.svc.Add(models.HabitInput{
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
	})
	if err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to add habit: %w", err)
	}

	return nil, habitOutput{
		ID:      h.ShortID(),
		Name:    h.Name,
		Message: fmt.Sprintf("Added habit %q (ID: %s)", h.Name, h.ShortID()),
	}, nil
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, listHabitsOutput, error) {
	habits, err := s.svc.Load()
	if err != nil {
		return nil, listHabitsOutput{}, fmt.Errorf("failed to list habits: %w", err)
	}

	out := listHabitsOutput{
		Date:   s.svc.Today().String(),
		Count:  len(habits),
		Habits: make([]habitSummary, 0, len(habits)),
	}
	for _, h := range habits {
		out.Habits = append(out.Habits, summarize(h))
		if h.CompletedToday {
			out.Done++
		}
	}
	if len(habits) == 0 {
		out.Message = "No habits yet."
	}
	return nil, out, nil
}

func (s *Server) handleToggleHabit(ctx context.Context, req *mcp.CallToolRequest, input toggleHabitInput) (*mcp.CallToolResult, toggleHabitOutput, error) {
	day := s.svc.Today()
	if strings.TrimSpace(input.Date) != "" {
		d, err := engine.ParseDay(input.Date)
		if err != nil {
			return nil, toggleHabitOutput{}, fmt.Errorf("invalid date %q: %w", input.Date, err)
		}
		day = d
	}

	h, done, err := s.svc.ToggleOn(input.ID, day)
	if err != nil {
		return nil, toggleHabitOutput{}, fmt.Errorf("failed to toggle habit: %w", err)
	}

	verb := "Unmarked"
	if done {
		verb = "Completed"
	}
	return nil, toggleHabitOutput{
		ID:        h.ShortID(),
		Name:      h.Name,
		Date:      day.String(),
		Completed: done,
		Streak:    h.Streak,
		Message:   fmt.Sprintf("%s %s for %s (streak: %d)", verb, h.Name, day, h.Streak),
	}, nil
}

func (s *Server) handleEditHabit(ctx context.Context, req *mcp.CallToolRequest, input editHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	current, err := s.svc.Get(input.ID)
	if err != nil {
		return nil, habitOutput{}, fmt.Errorf("lookup %s: %w", input.ID, err)
	}

	in := models.HabitInput{
		Name:        current.Name,
		Description: current.Description,
		Color:       input.Color,
	}
	if input.Name != "" {
		in.Name = input.Name
	}
	if input.Description != "" {
		in.Description = input.Description
	}

	h, err := s.svc.Edit(current.ID.String(), in)
	if err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to edit habit: %w", err)
	}
	return nil, habitOutput{
		ID:      h.ShortID(),
		Name:    h.Name,
		Message: fmt.Sprintf("Updated habit %q", h.Name),
	}, nil
}

func (s *Server) handleDeleteHabit(ctx context.Context, req *mcp.CallToolRequest, input habitIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.Delete(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete habit: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted habit: %s", input.ID),
	}, nil
}

func (s *Server) handleHabitStats(ctx context.Context, req *mcp.CallToolRequest, input habitIDInput) (*mcp.CallToolResult, any, error) {
	detail, err := s.svc.Stats(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup %s: %w", input.ID, err)
	}

	return nil, map[string]any{
		"habit":  summarize(detail.Habit),
		"stats":  detail.Stats,
		"badges": detail.Badges,
	}, nil
}

func (s *Server) handleWeeklyReport(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, any, error) {
	report, err := s.svc.Week()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build weekly report: %w", err)
	}
	return nil, report, nil
}

func (s *Server) handleDashboard(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, engine.Dashboard, error) {
	d, err := s.svc.Dashboard()
	if err != nil {
		return nil, engine.Dashboard{}, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return nil, d, nil
}

func (s *Server) handleMonthCalendar(ctx context.Context, req *mcp.CallToolRequest, input monthCalendarInput) (*mcp.CallToolResult, monthCalendarOutput, error) {
	year, month, _ := s.svc.Today().Date()
	if input.Year > 0 {
		year = input.Year
	}
	if input.Month != 0 {
		if input.Month < 1 || input.Month > 12 {
			return nil, monthCalendarOutput{}, fmt.Errorf("month must be between 1 and 12, got %d", input.Month)
		}
		month = time.Month(input.Month)
	}

	out := monthCalendarOutput{Year: year, Month: month.String(), Days: []calendarDay{}}

	if input.ID == "" {
		grid, err := s.svc.Coverage(year, month)
		if err != nil {
			return nil, monthCalendarOutput{}, fmt.Errorf("failed to build calendar: %w", err)
		}
		for _, row := range grid.Weeks {
			for _, c := range row {
				if !c.InMonth {
					continue
				}
				out.Days = append(out.Days, calendarDay{
					Date:      c.Date.String(),
					Completed: c.Completed,
					Today:     c.IsToday,
					Done:      c.Coverage.Completed,
					Total:     c.Coverage.Total,
					Percent:   c.Coverage.Percent,
				})
				if c.Completed {
					out.Completed++
				}
			}
		}
		return nil, out, nil
	}

	h, err := s.svc.Get(input.ID)
	if err != nil {
		return nil, monthCalendarOutput{}, fmt.Errorf("lookup %s: %w", input.ID, err)
	}
	grid, err := s.svc.Month(h.ID.String(), year, month)
	if err != nil {
		return nil, monthCalendarOutput{}, fmt.Errorf("failed to build calendar: %w", err)
	}
	out.Habit = h.Name
	for _, c := range grid.Cells() {
		if !c.InMonth {
			continue
		}
		out.Days = append(out.Days, calendarDay{
			Date:      c.Date.String(),
			Completed: c.Completed,
			Today:     c.IsToday,
		})
		if c.Completed {
			out.Completed++
		}
	}
	return nil, out, nil
}

func (s *Server) handleMotivate(ctx context.Context, req *mcp.CallToolRequest, input habitIDInput) (*mcp.CallToolResult, motivateOutput, error) {
	detail, err := s.svc.Stats(input.ID)
	if err != nil {
		return nil, motivateOutput{}, fmt.Errorf("lookup %s: %w", input.ID, err)
	}
	habits, err := s.svc.Load()
	if err != nil {
		return nil, motivateOutput{}, fmt.Errorf("failed to load habits: %w", err)
	}
	overview := s.svc.Overview(habits)

	res := s.coach.Motivate(ctx, coach.MotivationContext{
		Name:          detail.Habit.Name,
		Streak:        detail.Stats.CurrentStreak,
		Rate:          detail.Stats.Rate30,
		TotalHabits:   overview.TotalHabits,
		AverageStreak: overview.AverageStreak,
		Consistency:   overview.Consistency,
	})
	return nil, motivateOutput{
		Habit:     detail.Habit.Name,
		Message:   res.Text,
		Generated: res.Generated,
	}, nil
}
