// ABOUTME: Tests for the all-habits dashboard, progress tiers, and daily quote.
// ABOUTME: Uses a fixed five-habit week to pin every aggregate.
package engine

import (
	"reflect"
	"testing"
)

func TestBuildDashboard(t *testing.T) {
	ref := mustDay(t, "2024-01-07")
	subjects := []Subject{
		{ID: "r", Name: "Run", Days: NewDaySet([]string{
			"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07",
		})},
		{ID: "b", Name: "Read", Days: NewDaySet([]string{"2024-01-05", "2024-01-06"})},
		{ID: "w", Name: "Write", Days: NewDaySet([]string{"2023-12-01", "2024-01-07"})},
		{ID: "s", Name: "Swim", Days: NewDaySet([]string{"2023-12-25"})},
		{ID: "y", Name: "Yoga", Days: DaySet{}},
	}

	d := BuildDashboard(subjects, ref)

	checks := []struct {
		name      string
		got, want int
	}{
		{"TotalHabits", d.TotalHabits, 5},
		{"CompletedToday", d.CompletedToday, 2},
		{"PendingToday", d.PendingToday, 3},
		{"CompletionRate", d.CompletionRate, 40},
		{"WeekRate", d.WeekRate, 29},
		{"AverageStreak", d.AverageStreak, 2},
		{"LongestStreak", d.LongestStreak, 7},
		{"HabitsOnFire", d.HabitsOnFire, 1},
		{"TotalCompletions", d.TotalCompletions, 12},
		{"ConsistencyScore", d.ConsistencyScore, 60},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if d.BestHabit != "Run" || d.Date != "2024-01-07" {
		t.Errorf("best/date = %s/%s", d.BestHabit, d.Date)
	}
	wantTop := []DashboardHabit{{"r", "Run", 7}, {"b", "Read", 2}, {"w", "Write", 1}}
	if !reflect.DeepEqual(d.TopHabits, wantTop) {
		t.Errorf("TopHabits = %v", d.TopHabits)
	}
	wantLagging := []DashboardHabit{{"b", "Read", 2}, {"s", "Swim", 0}, {"y", "Yoga", 0}}
	if !reflect.DeepEqual(d.NeedsAttention, wantLagging) {
		t.Errorf("NeedsAttention = %v", d.NeedsAttention)
	}
	if d.Emoji != "🌟" {
		t.Errorf("emoji = %s, want the 25%% tier", d.Emoji)
	}
}

func TestBuildDashboardTiesKeepInputOrder(t *testing.T) {
	ref := mustDay(t, "2024-01-07")
	days := []string{"2024-01-05", "2024-01-06", "2024-01-07"}
	subjects := []Subject{
		{ID: "1", Name: "First", Days: NewDaySet(days)},
		{ID: "2", Name: "Second", Days: NewDaySet(days)},
		{ID: "3", Name: "Third", Days: NewDaySet([]string{"2024-01-07"})},
		{ID: "4", Name: "Fourth", Days: NewDaySet(days)},
	}

	d := BuildDashboard(subjects, ref)

	if d.BestHabit != "First" {
		t.Errorf("best = %s, want the first of the tied habits", d.BestHabit)
	}
	var names []string
	for _, h := range d.TopHabits {
		names = append(names, h.Name)
	}
	if !reflect.DeepEqual(names, []string{"First", "Second", "Fourth"}) {
		t.Errorf("top = %v", names)
	}
	if d.CompletionRate != 100 || d.Message != "Perfect day! All habits completed!" {
		t.Errorf("rate/message = %d/%s", d.CompletionRate, d.Message)
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(nil, mustDay(t, "2024-01-07"))

	if d.TotalHabits != 0 || d.CompletionRate != 0 || d.WeekRate != 0 || d.AverageStreak != 0 {
		t.Errorf("empty dashboard = %+v", d)
	}
	if d.BestHabit != Placeholder {
		t.Errorf("best = %s, want %s", d.BestHabit, Placeholder)
	}
	if d.TopHabits == nil || d.NeedsAttention == nil {
		t.Error("lists should be empty, not nil")
	}
	if d.Emoji != "🎯" {
		t.Errorf("emoji = %s", d.Emoji)
	}
}

func TestProgressMessage(t *testing.T) {
	tests := []struct {
		rate, completed int
		want            string
	}{
		{100, 4, "🎉"},
		{75, 3, "🔥"},
		{74, 3, "💪"},
		{50, 2, "💪"},
		{25, 1, "🌟"},
		{24, 1, "👍"},
		{0, 0, "🎯"},
	}

	for _, tt := range tests {
		emoji, msg := ProgressMessage(tt.rate, tt.completed)
		if emoji != tt.want || msg == "" {
			t.Errorf("ProgressMessage(%d, %d) = %s %q, want %s", tt.rate, tt.completed, emoji, msg, tt.want)
		}
	}
}

func TestQuoteOfTheDay(t *testing.T) {
	tests := []struct {
		day    Day
		author string
	}{
		{0, "Robert Collier"},
		{20, "Robert Collier"},
		{mustDay(t, "2024-01-07"), "Robin Sharma"},
		{-1, "Unknown"},
	}

	for _, tt := range tests {
		if got := QuoteOfTheDay(tt.day); got.Author != tt.author {
			t.Errorf("QuoteOfTheDay(%d) = %+v, want author %s", tt.day, got, tt.author)
		}
	}
	if QuoteOfTheDay(1) == QuoteOfTheDay(2) {
		t.Error("consecutive days should rotate quotes")
	}
}
