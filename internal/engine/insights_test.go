// ABOUTME: Tests for habit summaries, labels, predictions, and badges.
// ABOUTME: Thresholds follow the detail and insights views.
package engine

import (
	"testing"
	"time"
)

func runOf(start Day, n int) DaySet {
	set := DaySet{}
	for i := 0; i < n; i++ {
		set.Add(start + Day(i))
	}
	return set
}

func TestSummarize(t *testing.T) {
	ref := mustDay(t, "2024-01-31")
	days := runOf(mustDay(t, "2024-01-22"), 10) // 01-22 .. 01-31

	s := Summarize(days, ref)

	if s.Total != 10 || s.CurrentStreak != 10 || s.LongestStreak != 10 {
		t.Errorf("totals = %+v", s)
	}
	if s.Rate7 != 100 || s.Rate30 != 33 {
		t.Errorf("rates = %d/%d, want 100/33", s.Rate7, s.Rate30)
	}
	if s.Last7 != 7 || s.Last30 != 10 {
		t.Errorf("window counts = %d/%d", s.Last7, s.Last30)
	}
	// 01-22 is a Monday, so the best Sunday-start week holds six days.
	if s.BestWeek != 6 {
		t.Errorf("BestWeek = %d, want 6", s.BestWeek)
	}
	if s.Consistency != "Needs Work" {
		t.Errorf("Consistency = %s", s.Consistency)
	}
	if s.NextCompletion != "In 3 days" {
		t.Errorf("NextCompletion = %s", s.NextCompletion)
	}
	if s.DaysSinceLast != 0 {
		t.Errorf("DaysSinceLast = %d", s.DaysSinceLast)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(DaySet{}, mustDay(t, "2024-01-31"))
	if s.Total != 0 || s.BestWeekday != Placeholder || s.DaysSinceLast != -1 || s.NextCompletion != "Tomorrow" {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestBestWeekday(t *testing.T) {
	// Two Mondays, two Wednesdays: tie goes to Monday.
	days := NewDaySet([]string{"2024-01-01", "2024-01-08", "2024-01-03", "2024-01-10", "2024-01-05"})
	wd, ok := BestWeekday(days)
	if !ok || wd != time.Monday {
		t.Errorf("BestWeekday = %v, %v", wd, ok)
	}
	if _, ok := BestWeekday(DaySet{}); ok {
		t.Error("expected no best weekday for empty history")
	}
}

func TestConsistencyLabel(t *testing.T) {
	tests := map[int]string{100: "Excellent", 80: "Excellent", 79: "Good", 60: "Good", 59: "Fair", 40: "Fair", 39: "Needs Work", 0: "Needs Work"}
	for rate, want := range tests {
		if got := ConsistencyLabel(rate); got != want {
			t.Errorf("ConsistencyLabel(%d) = %s, want %s", rate, got, want)
		}
	}
}

func TestPredictNext(t *testing.T) {
	tests := []struct {
		total, last30 int
		want          string
	}{
		{0, 0, "Tomorrow"},
		{1, 1, "Tomorrow"},
		{40, 30, "Tomorrow"},
		{40, 25, "Tomorrow"},
		{40, 20, "In 2 days"},
		{40, 15, "In 2 days"},
		{40, 10, "In 3 days"},
		{40, 4, "In 8 days"},
		{40, 0, "Not recently active"},
	}
	for _, tt := range tests {
		if got := PredictNext(tt.total, tt.last30); got != tt.want {
			t.Errorf("PredictNext(%d, %d) = %s, want %s", tt.total, tt.last30, got, tt.want)
		}
	}
}

func TestBadges(t *testing.T) {
	names := func(bs []Badge) map[string]bool {
		m := map[string]bool{}
		for _, b := range bs {
			m[b.Name] = true
		}
		return m
	}

	if got := Badges(Stats{}); len(got) != 0 {
		t.Errorf("no activity should earn nothing, got %v", got)
	}

	got := names(Badges(Stats{Total: 20, CurrentStreak: 7, LongestStreak: 7, Rate30: 50, BestWeek: 7}))
	for _, want := range []string{"First Day", "3-Day Flame", "Week Warrior", "Perfect Week"} {
		if !got[want] {
			t.Errorf("missing badge %q in %v", want, got)
		}
	}
	for _, absent := range []string{"Two Weeks Strong", "Monthly Master", "Legendary", "Consistent"} {
		if got[absent] {
			t.Errorf("unexpected badge %q", absent)
		}
	}

	all := Badges(Stats{Total: 60, CurrentStreak: 30, LongestStreak: 50, Rate30: 100, BestWeek: 7})
	if len(all) != 8 {
		t.Errorf("expected all 8 badges, got %d", len(all))
	}
}
