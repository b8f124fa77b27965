// ABOUTME: Per-habit statistics, consistency labels, and achievement badges.
// ABOUTME: Everything is derived from the completion set and a reference day.
package engine

import (
	"fmt"
	"math"
	"time"
)

// Stats is the derived summary shown on a habit's detail view.
type Stats struct {
	Total          int    `json:"totalCompletions"`
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
	Rate7          int    `json:"completionRate7Days"`
	Rate30         int    `json:"completionRate30Days"`
	Last7          int    `json:"last7DaysCompletions"`
	Last30         int    `json:"last30DaysCompletions"`
	BestWeek       int    `json:"bestWeek"`
	BestWeekday    string `json:"bestDay"`
	Consistency    string `json:"consistency"`
	NextCompletion string `json:"predictedNextCompletion"`
	DaysSinceLast  int    `json:"daysSinceLast"`
}

// Summarize computes Stats for one habit as of ref.
func Summarize(days DaySet, ref Day) Stats {
	s := Stats{
		Total:         days.Len(),
		CurrentStreak: CurrentStreak(days, ref),
		LongestStreak: LongestStreak(days),
		Rate7:         Rate7(days, ref),
		Rate30:        Rate30(days, ref),
		Last7:         days.CountBetween(ref-6, ref),
		Last30:        days.CountBetween(ref-29, ref),
		BestWeek:      BestWeek(days),
		BestWeekday:   Placeholder,
		DaysSinceLast: DaysSinceLast(days, ref),
	}
	s.Consistency = ConsistencyLabel(s.Rate30)
	if wd, ok := BestWeekday(days); ok {
		s.BestWeekday = wd.String()
	}
	s.NextCompletion = PredictNext(s.Total, s.Last30)
	return s
}

// BestWeekday returns the weekday with the most completions over the whole
// history. Ties go to the earliest weekday, Sunday first.
func BestWeekday(days DaySet) (time.Weekday, bool) {
	if len(days) == 0 {
		return time.Sunday, false
	}
	var counts [7]int
	for d := range days {
		counts[d.Weekday()]++
	}
	best := time.Sunday
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		if counts[wd] > counts[best] {
			best = wd
		}
	}
	return best, true
}

// ConsistencyLabel grades a thirty-day rate.
func ConsistencyLabel(rate int) string {
	switch {
	case rate >= 80:
		return "Excellent"
	case rate >= 60:
		return "Good"
	case rate >= 40:
		return "Fair"
	default:
		return "Needs Work"
	}
}

// PredictNext estimates when the next completion will happen from the
// average spacing of the last thirty days.
func PredictNext(total, last30 int) string {
	if total < 2 {
		return "Tomorrow"
	}
	if last30 == 0 {
		return "Not recently active"
	}
	gap := 30 / float64(last30)
	switch {
	case gap <= 1.2:
		return "Tomorrow"
	case gap <= 2:
		return "In 2 days"
	default:
		return fmt.Sprintf("In %d days", int(math.Round(gap)))
	}
}

// DaysSinceLast is the number of days between ref and the latest completion
// on or before it, or -1 when there is none.
func DaysSinceLast(days DaySet, ref Day) int {
	last, ok := days.LatestOnOrBefore(ref)
	if !ok {
		return -1
	}
	return int(ref - last)
}

// Badge is an achievement unlocked by a habit.
type Badge struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

var badgeRules = []struct {
	badge Badge
	earn  func(Stats) bool
}{
	{Badge{"First Day", "🌱", "Completed for the first time"}, func(s Stats) bool { return s.Total >= 1 }},
	{Badge{"3-Day Flame", "🔥", "3 days in a row"}, func(s Stats) bool { return s.CurrentStreak >= 3 }},
	{Badge{"Week Warrior", "⚔️", "7 days in a row"}, func(s Stats) bool { return s.CurrentStreak >= 7 }},
	{Badge{"Two Weeks Strong", "💪", "14 days in a row"}, func(s Stats) bool { return s.CurrentStreak >= 14 }},
	{Badge{"Monthly Master", "🏆", "30 days in a row"}, func(s Stats) bool { return s.CurrentStreak >= 30 }},
	{Badge{"Legendary", "👑", "Longest streak of 50 days"}, func(s Stats) bool { return s.LongestStreak >= 50 }},
	{Badge{"Consistent", "⭐", "80% completion over 30 days"}, func(s Stats) bool { return s.Rate30 >= 80 }},
	{Badge{"Perfect Week", "✨", "Every day of one week"}, func(s Stats) bool { return s.BestWeek == 7 }},
}

// Badges lists the achievements earned, in unlock order.
func Badges(s Stats) []Badge {
	out := []Badge{}
	for _, r := range badgeRules {
		if r.earn(s) {
			out = append(out, r.badge)
		}
	}
	return out
}
