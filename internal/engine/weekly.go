// ABOUTME: Cross-habit analysis of the trailing seven days.
// ABOUTME: Produces per-habit rates, best/worst weekday, and a stable week key.
package engine

import (
	"fmt"
	"math"
	"time"
)

// Placeholder fills name fields when there is nothing to report.
const Placeholder = "N/A"

// HabitWeek is one habit's slice of the weekly report.
type HabitWeek struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	CompletionCount int      `json:"completionCount"`
	CompletionRate  int      `json:"completionRate"`
	CompletedDays   []string `json:"completedDays"`
	MissedDays      []string `json:"missedDays"`
}

// WeeklyReport aggregates the last seven days across all habits.
type WeeklyReport struct {
	WeekID              string      `json:"weekId"`
	WeekStart           string      `json:"weekStartDate"`
	WeekEnd             string      `json:"weekEndDate"`
	Habits              []HabitWeek `json:"habits"`
	CompletionsByDay    [7]int      `json:"completionsByDay"`
	AvgCompletionRate   int         `json:"avgCompletionRate"`
	BestDay             string      `json:"bestDay"`
	BestDayCompletions  int         `json:"bestDayCompletions"`
	WorstDay            string      `json:"worstDay"`
	WorstDayCompletions int         `json:"worstDayCompletions"`
	MostConsistentHabit string      `json:"mostConsistentHabit"`
	NeedsImprovement    string      `json:"needsImprovement"`
	TotalHabits         int         `json:"totalHabits"`
	TotalCompletions    int         `json:"totalCompletions"`
}

// AnalyzeWeek reports on the seven days ending at ref. CompletionsByDay is
// indexed Sunday through Saturday. Ties for best and worst day go to the
// earliest weekday in that order; ties between habits go to the earliest
// habit in the input.
func AnalyzeWeek(subjects []Subject, ref Day) WeeklyReport {
	start := ref - 6
	report := WeeklyReport{
		WeekID:              WeekID(ref),
		WeekStart:           start.String(),
		WeekEnd:             ref.String(),
		Habits:              []HabitWeek{},
		BestDay:             Placeholder,
		WorstDay:            Placeholder,
		MostConsistentHabit: Placeholder,
		NeedsImprovement:    Placeholder,
	}
	if len(subjects) == 0 {
		return report
	}

	rateSum := 0
	best, worst := -1, -1
	for _, s := range subjects {
		hw := HabitWeek{
			ID:            s.ID,
			Name:          s.Name,
			CompletedDays: []string{},
			MissedDays:    []string{},
		}
		for d := start; d <= ref; d++ {
			name := d.Weekday().String()
			if s.Days.Has(d) {
				hw.CompletionCount++
				hw.CompletedDays = append(hw.CompletedDays, name)
				report.CompletionsByDay[d.Weekday()]++
			} else {
				hw.MissedDays = append(hw.MissedDays, name)
			}
		}
		hw.CompletionRate = percent(hw.CompletionCount, 7)
		rateSum += hw.CompletionRate
		report.TotalCompletions += hw.CompletionCount

		i := len(report.Habits)
		if best < 0 || hw.CompletionRate > report.Habits[best].CompletionRate {
			best = i
		}
		if worst < 0 || hw.CompletionRate < report.Habits[worst].CompletionRate {
			worst = i
		}
		report.Habits = append(report.Habits, hw)
	}

	report.TotalHabits = len(subjects)
	report.AvgCompletionRate = int(math.Round(float64(rateSum) / float64(len(subjects))))
	report.MostConsistentHabit = report.Habits[best].Name
	report.NeedsImprovement = report.Habits[worst].Name

	bestDay, worstDay := time.Sunday, time.Sunday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if report.CompletionsByDay[wd] > report.CompletionsByDay[bestDay] {
			bestDay = wd
		}
		if report.CompletionsByDay[wd] < report.CompletionsByDay[worstDay] {
			worstDay = wd
		}
	}
	report.BestDay = bestDay.String()
	report.BestDayCompletions = report.CompletionsByDay[bestDay]
	report.WorstDay = worstDay.String()
	report.WorstDayCompletions = report.CompletionsByDay[worstDay]

	return report
}

// WeekID returns a YYYY-Www key for the Sunday-start week of the year that
// contains d: ceil((days since Jan 1 + weekday of Jan 1 + 1) / 7).
func WeekID(d Day) string {
	year, _, _ := d.Date()
	jan1 := Date(year, time.January, 1)
	elapsed := int(d - jan1)
	week := (elapsed + int(jan1.Weekday()) + 1 + 6) / 7
	return fmt.Sprintf("%d-W%02d", year, week)
}
