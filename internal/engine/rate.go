// ABOUTME: Rolling-window completion rates and Sunday-start weekly buckets.
// ABOUTME: Rates always divide by the full window, even for young habits.
package engine

import "math"

// CompletionRate returns the percentage of the windowDays days ending at ref
// (inclusive) that appear in days. The result is always in [0, 100].
func CompletionRate(days DaySet, windowDays int, ref Day) int {
	if windowDays <= 0 {
		return 0
	}
	n := days.CountBetween(ref-Day(windowDays-1), ref)
	return percent(n, windowDays)
}

// Rate7 is the trailing seven-day completion rate.
func Rate7(days DaySet, ref Day) int {
	return CompletionRate(days, 7, ref)
}

// Rate30 is the trailing thirty-day completion rate.
func Rate30(days DaySet, ref Day) int {
	return CompletionRate(days, 30, ref)
}

// percent rounds n/d to the nearest whole percent, clamped to [0, 100].
func percent(n, d int) int {
	if d <= 0 || n <= 0 {
		return 0
	}
	p := int(math.Round(float64(n) * 100 / float64(d)))
	if p > 100 {
		return 100
	}
	return p
}

// WeekBucket is the completion total for one Sunday-start week.
type WeekBucket struct {
	Start Day
	Count int
}

// WeekBuckets returns the last n weeks ending with the week containing ref,
// oldest first.
func WeekBuckets(days DaySet, weeks int, ref Day) []WeekBucket {
	if weeks <= 0 {
		return nil
	}
	current := ref.WeekStart()
	out := make([]WeekBucket, weeks)
	for i := 0; i < weeks; i++ {
		start := current - Day(7*(weeks-1-i))
		out[i] = WeekBucket{Start: start, Count: days.CountBetween(start, start+6)}
	}
	return out
}

// BestWeek returns the highest number of completions recorded in any single
// Sunday-start week.
func BestWeek(days DaySet) int {
	counts := make(map[Day]int)
	best := 0
	for d := range days {
		ws := d.WeekStart()
		counts[ws]++
		if counts[ws] > best {
			best = counts[ws]
		}
	}
	return best
}
