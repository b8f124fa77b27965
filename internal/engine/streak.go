// ABOUTME: Current and longest streak calculation over a completion set.
// ABOUTME: A streak survives until one full day passes with no completion.
package engine

// CurrentStreak counts consecutive completed days ending at ref, or ending
// at the day before ref when ref itself has not been completed yet.
// It returns 0 once the latest completion on or before ref is two or more
// days old. Completions after ref are ignored.
func CurrentStreak(days DaySet, ref Day) int {
	if len(days) == 0 {
		return 0
	}

	start := ref
	if !days.Has(ref) {
		start = ref - 1
	}
	if !days.Has(start) {
		return 0
	}

	count := 0
	for d := start; days.Has(d); d-- {
		count++
	}
	return count
}

// LongestStreak returns the longest run of consecutive days in the set.
func LongestStreak(days DaySet) int {
	sorted := days.Sorted()
	if len(sorted) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
