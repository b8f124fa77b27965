// ABOUTME: Contribution-style heat map over a trailing window of days.
// ABOUTME: Columns are Monday-first weeks, oldest first, with binary intensity.
package engine

// DefaultHeatmapWindow covers ten weeks.
const DefaultHeatmapWindow = 70

// MaxHeatmapWindow is the largest window accepted from callers, about ten years.
const MaxHeatmapWindow = 3660

// HeatCell is one day slot of a heat map column. Empty marks slots that fall
// outside the window.
type HeatCell struct {
	Date      Day
	Empty     bool
	Completed bool
}

// Heatmap holds week columns; index 0 of each column is Monday.
type Heatmap struct {
	Weeks     [][7]HeatCell
	Start     Day
	End       Day
	Completed int
}

// mondayIndex maps Sunday to 6 and every other weekday to weekday-1.
func mondayIndex(d Day) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

func emptyColumn() [7]HeatCell {
	var col [7]HeatCell
	for i := range col {
		col[i].Empty = true
	}
	return col
}

// BuildHeatmap buckets the windowDays days ending at ref into week columns.
// A non-positive window falls back to DefaultHeatmapWindow.
func BuildHeatmap(days DaySet, windowDays int, ref Day) Heatmap {
	if windowDays <= 0 {
		windowDays = DefaultHeatmapWindow
	}
	start := ref - Day(windowDays-1)
	hm := Heatmap{Start: start, End: ref}

	col := emptyColumn()
	for d := start; d <= ref; d++ {
		idx := mondayIndex(d)
		done := days.Has(d)
		col[idx] = HeatCell{Date: d, Completed: done}
		if done {
			hm.Completed++
		}
		if idx == 6 || d == ref {
			hm.Weeks = append(hm.Weeks, col)
			col = emptyColumn()
		}
	}
	return hm
}
