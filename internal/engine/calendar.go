// ABOUTME: Month calendar grids for one habit and coverage grids across habits.
// ABOUTME: Grids are always 6 Sunday-first rows of 7 cells.
package engine

import "time"

const (
	GridRows = 6
	GridCols = 7
)

// Cell is one square of a month grid. Padding cells from the neighbouring
// months keep their Date but report Day 0 and never count as completed.
type Cell struct {
	Date      Day
	Day       int
	InMonth   bool
	Completed bool
	IsToday   bool
}

// MonthGrid is a 42-cell calendar page.
type MonthGrid struct {
	Year  int
	Month time.Month
	Weeks [GridRows][GridCols]Cell
}

// Cells flattens the grid row by row.
func (g MonthGrid) Cells() []Cell {
	out := make([]Cell, 0, GridRows*GridCols)
	for _, row := range g.Weeks {
		out = append(out, row[:]...)
	}
	return out
}

// gridStart returns the Sunday that opens the grid for a month.
func gridStart(year int, month time.Month) (Day, int, time.Month) {
	first := Date(year, month, 1)
	y, m, _ := first.Date()
	return first.WeekStart(), y, m
}

// BuildMonthGrid lays out a month with leading and trailing padding so every
// row is complete.
func BuildMonthGrid(year int, month time.Month, days DaySet, ref Day) MonthGrid {
	start, y, m := gridStart(year, month)
	grid := MonthGrid{Year: y, Month: m}

	for i := 0; i < GridRows*GridCols; i++ {
		d := start + Day(i)
		_, dm, dd := d.Date()
		cell := Cell{Date: d}
		if dm == m {
			cell.InMonth = true
			cell.Day = dd
			cell.Completed = days.Has(d)
			cell.IsToday = d == ref
		}
		grid.Weeks[i/GridCols][i%GridCols] = cell
	}
	return grid
}

// ShiftMonth moves delta months from (year, month), rolling over years.
func ShiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Subject is the engine's read-only view of a habit for cross-habit analysis.
type Subject struct {
	ID   string
	Name string
	Days DaySet
}

// Coverage summarizes how many habits were completed on one day.
type Coverage struct {
	Completed int
	Total     int
	Percent   int
	Level     int
}

// DayCoverage counts completions across subjects on day d. Level buckets the
// percentage into 0 (none), 1 (up to 25), 2 (up to 50), 3 (up to 75) and 4.
func DayCoverage(subjects []Subject, d Day) Coverage {
	c := Coverage{Total: len(subjects)}
	for _, s := range subjects {
		if s.Days.Has(d) {
			c.Completed++
		}
	}
	c.Percent = percent(c.Completed, c.Total)
	c.Level = coverageLevel(c.Percent)
	return c
}

func coverageLevel(p int) int {
	switch {
	case p <= 0:
		return 0
	case p <= 25:
		return 1
	case p <= 50:
		return 2
	case p <= 75:
		return 3
	default:
		return 4
	}
}

// CoverageCell is a month grid square annotated with multi-habit coverage.
type CoverageCell struct {
	Cell
	Coverage Coverage
}

// CoverageGrid is a month page showing all habits at once.
type CoverageGrid struct {
	Year  int
	Month time.Month
	Weeks [GridRows][GridCols]CoverageCell
}

// BuildCoverageGrid lays out a month where each in-month cell carries the
// coverage of all subjects on that day.
func BuildCoverageGrid(year int, month time.Month, subjects []Subject, ref Day) CoverageGrid {
	start, y, m := gridStart(year, month)
	grid := CoverageGrid{Year: y, Month: m}

	for i := 0; i < GridRows*GridCols; i++ {
		d := start + Day(i)
		_, dm, dd := d.Date()
		cell := CoverageCell{Cell: Cell{Date: d}}
		if dm == m {
			cell.InMonth = true
			cell.Day = dd
			cell.IsToday = d == ref
			cell.Coverage = DayCoverage(subjects, d)
			cell.Completed = cell.Coverage.Total > 0 && cell.Coverage.Completed == cell.Coverage.Total
		}
		grid.Weeks[i/GridCols][i%GridCols] = cell
	}
	return grid
}

// YearOverview builds the twelve coverage grids of a year.
func YearOverview(year int, subjects []Subject, ref Day) [12]CoverageGrid {
	var out [12]CoverageGrid
	for i := range out {
		out[i] = BuildCoverageGrid(year, time.Month(i+1), subjects, ref)
	}
	return out
}
