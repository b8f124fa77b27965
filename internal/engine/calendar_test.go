// ABOUTME: Tests for month grids, month navigation, and multi-habit coverage.
// ABOUTME: Checks padding, today marking, and year rollover.
package engine

import (
	"testing"
	"time"
)

func TestBuildMonthGridPadding(t *testing.T) {
	grid := BuildMonthGrid(2024, time.January, DaySet{}, mustDay(t, "2024-01-15"))

	cells := grid.Cells()
	if len(cells) != 42 {
		t.Fatalf("expected 42 cells, got %d", len(cells))
	}
	if cells[0].Date.String() != "2023-12-31" || cells[0].InMonth || cells[0].Day != 0 {
		t.Errorf("leading cell = %+v", cells[0])
	}
	if cells[1].Day != 1 || !cells[1].InMonth {
		t.Errorf("first day cell = %+v", cells[1])
	}
	if cells[31].Day != 31 {
		t.Errorf("last in-month cell = %+v", cells[31])
	}
	if cells[41].Date.String() != "2024-02-10" || cells[41].InMonth {
		t.Errorf("trailing cell = %+v", cells[41])
	}

	inMonth := 0
	for _, c := range cells {
		if c.Completed {
			t.Errorf("cell %s completed in an empty history", c.Date)
		}
		if c.InMonth {
			inMonth++
		}
	}
	if inMonth != 31 {
		t.Errorf("in-month cells = %d, want 31", inMonth)
	}
}

func TestBuildMonthGridMarksCompletionsAndToday(t *testing.T) {
	days := NewDaySet([]string{"2024-02-29", "2024-02-01", "2024-03-01"})
	grid := BuildMonthGrid(2024, time.February, days, mustDay(t, "2024-02-29"))

	var completed, today []string
	for _, c := range grid.Cells() {
		if c.Completed {
			completed = append(completed, c.Date.String())
		}
		if c.IsToday {
			today = append(today, c.Date.String())
		}
	}
	if len(completed) != 2 || completed[0] != "2024-02-01" || completed[1] != "2024-02-29" {
		t.Errorf("completed = %v; padding days must not be marked", completed)
	}
	if len(today) != 1 || today[0] != "2024-02-29" {
		t.Errorf("today = %v", today)
	}
	// February 2024 starts on Thursday.
	if grid.Weeks[0][4].Day != 1 {
		t.Errorf("Feb 1 should sit in column 4, got row %+v", grid.Weeks[0])
	}
}

func TestShiftMonth(t *testing.T) {
	tests := []struct {
		year      int
		month     time.Month
		delta     int
		wantYear  int
		wantMonth time.Month
	}{
		{2024, time.January, -1, 2023, time.December},
		{2023, time.December, 1, 2024, time.January},
		{2024, time.March, 0, 2024, time.March},
		{2024, time.November, 14, 2026, time.January},
		{2024, time.February, -26, 2021, time.December},
	}
	for _, tt := range tests {
		y, m := ShiftMonth(tt.year, tt.month, tt.delta)
		if y != tt.wantYear || m != tt.wantMonth {
			t.Errorf("ShiftMonth(%d, %v, %d) = %d %v, want %d %v",
				tt.year, tt.month, tt.delta, y, m, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestDayCoverage(t *testing.T) {
	d := mustDay(t, "2024-01-02")
	subjects := []Subject{
		{ID: "a", Name: "Read", Days: NewDaySet([]string{"2024-01-02"})},
		{ID: "b", Name: "Run", Days: NewDaySet([]string{"2024-01-01"})},
		{ID: "c", Name: "Write", Days: NewDaySet([]string{"2024-01-02"})},
	}

	c := DayCoverage(subjects, d)
	if c.Completed != 2 || c.Total != 3 || c.Percent != 67 || c.Level != 3 {
		t.Errorf("coverage = %+v", c)
	}
	if c := DayCoverage(nil, d); c.Total != 0 || c.Percent != 0 || c.Level != 0 {
		t.Errorf("coverage of no habits = %+v", c)
	}
}

func TestCoverageLevel(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 25: 1, 26: 2, 50: 2, 51: 3, 75: 3, 76: 4, 100: 4}
	for p, want := range tests {
		if got := coverageLevel(p); got != want {
			t.Errorf("coverageLevel(%d) = %d, want %d", p, got, want)
		}
	}
}

func TestYearOverview(t *testing.T) {
	subjects := []Subject{{ID: "a", Name: "Read", Days: NewDaySet([]string{"2024-07-04"})}}
	year := YearOverview(2024, subjects, mustDay(t, "2024-07-04"))

	if year[0].Month != time.January || year[11].Month != time.December {
		t.Fatalf("months = %v .. %v", year[0].Month, year[11].Month)
	}
	found := false
	for _, row := range year[6].Weeks {
		for _, c := range row {
			if c.InMonth && c.Day == 4 {
				found = true
				if !c.Completed || c.Coverage.Level != 4 || !c.IsToday {
					t.Errorf("July 4 cell = %+v", c)
				}
			}
		}
	}
	if !found {
		t.Error("July 4 not found in grid")
	}
}
