// ABOUTME: Tests for rolling completion rates and weekly buckets.
// ABOUTME: Verifies rounding, fixed-window division, and the [0,100] bound.
package engine

import "testing"

func TestCompletionRate(t *testing.T) {
	days := NewDaySet([]string{"2024-01-01", "2024-01-03", "2024-01-05"})
	ref := mustDay(t, "2024-01-07")

	tests := []struct {
		name   string
		window int
		want   int
	}{
		{name: "seven days", window: 7, want: 43},
		{name: "three days", window: 3, want: 33},
		{name: "one day", window: 1, want: 0},
		{name: "thirty days divides by full window", window: 30, want: 10},
		{name: "zero window", window: 0, want: 0},
		{name: "negative window", window: -5, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionRate(days, tt.window, ref); got != tt.want {
				t.Errorf("CompletionRate(window=%d) = %d, want %d", tt.window, got, tt.want)
			}
		})
	}
}

func TestCompletionRateBounds(t *testing.T) {
	var all []string
	start := mustDay(t, "2024-01-01")
	for d := start; d < start+60; d++ {
		all = append(all, d.String())
	}
	days := NewDaySet(all)

	for window := -2; window <= 90; window++ {
		for _, ref := range []Day{start - 10, start + 5, start + 59, start + 100} {
			got := CompletionRate(days, window, ref)
			if got < 0 || got > 100 {
				t.Fatalf("CompletionRate(window=%d, ref=%s) = %d out of range", window, ref, got)
			}
		}
	}
	if got := Rate7(days, start+30); got != 100 {
		t.Errorf("Rate7 in a full run = %d, want 100", got)
	}
	if got := Rate30(days, start+10); got != 37 {
		t.Errorf("Rate30 of a young run = %d, want 37", got)
	}
}

func TestWeekBuckets(t *testing.T) {
	days := NewDaySet([]string{
		"2023-12-31", "2024-01-01", // week of 12-31
		"2024-01-07", "2024-01-09", "2024-01-13", // week of 01-07
	})
	buckets := WeekBuckets(days, 3, mustDay(t, "2024-01-10"))
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(buckets))
	}
	want := []struct {
		start string
		count int
	}{
		{"2023-12-24", 0},
		{"2023-12-31", 2},
		{"2024-01-07", 3},
	}
	for i, w := range want {
		if buckets[i].Start.String() != w.start || buckets[i].Count != w.count {
			t.Errorf("bucket %d = %s/%d, want %s/%d", i, buckets[i].Start, buckets[i].Count, w.start, w.count)
		}
	}
	if WeekBuckets(days, 0, mustDay(t, "2024-01-10")) != nil {
		t.Error("expected nil for zero weeks")
	}
}

func TestBestWeek(t *testing.T) {
	if got := BestWeek(DaySet{}); got != 0 {
		t.Errorf("BestWeek(empty) = %d", got)
	}

	var week []string
	start := mustDay(t, "2024-01-07")
	for d := start; d < start+7; d++ {
		week = append(week, d.String())
	}
	if got := BestWeek(NewDaySet(week)); got != 7 {
		t.Errorf("BestWeek(full Sunday week) = %d, want 7", got)
	}

	// Monday..Sunday straddles two Sunday-start weeks.
	if got := BestWeek(NewDaySet([]string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07"})); got != 6 {
		t.Errorf("BestWeek(Mon-Sun) = %d, want 6", got)
	}
}
