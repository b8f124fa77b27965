// ABOUTME: Tests for the Day value type and completion set parsing.
// ABOUTME: Covers canonicalization, malformed input, and weekday arithmetic.
package engine

import (
	"testing"
	"time"
)

func mustDay(t *testing.T, s string) Day {
	t.Helper()
	d, err := ParseDay(s)
	if err != nil {
		t.Fatalf("ParseDay(%q): %v", s, err)
	}
	return d
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "date only", input: "2024-01-03", want: "2024-01-03"},
		{name: "padded whitespace", input: "  2024-01-03 ", want: "2024-01-03"},
		{name: "utc timestamp", input: "2024-01-03T10:15:00Z", want: "2024-01-03"},
		{name: "millisecond timestamp", input: "2024-01-03T23:59:59.999Z", want: "2024-01-03"},
		{name: "offset keeps wall date", input: "2024-01-03T23:30:00-08:00", want: "2024-01-03"},
		{name: "garbage", input: "not a date", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "day first", input: "03-01-2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDay(%q) expected error, got %s", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDay(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseDay(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateNormalizes(t *testing.T) {
	if got := Date(2024, 13, 1).String(); got != "2025-01-01" {
		t.Errorf("Date(2024, 13, 1) = %s, want 2025-01-01", got)
	}
	if got := Date(2024, time.March, 0).String(); got != "2024-02-29" {
		t.Errorf("Date(2024, 3, 0) = %s, want 2024-02-29", got)
	}
}

func TestDayOfUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	ts := time.Date(2024, time.January, 3, 20, 0, 0, 0, time.UTC)

	if got := DayOf(ts).String(); got != "2024-01-03" {
		t.Errorf("DayOf(utc) = %s, want 2024-01-03", got)
	}
	if got := DayOf(ts.In(tokyo)).String(); got != "2024-01-04" {
		t.Errorf("DayOf(tokyo) = %s, want 2024-01-04", got)
	}
}

func TestWeekday(t *testing.T) {
	tests := map[string]time.Weekday{
		"1970-01-01": time.Thursday,
		"1969-12-31": time.Wednesday,
		"2024-01-01": time.Monday,
		"2024-01-07": time.Sunday,
		"2024-06-15": time.Saturday,
	}
	for s, want := range tests {
		if got := mustDay(t, s).Weekday(); got != want {
			t.Errorf("%s weekday = %v, want %v", s, got, want)
		}
	}
}

func TestWeekStart(t *testing.T) {
	if got := mustDay(t, "2024-01-03").WeekStart().String(); got != "2023-12-31" {
		t.Errorf("WeekStart = %s, want 2023-12-31", got)
	}
	if got := mustDay(t, "2024-01-07").WeekStart().String(); got != "2024-01-07" {
		t.Errorf("WeekStart of a Sunday = %s, want itself", got)
	}
}

func TestCanonical(t *testing.T) {
	got, ok := Canonical("2024-02-29T08:00:00Z")
	if !ok || got != "2024-02-29" {
		t.Errorf("Canonical = %q, %v", got, ok)
	}
	if _, ok := Canonical("yesterday"); ok {
		t.Error("Canonical accepted a malformed date")
	}
}

func TestNewDaySetSkipsMalformedAndDuplicates(t *testing.T) {
	set := NewDaySet([]string{
		"2024-01-01",
		"2024-01-01T18:00:00Z",
		"garbage",
		"",
		"2024-01-02",
	})
	if set.Len() != 2 {
		t.Fatalf("expected 2 days, got %d (%v)", set.Len(), set.Strings())
	}
	if !set.Has(mustDay(t, "2024-01-01")) || !set.Has(mustDay(t, "2024-01-02")) {
		t.Errorf("unexpected members: %v", set.Strings())
	}
}

func TestDaySetQueries(t *testing.T) {
	set := NewDaySet([]string{"2024-01-05", "2024-01-01", "2024-01-03"})

	sorted := set.Strings()
	want := []string{"2024-01-01", "2024-01-03", "2024-01-05"}
	for i := range want {
		if sorted[i] != want[i] {
			t.Fatalf("Strings() = %v, want %v", sorted, want)
		}
	}

	latest, ok := set.LatestOnOrBefore(mustDay(t, "2024-01-04"))
	if !ok || latest.String() != "2024-01-03" {
		t.Errorf("LatestOnOrBefore = %s, %v", latest, ok)
	}
	if _, ok := set.LatestOnOrBefore(mustDay(t, "2023-12-31")); ok {
		t.Error("expected no completion before the first day")
	}

	if n := set.CountBetween(mustDay(t, "2024-01-01"), mustDay(t, "2024-01-03")); n != 2 {
		t.Errorf("CountBetween = %d, want 2", n)
	}
	if n := set.CountBetween(mustDay(t, "2024-01-05"), mustDay(t, "2024-01-01")); n != 0 {
		t.Errorf("inverted range CountBetween = %d, want 0", n)
	}
	if n := set.CountBetween(mustDay(t, "2023-01-01"), mustDay(t, "2025-01-01")); n != 3 {
		t.Errorf("wide range CountBetween = %d, want 3", n)
	}
}

func TestParseDayInConvertsTimestamps(t *testing.T) {
	newYork := time.FixedZone("EST", -5*3600)
	tokyo := time.FixedZone("JST", 9*3600)

	tests := []struct {
		name  string
		input string
		loc   *time.Location
		want  string
	}{
		{"utc timestamp late evening in new york", "2024-01-03T02:00:00.000Z", newYork, "2024-01-02"},
		{"utc timestamp next morning in tokyo", "2024-01-02T20:00:00Z", tokyo, "2024-01-03"},
		{"offset timestamp converted", "2024-01-03T01:00:00+09:00", time.UTC, "2024-01-02"},
		{"date only never shifts", "2024-01-03", newYork, "2024-01-03"},
		{"nil location keeps written date", "2024-01-03T02:00:00Z", nil, "2024-01-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDayIn(tt.input, tt.loc)
			if err != nil {
				t.Fatalf("ParseDayIn(%q): %v", tt.input, err)
			}
			if d.String() != tt.want {
				t.Errorf("ParseDayIn(%q) = %s, want %s", tt.input, d, tt.want)
			}
		})
	}

	if _, err := ParseDayIn("yesterday", newYork); err == nil {
		t.Error("expected error for malformed input")
	}
}

func TestStreakUsesLocalDateOfTimestamps(t *testing.T) {
	newYork := time.FixedZone("EST", -5*3600)
	history := []string{"2024-01-02T02:00:00.000Z", "2024-01-03T02:00:00.000Z"}

	local := NewDaySetIn(history, newYork)
	if got := CurrentStreak(local, mustDay(t, "2024-01-02")); got != 2 {
		t.Errorf("local streak = %d, want 2", got)
	}
	if c, ok := CanonicalIn(history[1], newYork); !ok || c != "2024-01-02" {
		t.Errorf("CanonicalIn = %q %v, want 2024-01-02", c, ok)
	}
}
