// ABOUTME: Date-only value type and completion set used by every habit calculation.
// ABOUTME: All dates entering or leaving the engine pass through ParseDay and Day.String.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DayLayout is the canonical on-disk form of a completion date.
const DayLayout = "2006-01-02"

const secondsPerDay = 86400

// Day is a calendar date with no time of day, counted in days since 1970-01-01.
type Day int

// Date builds a Day from calendar fields. Out-of-range values normalize
// the way time.Date does, so Date(2024, 13, 1) is 2025-01-01.
func Date(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// DayOf returns the calendar date of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp. Timestamps keep the
// wall date they were written with.
func ParseDay(s string) (Day, error) {
	return ParseDayIn(s, nil)
}

// ParseDayIn is ParseDay with timestamps converted to their date in loc.
// Date-only strings are never shifted. A nil loc keeps the written date.
func ParseDayIn(s string, loc *time.Location) (Day, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DayLayout, s); err == nil {
		return DayOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		if loc != nil {
			t = t.In(loc)
		}
		return DayOf(t), nil
	}
	return 0, fmt.Errorf("parse day %q: unrecognized date format", s)
}

// Canonical rewrites any accepted date representation as YYYY-MM-DD.
func Canonical(s string) (string, bool) {
	return CanonicalIn(s, nil)
}

// CanonicalIn is Canonical with timestamps resolved in loc.
func CanonicalIn(s string, loc *time.Location) (string, bool) {
	d, err := ParseDayIn(s, loc)
	if err != nil {
		return "", false
	}
	return d.String(), true
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

func (d Day) String() string {
	return d.Time().Format(DayLayout)
}

// Weekday is computed arithmetically; 1970-01-01 was a Thursday.
func (d Day) Weekday() time.Weekday {
	return time.Weekday(((int(d)%7)+7+4) % 7)
}

// AddDays returns the day n days later (or earlier when n is negative).
func (d Day) AddDays(n int) Day {
	return d + Day(n)
}

// Date splits the day into calendar fields.
func (d Day) Date() (int, time.Month, int) {
	return d.Time().Date()
}

// WeekStart returns the Sunday on or before d.
func (d Day) WeekStart() Day {
	return d - Day(d.Weekday())
}

// DaySet is the set of days a habit was completed.
type DaySet map[Day]struct{}

// NewDaySet parses a completion history. Malformed entries are skipped and
// multiple representations of the same date collapse to one member.
func NewDaySet(history []string) DaySet {
	return NewDaySetIn(history, nil)
}

// NewDaySetIn is NewDaySet with timestamps resolved in loc.
func NewDaySetIn(history []string, loc *time.Location) DaySet {
	set := make(DaySet, len(history))
	for _, s := range history {
		d, err := ParseDayIn(s, loc)
		if err != nil {
			continue
		}
		set[d] = struct{}{}
	}
	return set
}

// DaysOf builds a set from already-parsed days.
func DaysOf(days ...Day) DaySet {
	set := make(DaySet, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

func (s DaySet) Has(d Day) bool {
	_, ok := s[d]
	return ok
}

func (s DaySet) Add(d Day) {
	s[d] = struct{}{}
}

func (s DaySet) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order.
func (s DaySet) Sorted() []Day {
	out := make([]Day, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// LatestOnOrBefore returns the most recent member not after ref.
func (s DaySet) LatestOnOrBefore(ref Day) (Day, bool) {
	var latest Day
	found := false
	for d := range s {
		if d > ref {
			continue
		}
		if !found || d > latest {
			latest = d
			found = true
		}
	}
	return latest, found
}

// CountBetween counts members in the inclusive range [from, to].
func (s DaySet) CountBetween(from, to Day) int {
	if to < from {
		return 0
	}
	// iterate whichever side is smaller
	if int(to-from)+1 < len(s) {
		n := 0
		for d := from; d <= to; d++ {
			if s.Has(d) {
				n++
			}
		}
		return n
	}
	n := 0
	for d := range s {
		if d >= from && d <= to {
			n++
		}
	}
	return n
}

// Strings returns the canonical string form of every member, ascending.
func (s DaySet) Strings() []string {
	days := s.Sorted()
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}
