// ABOUTME: Tests for the day-reset transition and the rolling daily buffer.
// ABOUTME: Verifies idempotence and one-shift-per-elapsed-day behaviour.
package engine

import (
	"reflect"
	"testing"
)

func TestPhaseOf(t *testing.T) {
	today := mustDay(t, "2024-01-05")
	if p := PhaseOf(ResetState{}, today); p != StaleDay {
		t.Errorf("no marker = %v, want stale", p)
	}
	if p := PhaseOf(ResetState{LastReset: today - 1, HasLast: true}, today); p != StaleDay {
		t.Errorf("yesterday marker = %v, want stale", p)
	}
	if p := PhaseOf(ResetState{LastReset: today, HasLast: true}, today); p != CurrentDay {
		t.Errorf("today marker = %v, want current", p)
	}
}

func TestRecentWindow(t *testing.T) {
	days := NewDaySet([]string{"2024-01-01", "2024-01-04", "2024-01-07", "2024-01-08"})
	got := RecentWindow(days, mustDay(t, "2024-01-08"))
	// Covers 01-01 .. 01-07; today (01-08) is never in the buffer.
	want := Recent{true, false, false, true, false, false, true}
	if got != want {
		t.Errorf("RecentWindow = %v, want %v", got, want)
	}
}

func TestRecentAdvanceOneDay(t *testing.T) {
	days := NewDaySet([]string{"2024-01-04"})
	prev := Recent{true, true, true, true, true, true, false}

	got := prev.Advance(days, mustDay(t, "2024-01-04"), mustDay(t, "2024-01-05"))

	want := Recent{true, true, true, true, true, false, true}
	if got != want {
		t.Errorf("Advance = %v, want %v", got, want)
	}
}

func TestRecentAdvanceLongGapRebuilds(t *testing.T) {
	days := NewDaySet([]string{"2024-01-20"})
	prev := Recent{true, true, true, true, true, true, true}

	got := prev.Advance(days, mustDay(t, "2024-01-01"), mustDay(t, "2024-01-21"))
	want := Recent{false, false, false, false, false, false, true}
	if got != want {
		t.Errorf("Advance = %v, want %v", got, want)
	}

	back := prev.Advance(days, mustDay(t, "2024-01-21"), mustDay(t, "2024-01-10"))
	if back != RecentWindow(days, mustDay(t, "2024-01-10")) {
		t.Errorf("backwards clock should rebuild, got %v", back)
	}
}

func TestDayResetRefreshesCaches(t *testing.T) {
	today := mustDay(t, "2024-01-05")
	items := []ResetItem{
		{
			Days:   NewDaySet([]string{"2024-01-03", "2024-01-04"}),
			Cached: Cached{CompletedToday: true, Streak: 9},
		},
		{
			Days:   NewDaySet([]string{"2024-01-05"}),
			Cached: Cached{},
		},
	}

	res := DayReset(ResetState{LastReset: today - 1, HasLast: true}, items, today)

	if res.Phase != StaleDay || !res.Changed {
		t.Fatalf("expected a stale transition, got %+v", res)
	}
	if res.State.LastReset != today || !res.State.HasLast {
		t.Errorf("marker = %+v", res.State)
	}
	if res.Items[0].CompletedToday || res.Items[0].Streak != 2 {
		t.Errorf("item 0 caches = %+v", res.Items[0])
	}
	if !res.Items[0].Recent[6] {
		t.Error("yesterday should be appended to the buffer")
	}
	if !res.Items[1].CompletedToday || res.Items[1].Streak != 1 {
		t.Errorf("item 1 caches = %+v", res.Items[1])
	}
}

func TestDayResetIdempotent(t *testing.T) {
	today := mustDay(t, "2024-03-10")
	items := []ResetItem{
		{Days: NewDaySet([]string{"2024-03-08", "2024-03-09"})},
		{Days: NewDaySet([]string{"2024-03-10", "2024-02-01"})},
	}

	first := DayReset(ResetState{LastReset: mustDay(t, "2024-03-07"), HasLast: true}, items, today)

	next := make([]ResetItem, len(items))
	for i, it := range items {
		next[i] = ResetItem{Days: it.Days, Cached: first.Items[i]}
	}
	second := DayReset(first.State, next, today)

	if second.Phase != CurrentDay || second.Changed {
		t.Errorf("second run should be a no-op, got phase %v changed %v", second.Phase, second.Changed)
	}
	if second.State != first.State {
		t.Errorf("marker moved: %+v -> %+v", first.State, second.State)
	}
	if !reflect.DeepEqual(second.Items, first.Items) {
		t.Errorf("caches changed: %+v -> %+v", first.Items, second.Items)
	}
}

func TestDayResetWithoutMarker(t *testing.T) {
	today := mustDay(t, "2024-01-08")
	items := []ResetItem{{Days: NewDaySet([]string{"2024-01-07"})}}

	res := DayReset(ResetState{}, items, today)

	if !res.Changed || res.Items[0].Recent != RecentWindow(items[0].Days, today) {
		t.Errorf("first reset should build the buffer from history, got %+v", res.Items[0])
	}
}

func TestRecentEncoding(t *testing.T) {
	r := Recent{true, false, false, true, false, true, true}
	if r.String() != "1001011" {
		t.Errorf("String = %s", r.String())
	}
	if ParseRecent(r.String()) != r {
		t.Error("ParseRecent did not restore the buffer")
	}
	if ParseRecent("10") != (Recent{}) {
		t.Error("short input should decode to an empty buffer")
	}
}
