// ABOUTME: Tests for the Monday-first heat map bucketer.
// ABOUTME: Verifies column layout, empty slots, and binary completion.
package engine

import "testing"

func TestBuildHeatmapLayout(t *testing.T) {
	// 2024-06-15 is a Saturday, so the 70-day window opens on Sunday 2024-04-07.
	ref := mustDay(t, "2024-06-15")
	days := NewDaySet([]string{"2024-04-07", "2024-06-10", "2024-06-15", "2024-01-01"})

	hm := BuildHeatmap(days, 70, ref)

	if hm.Start.String() != "2024-04-07" || hm.End != ref {
		t.Fatalf("window = %s..%s", hm.Start, hm.End)
	}
	if len(hm.Weeks) != 11 {
		t.Fatalf("expected 11 columns, got %d", len(hm.Weeks))
	}

	first := hm.Weeks[0]
	for i := 0; i < 6; i++ {
		if !first[i].Empty {
			t.Errorf("first column slot %d should be empty", i)
		}
	}
	if first[6].Empty || !first[6].Completed {
		t.Errorf("first column Sunday = %+v", first[6])
	}

	last := hm.Weeks[10]
	if last[0].Date.String() != "2024-06-10" || !last[0].Completed {
		t.Errorf("last column Monday = %+v", last[0])
	}
	if !last[5].Completed || last[5].Date != ref {
		t.Errorf("last column Saturday = %+v", last[5])
	}
	if !last[6].Empty {
		t.Error("slot after the reference day should be empty")
	}

	if hm.Completed != 3 {
		t.Errorf("Completed = %d, want 3 (out-of-window day excluded)", hm.Completed)
	}
}

func TestBuildHeatmapDefaultsAndMondayStart(t *testing.T) {
	// 2024-01-07 is a Sunday: a 7-day window is exactly one Monday-first week.
	hm := BuildHeatmap(DaySet{}, 7, mustDay(t, "2024-01-07"))
	if len(hm.Weeks) != 1 {
		t.Fatalf("expected 1 column, got %d", len(hm.Weeks))
	}
	for i, c := range hm.Weeks[0] {
		if c.Empty || c.Completed {
			t.Errorf("slot %d = %+v", i, c)
		}
	}
	if hm.Weeks[0][0].Date.String() != "2024-01-01" {
		t.Errorf("first slot = %s, want Monday 2024-01-01", hm.Weeks[0][0].Date)
	}

	def := BuildHeatmap(DaySet{}, 0, mustDay(t, "2024-01-07"))
	if int(def.End-def.Start)+1 != DefaultHeatmapWindow {
		t.Errorf("default window spans %d days", int(def.End-def.Start)+1)
	}
	if len(def.Weeks) != 10 {
		t.Errorf("default window columns = %d, want 10", len(def.Weeks))
	}
}
