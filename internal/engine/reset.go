// ABOUTME: Day-reset state machine that refreshes cached habit fields.
// ABOUTME: Moves from StaleDay back to CurrentDay and is a no-op when run twice.
package engine

// Phase is the reset state of the tracker relative to today.
type Phase int

const (
	// CurrentDay means caches were refreshed today.
	CurrentDay Phase = iota
	// StaleDay means the last reset happened on another day (or never).
	StaleDay
)

func (p Phase) String() string {
	if p == CurrentDay {
		return "current"
	}
	return "stale"
}

// PhaseOf compares the stored reset marker to today.
func PhaseOf(state ResetState, today Day) Phase {
	if state.HasLast && state.LastReset == today {
		return CurrentDay
	}
	return StaleDay
}

// RecentDays is the size of the rolling daily buffer.
const RecentDays = 7

// Recent holds the outcome of the seven days before the last reset, oldest
// first. The final slot is always "yesterday" relative to that reset.
type Recent [RecentDays]bool

// String encodes the buffer as seven '0'/'1' characters, oldest first.
func (r Recent) String() string {
	var b [RecentDays]byte
	for i, done := range r {
		b[i] = '0'
		if done {
			b[i] = '1'
		}
	}
	return string(b[:])
}

// ParseRecent decodes the String form. Anything malformed yields an empty
// buffer, which the next reset rebuilds.
func ParseRecent(s string) Recent {
	var r Recent
	if len(s) != RecentDays {
		return r
	}
	for i := 0; i < RecentDays; i++ {
		r[i] = s[i] == '1'
	}
	return r
}

// RecentWindow rebuilds the buffer for today straight from the completion set.
func RecentWindow(days DaySet, today Day) Recent {
	var r Recent
	for i := range r {
		r[i] = days.Has(today - Day(RecentDays-i))
	}
	return r
}

// Advance shifts the buffer forward from the reset day `from` to `to`,
// dropping the oldest slot and appending each elapsed day's outcome. Gaps of
// a week or more, or a clock that moved backwards, rebuild the buffer.
func (r Recent) Advance(days DaySet, from, to Day) Recent {
	elapsed := int(to - from)
	if elapsed <= 0 || elapsed >= RecentDays {
		return RecentWindow(days, to)
	}
	out := r
	for d := from; d < to; d++ {
		copy(out[:], out[1:])
		out[RecentDays-1] = days.Has(d)
	}
	return out
}

// Cached is the set of derived fields a habit record carries between reads.
type Cached struct {
	CompletedToday bool
	Streak         int
	Recent         Recent
}

// ResetItem pairs a habit's completion set with its stored caches.
type ResetItem struct {
	Days   DaySet
	Cached Cached
}

// ResetState is the persisted "last reset date" marker.
type ResetState struct {
	LastReset Day
	HasLast   bool
}

// ResetResult carries the refreshed caches and the new marker.
type ResetResult struct {
	Phase   Phase
	State   ResetState
	Items   []Cached
	Changed bool
}

// DayReset refreshes every habit's caches when the marker is stale and moves
// the marker to today. On CurrentDay it returns the inputs untouched.
func DayReset(state ResetState, items []ResetItem, today Day) ResetResult {
	res := ResetResult{
		Phase: PhaseOf(state, today),
		State: state,
		Items: make([]Cached, len(items)),
	}
	if res.Phase == CurrentDay {
		for i, it := range items {
			res.Items[i] = it.Cached
		}
		return res
	}

	for i, it := range items {
		var recent Recent
		if state.HasLast {
			recent = it.Cached.Recent.Advance(it.Days, state.LastReset, today)
		} else {
			recent = RecentWindow(it.Days, today)
		}
		res.Items[i] = Cached{
			CompletedToday: it.Days.Has(today),
			Streak:         CurrentStreak(it.Days, today),
			Recent:         recent,
		}
	}
	res.State = ResetState{LastReset: today, HasLast: true}
	res.Changed = true
	return res
}
