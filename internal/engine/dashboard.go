// ABOUTME: Today's dashboard across all habits: streak leaders, rates, and laggards.
// ABOUTME: Also picks the progress message tier and the quote of the day.
package engine

import (
	"math"
	"sort"
)

// onFireStreak is the streak length at which a habit counts as on fire.
const onFireStreak = 7

// dashboardListSize bounds TopHabits and NeedsAttention.
const dashboardListSize = 3

// DashboardHabit is one row of a dashboard list.
type DashboardHabit struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Streak int    `json:"streak"`
}

// Dashboard summarizes every habit as of one day.
type Dashboard struct {
	Date             string           `json:"date"`
	TotalHabits      int              `json:"totalHabits"`
	CompletedToday   int              `json:"completedToday"`
	PendingToday     int              `json:"pendingToday"`
	CompletionRate   int              `json:"completionRateToday"`
	WeekRate         int              `json:"weekCompletionRate"`
	AverageStreak    int              `json:"averageStreak"`
	LongestStreak    int              `json:"longestStreak"`
	HabitsOnFire     int              `json:"habitsOnFire"`
	TotalCompletions int              `json:"totalCompletions"`
	BestHabit        string           `json:"bestHabit"`
	ConsistencyScore int              `json:"consistencyScore"`
	TopHabits        []DashboardHabit `json:"topHabits"`
	NeedsAttention   []DashboardHabit `json:"needsAttention"`
	Emoji            string           `json:"emoji"`
	Message          string           `json:"message"`
	Quote            Quote            `json:"quote"`
}

// BuildDashboard computes the dashboard as of ref. BestHabit is the first
// habit holding the longest current streak. TopHabits lists up to three
// habits with a live streak, longest first; NeedsAttention lists up to three
// habits not completed on ref, in input order.
func BuildDashboard(subjects []Subject, ref Day) Dashboard {
	d := Dashboard{
		Date:           ref.String(),
		TotalHabits:    len(subjects),
		BestHabit:      Placeholder,
		TopHabits:      []DashboardHabit{},
		NeedsAttention: []DashboardHabit{},
		Quote:          QuoteOfTheDay(ref),
	}

	var streakSum, live, weekDone int
	var streaking []DashboardHabit
	for _, s := range subjects {
		streak := CurrentStreak(s.Days, ref)
		row := DashboardHabit{ID: s.ID, Name: s.Name, Streak: streak}

		streakSum += streak
		if streak > d.LongestStreak {
			d.LongestStreak = streak
			d.BestHabit = s.Name
		}
		if streak >= onFireStreak {
			d.HabitsOnFire++
		}
		if streak > 0 {
			live++
			streaking = append(streaking, row)
		}

		if s.Days.Has(ref) {
			d.CompletedToday++
		} else if len(d.NeedsAttention) < dashboardListSize {
			d.NeedsAttention = append(d.NeedsAttention, row)
		}
		weekDone += s.Days.CountBetween(ref-6, ref)
		d.TotalCompletions += s.Days.Len()
	}

	d.PendingToday = d.TotalHabits - d.CompletedToday
	d.CompletionRate = percent(d.CompletedToday, d.TotalHabits)
	d.WeekRate = percent(weekDone, d.TotalHabits*7)
	d.ConsistencyScore = percent(live, d.TotalHabits)
	if d.TotalHabits > 0 {
		d.AverageStreak = int(math.Round(float64(streakSum) / float64(d.TotalHabits)))
	}

	sort.SliceStable(streaking, func(i, j int) bool {
		return streaking[i].Streak > streaking[j].Streak
	})
	if len(streaking) > dashboardListSize {
		streaking = streaking[:dashboardListSize]
	}
	d.TopHabits = append(d.TopHabits, streaking...)

	d.Emoji, d.Message = ProgressMessage(d.CompletionRate, d.CompletedToday)
	return d
}

// ProgressMessage picks the encouragement shown for today's completion
// percentage.
func ProgressMessage(rate, completed int) (emoji, message string) {
	switch {
	case rate >= 100:
		return "🎉", "Perfect day! All habits completed!"
	case rate >= 75:
		return "🔥", "Amazing progress! Keep it up!"
	case rate >= 50:
		return "💪", "You're halfway there!"
	case rate >= 25:
		return "🌟", "Good start! Keep going!"
	case completed > 0:
		return "👍", "Every step counts!"
	default:
		return "🎯", "Let's start your day right!"
	}
}

// Quote is an attributed line of motivation.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var quotes = []Quote{
	{"Success is the sum of small efforts repeated day in and day out.", "Robert Collier"},
	{"We are what we repeatedly do. Excellence, then, is not an act, but a habit.", "Aristotle"},
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"A journey of a thousand miles begins with a single step.", "Lao Tzu"},
	{"Your future is created by what you do today, not tomorrow.", "Robert Kiyosaki"},
	{"Motivation is what gets you started. Habit is what keeps you going.", "Jim Ryun"},
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Don't watch the clock; do what it does. Keep going.", "Sam Levenson"},
	{"The best time to plant a tree was 20 years ago. The second best time is now.", "Chinese Proverb"},
	{"Small daily improvements over time lead to stunning results.", "Robin Sharma"},
	{"You don't have to be great to start, but you have to start to be great.", "Zig Ziglar"},
	{"The difference between who you are and who you want to be is what you do.", "Unknown"},
	{"One day or day one. You decide.", "Unknown"},
	{"Progress, not perfection.", "Unknown"},
	{"Every accomplishment starts with the decision to try.", "Unknown"},
	{"The only impossible journey is the one you never begin.", "Tony Robbins"},
	{"Consistency is the key to achieving and maintaining momentum.", "Unknown"},
	{"Fall seven times, stand up eight.", "Japanese Proverb"},
	{"Your only limit is you.", "Unknown"},
	{"Dream it. Believe it. Build it.", "Unknown"},
}

// QuoteOfTheDay rotates through the quote list once per day.
func QuoteOfTheDay(d Day) Quote {
	i := int(d) % len(quotes)
	if i < 0 {
		i += len(quotes)
	}
	return quotes[i]
}
