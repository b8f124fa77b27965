// ABOUTME: Prompt construction for each kind of coaching message.
// ABOUTME: Contexts are plain stat summaries built from engine output.
package coach

import (
	"fmt"
	"strings"

	"github.com/harperreed/habits/internal/engine"
)

// MotivationContext summarizes one habit and the user's overall standing.
type MotivationContext struct {
	Name          string
	Streak        int
	Rate          int
	TotalHabits   int
	AverageStreak int
	Consistency   int
}

// TipsContext describes a habit for tip generation.
type TipsContext struct {
	Name        string
	Description string
	BestDay     string
	Consistency int
	Trend       string
}

// ReminderContext describes when a reminder is being shown.
type ReminderContext struct {
	Name              string
	Streak            int
	LastCompleted     string
	TimeOfDay         string
	DayOfWeek         string
	ConsecutiveMisses int
}

// ComebackContext describes a lapsed habit.
type ComebackContext struct {
	Name             string
	DaysSince        int
	LongestStreak    int
	TotalCompletions int
}

// MilestoneContext describes a streak worth celebrating.
type MilestoneContext struct {
	Name        string
	Achievement string
	Streak      int
}

// Trend compares the last week against the last month.
func Trend(rate7, rate30 int) string {
	switch {
	case rate7 >= rate30+10:
		return "improving"
	case rate7 <= rate30-10:
		return "declining"
	default:
		return "steady"
	}
}

// IsNewUser reports whether a week has too little data for pattern analysis.
func IsNewUser(r engine.WeeklyReport) bool {
	return r.TotalCompletions <= 3 && r.TotalHabits <= 2
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// MotivationRequest builds the motivational message prompt.
func MotivationRequest(m MotivationContext) Request {
	prompt := fmt.Sprintf(`Write a SHORT (1-2 sentences), personal, encouraging message for someone working on their %q habit.

Context:
- Current streak: %d days
- Completion rate: %d%%
- Consistency score: %d%%
- Total active habits: %d
- Average streak across habits: %d days

Be specific and warm. Focus on their progress and next step. Keep it under 40 words.`,
		m.Name, m.Streak, m.Rate, m.Consistency, m.TotalHabits, m.AverageStreak)

	return Request{
		System:        "You are an enthusiastic and supportive habit coach who gives brief, personal encouragement.",
		PromptContext: prompt,
		Temperature:   0.8,
		MaxTokens:     150,
	}
}

// TipsRequest builds the numbered-tips prompt.
func TipsRequest(tc TipsContext) Request {
	prompt := fmt.Sprintf(`Give 3 SHORT, actionable tips to improve consistency for the habit %q.

Context:
- Description: %s
- Best day: %s
- Consistency: %d%%
- Trend: %s

Each tip is ONE sentence of at most 15 words, about timing, environment, or habit stacking.

Format as:
1. [Tip]
2. [Tip]
3. [Tip]`,
		tc.Name, orDefault(tc.Description, "Not provided"), orDefault(tc.BestDay, engine.Placeholder), tc.Consistency, orDefault(tc.Trend, "steady"))

	return Request{
		System:        "You are a practical habit formation expert who gives concise, evidence-based advice.",
		PromptContext: prompt,
		Temperature:   0.7,
		MaxTokens:     200,
	}
}

// ReminderRequest builds the reminder prompt.
func ReminderRequest(rc ReminderContext) Request {
	prompt := fmt.Sprintf(`Write a SHORT, friendly reminder (1 sentence, max 25 words) to complete the habit %q.

Context:
- Current streak: %d days
- Time: %s
- Day: %s
- Last completed: %s
- Consecutive misses: %d

Encouraging, urgent only if needed. Use emojis sparingly.`,
		rc.Name, rc.Streak, orDefault(rc.TimeOfDay, "today"), orDefault(rc.DayOfWeek, "today"), orDefault(rc.LastCompleted, "never"), rc.ConsecutiveMisses)

	return Request{
		System:        "You are a friendly reminder assistant. Keep messages brief and encouraging.",
		PromptContext: prompt,
		Temperature:   0.8,
		MaxTokens:     100,
	}
}

// ComebackRequest builds the restart-after-a-break prompt.
func ComebackRequest(cc ComebackContext) Request {
	prompt := fmt.Sprintf(`Someone hasn't completed their %q habit in %d days. They previously had a %d-day streak and %d total completions.

Write a compassionate comeback message (2 sentences, under 35 words). Acknowledge the break without judgment, remind them of past success, and encourage a restart.`,
		cc.Name, cc.DaysSince, cc.LongestStreak, cc.TotalCompletions)

	return Request{
		System:        "You are a compassionate habit coach who helps people restart after setbacks.",
		PromptContext: prompt,
		Temperature:   0.8,
		MaxTokens:     150,
	}
}

// MilestoneRequest builds the celebration prompt.
func MilestoneRequest(mc MilestoneContext) Request {
	prompt := fmt.Sprintf(`Celebrate this habit milestone!

Habit: %q
Achievement: %s
Streak: %d days

Write an enthusiastic 1-2 sentence celebration (under 30 words).`,
		mc.Name, orDefault(mc.Achievement, fmt.Sprintf("%d-day streak", mc.Streak)), mc.Streak)

	return Request{
		System:        "You are an enthusiastic celebrator of habit achievements.",
		PromptContext: prompt,
		Temperature:   0.9,
		MaxTokens:     120,
	}
}

// habitLine renders one habit's week for the weekly prompt.
func habitLine(h engine.HabitWeek) string {
	line := fmt.Sprintf("%s: completed %d/7 days", h.Name, h.CompletionCount)
	if len(h.MissedDays) > 0 {
		line += ", missed on " + strings.Join(h.MissedDays, ", ")
	}
	return line
}

// WeeklyRequest builds the weekly analysis prompt. Sparse weeks get a
// welcome prompt instead of a pattern analysis.
func WeeklyRequest(r engine.WeeklyReport) Request {
	lines := make([]string, len(r.Habits))
	for i, h := range r.Habits {
		lines[i] = habitLine(h)
	}
	summary := strings.Join(lines, "; ")

	if IsNewUser(r) {
		prompt := fmt.Sprintf(`Welcome someone who just started tracking habits.

Their habits:
%s

Total habits: %d
Total completions so far: %d

Provide:
1. A warm welcome and encouragement for taking the first step
2. One simple tip to build momentum early on
3. Reassurance that consistency comes with practice

Keep it under 70 words and focus on the excitement of starting.`, summary, r.TotalHabits, r.TotalCompletions)
		return Request{
			System:        "You are a warm, encouraging habit coach welcoming someone to their journey.",
			PromptContext: prompt,
			Temperature:   0.7,
			MaxTokens:     300,
		}
	}

	prompt := fmt.Sprintf(`Analyze this week of habit tracking (%s to %s) and give personal, actionable feedback.

Weekly data:
%s

Overall:
- Total habits tracked: %d
- Average completion rate: %d%%
- Best day: %s (%d completions)
- Worst day: %s (%d completions)
- Most consistent habit: %s
- Needs most improvement: %s

Provide:
1. One key observation about patterns
2. One specific recommendation to improve
3. One motivational insight

Keep it conversational and under 80 words.`,
		r.WeekStart, r.WeekEnd, summary, r.TotalHabits, r.AvgCompletionRate,
		r.BestDay, r.BestDayCompletions, r.WorstDay, r.WorstDayCompletions,
		r.MostConsistentHabit, r.NeedsImprovement)

	return Request{
		System:        "You are an insightful habit coach who identifies patterns and gives actionable advice.",
		PromptContext: prompt,
		Temperature:   0.7,
		MaxTokens:     300,
	}
}
