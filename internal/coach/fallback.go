// ABOUTME: Canned coaching messages used when generation is unavailable.
// ABOUTME: Pure functions of habit stats; also parses numbered tip lists.
package coach

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harperreed/habits/internal/engine"
)

// FallbackMotivation picks a message by streak first, then rate.
func FallbackMotivation(streak, rate int) string {
	switch {
	case streak >= 30:
		return "🔥 30+ day streak! You're unstoppable! Keep this momentum going!"
	case streak >= 7:
		return "💪 One week strong! You're building an amazing habit!"
	case rate >= 80:
		return "⭐ Great consistency! You're on the right track!"
	default:
		return "🌟 Every day is a new opportunity! You've got this!"
	}
}

// FallbackTips returns generic consistency tips.
func FallbackTips() []string {
	return []string{
		"Set a specific time each day for this habit",
		"Link it to an existing routine (habit stacking)",
		"Start with 2 minutes if motivation is low",
	}
}

// FallbackReminder nudges toward today's completion.
func FallbackReminder(name string, streak int) string {
	if streak > 0 {
		return fmt.Sprintf("⏰ Don't break your %d-day streak on %s!", streak, name)
	}
	return fmt.Sprintf("🎯 Time to work on %s! Let's build that streak!", name)
}

// FallbackComeback welcomes a user back after a lapse.
func FallbackComeback(name string, longest int) string {
	return fmt.Sprintf("Welcome back! Your %d-day streak on %s shows you can do this. Let's start fresh today! 💪", longest, name)
}

// FallbackMilestone celebrates a streak.
func FallbackMilestone(name string, streak int) string {
	return fmt.Sprintf("🎉 Amazing! %d-day streak on %s! Keep going!", streak, name)
}

// FallbackWeeklySummary describes a week by its average rate, its worst day
// and its weakest habit.
func FallbackWeeklySummary(r engine.WeeklyReport, newUser bool) string {
	if newUser {
		return "🌟 Welcome to your habit tracking journey! You've taken the first step, which is often the hardest. " +
			"Start small, be consistent, and celebrate every completion. " +
			"The key is showing up daily, even if it's just for a few minutes. You've got this! 💪"
	}

	var sb strings.Builder
	rate := r.AvgCompletionRate
	switch {
	case rate >= 80:
		fmt.Fprintf(&sb, "🔥 Excellent week! You maintained %d%% completion. ", rate)
	case rate >= 60:
		fmt.Fprintf(&sb, "💪 Good progress at %d%%. ", rate)
	case rate >= 30:
		fmt.Fprintf(&sb, "🌟 You're building momentum at %d%%. ", rate)
	case rate > 0:
		sb.WriteString("🚀 Great start! Every completion counts. ")
	default:
		sb.WriteString("🌱 New beginnings! Time to start tracking. ")
	}

	if r.WorstDay != "" && r.WorstDay != engine.Placeholder {
		fmt.Fprintf(&sb, "%ss seem challenging - try scheduling habits earlier in the day. ", r.WorstDay)
	}
	if r.NeedsImprovement != "" && r.NeedsImprovement != engine.Placeholder {
		fmt.Fprintf(&sb, "Focus on %q next week. ", r.NeedsImprovement)
	}
	sb.WriteString("Keep building those streaks! 🎯")
	return sb.String()
}

var tipNumbering = regexp.MustCompile(`^\d+\.\s*`)

// ParseTips extracts up to three tips from a numbered list, dropping the
// numbering and any line of ten characters or fewer.
func ParseTips(text string) []string {
	var tips []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cleaned := strings.TrimSpace(tipNumbering.ReplaceAllString(line, ""))
		if len(cleaned) > 10 {
			tips = append(tips, cleaned)
		}
		if len(tips) == 3 {
			break
		}
	}
	return tips
}
