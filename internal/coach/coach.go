// ABOUTME: Habit coaching messages from a text-generation collaborator.
// ABOUTME: Every call degrades to a locally computed fallback on failure.
package coach

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/engine"
)

// Request is the structured prompt sent to a Generator.
type Request struct {
	System        string
	PromptContext string
	Temperature   float64
	MaxTokens     int64
}

// Response is a Generator's answer. Text is set only when Success is true.
type Response struct {
	Success bool
	Text    string
	Error   string
}

// Generator produces text for a request. Implementations report failure in
// the Response rather than by panicking or retrying.
type Generator interface {
	Generate(ctx context.Context, req Request) Response
}

// Result is what a coaching call returns to its caller.
type Result struct {
	Text      string
	Generated bool
	Error     string
}

// Coach wraps a Generator with fallbacks. A nil generator always falls back.
type Coach struct {
	gen    Generator
	logger *log.Logger
}

// New creates a Coach. gen and logger may be nil.
func New(gen Generator, logger *log.Logger) *Coach {
	return &Coach{gen: gen, logger: logger}
}

func (c *Coach) generate(ctx context.Context, kind string, req Request, fallback string) Result {
	if c.gen == nil {
		return Result{Text: fallback, Error: "text generation not configured"}
	}
	resp := c.gen.Generate(ctx, req)
	text := strings.TrimSpace(resp.Text)
	if !resp.Success || text == "" {
		errMsg := resp.Error
		if errMsg == "" {
			errMsg = "empty response"
		}
		if c.logger != nil {
			c.logger.Warn("coach fallback", "kind", kind, "err", errMsg)
		}
		return Result{Text: fallback, Error: errMsg}
	}
	return Result{Text: text, Generated: true}
}

// Motivate returns a short encouragement for one habit.
func (c *Coach) Motivate(ctx context.Context, m MotivationContext) Result {
	return c.generate(ctx, "motivation", MotivationRequest(m), FallbackMotivation(m.Streak, m.Rate))
}

// Tips returns up to three tips for one habit.
func (c *Coach) Tips(ctx context.Context, tc TipsContext) ([]string, Result) {
	res := c.generate(ctx, "tips", TipsRequest(tc), "")
	if res.Generated {
		if tips := ParseTips(res.Text); len(tips) > 0 {
			return tips, res
		}
		res = Result{Error: "no usable tips in response"}
	}
	return FallbackTips(), res
}

// Remind returns a nudge to complete a habit today.
func (c *Coach) Remind(ctx context.Context, rc ReminderContext) Result {
	return c.generate(ctx, "reminder", ReminderRequest(rc), FallbackReminder(rc.Name, rc.Streak))
}

// Comeback returns a restart message for a habit that has lapsed.
func (c *Coach) Comeback(ctx context.Context, cc ComebackContext) Result {
	return c.generate(ctx, "comeback", ComebackRequest(cc), FallbackComeback(cc.Name, cc.LongestStreak))
}

// Milestone returns a celebration for a streak milestone.
func (c *Coach) Milestone(ctx context.Context, mc MilestoneContext) Result {
	return c.generate(ctx, "milestone", MilestoneRequest(mc), FallbackMilestone(mc.Name, mc.Streak))
}

// WeeklySummary analyzes a week across all habits.
func (c *Coach) WeeklySummary(ctx context.Context, report engine.WeeklyReport) Result {
	newUser := IsNewUser(report)
	return c.generate(ctx, "weekly", WeeklyRequest(report), FallbackWeeklySummary(report, newUser))
}
