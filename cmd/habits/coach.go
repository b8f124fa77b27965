// ABOUTME: CLI commands for coaching messages and API key management.
// ABOUTME: Uses an OpenAI-compatible endpoint when a key is set, else built-in messages.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/coach"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/keyring"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/spf13/cobra"
)

// milestones are the streak lengths that get a celebration instead of a
// plain motivational message.
var milestones = map[int]string{
	7:   "one week streak",
	14:  "two week streak",
	30:  "30 day streak",
	50:  "50 day streak",
	100: "100 day streak",
}

// comebackAfter is the gap in days after which motivate becomes a comeback.
const comebackAfter = 3

// resolveAPIKey prefers the environment over the OS keyring.
func resolveAPIKey() string {
	if key := strings.TrimSpace(os.Getenv(coach.APIKeyEnv)); key != "" {
		return key
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		return ""
	}
	return key
}

// newCoach builds a coach from config; without an API key it only serves
// built-in messages.
func newCoach(c *config.Config, logger *log.Logger) *coach.Coach {
	key := resolveAPIKey()
	if key == "" {
		return coach.New(nil, logger)
	}
	return coach.New(coach.NewOpenAIGenerator(key, c.AIBaseURL, c.AIModel, logger), logger)
}

func printResult(cmd *cobra.Command, res coach.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.Text)
	if !res.Generated && debugFlag && res.Error != "" {
		fmt.Fprintln(out, faint.Sprintf("(built-in message: %s)", res.Error))
	}
}

var coachCmd = &cobra.Command{
	Use:   "coach",
	Short: "Coaching messages for your habits",
	Long: `Get short coaching messages generated from your habit history.

Messages come from an OpenAI-compatible chat endpoint when an API key is
available (` + coach.APIKeyEnv + ` or the OS keyring). Without a key, or when
the request fails, a built-in message is used instead.

The endpoint and model are set in the config file as ai_base_url and
ai_model. The default endpoint is ` + coach.DefaultBaseURL + `.`,
}

var coachMotivateCmd = &cobra.Command{
	Use:   "motivate <id>",
	Short: "Encouragement for one habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := svc.Stats(args[0])
		if err != nil {
			return fmt.Errorf("lookup %s: %w", args[0], err)
		}
		habits, err := svc.Load()
		if err != nil {
			return fmt.Errorf("failed to load habits: %w", err)
		}

		c := newCoach(cfg, appLogger)
		printResult(cmd, motivate(cmd.Context(), c, svc, detail, svc.Overview(habits)))
		return nil
	},
}

// motivate picks a comeback for lapsed habits, a celebration on milestone
// streaks, and plain encouragement otherwise.
func motivate(ctx context.Context, c *coach.Coach, s *tracker.Service, d *tracker.Detail, o tracker.Overview) coach.Result {
	st := d.Stats
	if st.Total > 0 && st.DaysSinceLast >= comebackAfter {
		return c.Comeback(ctx, coach.ComebackContext{
			Name:             d.Habit.Name,
			DaysSince:        st.DaysSinceLast,
			LongestStreak:    st.LongestStreak,
			TotalCompletions: st.Total,
		})
	}
	if label, ok := milestones[st.CurrentStreak]; ok && d.Habit.IsCompleted(s.Today()) {
		return c.Milestone(ctx, coach.MilestoneContext{
			Name:        d.Habit.Name,
			Achievement: label,
			Streak:      st.CurrentStreak,
		})
	}
	return c.Motivate(ctx, coach.MotivationContext{
		Name:          d.Habit.Name,
		Streak:        st.CurrentStreak,
		Rate:          st.Rate30,
		TotalHabits:   o.TotalHabits,
		AverageStreak: o.AverageStreak,
		Consistency:   o.Consistency,
	})
}

var coachTipsCmd = &cobra.Command{
	Use:   "tips <id>",
	Short: "Three tips to improve consistency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := svc.Stats(args[0])
		if err != nil {
			return fmt.Errorf("lookup %s: %w", args[0], err)
		}

		c := newCoach(cfg, appLogger)
		tips, _ := c.Tips(cmd.Context(), coach.TipsContext{
			Name:        detail.Habit.Name,
			Description: detail.Habit.Description,
			BestDay:     detail.Stats.BestWeekday,
			Consistency: detail.Stats.Rate30,
			Trend:       coach.Trend(detail.Stats.Rate7, detail.Stats.Rate30),
		})

		out := cmd.OutOrStdout()
		boldCol.Fprintf(out, "Tips for %s\n", detail.Habit.Name)
		for i, tip := range tips {
			fmt.Fprintf(out, "  %d. %s\n", i+1, tip)
		}
		return nil
	},
}

var coachRemindCmd = &cobra.Command{
	Use:   "remind <id>",
	Short: "A nudge to complete a habit today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := svc.Stats(args[0])
		if err != nil {
			return fmt.Errorf("lookup %s: %w", args[0], err)
		}

		c := newCoach(cfg, appLogger)
		printResult(cmd, c.Remind(cmd.Context(), reminderContext(detail, svc.Today(), time.Now())))
		return nil
	},
}

func reminderContext(d *tracker.Detail, today engine.Day, now time.Time) coach.ReminderContext {
	rc := coach.ReminderContext{
		Name:          d.Habit.Name,
		Streak:        d.Stats.CurrentStreak,
		LastCompleted: "never",
		TimeOfDay:     timeOfDay(now.Hour()),
		DayOfWeek:     today.Weekday().String(),
	}
	if last, ok := d.Habit.Days().LatestOnOrBefore(today); ok {
		rc.LastCompleted = last.String()
		// Today itself is not a miss yet.
		if misses := int(today-last) - 1; misses > 0 {
			rc.ConsecutiveMisses = misses
		}
	}
	return rc
}

func timeOfDay(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

var coachSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "A summary of the last seven days",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := svc.Week()
		if err != nil {
			return fmt.Errorf("failed to build weekly report: %w", err)
		}

		c := newCoach(cfg, appLogger)
		printResult(cmd, c.WeeklySummary(cmd.Context(), report))
		return nil
	},
}

var coachKeyCmd = &cobra.Command{
	Use:         "key",
	Short:       "Manage the coach API key in the OS keyring",
	Annotations: map[string]string{skipStorage: "true"},
}

var coachKeySetCmd = &cobra.Command{
	Use:         "set <api-key>",
	Short:       "Store the API key",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keyring.SetAPIKey(strings.TrimSpace(args[0])); err != nil {
			return err
		}
		green.Fprintln(cmd.OutOrStdout(), "✓ API key stored in keyring")
		return nil
	},
}

var coachKeyDeleteCmd = &cobra.Command{
	Use:         "delete",
	Aliases:     []string{"rm"},
	Short:       "Remove the API key",
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		err := keyring.DeleteAPIKey()
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "No API key stored.")
			return nil
		}
		if err != nil {
			return err
		}
		yellow.Fprintln(cmd.OutOrStdout(), "✗ API key removed from keyring")
		return nil
	},
}

var coachKeyStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show where the API key comes from",
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if os.Getenv(coach.APIKeyEnv) != "" {
			fmt.Fprintf(out, "Using %s from the environment\n", coach.APIKeyEnv)
			return nil
		}
		_, err := keyring.GetAPIKey()
		switch {
		case err == nil:
			fmt.Fprintln(out, "Using API key from the OS keyring")
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Fprintln(out, "No API key set; built-in messages only")
		default:
			fmt.Fprintf(out, "Keyring unavailable: %v\n", err)
		}
		return nil
	},
}

func init() {
	coachKeyCmd.AddCommand(coachKeySetCmd, coachKeyDeleteCmd, coachKeyStatusCmd)
	coachCmd.AddCommand(coachMotivateCmd, coachTipsCmd, coachRemindCmd, coachSummaryCmd, coachKeyCmd)
	rootCmd.AddCommand(coachCmd)
}
