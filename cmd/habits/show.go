// ABOUTME: CLI command for showing one habit's statistics.
// ABOUTME: Prints streaks, rates, weekly totals, badges, and a prediction.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/habits/internal/engine"
	"github.com/spf13/cobra"
)

var (
	showJSON  bool
	showWeeks int
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"s"},
	Short:   "Show habit statistics",
	Long: `Show statistics for one habit: current and longest streak, 7 and 30 day
completion rates, completions per week, best weekday, earned badges, and a
guess at the next completion.

EXAMPLES:

  habits show abc123
  habits show abc123 --weeks 12
  habits show abc123 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := svc.Stats(args[0])
		if err != nil {
			return fmt.Errorf("lookup %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if showJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(detail)
		}

		h, s := detail.Habit, detail.Stats
		boldCol.Fprintln(out, h.Name)
		if h.Description != "" {
			fmt.Fprintln(out, faint.Sprint(h.Description))
		}
		fmt.Fprintf(out, "%s  created %s\n\n", faint.Sprint(h.ShortID()), h.CreatedAt.Format("2006-01-02"))

		row := func(label, value string) {
			fmt.Fprintf(out, "  %s %s\n", padRight(label, 18), value)
		}
		row("Current streak", streakLabel(s.CurrentStreak))
		row("Longest streak", fmt.Sprintf("%d days", s.LongestStreak))
		row("Last 7 days", fmt.Sprintf("%d%% (%d/7)", s.Rate7, s.Last7))
		row("Last 30 days", fmt.Sprintf("%d%% (%d/30)", s.Rate30, s.Last30))
		row("Total", fmt.Sprintf("%d completions", s.Total))
		row("Consistency", s.Consistency)
		row("Best weekday", s.BestWeekday)
		row("Best week", fmt.Sprintf("%d/7", s.BestWeek))
		row("Next completion", s.NextCompletion)
		if s.DaysSinceLast > 0 {
			row("Last completed", fmt.Sprintf("%d days ago", s.DaysSinceLast))
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, boldCol.Sprint("Weekly"))
		for _, b := range engine.WeekBuckets(h.Days(), showWeeks, svc.Today()) {
			bar := strings.Repeat("█", b.Count) + faint.Sprint(strings.Repeat("░", 7-b.Count))
			fmt.Fprintf(out, "  %s %s %d\n", faint.Sprint(b.Start), bar, b.Count)
		}

		fmt.Fprintln(out)
		if len(detail.Badges) == 0 {
			fmt.Fprintln(out, faint.Sprint("No badges yet."))
			return nil
		}
		fmt.Fprintln(out, boldCol.Sprint("Badges"))
		for _, b := range detail.Badges {
			fmt.Fprintf(out, "  %s %s %s\n", b.Icon, cyan.Sprint(b.Name), faint.Sprint(b.Description))
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	showCmd.Flags().IntVarP(&showWeeks, "weeks", "w", 8, "number of weeks in the weekly chart")
	rootCmd.AddCommand(showCmd)
}
