// ABOUTME: CLI command for today's dashboard across all habits.
// ABOUTME: Prints progress, streak leaders, habits needing attention, and a quote.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/habits/internal/engine"
	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"dashboard", "today"},
	Short:   "Show today's dashboard",
	Long: `Summarize every habit as of today: how many are done, the 7 day
completion rate, average and longest streak, the top streaks, habits still
open today, and a quote of the day.

EXAMPLES:

  habits stats
  habits stats --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := svc.Dashboard()
		if err != nil {
			return fmt.Errorf("failed to build dashboard: %w", err)
		}

		out := cmd.OutOrStdout()
		if statsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		}
		printDashboard(cmd, d)
		return nil
	},
}

func printDashboard(cmd *cobra.Command, d engine.Dashboard) {
	out := cmd.OutOrStdout()
	boldCol.Fprintf(out, "Today %s\n\n", d.Date)

	if d.TotalHabits == 0 {
		fmt.Fprintln(out, "No habits yet. Create one with 'habits add <name>'.")
		return
	}

	filled := d.CompletionRate / 5
	bar := green.Sprint(strings.Repeat("█", filled)) + faint.Sprint(strings.Repeat("░", 20-filled))
	fmt.Fprintf(out, "  %s %d%%  %d/%d done\n", bar, d.CompletionRate, d.CompletedToday, d.TotalHabits)
	fmt.Fprintf(out, "  %s %s\n\n", d.Emoji, d.Message)

	row := func(label, value string) {
		fmt.Fprintf(out, "  %s %s\n", padRight(label, 18), value)
	}
	row("Last 7 days", fmt.Sprintf("%d%%", d.WeekRate))
	row("Average streak", fmt.Sprintf("%d days", d.AverageStreak))
	row("Longest streak", fmt.Sprintf("%d days (%s)", d.LongestStreak, d.BestHabit))
	row("On fire", fmt.Sprintf("%d", d.HabitsOnFire))
	row("Consistency", fmt.Sprintf("%d%%", d.ConsistencyScore))
	row("Completions", fmt.Sprintf("%d", d.TotalCompletions))

	if len(d.TopHabits) > 0 {
		fmt.Fprintln(out)
		boldCol.Fprintln(out, "Top streaks")
		for _, h := range d.TopHabits {
			fmt.Fprintf(out, "  %s %s\n", padRight(truncate(h.Name, 24), 24), streakLabel(h.Streak))
		}
	}
	if len(d.NeedsAttention) > 0 {
		fmt.Fprintln(out)
		boldCol.Fprintln(out, "Still open today")
		for _, h := range d.NeedsAttention {
			fmt.Fprintf(out, "  %s %s\n", checkMark(false), h.Name)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cyan.Sprintf("\"%s\"", d.Quote.Text))
	fmt.Fprintln(out, faint.Sprintf("  %s", d.Quote.Author))
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}
