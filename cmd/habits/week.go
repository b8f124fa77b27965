// ABOUTME: CLI command for the weekly report across all habits.
// ABOUTME: Prints per-habit rates, best and worst weekdays, and highlights.
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/habits/internal/engine"
	"github.com/spf13/cobra"
)

var weekJSON bool

var weekCmd = &cobra.Command{
	Use:     "week",
	Aliases: []string{"w", "report"},
	Short:   "Show the last seven days",
	Long: `Analyze the seven days ending today across all habits.

Shows completions per habit, completions per weekday, the best and worst
day, and which habits are most and least consistent.

EXAMPLES:

  habits week
  habits week --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := svc.Week()
		if err != nil {
			return fmt.Errorf("failed to build weekly report: %w", err)
		}

		out := cmd.OutOrStdout()
		if weekJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printWeek(cmd, report)
		return nil
	},
}

func printWeek(cmd *cobra.Command, r engine.WeeklyReport) {
	out := cmd.OutOrStdout()
	boldCol.Fprintf(out, "Week %s", r.WeekID)
	fmt.Fprintf(out, " %s\n\n", faint.Sprintf("(%s to %s)", r.WeekStart, r.WeekEnd))

	if r.TotalHabits == 0 {
		fmt.Fprintln(out, "No habits tracked.")
		return
	}

	for _, h := range r.Habits {
		bar := strings.Repeat("█", h.CompletionCount) + faint.Sprint(strings.Repeat("░", 7-h.CompletionCount))
		fmt.Fprintf(out, "  %s %s %3d%%\n", padRight(truncate(h.Name, 24), 24), bar, h.CompletionRate)
	}

	fmt.Fprintln(out)
	for i, n := range r.CompletionsByDay {
		fmt.Fprintf(out, "  %s %s\n", padRight(time.Weekday(i).String()[:3], 4), strings.Repeat("■", n)+faint.Sprintf(" %d", n))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s %d%%\n", padRight("Average", 18), r.AvgCompletionRate)
	fmt.Fprintf(out, "  %s %d/%d\n", padRight("Completions", 18), r.TotalCompletions, r.TotalHabits*7)
	if r.BestDay != engine.Placeholder {
		fmt.Fprintf(out, "  %s %s (%d)\n", padRight("Best day", 18), green.Sprint(r.BestDay), r.BestDayCompletions)
		fmt.Fprintf(out, "  %s %s (%d)\n", padRight("Worst day", 18), yellow.Sprint(r.WorstDay), r.WorstDayCompletions)
	}
	fmt.Fprintf(out, "  %s %s\n", padRight("Most consistent", 18), r.MostConsistentHabit)
	fmt.Fprintf(out, "  %s %s\n", padRight("Needs attention", 18), r.NeedsImprovement)
}

func init() {
	weekCmd.Flags().BoolVar(&weekJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(weekCmd)
}
