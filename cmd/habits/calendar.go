// ABOUTME: CLI commands for month calendars and heat maps.
// ABOUTME: Renders one habit or coverage across all habits.
package main

import (
	"fmt"

	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	calendarMonth  string
	calendarOffset int
	calendarYear   bool
	heatmapDays    int
)

var calendarCmd = &cobra.Command{
	Use:     "calendar [id]",
	Aliases: []string{"cal"},
	Short:   "Show a month calendar",
	Long: `Show a month calendar for one habit, or for all habits at once.

With an ID, completed days are marked in the habit's color. Without one,
days are shaded by the share of habits completed that day.

EXAMPLES:

  habits calendar abc123                 # This month for one habit
  habits calendar abc123 --offset -1     # Last month
  habits calendar --month 2024-02        # All habits in February 2024
  habits calendar --year                 # Twelve months of coverage`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		today := svc.Today()
		year, month, err := parseMonthArg(calendarMonth, today)
		if err != nil {
			return err
		}
		year, month = engine.ShiftMonth(year, month, calendarOffset)

		out := cmd.OutOrStdout()
		if calendarYear {
			habits, err := svc.Load()
			if err != nil {
				return fmt.Errorf("failed to load habits: %w", err)
			}
			for _, grid := range engine.YearOverview(year, models.Subjects(habits), today) {
				fmt.Fprintln(out, renderCoverage(grid))
			}
			return nil
		}

		if len(args) == 0 {
			grid, err := svc.Coverage(year, month)
			if err != nil {
				return fmt.Errorf("failed to build calendar: %w", err)
			}
			fmt.Fprintln(out, renderCoverage(grid))
			return nil
		}

		h, err := svc.Get(args[0])
		if err != nil {
			return fmt.Errorf("lookup %s: %w", args[0], err)
		}
		fmt.Fprintln(out, renderMonth(h.Name, h.Color, engine.BuildMonthGrid(year, month, h.Days(), today)))
		return nil
	},
}

var heatmapCmd = &cobra.Command{
	Use:     "heatmap <id>",
	Aliases: []string{"heat"},
	Short:   "Show a contribution-style heat map",
	Long: `Show a heat map of the trailing window of days for one habit.

Columns are weeks, oldest on the left; rows run Monday to Sunday.

EXAMPLES:

  habits heatmap abc123              # Last 10 weeks
  habits heatmap abc123 --days 365   # Last year`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if heatmapDays < 1 || heatmapDays > engine.MaxHeatmapWindow {
			return fmt.Errorf("--days must be between 1 and %d", engine.MaxHeatmapWindow)
		}
		h, err := svc.Get(args[0])
		if err != nil {
			return fmt.Errorf("lookup %s: %w", args[0], err)
		}
		hm, err := svc.Heatmap(h.ID.String(), heatmapDays)
		if err != nil {
			return fmt.Errorf("failed to build heat map: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderHeatmap(h.Name, h.Color, hm))
		return nil
	},
}

func init() {
	calendarCmd.Flags().StringVarP(&calendarMonth, "month", "m", "", "month to show (YYYY-MM)")
	calendarCmd.Flags().IntVar(&calendarOffset, "offset", 0, "months relative to --month (negative for earlier)")
	calendarCmd.Flags().BoolVar(&calendarYear, "year", false, "show every month of the year for all habits")
	heatmapCmd.Flags().IntVar(&heatmapDays, "days", engine.DefaultHeatmapWindow, "window size in days")

	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(heatmapCmd)
}
