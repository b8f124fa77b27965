// ABOUTME: CLI command for toggling a habit's completion.
// ABOUTME: Defaults to today and accepts a past date as a second argument.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done <id> [date]",
	Aliases: []string{"d", "toggle"},
	Short:   "Toggle a habit's completion",
	Long: `Toggle whether a habit was completed on a day.

Running it twice for the same day undoes the first run. The date defaults to
today and may be YYYY-MM-DD, "today", or "yesterday". Future dates are rejected.

EXAMPLES:

  habits done abc123                 # Toggle today
  habits done abc123 yesterday       # Fill in yesterday
  habits done abc123 2024-03-09      # Fill in a specific day`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := svc.Today()
		if len(args) == 2 {
			var err error
			day, err = parseDayArg(args[1], svc.Today())
			if err != nil {
				return err
			}
		}

		h, completed, err := svc.ToggleOn(args[0], day)
		if err != nil {
			return fmt.Errorf("failed to toggle habit: %w", err)
		}

		out := cmd.OutOrStdout()
		if completed {
			green.Fprintf(out, "✓ Completed %s", h.Name)
		} else {
			yellow.Fprintf(out, "○ Unmarked %s", h.Name)
		}
		fmt.Fprintf(out, " %s\n", faint.Sprintf("(%s)", day))
		fmt.Fprintf(out, "  %s\n", streakLabel(h.Streak))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
