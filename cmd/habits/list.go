// ABOUTME: CLI command for listing habits.
// ABOUTME: Shows today's checklist with recent days and streaks.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List habits",
	Long: `List all habits in the order they were created.

OUTPUT FORMAT:

  Each line shows: STATUS  ID  NAME  LAST-7-DAYS  STREAK

  The ID is an 8-character prefix you can use with done, show, edit, and
  delete. The dots show the seven days before today, oldest first.

EXAMPLES:

  habits list           # Today's checklist
  habits list --json    # Machine-readable output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		habits, err := svc.Load()
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(habits)
		}

		if len(habits) == 0 {
			fmt.Fprintln(out, "No habits yet. Add one with: habits add <name>")
			return nil
		}

		done := 0
		for _, h := range habits {
			fmt.Fprintln(out, habitLine(h))
			if h.CompletedToday {
				done++
			}
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %d/%d done today\n", faint.Sprint(svc.Today()), done, len(habits))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}
