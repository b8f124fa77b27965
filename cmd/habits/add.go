// ABOUTME: CLI command for adding habits.
// ABOUTME: Validates name, description, and color before storing.
package main

import (
	"fmt"
	"strings"

	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	addDescription string
	addColor       string
)

var addCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"a", "new"},
	Short:   "Add a habit",
	Long: `Add a new daily habit.

Names must be 2 to 50 characters. Descriptions are optional and limited to
200 characters. Colors are hex values and default to #0ea5e9.

Examples:
  habits add "Read 20 pages"
  habits add Meditate -d "10 minutes after waking up"
  habits add "Drink water" --color "#22c55e"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := svc.Add(models.HabitInput{
			Name:        strings.Join(args, " "),
			Description: addDescription,
			Color:       addColor,
		})
		if err != nil {
			return fmt.Errorf("failed to add habit: %w", err)
		}

		out := cmd.OutOrStdout()
		green.Fprintf(out, "✓ Added %s\n", h.Name)
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint(h.ShortID()), faint.Sprint(h.Color))
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "habit description")
	addCmd.Flags().StringVarP(&addColor, "color", "c", "", "hex color (default #0ea5e9)")
	rootCmd.AddCommand(addCmd)
}
