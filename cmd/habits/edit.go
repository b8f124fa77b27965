// ABOUTME: CLI command for editing a habit's name, description, or color.
// ABOUTME: Unset flags keep the current values.
package main

import (
	"fmt"

	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	editName        string
	editDescription string
	editColor       string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a habit",
	Long: `Change a habit's name, description, or color. History is untouched.

EXAMPLES:

  habits edit abc123 --name "Read 30 pages"
  habits edit abc123 --color "#f97316"
  habits edit abc123 -d ""            # Clear the description`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := svc.Get(args[0])
		if err != nil {
			return fmt.Errorf("lookup %s: %w", args[0], err)
		}

		in := models.HabitInput{
			Name:        current.Name,
			Description: current.Description,
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			in.Name = editName
		}
		if flags.Changed("description") {
			in.Description = editDescription
		}
		if flags.Changed("color") {
			in.Color = editColor
		}

		h, err := svc.Edit(current.ID.String(), in)
		if err != nil {
			return fmt.Errorf("failed to edit habit: %w", err)
		}

		green.Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", h.Name)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editName, "name", "n", "", "new name")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "new description")
	editCmd.Flags().StringVarP(&editColor, "color", "c", "", "new hex color")
	rootCmd.AddCommand(editCmd)
}
