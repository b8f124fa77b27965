// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/habits/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and update your habits through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "habits": {
        "command": "habits",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  add_habit        Create a habit
  list_habits      Today's checklist with streaks
  toggle_habit     Toggle completion for today or a past date
  edit_habit       Rename or recolor a habit
  delete_habit     Delete a habit and its history
  habit_stats      Streaks, rates, and badges
  weekly_report    Last seven days across habits
  dashboard        Today's progress, top streaks, and a quote
  month_calendar   Month calendar for one habit or all
  motivate         Short coaching message

AVAILABLE RESOURCES:

  habits://today    Today's status for every habit
  habits://week     Weekly report
  habits://export   Full JSON export`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc, newCoach(cfg, appLogger))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		appLogger.Info("mcp server starting", "habits", countHabits())
		err = server.Serve(ctx)
		if ctx.Err() != nil {
			appLogger.Info("mcp server stopped")
			return nil
		}
		return err
	},
}

func countHabits() int {
	habits, err := svc.Load()
	if err != nil {
		appLogger.Warn("initial load failed", "err", err)
		return 0
	}
	return len(habits)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
