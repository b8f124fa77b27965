// ABOUTME: Root Cobra command for habits CLI.
// ABOUTME: Opens config, logger, and the habit store via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/storage"
	"github.com/harperreed/habits/internal/tracker"
	"github.com/spf13/cobra"
)

// skipStorage marks commands that never touch the habit store.
const skipStorage = "skip-storage"

var (
	dbPath    string
	debugFlag bool

	cfg       *config.Config
	appLogger *log.Logger
	repo      storage.Repository
	svc       *tracker.Service
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Daily habit tracker with streaks and coaching",
	Long: `Habits is a CLI tool for tracking daily habits.

Each habit keeps a history of completed days. Streaks, completion rates,
calendars, and weekly reports are all computed from that history.

QUICK START:

  $ habits add "Read 20 pages"          # Create a habit
  $ habits list                         # Today's checklist
  $ habits done abc123                  # Toggle today's completion
  $ habits done abc123 2024-03-09       # Fill in a past day
  $ habits show abc123                  # Streaks, rates, and badges
  $ habits stats                        # Today's dashboard across habits
  $ habits calendar abc123              # Month calendar
  $ habits week                         # Last seven days across habits

COACHING:

  $ habits coach key set <api-key>      # Store an API key in the OS keyring
  $ habits coach motivate abc123        # Short encouragement
  $ habits coach summary                # Weekly summary

  Coaching works offline too: without a key you get built-in messages.

MCP INTEGRATION:

  Run 'habits mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants. Add to your Claude
  config:

  {
    "mcpServers": {
      "habits": { "command": "habits", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Configure ~/.config/habits/config.json to pick a backend:

    sqlite     ~/.local/share/habits/habits.db (default)
    markdown   one file per habit under ~/.local/share/habits/habits/
    kv         embedded key-value store under ~/.local/share/habits/kv/`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Annotations[skipStorage] == "true" {
			return nil
		}
		return openStore()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if debugFlag {
		c.Debug = true
	}
	return c, nil
}

func openStore() error {
	if err := closeStore(); err != nil {
		return err
	}

	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	appLogger, err = logger.New(logger.Config{Debug: cfg.Debug, DataDir: cfg.GetDataDir()})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	repo, err = cfg.OpenStorage(appLogger)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	appLogger.Debug("storage opened", "backend", cfg.GetBackend())

	svc = tracker.New(repo,
		tracker.WithLocation(loc),
		tracker.WithLogger(appLogger),
	)
	return nil
}

func closeStore() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	svc = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging to stderr")
}
