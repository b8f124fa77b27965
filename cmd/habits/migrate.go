// ABOUTME: CLI command for migrating habits between storage backends.
// ABOUTME: Copies habits and the reset marker from one backend to another.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateToDir  string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate habits between storage backends",
	Long: `Copy every habit, its history, and the day-reset marker from one storage
backend to another.

BACKENDS:

  sqlite     single database file (default)
  markdown   one markdown file per habit
  kv         embedded key-value store

IMPORTANT:

  - The source defaults to the backend in your config file
  - The destination must be empty unless --force is given
  - Run with --dry-run first to see what would be migrated
  - Your config is not changed; set "backend" yourself afterwards

USAGE:

  habits migrate --to markdown --dry-run   # Preview
  habits migrate --to markdown             # Copy sqlite data to markdown files
  habits migrate --from markdown --to kv --to-dir ~/habits-kv`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		if migrateTo == "" {
			return fmt.Errorf("--to is required (sqlite, markdown, or kv)")
		}
		loc, err := c.Location()
		if err != nil {
			return err
		}

		from := migrateFrom
		if from == "" {
			from = c.GetBackend()
		}
		dataDir := c.GetDataDir()
		toDir := dataDir
		if migrateToDir != "" {
			toDir = config.ExpandPath(migrateToDir)
		}
		if from == migrateTo && toDir == dataDir {
			return fmt.Errorf("source and destination are the same %s store", from)
		}

		out := cmd.OutOrStdout()
		if migrateDryRun {
			yellow.Fprintln(out, "Dry run mode - no changes will be made")
			fmt.Fprintln(out)
		}

		src, err := config.OpenBackend(from, dataDir, c.SQLitePath(), nil)
		if err != nil {
			return fmt.Errorf("failed to open source %s storage: %w", from, err)
		}
		defer func() { _ = src.Close() }()

		habits, err := src.ListHabits()
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}

		if migrateDryRun {
			completions := 0
			for _, h := range habits {
				completions += h.Days().Len()
			}
			fmt.Fprintf(out, "Would migrate %d habits (%d completions) from %s to %s in %s\n",
				len(habits), completions, from, migrateTo, toDir)
			return nil
		}

		if !migrateForce {
			inUse, err := destinationInUse(migrateTo, toDir)
			if err != nil {
				return err
			}
			if inUse {
				return fmt.Errorf("destination %s store in %s is not empty (use --force to merge)", migrateTo, toDir)
			}
		}

		sqlitePath := ""
		if migrateTo == config.BackendSQLite && migrateToDir == "" {
			sqlitePath = c.SQLitePath()
		}
		dst, err := config.OpenBackend(migrateTo, toDir, sqlitePath, nil)
		if err != nil {
			return fmt.Errorf("failed to open destination %s storage: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		if !migrateForce {
			existing, err := dst.ListHabits()
			if err != nil {
				return fmt.Errorf("failed to read destination: %w", err)
			}
			if len(existing) > 0 {
				return fmt.Errorf("destination %s store already has %d habits (use --force to merge)", migrateTo, len(existing))
			}
		}

		summary, err := storage.MigrateDataIn(src, dst, loc)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		green.Fprintf(out, "✓ Migrated %d habits (%d completions) from %s to %s\n",
			summary.Habits, summary.Completions, from, migrateTo)
		fmt.Fprintf(out, "  Set \"backend\": %q in %s to use it.\n", migrateTo, config.GetConfigPath())
		return nil
	},
}

// destinationInUse reports whether a file-based destination already has data.
func destinationInUse(backend, dir string) (bool, error) {
	switch backend {
	case config.BackendMarkdown:
		return storage.IsDirNonEmpty(filepath.Join(dir, "habits"))
	case config.BackendKV:
		return storage.IsDirNonEmpty(filepath.Join(dir, "kv"))
	default:
		return false, nil
	}
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (default: configured backend)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, markdown, or kv")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-dir", "", "destination data directory (default: configured data dir)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate into a non-empty destination")
	rootCmd.AddCommand(migrateCmd)
}
