// ABOUTME: CLI commands for exporting and importing habit data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/harperreed/habits/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export habit data",
	Long: `Export habit data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export with each habit's completed days
  markdown   Summary table plus a dated history per habit

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  habits export json                        # Export all data as JSON
  habits export json -o backup.json         # Save to file
  habits export yaml                        # Export as YAML
  habits export markdown -o habits.md       # Shareable report`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		// Exports carry caches as of today.
		if _, err := svc.Load(); err != nil {
			return fmt.Errorf("failed to load habits: %w", err)
		}

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown", "md":
			var md string
			md, err = storage.ExportMarkdown(repo, svc.Today())
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			green.Fprintf(out, "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(out, string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import habit data from JSON",
	Long: `Import habit data from a JSON backup file.

This imports habits from a previously exported JSON file. Habits with the
same ID as an existing habit replace it; new habits are appended.

EXAMPLES:

  habits import backup.json               # Import from file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		doc, err := storage.DecodeJSON(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if err := svc.Import(doc); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if _, err := svc.Load(); err != nil {
			return fmt.Errorf("failed to refresh habits: %w", err)
		}

		green.Fprintf(cmd.OutOrStdout(), "✓ Imported from %s\n", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
