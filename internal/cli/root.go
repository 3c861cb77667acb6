// Package cli provides the Cobra command structure for scrapekit.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/scrapekit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root scrapekit command with all
// subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "scrapekit",
		Short: "Query HTML documents with CSS selectors and XPath",
		Long: `scrapekit parses HTML — including malformed real-world markup — and
queries it with CSS selectors or XPath expressions.

Input is read from files or stdin. Oversized input is rejected by a
configurable size guard, or truncated when truncation is enabled.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newSelectCommand())
	rootCmd.AddCommand(newXPathCommand())
	rootCmd.AddCommand(newTextCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
