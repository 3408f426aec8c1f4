// Package cli wires the cobra command tree: the default command
// launches the bubbletea viewer over a repository, and "log" prints
// the rendered graph as plain text for piping.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yourusername/lazygit-lite/internal/config"
	"github.com/yourusername/lazygit-lite/internal/logging"
)

var (
	flagStyle    string
	flagAll      bool
	flagMaxCount int
	flagLogFile  string
	flagLogLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "railgraph [path]",
	Short: "Render a commit graph, interactively or as plain text",
	Long: `railgraph renders a repository's commit history as a railroad
graph: one row per commit, with lanes showing ancestry and merges.

Run with no subcommand to open the interactive viewer, or use the
"log" subcommand to print the graph as plain text for piping.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(flagLogFile, flagLogLevel); err != nil {
			return err
		}

		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("cli: loading config: %w", err)
		}
		if viper.IsSet("style") {
			loaded.UI.GraphStyle = flagStyle
		}
		if viper.IsSet("max-count") {
			loaded.Performance.MaxCommits = flagMaxCount
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runViewer(repoPathArg(args))
	},
}

func repoPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// Execute runs the command tree; main's only job is to call this and
// exit nonzero on error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStyle, "style", "box", "glyph table: box or rounded")
	rootCmd.PersistentFlags().BoolVar(&flagAll, "all", true, "traverse every ref, not just HEAD")
	rootCmd.PersistentFlags().IntVar(&flagMaxCount, "max-count", 0, "limit the number of commits (0 = unbounded)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "debug-log", "", "write debug logs to this file (disabled by default)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "debug-level", "info", "debug log level: debug, info, warn, error")

	viper.BindPFlag("style", rootCmd.PersistentFlags().Lookup("style"))
	viper.BindPFlag("all", rootCmd.PersistentFlags().Lookup("all"))
	viper.BindPFlag("max-count", rootCmd.PersistentFlags().Lookup("max-count"))

	rootCmd.AddCommand(logCmd)
}
