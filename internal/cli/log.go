package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/lazygit-lite/internal/gitlog"
	"github.com/yourusername/lazygit-lite/internal/graph"
	"github.com/yourusername/lazygit-lite/internal/render"
)

var logCmd = &cobra.Command{
	Use:   "log [path]",
	Short: "Print the commit graph as plain text",
	Long: `log prints one line per commit with its graph glyphs as plain
unstyled text, the shape meant for piping into less, grep, or another
tool rather than rendered interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLog(repoPathArg(args))
	},
}

func runLog(repoPath string) error {
	repo, err := gitlog.OpenRepository(repoPath)
	if err != nil {
		return err
	}

	commits, err := repo.Commits(gitlog.LogOptions{
		All:      flagAll,
		MaxCount: flagMaxCount,
		Boundary: true,
	})
	if err != nil {
		return err
	}

	table := graph.BoxTable
	if cfg != nil && cfg.UI.GraphStyle == "rounded" {
		table = graph.RoundedTable
	}

	e := graph.New()
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for _, c := range commits {
		symbols := e.Consume(c.Hash, c.Parents, c.Boundary)
		fmt.Fprintln(w, render.PlainLine(table, symbols, *c))
	}
	return nil
}
