package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chriserin/ftmd/internal/markdown"
	"github.com/chriserin/ftmd/internal/ui"
	"github.com/spf13/cobra"
)

var blockTypesFlag []string

var blocksCmd = &cobra.Command{
	Use:   "blocks <file.md>",
	Short: "List the fenced blocks of a markdown file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunBlocks(cmd.OutOrStdout(), args[0], blockTypesFlag)
	},
}

func init() {
	blocksCmd.Flags().StringSliceVar(&blockTypesFlag, "type", nil, "Only show blocks of this fence type")
	rootCmd.AddCommand(blocksCmd)
}

func RunBlocks(w io.Writer, path string, types []string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	for _, b := range markdown.FilterBlocks(markdown.ExtractBlocks(string(content)), types...) {
		ui.BlockRow(w, b.StartLine, b.EndLine, b.Type, b.Title)
	}
	return nil
}
