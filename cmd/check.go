package cmd

import (
	"fmt"
	"io"

	"github.com/chriserin/ftmd/internal/config"
	"github.com/chriserin/ftmd/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file.md...]",
	Short: "Validate the feature blocks of markdown files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// RunCheck normalizes every feature block of paths, or of all markdown
// under the docs directory when paths is empty. It fails if any block does.
func RunCheck(w io.Writer, paths []string) error {
	cfg, err := config.Load(config.Path)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		paths, err = markdownFiles(cfg.Docs)
		if err != nil {
			return err
		}
	}

	var total, failed int
	for _, path := range paths {
		scenarios, failures, err := parseFile(cfg, path)
		if err != nil {
			return err
		}
		for _, s := range scenarios {
			ui.OkLine(w, path, s.Block.StartLine, s.Name())
		}
		for _, f := range failures {
			ui.ErrLine(w, f.Err.Error())
		}
		total += len(scenarios)
		failed += len(failures)
	}

	ui.CheckSummary(w, total, failed)
	if failed > 0 {
		return fmt.Errorf("%d blocks failed to normalize", failed)
	}
	return nil
}
