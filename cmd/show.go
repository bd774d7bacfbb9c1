package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chriserin/ftmd/internal/config"
	"github.com/chriserin/ftmd/internal/markdown"
	"github.com/chriserin/ftmd/internal/parser"
	"github.com/chriserin/ftmd/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a scenario by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	cfg, sqlDB, err := openProject()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var name, filePath string
	var blockLine int
	err = sqlDB.QueryRow(`
		SELECT s.name, s.block_line, f.file_path
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		WHERE s.id = ?
	`, id).Scan(&name, &blockLine, &filePath)
	if err != nil {
		return fmt.Errorf("scenario %d not found", id)
	}

	status, err := latestStatus(sqlDB, id)
	if err != nil {
		return fmt.Errorf("querying status: %w", err)
	}
	if status == "" {
		status = noActivity
	}

	doc, err := findScenario(cfg, filePath, blockLine, name)
	if err != nil {
		return err
	}

	ui.ShowHeader(w, id, filepath.Base(filePath), name)
	ui.ShowStatus(w, status)
	fmt.Fprintln(w)
	ui.ShowGherkin(w, parser.Render(*doc))
	return nil
}

// findScenario re-reads the block starting at blockLine and returns the
// document of the named scenario. Sync may be stale, so the block is also
// searched by name when it moved.
func findScenario(cfg config.Config, filePath string, blockLine int, name string) (*parser.Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}

	n := parser.New(parser.Options{DefaultLanguage: cfg.DefaultLanguage, File: filePath}, nil)
	blocks := markdown.FilterBlocks(markdown.ExtractBlocks(string(content)), cfg.BlockTypes...)

	var fallback *parser.Document
	for _, b := range blocks {
		docs, err := n.Normalize(b)
		if err != nil {
			if b.StartLine == blockLine {
				return nil, err
			}
			continue
		}
		for i := range docs {
			if docs[i].ScenarioDefinitions[0].Name != name {
				continue
			}
			if b.StartLine == blockLine {
				return &docs[i], nil
			}
			if fallback == nil {
				fallback = &docs[i]
			}
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("scenario %q not found in %s, run `ftmd sync`", name, filePath)
}
