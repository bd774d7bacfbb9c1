package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/chriserin/ftmd/internal/ui"
	"github.com/spf13/cobra"
)

var (
	statusFlag     string
	noActivityFlag bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tracked scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), statusFlag, noActivityFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status")
	listCmd.Flags().BoolVar(&noActivityFlag, "no-activity", false, "Show only scenarios with no status")
	rootCmd.AddCommand(listCmd)
}

type listRow struct {
	id       int64
	fileName string
	name     string
	status   string
}

func RunList(w io.Writer, statusFilter string, onlyNoActivity bool) error {
	_, sqlDB, err := openProject()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`
		SELECT s.id, f.file_path, s.name, ` + currentStatusSQL + ` AS current_status
		FROM scenarios s
		JOIN files f ON s.file_id = f.id
		ORDER BY f.file_path, s.id
	`)
	if err != nil {
		return fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	var results []listRow
	for rows.Next() {
		var r listRow
		var filePath string
		if err := rows.Scan(&r.id, &filePath, &r.name, &r.status); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		r.fileName = filepath.Base(filePath)

		if statusFilter != "" && r.status != statusFilter {
			continue
		}
		if onlyNoActivity && r.status != noActivity {
			continue
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	idWidth, fileWidth, nameWidth := 0, 0, 0
	for _, r := range results {
		idWidth = max(idWidth, len(fmt.Sprintf("@ft:%d", r.id)))
		fileWidth = max(fileWidth, len(r.fileName))
		nameWidth = max(nameWidth, len(r.name))
	}

	for _, r := range results {
		ui.ListRow(w, r.id, r.fileName, r.name, r.status, idWidth, fileWidth, nameWidth)
	}
	return nil
}
