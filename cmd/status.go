package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chriserin/ftmd/internal/ui"
	"github.com/spf13/cobra"
)

const noActivity = "no-activity"

// currentStatusSQL selects the latest status of scenario s.
const currentStatusSQL = `COALESCE(
	(SELECT status FROM statuses WHERE scenario_id = s.id ORDER BY changed_at DESC, id DESC LIMIT 1),
	'` + noActivity + `'
)`

var statusCmd = &cobra.Command{
	Use:   "status [<id> <status>]",
	Short: "Show project status or update a scenario's status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RunStatusReport(cmd.OutOrStdout())
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: ftmd status <id> <status>")
		}
		return RunStatusUpdate(cmd.OutOrStdout(), args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// parseID accepts "12" and "@ft:12".
func parseID(raw string) (int64, error) {
	raw = strings.TrimPrefix(raw, "@ft:")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid scenario ID: %s", raw)
	}
	return id, nil
}

func latestStatus(sqlDB *sql.DB, id int64) (string, error) {
	var status string
	err := sqlDB.QueryRow(`SELECT status FROM statuses WHERE scenario_id = ? ORDER BY changed_at DESC, id DESC LIMIT 1`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return status, err
}

func RunStatusUpdate(w io.Writer, rawID, status string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	_, sqlDB, err := openProject()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var existingID int64
	if err := sqlDB.QueryRow(`SELECT id FROM scenarios WHERE id = ?`, id).Scan(&existingID); err != nil {
		return fmt.Errorf("scenario %d not found", id)
	}

	prev, err := latestStatus(sqlDB, id)
	if err != nil {
		return fmt.Errorf("querying status: %w", err)
	}

	if _, err := sqlDB.Exec(`INSERT INTO statuses (scenario_id, status) VALUES (?, ?)`, id, status); err != nil {
		return fmt.Errorf("inserting status: %w", err)
	}

	ui.StatusConfirm(w, id, prev, status)
	return nil
}

func RunStatusReport(w io.Writer) error {
	_, sqlDB, err := openProject()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var count int
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM scenarios`).Scan(&count); err != nil {
		return fmt.Errorf("counting scenarios: %w", err)
	}

	fmt.Fprintf(w, "Scenarios: %d\n", count)
	if count == 0 {
		return nil
	}

	rows, err := sqlDB.Query(`
		SELECT ` + currentStatusSQL + ` AS current_status, COUNT(*) AS cnt
		FROM scenarios s
		GROUP BY current_status
		ORDER BY CASE WHEN current_status = '` + noActivity + `' THEN 1 ELSE 0 END, cnt DESC, current_status
	`)
	if err != nil {
		return fmt.Errorf("querying status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var cnt int
		if err := rows.Scan(&status, &cnt); err != nil {
			return fmt.Errorf("scanning status row: %w", err)
		}
		fmt.Fprintf(w, "  %s: %d\n", status, cnt)
	}

	return rows.Err()
}
