package cmd

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/chriserin/ftmd/internal/ui"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan markdown docs for scenarios and register them",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

type trackedScenario struct {
	id   int64
	name string
}

func RunSync(w io.Writer) error {
	cfg, sqlDB, err := openProject()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	paths, err := markdownFiles(cfg.Docs)
	if err != nil {
		return err
	}

	count := 0
	present := make(map[string]bool, len(paths))
	for _, path := range paths {
		present[path] = true

		scenarios, failures, err := parseFile(cfg, path)
		if err != nil {
			return err
		}
		for _, f := range failures {
			ui.ErrLine(w, f.Err.Error())
		}

		n, err := syncFile(w, sqlDB, path, scenarios, len(failures) == 0)
		if err != nil {
			return err
		}
		count += n
	}

	if err := pruneFiles(w, sqlDB, present); err != nil {
		return err
	}

	ui.SummaryLine(w, count)
	return nil
}

// syncFile upserts the scenarios of one file. When prune is set, tracked
// scenarios missing from the file are removed; a file with failing blocks
// keeps them, since they may live in the failing block.
func syncFile(w io.Writer, sqlDB *sql.DB, path string, scenarios []parsedScenario, prune bool) (int, error) {
	tx, err := sqlDB.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning sync of %s: %w", path, err)
	}
	defer tx.Rollback()

	var fileID int64
	err = tx.QueryRow(`SELECT id FROM files WHERE file_path = ?`, path).Scan(&fileID)
	if err == sql.ErrNoRows {
		res, err := tx.Exec(`INSERT INTO files (file_path) VALUES (?)`, path)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", path, err)
		}
		if fileID, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("inserting %s: %w", path, err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("querying %s: %w", path, err)
	}

	tracked, err := fileScenarios(tx, fileID)
	if err != nil {
		return 0, fmt.Errorf("querying scenarios of %s: %w", path, err)
	}
	existing := make(map[string]int64, len(tracked))
	for _, s := range tracked {
		existing[s.name] = s.id
	}

	count := 0
	seen := make(map[string]bool, len(scenarios))
	for _, s := range scenarios {
		name := s.Name()
		if seen[name] {
			ui.ErrLine(w, fmt.Sprintf("%s:%d: duplicate scenario %q skipped", path, s.Block.StartLine, name))
			continue
		}
		seen[name] = true

		if id, ok := existing[name]; ok {
			_, err = tx.Exec(`UPDATE scenarios SET block_line = ?, fake_language = ?, fake_name = ?, updated_at = datetime('now') WHERE id = ?`,
				s.Block.StartLine, s.Doc.FakeLanguage, s.Doc.FakeName, id)
			if err != nil {
				return 0, fmt.Errorf("updating scenario %q: %w", name, err)
			}
			ui.TrkLine(w, path, name)
		} else {
			_, err = tx.Exec(`INSERT INTO scenarios (file_id, name, block_line, fake_language, fake_name) VALUES (?, ?, ?, ?, ?)`,
				fileID, name, s.Block.StartLine, s.Doc.FakeLanguage, s.Doc.FakeName)
			if err != nil {
				return 0, fmt.Errorf("inserting scenario %q: %w", name, err)
			}
			ui.NewLine(w, path, name)
		}
		count++
	}

	if prune {
		for _, s := range tracked {
			if seen[s.name] {
				continue
			}
			if _, err := tx.Exec(`DELETE FROM scenarios WHERE id = ?`, s.id); err != nil {
				return 0, fmt.Errorf("removing scenario %q: %w", s.name, err)
			}
			ui.DelLine(w, path, s.name)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing sync of %s: %w", path, err)
	}
	return count, nil
}

func fileScenarios(tx *sql.Tx, fileID int64) ([]trackedScenario, error) {
	rows, err := tx.Query(`SELECT id, name FROM scenarios WHERE file_id = ? ORDER BY id`, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trackedScenario
	for rows.Next() {
		var s trackedScenario
		if err := rows.Scan(&s.id, &s.name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// pruneFiles removes tracked files that are no longer on disk, along with
// their scenarios.
func pruneFiles(w io.Writer, sqlDB *sql.DB, present map[string]bool) error {
	rows, err := sqlDB.Query(`
		SELECT f.file_path, s.name
		FROM files f
		LEFT JOIN scenarios s ON s.file_id = f.id
		ORDER BY f.file_path, s.id
	`)
	if err != nil {
		return fmt.Errorf("querying files: %w", err)
	}

	var gone []string
	removed := make(map[string][]string)
	for rows.Next() {
		var path string
		var name sql.NullString
		if err := rows.Scan(&path, &name); err != nil {
			rows.Close()
			return fmt.Errorf("scanning file row: %w", err)
		}
		if present[path] {
			continue
		}
		if _, ok := removed[path]; !ok {
			gone = append(gone, path)
			removed[path] = nil
		}
		if name.Valid {
			removed[path] = append(removed[path], name.String)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating files: %w", err)
	}

	for _, path := range gone {
		if _, err := sqlDB.Exec(`DELETE FROM files WHERE file_path = ?`, path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		for _, name := range removed[path] {
			ui.DelLine(w, path, name)
		}
	}
	return nil
}
