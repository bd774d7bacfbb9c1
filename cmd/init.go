package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chriserin/ftmd/internal/config"
	"github.com/chriserin/ftmd/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ftmd in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	_, err := os.Stat(config.Dir)
	dirExists := err == nil
	if err := os.MkdirAll(config.Dir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", config.Dir, err)
	}
	reportCreated(w, config.Dir+"/", dirExists)

	_, err = os.Stat(config.Path)
	configExists := err == nil
	if !configExists {
		if err := config.Write(config.Path, config.Default()); err != nil {
			return err
		}
	}
	reportCreated(w, config.Path, configExists)

	_, err = os.Stat(config.DBPath)
	dbExists := err == nil
	sqlDB, err := db.Open(config.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	reportCreated(w, config.DBPath, dbExists)

	msgs, err := ensureGitignore()
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func reportCreated(w io.Writer, path string, existed bool) {
	if existed {
		fmt.Fprintln(w, path+" already exists")
	} else {
		fmt.Fprintln(w, path+" created")
	}
}

// ensureGitignore adds the database path to .gitignore, creating the file
// if needed. The config file stays tracked.
func ensureGitignore() ([]string, error) {
	entry := config.DBPath

	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
