package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chriserin/ftmd/internal/config"
	"github.com/chriserin/ftmd/internal/db"
	"github.com/chriserin/ftmd/internal/markdown"
	"github.com/chriserin/ftmd/internal/parser"
)

var errNotInitialized = errors.New("run `ftmd init` first")

// openProject loads the config and opens the database of an initialized
// project in the current directory.
func openProject() (config.Config, *sql.DB, error) {
	if _, err := os.Stat(config.Dir); os.IsNotExist(err) {
		return config.Config{}, nil, errNotInitialized
	}

	cfg, err := config.Load(config.Path)
	if err != nil {
		return config.Config{}, nil, err
	}

	sqlDB, err := db.Open(config.DBPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("opening database: %w", err)
	}
	return cfg, sqlDB, nil
}

// markdownFiles returns every *.md file under root, sorted. A missing root
// yields no files.
func markdownFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return fs.SkipAll
			}
			return err
		}
		if !d.IsDir() && isMarkdown(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// parsedScenario is one single-scenario document together with the block
// it came from.
type parsedScenario struct {
	Block markdown.Block
	Doc   parser.Document
}

func (p parsedScenario) Name() string {
	return p.Doc.ScenarioDefinitions[0].Name
}

type blockError struct {
	Block markdown.Block
	Err   error
}

// parseFile normalizes every block of a configured type in the markdown
// file at path. Blocks that fail are collected, not fatal; their errors
// name the file.
func parseFile(cfg config.Config, path string) ([]parsedScenario, []blockError, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	n := parser.New(parser.Options{DefaultLanguage: cfg.DefaultLanguage, File: path}, nil)

	var scenarios []parsedScenario
	var failures []blockError
	blocks := markdown.FilterBlocks(markdown.ExtractBlocks(string(content)), cfg.BlockTypes...)
	for _, b := range blocks {
		docs, err := n.Normalize(b)
		if err != nil {
			var syntaxErr *parser.SyntaxError
			if !errors.As(err, &syntaxErr) {
				err = fmt.Errorf("%s:%d: %w", path, b.StartLine, err)
			}
			failures = append(failures, blockError{Block: b, Err: err})
			continue
		}
		for _, d := range docs {
			scenarios = append(scenarios, parsedScenario{Block: b, Doc: d})
		}
	}
	return scenarios, failures, nil
}
