package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	Dir    = ".ftmd"
	Path   = Dir + "/config.yaml"
	DBPath = Dir + "/ftmd.db"
)

// Config is the project configuration read from .ftmd/config.yaml.
type Config struct {
	Docs            string   `yaml:"docs"`
	DefaultLanguage string   `yaml:"default_language"`
	BlockTypes      []string `yaml:"block_types"`
}

func Default() Config {
	return Config{
		Docs:            "docs",
		DefaultLanguage: "en",
		BlockTypes:      []string{"gherkin", "feature", "cucumber"},
	}
}

// Load reads the config at path. A missing file yields Default, and keys
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	def := Default()
	if cfg.Docs == "" {
		cfg.Docs = def.Docs
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = def.DefaultLanguage
	}
	if len(cfg.BlockTypes) == 0 {
		cfg.BlockTypes = def.BlockTypes
	}
	return cfg, nil
}

// Write stores cfg at path as YAML.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
