package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/ftmd/internal/config"
	"github.com/chriserin/ftmd/internal/db"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf))
	return buf.String()
}

// writeDoc writes a markdown file below docs/.
func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join("docs", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInit_CreatesProjectDirectory(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	info, err := os.Stat(filepath.Join(dir, ".ftmd"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out, ".ftmd/ created")
}

func TestInit_RunTwice(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runInit(t)
	assert.Contains(t, out, ".ftmd/ already exists")
	assert.Contains(t, out, ".ftmd/config.yaml already exists")
	assert.Contains(t, out, ".ftmd/ftmd.db already exists")
	assert.Contains(t, out, ".ftmd/ftmd.db already in .gitignore")
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	inTempDir(t)
	out := runInit(t)

	cfg, err := config.Load(config.Path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Contains(t, out, ".ftmd/config.yaml created")
}

func TestInit_KeepsExistingConfig(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.MkdirAll(".ftmd", 0o755))
	require.NoError(t, os.WriteFile(config.Path, []byte("docs: specs\n"), 0o644))

	runInit(t)

	data, err := os.ReadFile(config.Path)
	require.NoError(t, err)
	assert.Equal(t, "docs: specs\n", string(data))
}

func TestInit_MigratesDatabase(t *testing.T) {
	inTempDir(t)
	out := runInit(t)

	sqlDB, err := db.Open(config.DBPath)
	require.NoError(t, err)
	defer sqlDB.Close()

	var version int
	require.NoError(t, sqlDB.QueryRow("SELECT version FROM schema_version").Scan(&version))
	assert.Equal(t, len(db.All), version)
	assert.Contains(t, out, ".ftmd/ftmd.db created")
}

func TestInit_AddsToGitignore(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("node_modules"), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "node_modules\n.ftmd/ftmd.db\n", string(data))
	assert.Contains(t, out, ".ftmd/ftmd.db added to .gitignore")
}

func TestInit_NoGitignoreExists(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, ".ftmd/ftmd.db\n", string(data))
	assert.Contains(t, out, ".gitignore created")
}
