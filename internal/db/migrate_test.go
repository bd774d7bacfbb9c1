package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func withMigrations(t *testing.T, migrations ...string) {
	t.Helper()
	orig := All
	All = migrations
	t.Cleanup(func() { All = orig })
}

func version(t *testing.T, sqlDB *sql.DB) int {
	t.Helper()
	var v int
	require.NoError(t, sqlDB.QueryRow(`SELECT version FROM schema_version`).Scan(&v))
	return v
}

func tableExists(t *testing.T, sqlDB *sql.DB, name string) bool {
	t.Helper()
	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&count))
	return count == 1
}

func TestMigrate_EmptyMigrationList(t *testing.T) {
	withMigrations(t)
	sqlDB := openTestDB(t)
	require.NoError(t, Migrate(sqlDB))

	assert.True(t, tableExists(t, sqlDB, "schema_version"))
	assert.Equal(t, 0, version(t, sqlDB))
}

func TestMigrate_AppliesInOrder(t *testing.T) {
	withMigrations(t,
		`CREATE TABLE first (id INTEGER PRIMARY KEY)`,
		`CREATE TABLE second (id INTEGER PRIMARY KEY, first_id INTEGER REFERENCES first(id))`,
	)
	sqlDB := openTestDB(t)
	require.NoError(t, Migrate(sqlDB))

	assert.Equal(t, 2, version(t, sqlDB))
	assert.True(t, tableExists(t, sqlDB, "first"))
	assert.True(t, tableExists(t, sqlDB, "second"))
}

func TestMigrate_Idempotent(t *testing.T) {
	withMigrations(t, `CREATE TABLE once (id INTEGER PRIMARY KEY)`)
	sqlDB := openTestDB(t)
	require.NoError(t, Migrate(sqlDB))
	require.NoError(t, Migrate(sqlDB))
	assert.Equal(t, 1, version(t, sqlDB))
}

func TestMigrate_AppliesOnlyNewMigrations(t *testing.T) {
	withMigrations(t, `CREATE TABLE base (id INTEGER PRIMARY KEY)`)
	sqlDB := openTestDB(t)
	require.NoError(t, Migrate(sqlDB))

	All = append(All, `CREATE TABLE later (id INTEGER PRIMARY KEY)`)
	require.NoError(t, Migrate(sqlDB))
	assert.Equal(t, 2, version(t, sqlDB))
	assert.True(t, tableExists(t, sqlDB, "later"))
}

func TestMigrate_StopsAtFailedMigration(t *testing.T) {
	withMigrations(t,
		`CREATE TABLE good (id INTEGER PRIMARY KEY)`,
		`NOT VALID SQL`,
		`CREATE TABLE never (id INTEGER PRIMARY KEY)`,
	)
	sqlDB := openTestDB(t)
	err := Migrate(sqlDB)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 2 failed")

	assert.Equal(t, 1, version(t, sqlDB))
	assert.False(t, tableExists(t, sqlDB, "never"))
}

func TestOpen_AppliesSchema(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "ftmd.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Equal(t, len(All), version(t, sqlDB))
	for _, table := range []string{"files", "scenarios", "statuses"} {
		assert.True(t, tableExists(t, sqlDB, table), table)
	}
}

func TestOpen_ScenarioNameUniquePerFile(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "ftmd.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.Exec(`INSERT INTO files (file_path) VALUES ('docs/a.md'), ('docs/b.md')`)
	require.NoError(t, err)
	_, err = sqlDB.Exec(`INSERT INTO scenarios (file_id, name, block_line) VALUES (1, 'Login', 3)`)
	require.NoError(t, err)
	_, err = sqlDB.Exec(`INSERT INTO scenarios (file_id, name, block_line) VALUES (2, 'Login', 3)`)
	require.NoError(t, err)
	_, err = sqlDB.Exec(`INSERT INTO scenarios (file_id, name, block_line) VALUES (1, 'Login', 9)`)
	assert.Error(t, err)
}

func TestOpen_DeletingScenarioCascadesStatuses(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "ftmd.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.Exec(`INSERT INTO files (file_path) VALUES ('docs/a.md')`)
	require.NoError(t, err)
	_, err = sqlDB.Exec(`INSERT INTO scenarios (file_id, name, block_line) VALUES (1, 'Login', 3)`)
	require.NoError(t, err)
	_, err = sqlDB.Exec(`INSERT INTO statuses (scenario_id, status) VALUES (1, 'done')`)
	require.NoError(t, err)

	_, err = sqlDB.Exec(`DELETE FROM scenarios WHERE id = 1`)
	require.NoError(t, err)

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM statuses`).Scan(&count))
	assert.Equal(t, 0, count)
}
