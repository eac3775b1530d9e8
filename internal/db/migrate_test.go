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
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesSchema(t *testing.T) {
	db := openTestDB(t)

	for _, obj := range []struct{ kind, name string }{
		{"table", "runs"},
		{"table", "run_templates"},
		{"index", "idx_runs_created"},
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = ? AND name = ?`, obj.kind, obj.name).Scan(&name)
		require.NoError(t, err, "%s %s should exist", obj.kind, obj.name)
	}

	rows, err := db.Query(`SELECT name FROM pragma_table_info('runs')`)
	require.NoError(t, err)
	defer rows.Close()
	var cols []string
	for rows.Next() {
		var c string
		require.NoError(t, rows.Scan(&c))
		cols = append(cols, c)
	}
	require.NoError(t, rows.Err())
	assert.Contains(t, cols, "registry_version")
	assert.Contains(t, cols, "canned_answers")
	assert.Contains(t, cols, "fallback_answers")
}

func TestMigrate_TemplateRowsCascade(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO runs
		(id, seed, profile, num_tasks, num_qa, train_count, val_count,
		 train_path, val_path, train_sha256, val_sha256, created_at)
		VALUES ('r', '1', 'standard', 1, 0, 0, 1, 't', 'v', '', '', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO run_templates (run_id, template_id, draws) VALUES ('r', 'frontend_navbar', 1)`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM runs WHERE id = 'r'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM run_templates`).Scan(&n))
	assert.Zero(t, n)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "manifest.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()
	assert.FileExists(t, path)
}
