package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent, so it
// is safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN re-runs on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id               TEXT PRIMARY KEY,
		seed             TEXT NOT NULL,
		profile          TEXT NOT NULL,
		num_tasks        INTEGER NOT NULL CHECK(num_tasks >= 0),
		num_qa           INTEGER NOT NULL CHECK(num_qa >= 0),
		train_count      INTEGER NOT NULL,
		val_count        INTEGER NOT NULL,
		train_path       TEXT NOT NULL,
		val_path         TEXT NOT NULL,
		train_sha256     TEXT NOT NULL,
		val_sha256       TEXT NOT NULL,
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

	`CREATE TABLE IF NOT EXISTS run_templates (
		run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		template_id TEXT NOT NULL,
		draws       INTEGER NOT NULL CHECK(draws > 0),
		PRIMARY KEY (run_id, template_id)
	)`,

	// Answer provenance and registry version were added after the first schema.
	`ALTER TABLE runs ADD COLUMN registry_version TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE runs ADD COLUMN canned_answers INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE runs ADD COLUMN fallback_answers INTEGER NOT NULL DEFAULT 0`,
}
