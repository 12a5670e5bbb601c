package storage

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS export_artifacts (
		id TEXT PRIMARY KEY,
		day TEXT NOT NULL,
		scheme TEXT NOT NULL,
		kind TEXT NOT NULL,
		path TEXT NOT NULL,
		bytes INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_export_artifacts_day ON export_artifacts(day)`,
	`CREATE INDEX IF NOT EXISTS idx_export_artifacts_created_at ON export_artifacts(created_at)`,
}

func runMigrations(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
