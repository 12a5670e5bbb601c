package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// SQLite implements the Ledger interface using an SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates an SQLite ledger at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) RecordArtifact(ctx context.Context, record *ArtifactRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO export_artifacts (id, day, scheme, kind, path, bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Day, record.Scheme, string(record.Kind),
		record.Path, record.Bytes, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert artifact record: %w", err)
	}
	return nil
}

func (s *SQLite) ListArtifacts(ctx context.Context, limit int) ([]ArtifactRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, day, scheme, kind, path, bytes, created_at
		 FROM export_artifacts ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	var records []ArtifactRecord
	for rows.Next() {
		var r ArtifactRecord
		var kind string
		if err := rows.Scan(&r.ID, &r.Day, &r.Scheme, &kind, &r.Path, &r.Bytes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan artifact row: %w", err)
		}
		r.Kind = ArtifactKind(kind)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
