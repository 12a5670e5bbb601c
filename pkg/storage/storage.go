// Package storage provides an optional local ledger of exported artifacts.
package storage

import (
	"context"
	"time"
)

// ArtifactKind distinguishes the artifact types recorded in the ledger.
type ArtifactKind string

const (
	KindJSON  ArtifactKind = "json"
	KindChart ArtifactKind = "chart"
)

// ArtifactRecord is one written artifact.
type ArtifactRecord struct {
	ID        string       `json:"id"`
	Day       string       `json:"day"`
	Scheme    string       `json:"scheme"`
	Kind      ArtifactKind `json:"kind"`
	Path      string       `json:"path"`
	Bytes     int64        `json:"bytes"`
	CreatedAt time.Time    `json:"created_at"`
}

// Ledger persists artifact records.
type Ledger interface {
	// RecordArtifact persists a single artifact record.
	RecordArtifact(ctx context.Context, record *ArtifactRecord) error

	// ListArtifacts returns the most recent records, newest first.
	ListArtifacts(ctx context.Context, limit int) ([]ArtifactRecord, error)

	// Close releases resources.
	Close() error
}
