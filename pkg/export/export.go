// Package export turns a day's hourly price series into durable artifacts: a
// canonical pretty-printed JSON document and an optional PNG line chart, each
// written to a date-templated path.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
	"github.com/pvpc-tools/pvpc-exporter/pkg/model"
	"github.com/pvpc-tools/pvpc-exporter/pkg/storage"
)

// ErrWrite indicates an artifact could not be written to its path.
var ErrWrite = errors.New("artifact write failed")

// Exporter writes day artifacts. The ledger is optional; a nil ledger means
// runs leave no trace beyond the artifacts themselves.
type Exporter struct {
	logger *slog.Logger
	ledger storage.Ledger
}

// New creates an Exporter. ledger may be nil.
func New(logger *slog.Logger, ledger storage.Ledger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger, ledger: ledger}
}

// ExportJSON writes the canonical JSON artifact for one scheme and returns
// the expanded path it was written to. Writing the same export to the same
// path twice produces byte-identical output.
func (e *Exporter) ExportJSON(ctx context.Context, scheme model.Scheme, day dates.Date, series model.HourlyPrices, template string) (string, error) {
	export := model.DayExport{Day: day, Data: series}

	text, err := MarshalCanonical(export)
	if err != nil {
		return "", fmt.Errorf("%w: encode %s %s: %v", ErrWrite, scheme, day, err)
	}

	path := dates.ExpandPath(template, day)
	if err := writeFile(path, text); err != nil {
		return "", err
	}

	e.logger.Info("wrote json artifact", "scheme", string(scheme), "day", day.ISO(), "path", path, "bytes", len(text))
	e.record(ctx, scheme, day, storage.KindJSON, path, len(text))
	return path, nil
}

// MarshalCanonical serializes a DayExport to its stable on-disk form:
// compact-serialize, then re-indent with two spaces, hour keys ascending.
// The dump/indent split keeps the text deterministic and human-diffable.
func MarshalCanonical(export model.DayExport) ([]byte, error) {
	compact, err := json.Marshal(export)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadArtifact loads a previously written JSON artifact.
func ReadArtifact(path string) (model.DayExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.DayExport{}, fmt.Errorf("read artifact %s: %w", path, err)
	}

	var export model.DayExport
	if err := json.Unmarshal(data, &export); err != nil {
		return model.DayExport{}, fmt.Errorf("parse artifact %s: %w", path, err)
	}
	return export, nil
}

func (e *Exporter) record(ctx context.Context, scheme model.Scheme, day dates.Date, kind storage.ArtifactKind, path string, size int) {
	if e.ledger == nil {
		return
	}
	err := e.ledger.RecordArtifact(ctx, &storage.ArtifactRecord{
		Day:    day.ISO(),
		Scheme: string(scheme),
		Kind:   kind,
		Path:   path,
		Bytes:  int64(size),
	})
	if err != nil {
		e.logger.Warn("ledger record failed", "path", path, "error", err)
	}
}

func writeFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory %s: %v", ErrWrite, dir, err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}
