// Package file persists batch documents as JSON files.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agorai/climate-profiler/internal/domain"
)

// Sink writes the batch document to a single JSON file. Writes go through a
// temp file and rename so a crash mid-write never leaves a truncated
// document for downstream readers.
type Sink struct {
	path   string
	logger *slog.Logger
}

// NewSink creates a file sink for the given output path.
func NewSink(path string, logger *slog.Logger) *Sink {
	return &Sink{path: path, logger: logger}
}

// WriteBatch serializes the document (indented, for human inspection) and
// atomically replaces the output file.
func (s *Sink) WriteBatch(_ context.Context, doc domain.BatchDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize batch document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write batch document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace batch document: %w", err)
	}

	s.logger.Info("batch document written", "path", s.path, "bytes", len(data), "zones", len(doc.Zones))
	return nil
}
