// Package csvfile writes centroid rows as a CSV file.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/barangay-centroids/internal/domain"
)

// Writer writes the sorted centroid table to a single file, replacing any
// previous contents. It implements pipeline.Loader.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer for path. Missing parent directories are created
// on Write.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Path returns the destination file.
func (w *Writer) Path() string { return w.path }

// Write sorts rows and writes them under the header row, returning the number
// of data rows written. The file is written to a temporary sibling and renamed
// into place, so a failed run leaves the previous output untouched.
func (w *Writer) Write(ctx context.Context, rows []domain.Row) (int, error) {
	domain.SortRows(rows)

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*")
	if err != nil {
		return 0, fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := writeRows(ctx, tmp, rows); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write %s: %w", w.path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, fmt.Errorf("chmod temp output: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return 0, fmt.Errorf("replace %s: %w", w.path, err)
	}

	w.logger.Debug("csv written", "path", w.path, "rows", len(rows))
	return len(rows), nil
}

func writeRows(ctx context.Context, f *os.File, rows []domain.Row) error {
	cw := csv.NewWriter(f)
	cw.UseCRLF = true

	if err := cw.Write(domain.Header); err != nil {
		return err
	}
	for i, row := range rows {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := cw.Write(row.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
