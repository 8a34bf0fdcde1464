// Package sheets appends exported orders to a CSV file operators open as a
// spreadsheet.
package sheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// CSVExporter is a ports.SheetExporter. The header row is written when the
// file is created.
type CSVExporter struct {
	mu      sync.Mutex
	path    string
	headers []string
}

func NewCSVExporter(path string, headers []string) *CSVExporter {
	return &CSVExporter{path: path, headers: headers}
}

func (e *CSVExporter) Append(_ context.Context, row []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.headers) > 0 && len(row) != len(e.headers) {
		return fmt.Errorf("sheet row has %d columns, want %d", len(row), len(e.headers))
	}

	_, err := os.Stat(e.path)
	fresh := errors.Is(err, fs.ErrNotExist)
	if err != nil && !fresh {
		return fmt.Errorf("stat %s: %w", e.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(e.path), err)
	}
	f, err := os.OpenFile(e.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", e.path, err)
	}

	w := csv.NewWriter(f)
	if fresh && len(e.headers) > 0 {
		_ = w.Write(e.headers)
	}
	_ = w.Write(row)
	w.Flush()

	if err := errors.Join(w.Error(), f.Close()); err != nil {
		return fmt.Errorf("append to %s: %w", e.path, err)
	}
	return nil
}
