package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ErrStorageCorrupt is logged when a file cannot be decoded. The broken file is
// moved aside and the collection starts empty.
var ErrStorageCorrupt = errors.New("storage file is corrupt")

const indent = "    "

// File is a JSON array of records rewritten wholesale on every save.
type File[T any] struct {
	path   string
	logger *slog.Logger
}

func NewFile[T any](path string, logger *slog.Logger) *File[T] {
	return &File[T]{
		path:   path,
		logger: logger.With("file", path),
	}
}

func (f *File[T]) Path() string {
	return f.path
}

// LoadAll reads every record. A missing or empty file is an empty collection.
func (f *File[T]) LoadAll() ([]T, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		backup := f.path + ".corrupt-" + time.Now().UTC().Format("20060102T150405")
		if renameErr := os.Rename(f.path, backup); renameErr != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrStorageCorrupt, f.path, errors.Join(err, renameErr))
		}
		f.logger.Error(ErrStorageCorrupt.Error(), "error", err, "backup", backup)
		return nil, nil
	}
	return records, nil
}

// SaveAll replaces the file contents. Readers see either the old or the new
// collection, never a partial write.
func (f *File[T]) SaveAll(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", indent)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	return writeAtomic(f.path, append(data, '\n'))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Sequence remembers the highest order id ever issued, so the ids of removed
// orders are not handed out again. It lives in its own file next to the
// orders so the orders file stays a plain array.
type Sequence struct {
	path   string
	logger *slog.Logger
}

type sequenceRecord struct {
	LastOrderID int64 `json:"last_order_id"`
}

func NewSequence(path string, logger *slog.Logger) *Sequence {
	return &Sequence{path: path, logger: logger.With("file", path)}
}

// Load returns the last issued id, or 0 when nothing was recorded. An
// unreadable counter is logged and treated as 0; the orders still bound the
// next id from below.
func (s *Sequence) Load() (int64, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.path, err)
	}

	var rec sequenceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Error(ErrStorageCorrupt.Error(), "error", err)
		return 0, nil
	}
	return rec.LastOrderID, nil
}

func (s *Sequence) Save(last int64) error {
	data, err := json.MarshalIndent(sequenceRecord{LastOrderID: last}, "", indent)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	return writeAtomic(s.path, append(data, '\n'))
}

// NextID returns 1 + the highest order id in records, or 1 when there are none.
// The repository also consults the Sequence, see OrderRepository.NextID.
func NextID(records []OrderRecord) int64 {
	var highest int64
	for _, r := range records {
		highest = max(highest, r.OrderID)
	}
	return highest + 1
}
