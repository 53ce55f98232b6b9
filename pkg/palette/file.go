package palette

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultFile is the palette file used when no path is configured.
const DefaultFile = "colors.csv"

// FileStore keeps the palette in a headerless two-column CSV file of
// name,rgb rows.
type FileStore struct {
	base
	path string
}

// NewFileStore returns a store backed by the CSV file at path. The file is
// created on first Load or Save.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if path == "" {
		path = DefaultFile
	}
	s := &FileStore{path: path}
	s.init("file", s, logger)
	return s
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read(_ context.Context) ([]Entry, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, errNoPalette
	}
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		if len(row) != 2 {
			continue
		}
		entries = append(entries, Entry{Name: row[0], RGB: row[1]})
	}
	return entries, nil
}

// write replaces the file through a temporary sibling and a rename.
func (s *FileStore) write(_ context.Context, entries []Entry) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, e := range entries {
		if err := w.Write([]string{e.Name, e.RGB}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".palette-*.csv")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

var _ Store = (*FileStore)(nil)
