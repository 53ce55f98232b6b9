package palette

import (
	"context"

	"github.com/charmbracelet/log"
)

// MemoryStore keeps the palette in process memory.
type MemoryStore struct {
	base
	entries []Entry
	stored  bool
}

// NewMemoryStore returns an empty in-memory store. The first Load returns
// the defaults.
func NewMemoryStore(logger *log.Logger) *MemoryStore {
	s := &MemoryStore{}
	s.init("memory", s, logger)
	return s
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) read(context.Context) ([]Entry, error) {
	if !s.stored {
		return nil, errNoPalette
	}
	return append([]Entry(nil), s.entries...), nil
}

func (s *MemoryStore) write(_ context.Context, entries []Entry) error {
	s.entries = append([]Entry(nil), entries...)
	s.stored = true
	return nil
}

var _ Store = (*MemoryStore)(nil)
