package palette

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
	"github.com/matzehuels/tikzgrid/pkg/observability"
)

// Store loads and saves one palette.
type Store interface {
	// Load returns the stored palette, or the defaults when nothing usable
	// is stored. Failures are logged, never returned.
	Load(ctx context.Context) []Entry

	// Save replaces the stored palette with the well-formed entries.
	Save(ctx context.Context, entries []Entry) error

	// Close releases the backend connection.
	Close() error
}

// errNoPalette is returned by a backend when nothing has been stored yet.
var errNoPalette = errors.New("no palette stored")

// backend is the raw storage behind a Store.
type backend interface {
	read(ctx context.Context) ([]Entry, error)
	write(ctx context.Context, entries []Entry) error
}

// base implements Load and Save on top of a backend. It serializes access
// so one process never interleaves a read with a write.
type base struct {
	mu     sync.Mutex
	name   string
	rw     backend
	logger *log.Logger
}

func (b *base) init(name string, rw backend, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	b.name, b.rw, b.logger = name, rw, logger
}

// Backend returns the backend name ("file", "sqlite", ...).
func (b *base) Backend() string { return b.name }

func (b *base) Load(ctx context.Context) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := b.rw.read(ctx)
	switch {
	case errors.Is(err, errNoPalette):
		b.logger.Debug("no palette stored, writing defaults", "backend", b.name)
	case err != nil:
		b.logger.Warn("palette unreadable, using defaults", "backend", b.name, "err", err)
	}

	if err == nil {
		if clean := Sanitize(entries); len(clean) > 0 {
			observability.Palette().OnPaletteLoad(ctx, b.name, len(clean), false)
			return clean
		}
		b.logger.Warn("stored palette is empty, using defaults", "backend", b.name)
	}

	defaults := Defaults()
	if werr := b.rw.write(ctx, defaults); werr != nil {
		b.logger.Warn("could not persist default palette", "backend", b.name, "err", werr)
	}
	observability.Palette().OnPaletteLoad(ctx, b.name, len(defaults), true)
	return defaults
}

func (b *base) Save(ctx context.Context, entries []Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	clean := Sanitize(entries)
	err := b.rw.write(ctx, clean)
	observability.Palette().OnPaletteSave(ctx, b.name, len(clean), err)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeStorage, err, "failed to save palette to %s", b.name)
	}
	b.logger.Debug("palette saved", "backend", b.name, "entries", len(clean))
	return nil
}
