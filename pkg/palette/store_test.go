package palette

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"

	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
	"github.com/matzehuels/tikzgrid/pkg/observability"
)

// quietLogger discards store warnings during tests.
func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// recordingHooks captures palette events.
type recordingHooks struct {
	mu        sync.Mutex
	loads     []bool
	saves     int
	saveFails int
}

func (h *recordingHooks) OnPaletteLoad(_ context.Context, _ string, _ int, fallback bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loads = append(h.loads, fallback)
}

func (h *recordingHooks) OnPaletteSave(_ context.Context, _ string, _ int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.saves++
	if err != nil {
		h.saveFails++
	}
}

// storeFactories builds each locally testable backend.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"file": func() Store {
			return NewFileStore(filepath.Join(t.TempDir(), "colors.csv"), quietLogger())
		},
		"sqlite": func() Store {
			s, err := NewSQLiteStore(context.Background(), ":memory:", quietLogger())
			if err != nil {
				t.Fatalf("NewSQLiteStore: %v", err)
			}
			return s
		},
		"memory": func() Store {
			return NewMemoryStore(quietLogger())
		},
		"redis": func() Store {
			mr := miniredis.RunT(t)
			return newRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "", quietLogger())
		},
	}
}

func TestStore_LoadDefaultsAndPersist(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			if diff := cmp.Diff(Defaults(), s.Load(ctx)); diff != "" {
				t.Errorf("first Load() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(Defaults(), s.Load(ctx)); diff != "" {
				t.Errorf("second Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	in := []Entry{
		{Name: "Sky", RGB: "135, 206, 235"},
		{Name: "", RGB: "1,2,3"},
		{Name: "Ink, dark", RGB: "10,10,10"},
		{Name: "Broken", RGB: "1,2"},
		{Name: "Sky", RGB: "0,0,255"},
	}
	want := []Entry{
		{Name: "Sky", RGB: "135,206,235"},
		{Name: "Ink, dark", RGB: "10,10,10"},
		{Name: "Sky", RGB: "0,0,255"},
	}

	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			if err := s.Save(ctx, in); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			if diff := cmp.Diff(want, s.Load(ctx)); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_SaveEmptyFallsBack(t *testing.T) {
	ctx := context.Background()
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore()
			defer s.Close()

			if err := s.Save(ctx, []Entry{{Name: "", RGB: ""}}); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			if diff := cmp.Diff(Defaults(), s.Load(ctx)); diff != "" {
				t.Errorf("Load() after empty Save mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileStore_CSVFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "colors.csv")
	s := NewFileStore(path, quietLogger())

	err := s.Save(ctx, []Entry{{Name: "Node Blue", RGB: "147,197,253"}, {Name: "Plain", RGB: "1,1,1"}})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "Node Blue,\"147,197,253\"\nPlain,\"1,1,1\"\n"
	if string(raw) != want {
		t.Errorf("file contents = %q, want %q", raw, want)
	}

	entries, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".palette-*"))
	if len(entries) != 0 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestFileStore_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "colors.csv")
	content := "Keep,\"1,2,3\"\nonly one column\nThree,\"4,5,6\",extra\nAlso keep,\"7,8,9\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got := NewFileStore(path, quietLogger()).Load(ctx)
	want := []Entry{{Name: "Keep", RGB: "1,2,3"}, {Name: "Also keep", RGB: "7,8,9"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_CorruptFileIsReplaced(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "colors.csv")
	if err := os.WriteFile(path, []byte("\"unterminated,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFileStore(path, quietLogger())
	if diff := cmp.Diff(Defaults(), s.Load(ctx)); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(raw) == "\"unterminated,1\n" {
		t.Error("corrupt file should be rewritten with defaults")
	}
}

func TestFileStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the rename fail.
	path := filepath.Join(dir, "colors.csv")
	if err := os.MkdirAll(filepath.Join(path, "blocker"), 0o755); err != nil {
		t.Fatal(err)
	}

	err := NewFileStore(path, quietLogger()).Save(context.Background(), Defaults())
	if err == nil {
		t.Fatal("Save() should fail when the path is a directory")
	}
	if !perrors.Is(err, perrors.ErrCodeStorage) {
		t.Errorf("Save() error code = %s, want %s", perrors.GetCode(err), perrors.ErrCodeStorage)
	}
}

func TestStore_Hooks(t *testing.T) {
	ctx := context.Background()
	hooks := &recordingHooks{}
	observability.SetPaletteHooks(hooks)
	defer observability.Reset()

	s := NewMemoryStore(quietLogger())
	s.Load(ctx)
	if err := s.Save(ctx, Defaults()[:1]); err != nil {
		t.Fatal(err)
	}
	s.Load(ctx)

	if diff := cmp.Diff([]bool{true, false}, hooks.loads); diff != "" {
		t.Errorf("load fallbacks mismatch (-want +got):\n%s", diff)
	}
	if hooks.saves != 1 || hooks.saveFails != 0 {
		t.Errorf("saves = %d, failures = %d", hooks.saves, hooks.saveFails)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "colors.csv"), quietLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Save(ctx, Defaults())
			if got := s.Load(ctx); len(got) != len(Defaults()) {
				t.Errorf("Load() returned %d entries", len(got))
			}
		}()
	}
	wg.Wait()
}
