package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tikzgrid/pkg/palette"
)

func TestAddEntry(t *testing.T) {
	base := []palette.Entry{{Name: "Ink", RGB: "0,0,0"}}

	tests := []struct {
		name         string
		add, rgb     string
		want         []palette.Entry
		wantReplaced bool
		wantErr      bool
	}{
		{
			name: "append",
			add:  "Paper",
			rgb:  "255, 255, 255",
			want: []palette.Entry{{Name: "Ink", RGB: "0,0,0"}, {Name: "Paper", RGB: "255,255,255"}},
		},
		{
			name:         "replace",
			add:          " Ink ",
			rgb:          "1,2,3",
			want:         []palette.Entry{{Name: "Ink", RGB: "1,2,3"}},
			wantReplaced: true,
		},
		{name: "empty name", add: "  ", rgb: "1,2,3", wantErr: true},
		{name: "bad rgb", add: "X", rgb: "1,2", wantErr: true},
		{name: "out of range", add: "X", rgb: "1,2,256", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, replaced, err := addEntry(base, tt.add, tt.rgb)
			if (err != nil) != tt.wantErr {
				t.Fatalf("addEntry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if replaced != tt.wantReplaced {
				t.Errorf("replaced = %v, want %v", replaced, tt.wantReplaced)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("addEntry() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if base[0].RGB != "0,0,0" {
		t.Error("addEntry must not modify its input")
	}
}

func TestRemoveEntry(t *testing.T) {
	entries := []palette.Entry{{Name: "A", RGB: "1,1,1"}, {Name: "B", RGB: "2,2,2"}, {Name: "A", RGB: "3,3,3"}}

	got, ok := removeEntry(entries, "A")
	if !ok {
		t.Fatal("removeEntry(A) reported nothing removed")
	}
	if diff := cmp.Diff([]palette.Entry{{Name: "B", RGB: "2,2,2"}}, got); diff != "" {
		t.Errorf("removeEntry() mismatch (-want +got):\n%s", diff)
	}
	if len(entries) != 3 || entries[0].Name != "A" {
		t.Error("removeEntry must not modify its input")
	}

	if _, ok := removeEntry(entries, "C"); ok {
		t.Error("removeEntry(C) should report nothing removed")
	}
}

func TestPaletteTable(t *testing.T) {
	out := paletteTable([]palette.Entry{
		{Name: "Node Blue", RGB: "147,197,253"},
		{Name: "---", RGB: "1,2,3"},
	})
	for _, want := range []string{"Node Blue", "147,197,253", "NodeBlue", "(per element)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPaletteListModel(t *testing.T) {
	entries := []palette.Entry{{Name: "A", RGB: "1,1,1"}, {Name: "B", RGB: "2,2,2"}, {Name: "C", RGB: "3,3,3"}}
	key := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

	var m tea.Model = NewPaletteListModel(entries)
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("k"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := m.(PaletteListModel)
	if got.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", got.Cursor)
	}
	if got.Selected == nil || got.Selected.Name != "B" {
		t.Errorf("Selected = %+v, want B", got.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
	if view := got.View(); !strings.Contains(view, "[2/3]") {
		t.Errorf("View() missing position:\n%s", view)
	}

	m, _ = NewPaletteListModel(entries).Update(key("q"))
	if m.(PaletteListModel).Selected != nil {
		t.Error("q should quit without a selection")
	}
}

func TestPaletteListModel_Scroll(t *testing.T) {
	entries := make([]palette.Entry, 10)
	for i := range entries {
		entries[i] = palette.Entry{Name: string(rune('A' + i)), RGB: "1,1,1"}
	}

	var m tea.Model = NewPaletteListModel(entries)
	m, _ = m.Update(tea.WindowSizeMsg{Height: 8, Width: 80})
	for range 7 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	got := m.(PaletteListModel)
	if got.Height != 5 {
		t.Fatalf("Height = %d, want 5", got.Height)
	}
	if got.Cursor != 7 || got.Offset != 3 {
		t.Errorf("Cursor, Offset = %d, %d, want 7, 3", got.Cursor, got.Offset)
	}
}

func TestClearDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ab/cdef.json", "ab/0123.json", "ff/ffff.json", "top.json"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearDir(dir)
	if err != nil {
		t.Fatalf("clearDir() error: %v", err)
	}
	if n != 4 {
		t.Errorf("clearDir() = %d, want 4", n)
	}
	left, _ := os.ReadDir(dir)
	if len(left) != 0 {
		t.Errorf("%d entries left in cache dir", len(left))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir itself should remain: %v", err)
	}

	if n, err := clearDir(filepath.Join(dir, "missing")); err != nil || n != 0 {
		t.Errorf("clearDir(missing) = %d, %v, want 0, nil", n, err)
	}
}
