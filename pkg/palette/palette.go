package palette

import (
	"strconv"
	"strings"
	"unicode"
)

// Entry is one named color.
type Entry struct {
	Name string `json:"name" bson:"name" yaml:"name"`
	RGB  string `json:"rgb" bson:"rgb" yaml:"rgb"`
}

// Palette is an ordered list of entries.
type Palette []Entry

// ColorName returns the name of the first entry with the given RGB string.
func (p Palette) ColorName(rgb string) (string, bool) {
	e, ok := FindByRGB(p, rgb)
	return e.Name, ok
}

// Defaults returns the built-in palette.
func Defaults() []Entry {
	return []Entry{
		{Name: "Node Blue", RGB: "147,197,253"},
		{Name: "Edge Gray", RGB: "74,85,104"},
		{Name: "Error Red", RGB: "239,68,68"},
		{Name: "Success Green", RGB: "34,197,94"},
	}
}

// FindByRGB returns the first entry whose RGB equals rgb.
func FindByRGB(entries []Entry, rgb string) (Entry, bool) {
	for _, e := range entries {
		if e.RGB == rgb {
			return e, true
		}
	}
	return Entry{}, false
}

// Sanitize keeps the well-formed entries in order. The name is trimmed and
// must be non-empty; the RGB loses all whitespace and must be three
// comma-separated integers in 0..255.
func Sanitize(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		rgb, ok := NormalizeRGB(e.RGB)
		if name == "" || !ok {
			continue
		}
		out = append(out, Entry{Name: name, RGB: rgb})
	}
	return out
}

// NormalizeRGB strips whitespace from rgb and reports whether the result is
// a valid "r,g,b" triple.
func NormalizeRGB(rgb string) (string, bool) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, rgb)

	parts := strings.Split(compact, ",")
	if len(parts) != 3 {
		return "", false
	}
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
	}
	return compact, true
}
