package tikz

import "strconv"

// ColorLookup maps an RGB string to a human color name, typically the
// name of a palette entry. palette.Palette implements it.
type ColorLookup interface {
	ColorName(rgb string) (name string, ok bool)
}

// ColorDef is one \definecolor line.
type ColorDef struct {
	Name string
	RGB  string
}

// Registry collects the colors used during one composition, in order of
// first use. A Registry belongs to a single composition and is not safe for
// concurrent use.
type Registry struct {
	lookup ColorLookup
	dedupe bool
	order  []string
	colors map[string]string // name -> rgb
	byRGB  map[string]string // rgb -> first name
}

// NewRegistry creates an empty registry. lookup may be nil.
// With dedupe set, custom colors reuse the first name registered for the
// same RGB value instead of getting a per-element name.
func NewRegistry(lookup ColorLookup, dedupe bool) *Registry {
	return &Registry{
		lookup: lookup,
		dedupe: dedupe,
		colors: make(map[string]string),
		byRGB:  make(map[string]string),
	}
}

// Derive returns the color name for an element's color and registers it.
// prefix is the element kind ("v", "t" or "e") and id its id. An empty rgb
// returns "" and registers nothing.
func (r *Registry) Derive(rgb, prefix string, id int) string {
	if rgb == "" {
		return ""
	}
	if r.lookup != nil {
		if name, ok := r.lookup.ColorName(rgb); ok {
			if base := Identifier(name); base != "" {
				return r.register(base, rgb)
			}
		}
	}
	if r.dedupe {
		if name, ok := r.byRGB[rgb]; ok {
			return name
		}
	}
	return r.register(prefix+strconv.Itoa(id)+"Color", rgb)
}

// register stores rgb under base, appending 2, 3, ... when base is already
// taken by a different value.
func (r *Registry) register(base, rgb string) string {
	name := base
	for n := 2; ; n++ {
		existing, ok := r.colors[name]
		if !ok {
			r.colors[name] = rgb
			r.order = append(r.order, name)
			if _, seen := r.byRGB[rgb]; !seen {
				r.byRGB[rgb] = name
			}
			return name
		}
		if existing == rgb {
			return name
		}
		name = base + strconv.Itoa(n)
	}
}

// Len returns the number of registered colors.
func (r *Registry) Len() int { return len(r.order) }

// Definitions returns the registered colors in order of first use.
func (r *Registry) Definitions() []ColorDef {
	defs := make([]ColorDef, len(r.order))
	for i, name := range r.order {
		defs[i] = ColorDef{Name: name, RGB: r.colors[name]}
	}
	return defs
}
