package tikz

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EmptyGrid is returned when a request contains no diagrams.
const EmptyGrid = "% No graphs to generate."

// Fallback captions and labels.
const (
	defaultCaption   = "Graph"
	defaultGridLabel = "graphGrid"
)

// tikzStyles are the reusable node styles referenced by vertex options.
var tikzStyles = []string{
	`\tikzstyle{` + styleCircle + `} = [draw, circle, minimum size=0.8cm, inner sep=0pt]`,
	`\tikzstyle{` + styleRectangular + `} = [draw, rectangle, minimum size=0.7cm, inner sep=2pt]`,
	`\tikzstyle{` + styleHexagonal + `} = [draw, regular polygon, regular polygon sides=6, minimum size=0.6cm, inner sep=1pt]`,
}

// Config controls grid layout and color naming.
type Config struct {
	// Columns is the number of subfigures per row. Values below 1 mean 2.
	Columns int `toml:"columns"`

	// DedupeColors makes elements sharing a custom color share one
	// \definecolor line instead of one per element.
	DedupeColors bool `toml:"dedupe_colors"`
}

// DefaultConfig returns the two-column layout with per-element custom colors.
func DefaultConfig() Config {
	return Config{Columns: 2}
}

// SubfigureWidth returns the subfigure width as a fraction of \textwidth,
// rounded to two decimals.
func (c Config) SubfigureWidth() float64 {
	cols := c.Columns
	if cols < 1 {
		cols = 2
	}
	w := 1/float64(cols) - 0.05
	return math.Round(w*100) / 100
}

// Composer turns grid requests into LaTeX figures. A Composer holds no
// per-request state and may be shared between goroutines as long as its
// ColorLookup is.
type Composer struct {
	cfg    Config
	lookup ColorLookup
}

// NewComposer creates a composer. lookup may be nil, in which case every
// color gets a synthetic name.
func NewComposer(cfg Config, lookup ColorLookup) *Composer {
	return &Composer{cfg: cfg, lookup: lookup}
}

// Result is a composed grid with statistics about the composition.
type Result struct {
	Markup       string
	Diagrams     int
	Colors       []ColorDef
	DroppedEdges int
}

// Compose renders req as a single figure environment.
func (c *Composer) Compose(req GridRequest) string {
	return c.ComposeResult(req).Markup
}

// ComposeResult renders req and reports what was emitted.
func (c *Composer) ComposeResult(req GridRequest) Result {
	if len(req.Graphs) == 0 {
		return Result{Markup: EmptyGrid}
	}

	reg := NewRegistry(c.lookup, c.cfg.DedupeColors)
	width := strconv.FormatFloat(c.cfg.SubfigureWidth(), 'f', -1, 64)
	labels := make(map[string]bool, len(req.Graphs)+1)

	// The grid label is reserved first so subfigures never reuse it.
	var mainLabel string
	if req.MainCaption != "" {
		mainLabel = Identifier(req.MainCaption)
		if mainLabel == "" {
			mainLabel = defaultGridLabel
		}
		labels[mainLabel] = true
	}

	res := Result{Diagrams: len(req.Graphs)}
	subfigs := make([]string, 0, len(req.Graphs))
	for i, d := range req.Graphs {
		body, dropped := emitDiagram(d, reg)
		res.DroppedEdges += dropped

		caption := d.Options.Label
		if caption == "" {
			caption = defaultCaption
		}
		label := uniqueLabel(subfigureLabel(caption, d.Name, i), i, labels)

		subfigs = append(subfigs, subfigure(width, d.Options.scale(), body, caption, label))
	}

	var parts []string
	res.Colors = reg.Definitions()
	if len(res.Colors) > 0 {
		parts = append(parts, "% Custom color definitions")
		for _, def := range res.Colors {
			parts = append(parts, fmt.Sprintf(`\definecolor{%s}{RGB}{%s}`, def.Name, def.RGB))
		}
	}
	parts = append(parts, "% Reusable TikZ styles")
	parts = append(parts, tikzStyles...)

	parts = append(parts, `\begin{figure}[H]`, `\centering`)
	parts = append(parts, subfigs...)
	if req.MainCaption != "" {
		parts = append(parts, `\caption{`+req.MainCaption+`}`, `\label{fig:`+mainLabel+`}`)
	}
	parts = append(parts, `\end{figure}`)

	res.Markup = strings.Join(parts, "\n")
	return res
}

// subfigureLabel derives the reference label of the i-th diagram.
func subfigureLabel(caption string, name Name, i int) string {
	if id := Identifier(caption); id != "" {
		return id
	}
	if id := Identifier(string(name)); id != "" {
		return "graph" + id
	}
	return "graph" + strconv.Itoa(i+1)
}

// uniqueLabel appends the 1-based diagram index to labels already used in
// this grid so every \label is distinct.
func uniqueLabel(label string, i int, seen map[string]bool) string {
	candidate := label
	for n := 0; seen[candidate]; n++ {
		candidate = label + strconv.Itoa(i+1+n)
	}
	seen[candidate] = true
	return candidate
}

func subfigure(width string, scale float64, body, caption, label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\begin{subfigure}[t]{%s\\textwidth}\n", width)
	b.WriteString("    \\centering\n")
	fmt.Fprintf(&b, "    \\begin{tikzpicture}[scale=%s]\n", formatScale(scale))
	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			if body != "" {
				b.WriteString("\n")
			}
			continue
		}
		b.WriteString("        " + line + "\n")
	}
	b.WriteString("    \\end{tikzpicture}\n")
	fmt.Fprintf(&b, "    \\caption{%s}\n", caption)
	fmt.Fprintf(&b, "    \\label{fig:%s}\n", label)
	b.WriteString("\\end{subfigure}")
	return b.String()
}

// formatScale prints a scale the way a float literal reads: 1.0, 0.75, 2.5.
func formatScale(s float64) string {
	out := strconv.FormatFloat(s, 'f', -1, 64)
	if !strings.ContainsAny(out, ".e") {
		out += ".0"
	}
	return out
}
