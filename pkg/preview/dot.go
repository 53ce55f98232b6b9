package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/tikzgrid/pkg/tikz"
)

// pointsPerInch converts canvas pixels to the inches neato expects in pos.
const pointsPerInch = 72.0

// ToDOT converts a diagram to Graphviz DOT with pinned node positions.
// lookup, when non-nil, adds the palette name of a node color as tooltip.
func ToDOT(d tikz.Diagram, lookup tikz.ColorLookup) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [fontsize=12, width=0.45, height=0.45, fixedsize=true, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [fontsize=10];\n")

	if len(d.Vertices) > 0 {
		buf.WriteString("\n")
	}
	for _, v := range d.Vertices {
		ref := tikz.NodeRef{Kind: tikz.KindVertex, ID: v.ID}
		fmt.Fprintf(&buf, "  %q [%s];\n", ref.String(), strings.Join(vertexAttrs(v, lookup), ", "))
	}

	if len(d.TextNodes) > 0 {
		buf.WriteString("\n")
	}
	for _, tn := range d.TextNodes {
		ref := tikz.NodeRef{Kind: tikz.KindText, ID: tn.ID}
		fmt.Fprintf(&buf, "  %q [%s];\n", ref.String(), strings.Join(textAttrs(tn), ", "))
	}

	nodes := tikz.Connectable(d)
	wroteEdge := false
	for _, e := range d.Edges {
		from, okFrom := nodes.Resolve(e.From)
		to, okTo := nodes.Resolve(e.To)
		if !okFrom || !okTo {
			continue
		}
		if !wroteEdge {
			buf.WriteString("\n")
			wroteEdge = true
		}
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -- %q;\n", from.String(), to.String())
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", from.String(), to.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexAttrs(v tikz.Vertex, lookup tikz.ColorLookup) []string {
	label := strings.TrimSpace(v.Label)
	if label == "" {
		label = fmt.Sprintf("v%d", v.ID)
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		"shape=" + nodeShape(v.Shape),
		"pos=" + position(v.X, v.Y),
		"fontcolor=" + tikz.Contrast(v.Color),
	}
	if hex, ok := HexColor(v.Color); ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", hex))
		if lookup != nil {
			if name, found := lookup.ColorName(v.Color); found {
				attrs = append(attrs, fmt.Sprintf("tooltip=%q", name))
			}
		}
	}
	return attrs
}

func textAttrs(tn tikz.TextNode) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", tn.Text),
		"shape=plaintext",
		"style=\"\"",
		"fixedsize=false",
		"pos=" + position(tn.X, tn.Y),
	}
	if hex, ok := HexColor(tn.Color); ok {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", hex))
	}
	return attrs
}

func edgeAttrs(e tikz.Edge) []string {
	var attrs []string
	switch e.Direction {
	case tikz.DirectionTo:
		attrs = append(attrs, "dir=forward")
	case tikz.DirectionFrom:
		attrs = append(attrs, "dir=back")
	}
	if hex, ok := HexColor(e.Color); ok {
		attrs = append(attrs, fmt.Sprintf("color=%q", hex))
	}
	switch e.Style {
	case tikz.LineDashed:
		attrs = append(attrs, "style=dashed")
	case tikz.LineDotted:
		attrs = append(attrs, "style=dotted")
	}
	if label := strings.TrimSpace(e.Label); label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
	}
	return attrs
}

func nodeShape(s tikz.Shape) string {
	switch s {
	case tikz.ShapeSquare:
		return "box"
	case tikz.ShapeTriangle:
		return "hexagon"
	default:
		return "circle"
	}
}

// position pins a node at canvas (x, y); the y axis points up in Graphviz.
func position(x, y float64) string {
	px, py := x/pointsPerInch, -y/pointsPerInch
	if py == 0 { // drop negative zero
		py = 0
	}
	return fmt.Sprintf("\"%.3f,%.3f!\"", px, py)
}

// HexColor converts an "r,g,b" string to "#rrggbb".
func HexColor(rgb string) (string, bool) {
	if rgb == "" {
		return "", false
	}
	r, g, b, ok := tikz.ParseRGB(rgb)
	if !ok || r < 0 || r > 255 || g < 0 || g > 255 || b < 0 || b > 255 {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), true
}
