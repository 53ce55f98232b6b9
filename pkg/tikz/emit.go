package tikz

import (
	"fmt"
	"strconv"
	"strings"
)

// ScaleFactor converts canvas pixels to TikZ units.
const ScaleFactor = 40.0

// loopLooseness gives self-loops a visibly round shape.
const loopLooseness = 20

// Section headers inside a tikzpicture body.
const (
	headerNodes = "% Nodes"
	headerText  = "% Additional Text"
	headerEdges = "% Edges"
)

// EmitDiagram returns the tikzpicture body for d, registering every color
// it uses in reg. Edges whose endpoints do not exist in d are skipped.
func EmitDiagram(d Diagram, reg *Registry) string {
	body, _ := emitDiagram(d, reg)
	return body
}

// emitDiagram is EmitDiagram that also reports how many edges were dropped.
func emitDiagram(d Diagram, reg *Registry) (string, int) {
	var sections []string

	if len(d.Vertices) > 0 {
		lines := []string{headerNodes}
		for _, v := range d.Vertices {
			lines = append(lines, emitVertex(v, reg))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(d.TextNodes) > 0 {
		lines := []string{headerText}
		for _, tn := range d.TextNodes {
			lines = append(lines, emitTextNode(tn, reg))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	dropped := 0
	if len(d.Edges) > 0 {
		nodes := Connectable(d)
		lines := []string{headerEdges}
		for _, e := range d.Edges {
			line, ok := emitEdge(e, nodes, reg)
			if !ok {
				dropped++
				continue
			}
			lines = append(lines, line)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n"), dropped
}

func emitVertex(v Vertex, reg *Registry) string {
	opts := []string{
		"style=" + v.Shape.style(),
		"text=" + Contrast(v.Color),
	}
	if fill := reg.Derive(v.Color, "v", v.ID); fill != "" {
		opts = append(opts, "fill="+fill)
	}

	content := fmt.Sprintf("$v_{%d}$", v.ID)
	if label := strings.TrimSpace(v.Label); label != "" {
		content = label
	}

	ref := NodeRef{Kind: KindVertex, ID: v.ID}
	return fmt.Sprintf(`\node[%s] (%s) at %s {%s};`,
		strings.Join(opts, ", "), ref, Coordinate(v.X, v.Y), content)
}

func emitTextNode(tn TextNode, reg *Registry) string {
	opts := []string{"draw=none", "fill=none"}
	if ink := reg.Derive(tn.Color, "t", tn.ID); ink != "" {
		opts = append(opts, "text="+ink)
	}

	ref := NodeRef{Kind: KindText, ID: tn.ID}
	return fmt.Sprintf(`\node[%s] (%s) at %s {%s};`,
		strings.Join(opts, ", "), ref, Coordinate(tn.X, tn.Y), EscapeUnderscore(tn.Text))
}

func emitEdge(e Edge, nodes NodeIndex, reg *Registry) (string, bool) {
	from, ok := nodes.Resolve(e.From)
	if !ok {
		return "", false
	}
	to, ok := nodes.Resolve(e.To)
	if !ok {
		return "", false
	}

	var opts []string
	switch e.Direction {
	case DirectionTo:
		opts = append(opts, "->")
	case DirectionFrom:
		opts = append(opts, "<-")
	}
	if draw := reg.Derive(e.Color, "e", e.ID); draw != "" {
		opts = append(opts, "draw="+draw)
	}
	if e.Style == LineDashed || e.Style == LineDotted {
		opts = append(opts, string(e.Style))
	}

	if from == to {
		opts = append(opts, "loop "+e.loopPosition(), "looseness="+strconv.Itoa(loopLooseness))
	} else if e.Bend != 0 {
		side := "right"
		if e.Bend < 0 {
			side = "left"
		}
		opts = append(opts, fmt.Sprintf("bend %s=%d", side, abs(e.Bend)))
	}

	label := ""
	if e.Label != "" {
		label = ` node [auto, font=\small, sloped] {` + FormatEdgeLabel(e.Label) + "}"
	}

	return fmt.Sprintf(`\draw [%s] (%s) to%s (%s);`, strings.Join(opts, ","), from, label, to), true
}

// NodeIndex maps element ids of one diagram to their kind.
type NodeIndex map[int]NodeKind

// Connectable builds the id index used to resolve edge endpoints. When a
// vertex and a text node share an id, the vertex wins.
func Connectable(d Diagram) NodeIndex {
	idx := make(NodeIndex, len(d.Vertices)+len(d.TextNodes))
	for _, tn := range d.TextNodes {
		idx[tn.ID] = KindText
	}
	for _, v := range d.Vertices {
		idx[v.ID] = KindVertex
	}
	return idx
}

// Resolve returns the element referenced by id.
func (idx NodeIndex) Resolve(id int) (NodeRef, bool) {
	kind, ok := idx[id]
	if !ok {
		return NodeRef{}, false
	}
	return NodeRef{Kind: kind, ID: id}, true
}

// Coordinate converts canvas coordinates to a TikZ point, flipping the y
// axis. Negative zero is printed as 0.000.
func Coordinate(x, y float64) string {
	return "(" + fixed3(x/ScaleFactor) + "," + fixed3(-y/ScaleFactor) + ")"
}

func fixed3(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
