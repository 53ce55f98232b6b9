package tikz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// =============================================================================
// Enumerations
// =============================================================================

// Shape is the outline drawn around a vertex.
type Shape string

// Vertex shapes. Any other value is drawn as a circle.
const (
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
)

// Style names defined in the preamble of every composed grid.
const (
	styleCircle      = "node"
	styleRectangular = "rectangularNode"
	styleHexagonal   = "hexagonalNode"
)

// style returns the tikzstyle used for the shape.
// Triangles are drawn as hexagons.
func (s Shape) style() string {
	switch s {
	case ShapeSquare:
		return styleRectangular
	case ShapeTriangle:
		return styleHexagonal
	default:
		return styleCircle
	}
}

// Direction controls the arrowhead of an edge.
type Direction string

// Edge directions. The zero value behaves like DirectionNone.
const (
	DirectionNone Direction = "none"
	DirectionTo   Direction = "to"
	DirectionFrom Direction = "from"
)

// LineStyle controls the stroke pattern of an edge.
type LineStyle string

// Line styles. The zero value behaves like LineSolid.
const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
)

// Loop positions accepted for self-loops.
const (
	LoopAbove = "above"
	LoopBelow = "below"
	LoopLeft  = "left"
	LoopRight = "right"
)

// NodeKind distinguishes the two kinds of connectable elements.
type NodeKind int

const (
	// KindVertex is a drawn vertex.
	KindVertex NodeKind = iota
	// KindText is a free-floating text node.
	KindText
)

// NodeRef identifies a connectable element of one diagram.
type NodeRef struct {
	Kind NodeKind
	ID   int
}

// String returns the TikZ node name, e.g. "v3" or "t1".
func (r NodeRef) String() string {
	if r.Kind == KindText {
		return "t" + strconv.Itoa(r.ID)
	}
	return "v" + strconv.Itoa(r.ID)
}

// =============================================================================
// Diagram elements
// =============================================================================

// Vertex is a node drawn at canvas coordinates.
type Vertex struct {
	ID    int     `json:"id" yaml:"id"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Shape Shape   `json:"shape,omitempty" yaml:"shape,omitempty"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
}

// TextNode is undecorated text placed on the canvas. Edges may connect to it.
type TextNode struct {
	ID    int     `json:"id" yaml:"id"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Text  string  `json:"text" yaml:"text"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// Edge connects two elements of the same diagram by id. When From equals To
// the edge is drawn as a loop at LoopPosition.
type Edge struct {
	ID           int       `json:"id" yaml:"id"`
	From         int       `json:"from" yaml:"from"`
	To           int       `json:"to" yaml:"to"`
	Direction    Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
	Color        string    `json:"color,omitempty" yaml:"color,omitempty"`
	Style        LineStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Label        string    `json:"label,omitempty" yaml:"label,omitempty"`
	Bend         int       `json:"bend,omitempty" yaml:"bend,omitempty"`
	LoopPosition string    `json:"loopPosition,omitempty" yaml:"loopPosition,omitempty"`
}

// Options carries per-diagram rendering options.
type Options struct {
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	Scale float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// Diagram is one drawing of the grid.
type Diagram struct {
	Name      Name       `json:"name,omitempty" yaml:"name,omitempty"`
	Vertices  []Vertex   `json:"vertices" yaml:"vertices"`
	Edges     []Edge     `json:"edges" yaml:"edges"`
	TextNodes []TextNode `json:"textNodes" yaml:"textNodes"`
	Options   Options    `json:"options" yaml:"options"`
}

// GridRequest is the input of a composition.
type GridRequest struct {
	Graphs      []Diagram `json:"graphs" yaml:"graphs"`
	MainCaption string    `json:"main_caption,omitempty" yaml:"main_caption,omitempty"`
}

// Name is a diagram name. The browser UI sends either strings or numbers.
type Name string

// UnmarshalJSON accepts a JSON string, number or null.
func (n *Name) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Name(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("diagram name must be a string or number: %w", err)
	}
	*n = Name(num.String())
	return nil
}

// scale returns the picture scale, defaulting to 1.
func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1.0
	}
	return o.Scale
}

// loopPosition returns a valid loop position, defaulting to above.
func (e Edge) loopPosition() string {
	switch e.LoopPosition {
	case LoopAbove, LoopBelow, LoopLeft, LoopRight:
		return e.LoopPosition
	default:
		return LoopAbove
	}
}
