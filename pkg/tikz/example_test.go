package tikz_test

import (
	"fmt"

	"github.com/matzehuels/tikzgrid/pkg/tikz"
)

func ExampleEmitDiagram() {
	d := tikz.Diagram{
		Vertices: []tikz.Vertex{
			{ID: 1, X: 0, Y: 0},
			{ID: 2, X: 80, Y: 40, Shape: tikz.ShapeSquare, Color: "0,0,0"},
		},
		Edges: []tikz.Edge{
			{ID: 1, From: 1, To: 2, Direction: tikz.DirectionTo, Label: "w_1"},
		},
	}

	reg := tikz.NewRegistry(nil, false)
	fmt.Println(tikz.EmitDiagram(d, reg))
	fmt.Println(reg.Definitions())
	// Output:
	// % Nodes
	// \node[style=node, text=black] (v1) at (0.000,0.000) {$v_{1}$};
	// \node[style=rectangularNode, text=white, fill=v2Color] (v2) at (2.000,-1.000) {$v_{2}$};
	//
	// % Edges
	// \draw [->] (v1) to node [auto, font=\small, sloped] {$w_{1}$} (v2);
	// [{v2Color 0,0,0}]
}

func ExampleFormatEdgeLabel() {
	fmt.Println(tikz.FormatEdgeLabel("x_12"))
	fmt.Println(tikz.FormatEdgeLabel("hello_world"))
	// Output:
	// $x_{12}$
	// {hello world}
}

func ExampleContrast() {
	fmt.Println(tikz.Contrast("74,85,104"))
	fmt.Println(tikz.Contrast("147,197,253"))
	fmt.Println(tikz.Contrast("not a color"))
	// Output:
	// white
	// black
	// black
}
