// Package tikz translates node-and-edge diagrams into TikZ markup.
//
// # Overview
//
// A [GridRequest] holds one or more [Diagram] values drawn on a canvas
// (pixel coordinates, y growing downward). The [Composer] turns the request
// into a single LaTeX figure: every diagram becomes a subfigure containing a
// tikzpicture, laid out in a fixed number of columns.
//
// # Usage
//
//	c := tikz.NewComposer(tikz.DefaultConfig(), pal)
//	markup := c.Compose(req)
//
// The color lookup (usually a palette.Palette) maps RGB strings such as
// "147,197,253" to human names. Colors found in the lookup are defined once
// under a name derived from the palette entry; other colors get a synthetic
// name built from the element kind and id (v1Color, t3Color, e7Color).
//
// # Coordinates
//
// Canvas coordinates are divided by [ScaleFactor] and the y axis is flipped,
// so (40, 80) on the canvas becomes (1.000,-2.000) in the picture.
//
// # Labels
//
// Reference labels must be plain identifiers, so [Identifier] strips
// everything but ASCII letters and digits. Literal text has underscores
// escaped with [EscapeUnderscore]. Edge labels that look like indexed
// variables ("x_12", "w3") are typeset as math subscripts by
// [FormatEdgeLabel].
package tikz
