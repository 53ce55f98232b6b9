// Package preview draws a diagram with Graphviz so it can be checked before
// the TikZ output is pasted into a document.
//
// # Overview
//
// [ToDOT] turns a [tikz.Diagram] into DOT source for the neato engine. Every
// node is pinned to its canvas position, so the picture matches the layout
// the TikZ markup will produce. Colors, shapes, line styles and arrow
// directions follow the same rules as the TikZ emitter, and edges whose
// endpoints do not exist are dropped the same way.
//
// [RenderSVG] renders DOT in-process via [github.com/goccy/go-graphviz].
// [ToPDF] and [ToPNG] convert the SVG with rsvg-convert (librsvg).
//
// # Caching
//
// [Renderer] wraps the pipeline with a [cache.Cache] keyed by the DOT text,
// so repeated previews of an unchanged diagram skip Graphviz:
//
//	r := preview.NewRenderer(cache.NewMemoryCache(0), nil)
//	svg, err := r.Render(ctx, diagram, preview.FormatSVG)
package preview
