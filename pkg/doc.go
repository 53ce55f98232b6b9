// Package pkg provides the libraries behind tikzgrid.
//
// # Overview
//
// tikzgrid turns graphs drawn in a browser editor into a LaTeX figure: one
// TikZ subfigure per graph, laid out in a grid with shared color
// definitions and node styles. The pkg directory is organized as:
//
//  1. [tikz] - Markup generation (contrast, sanitizing, colors, grid)
//  2. [palette] - Named colors with file, SQLite, Redis and MongoDB stores
//  3. [preview] - Graphviz previews of single graphs (SVG, PNG, PDF, DOT)
//  4. [cache] - Byte caches for rendered previews
//  5. [observability] - Hooks for metrics and tracing
//  6. [errors] - Coded errors shared by the CLI and the HTTP server
//
// # Data Flow
//
//	GridRequest (JSON/YAML)
//	         ↓
//	    [palette] Store.Load  →  Palette (rgb → name)
//	         ↓
//	    [tikz] Composer       →  \begin{figure} ... \end{figure}
//	         ↓
//	    [preview] Renderer    →  SVG / PNG / PDF (optional)
//
// # Quick Start
//
//	store, _ := palette.Open(ctx, palette.Config{Backend: palette.BackendFile})
//	defer store.Close()
//
//	req, _ := tikz.DecodeRequest(os.Stdin, tikz.EncodingJSON)
//	composer := tikz.NewComposer(tikz.DefaultConfig(), palette.Palette(store.Load(ctx)))
//	fmt.Println(composer.Compose(req))
//
// # Testing
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/tikz/...        # Markup generation only
//	go test -run Example ./pkg/... # Examples only
//
// [tikz]: https://pkg.go.dev/github.com/matzehuels/tikzgrid/pkg/tikz
// [palette]: https://pkg.go.dev/github.com/matzehuels/tikzgrid/pkg/palette
// [preview]: https://pkg.go.dev/github.com/matzehuels/tikzgrid/pkg/preview
// [cache]: https://pkg.go.dev/github.com/matzehuels/tikzgrid/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/tikzgrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/tikzgrid/pkg/errors
package pkg
