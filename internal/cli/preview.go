package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
	"github.com/matzehuels/tikzgrid/pkg/palette"
	"github.com/matzehuels/tikzgrid/pkg/preview"
)

type previewOpts struct {
	output   string
	format   string
	encoding string
	graph    int
	noCache  bool
}

// previewCommand creates the preview command that renders one graph of a
// request through Graphviz.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [request.json|request.yaml|-]",
		Short: "Render one graph of a request as SVG, PNG, PDF or DOT",
		Long: `Render one graph of a request as SVG, PNG, PDF or DOT.

Vertices keep their drawn positions. PNG and PDF output requires
rsvg-convert on PATH. Rendered previews are cached on disk.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdinArg
			if len(args) == 1 {
				input = args[0]
			}
			return c.runPreview(cmd.Context(), input, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg, png, pdf, dot")
	cmd.Flags().StringVar(&opts.encoding, "input-format", "", "request encoding: json, yaml (default from extension)")
	cmd.Flags().IntVarP(&opts.graph, "graph", "g", 0, "index of the graph to render")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the preview cache")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts previewOpts, stdin io.Reader, stdout io.Writer) error {
	format, err := preview.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	req, err := readRequest(input, opts.encoding, stdin)
	if err != nil {
		return err
	}
	if opts.graph < 0 || opts.graph >= len(req.Graphs) {
		return perrors.New(perrors.ErrCodeNotFound, "no graph at index %d (request has %d)", opts.graph, len(req.Graphs))
	}

	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	renderer := preview.NewRenderer(c.newCache(opts.noCache), c.Logger).
		WithLookup(palette.Palette(store.Load(ctx)))

	var spinner *Spinner
	if opts.output != "" {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
		spinner.Start()
	}
	data, err := renderer.Render(ctx, req.Graphs[opts.graph], format)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	out, err := openOutput(opts.output, stdout)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	if opts.output != "" {
		printSuccess("Rendered graph %d as %s", opts.graph, format)
		printFile(opts.output)
	}
	return nil
}
