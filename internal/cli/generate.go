package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzgrid/pkg/observability"
	"github.com/matzehuels/tikzgrid/pkg/palette"
	"github.com/matzehuels/tikzgrid/pkg/tikz"
)

type generateOpts struct {
	output   string
	encoding string
	columns  int
	dedupe   bool
}

// generateCommand creates the generate command that composes a grid request
// into TikZ markup.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [request.json|request.yaml|-]",
		Short: "Compose a grid request into a TikZ figure",
		Long: `Compose a grid request into a TikZ figure.

The request has the same shape as the body of POST /generate_grid:

  {"graphs": [{"vertices": [...], "edges": [...], "textNodes": [...],
               "options": {"label": "...", "scale": 1.0}}],
   "main_caption": "..."}

With no argument or "-" the request is read from stdin. The encoding
follows the file extension unless --input-format is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := stdinArg
			if len(args) == 1 {
				input = args[0]
			}
			if cmd.Flags().Changed("columns") {
				c.cfg.Grid.Columns = opts.columns
			}
			if opts.dedupe {
				c.cfg.Grid.DedupeColors = true
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), input, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output .tex file (default stdout)")
	cmd.Flags().StringVar(&opts.encoding, "input-format", "", "request encoding: json, yaml (default from extension)")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "subfigures per row (default 2)")
	cmd.Flags().BoolVar(&opts.dedupe, "dedupe", false, "define each custom color once")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, input string, opts generateOpts, stdin io.Reader, stdout io.Writer) error {
	req, err := readRequest(input, opts.encoding, stdin)
	if err != nil {
		return err
	}

	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	composer := tikz.NewComposer(c.cfg.Grid, palette.Palette(store.Load(ctx)))
	start := time.Now()
	res := composer.ComposeResult(req)
	observability.Compose().OnComposeComplete(ctx, res.Diagrams, len(res.Colors), res.DroppedEdges, time.Since(start))

	if res.DroppedEdges > 0 {
		logger.Warn("dropped edges with unknown endpoints", "count", res.DroppedEdges)
	}

	out, err := openOutput(opts.output, stdout)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := fmt.Fprintln(out, res.Markup); err != nil {
		return fmt.Errorf("write tikz: %w", err)
	}
	if opts.output != "" {
		prog.done("Composed grid")
		printStats(res.Diagrams, len(res.Colors), res.DroppedEdges)
		printFile(opts.output)
	}
	return nil
}

// readRequest decodes a grid request from a file or stdin.
func readRequest(input, encoding string, stdin io.Reader) (tikz.GridRequest, error) {
	r, err := openInput(input, stdin)
	if err != nil {
		return tikz.GridRequest{}, err
	}
	defer r.Close()

	if encoding == "" {
		encoding = tikz.EncodingForPath(input)
	}
	return tikz.DecodeRequest(r, encoding)
}
