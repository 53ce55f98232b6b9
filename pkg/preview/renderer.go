package preview

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tikzgrid/pkg/cache"
	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
	"github.com/matzehuels/tikzgrid/pkg/observability"
	"github.com/matzehuels/tikzgrid/pkg/tikz"
)

// Format is a preview output format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
	FormatDOT Format = "dot"
)

// ParseFormat accepts svg, png, pdf and dot in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG, FormatPDF, FormatDOT:
		return f, nil
	case "":
		return FormatSVG, nil
	}
	return "", perrors.New(perrors.ErrCodeInvalidFormat, "unknown preview format %q (want svg, png, pdf or dot)", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "image/svg+xml"
	}
}

// Renderer produces previews and caches them by DOT content.
type Renderer struct {
	cache  cache.Cache
	lookup tikz.ColorLookup
	logger *log.Logger
}

// NewRenderer returns a renderer. A nil cache disables caching.
func NewRenderer(c cache.Cache, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.NullCache{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{cache: c, logger: logger}
}

// WithLookup returns a copy of r that annotates palette colors.
func (r *Renderer) WithLookup(lookup tikz.ColorLookup) *Renderer {
	cp := *r
	cp.lookup = lookup
	return &cp
}

// Render draws d in the requested format.
func (r *Renderer) Render(ctx context.Context, d tikz.Diagram, format Format) ([]byte, error) {
	dot := ToDOT(d, r.lookup)
	if format == FormatDOT {
		return []byte(dot), nil
	}

	key := cache.PreviewKey([]byte(dot), string(format))
	if data, hit, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn("preview cache read failed", "err", err)
	} else if hit {
		observability.Cache().OnCacheHit(ctx, "preview")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "preview")

	start := time.Now()
	out, err := r.render(ctx, dot, format)
	observability.Preview().OnRenderComplete(ctx, time.Since(start), err)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeRender, err, "failed to render %s preview", format)
	}
	r.logger.Debug("rendered preview", "format", format, "bytes", len(out), "took", time.Since(start))

	if err := r.cache.Set(ctx, key, out, cache.PreviewTTL); err != nil {
		r.logger.Warn("preview cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "preview", len(out))
	}
	return out, nil
}

func (r *Renderer) render(ctx context.Context, dot string, format Format) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG:
		return ToPNG(ctx, svg, 2)
	case FormatPDF:
		return ToPDF(ctx, svg)
	default:
		return svg, nil
	}
}
