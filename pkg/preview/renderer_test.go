package preview

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tikzgrid/pkg/cache"
	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
	"github.com/matzehuels/tikzgrid/pkg/tikz"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatSVG, false},
		{"svg", FormatSVG, false},
		{" PNG ", FormatPNG, false},
		{"pdf", FormatPDF, false},
		{"dot", FormatDOT, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) code = %s", tt.in, perrors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatContentType(t *testing.T) {
	if FormatSVG.ContentType() != "image/svg+xml" {
		t.Errorf("svg content type = %s", FormatSVG.ContentType())
	}
	if FormatPNG.ContentType() != "image/png" {
		t.Errorf("png content type = %s", FormatPNG.ContentType())
	}
}

func TestRenderer_DOTSkipsGraphviz(t *testing.T) {
	r := NewRenderer(nil, quietLogger())
	d := tikz.Diagram{Vertices: []tikz.Vertex{{ID: 1}}}

	out, err := r.Render(context.Background(), d, FormatDOT)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if string(out) != ToDOT(d, nil) {
		t.Errorf("Render(dot) = %s", out)
	}
}

func TestRenderer_UsesCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(0)
	r := NewRenderer(c, quietLogger())
	d := tikz.Diagram{Vertices: []tikz.Vertex{{ID: 1}}}

	key := cache.PreviewKey([]byte(ToDOT(d, nil)), string(FormatSVG))
	if err := c.Set(ctx, key, []byte("<svg>cached</svg>"), 0); err != nil {
		t.Fatal(err)
	}

	out, err := r.Render(ctx, d, FormatSVG)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if string(out) != "<svg>cached</svg>" {
		t.Errorf("Render() = %s, want cached value", out)
	}
}

func TestRenderer_RenderSVG(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(0)
	r := NewRenderer(c, quietLogger())
	d := tikz.Diagram{
		Vertices: []tikz.Vertex{{ID: 1}, {ID: 2, X: 80, Color: "239,68,68"}},
		Edges:    []tikz.Edge{{ID: 1, From: 1, To: 2, Direction: tikz.DirectionTo}},
	}

	svg, err := r.Render(ctx, d, FormatSVG)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("Render() did not produce SVG: %.200s", svg)
	}
	if c.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", c.Len())
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte("<svg></svg>")
	if string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("SVG without viewBox should be unchanged")
	}
}
