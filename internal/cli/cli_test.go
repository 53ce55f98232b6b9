package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
)

const gridJSON = `{
	"graphs": [
		{"vertices": [{"id": 1, "x": 0, "y": 0, "color": "147,197,253"}, {"id": 2, "x": 40, "y": 40}],
		 "edges": [{"id": 1, "from": 1, "to": 2, "direction": "to"}],
		 "options": {"label": "Left"}},
		{"vertices": [{"id": 1, "x": 0, "y": 0}]}
	],
	"main_caption": "Both"
}`

const gridYAML = `graphs:
  - vertices:
      - {id: 1, x: 0, y: 0, shape: square}
    options:
      label: From YAML
main_caption: YAML grid
`

// isolate points every config source at an empty temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, name := range []string{"CONFIG", "PALETTE_BACKEND", "PALETTE_PATH", "CACHE_DIR", "GRID_COLUMNS", "NO_CACHE"} {
		t.Setenv("TIKZGRID_"+name, "")
	}
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerate_Stdin(t *testing.T) {
	isolate(t)

	out, err := execute(t, gridJSON, "generate", "--backend", "memory")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{
		`\definecolor{NodeBlue}{RGB}{147,197,253}`,
		`\begin{subfigure}[t]{0.45\textwidth}`,
		`\caption{Left}`,
		`\caption{Both}`,
		`\draw [->] (v1) to (v2);`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestGenerate_YAMLFileToOutput(t *testing.T) {
	dir := isolate(t)
	in := filepath.Join(dir, "grid.yaml")
	if err := os.WriteFile(in, []byte(gridYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "grid.tex")

	if _, err := execute(t, "", "generate", in, "-o", outPath, "--columns", "3", "--backend", "memory"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{
		`\begin{subfigure}[t]{0.28\textwidth}`,
		`\node[style=rectangularNode, text=black] (v1) at (0.000,0.000) {$v_{1}$};`,
		`\caption{YAML grid}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %s:\n%s", want, got)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	isolate(t)

	if _, err := execute(t, `{"graphs": [`, "generate", "--backend", "memory"); !perrors.Is(err, perrors.ErrCodeInvalidRequest) {
		t.Errorf("malformed request: err = %v, want INVALID_REQUEST", err)
	}
	if _, err := execute(t, gridJSON, "generate", "--backend", "memory", "--columns", "0"); err == nil {
		t.Error("--columns 0 should fail validation")
	}
	if _, err := execute(t, gridJSON, "generate", "--backend", "etcd"); !perrors.Is(err, perrors.ErrCodeInvalidBackend) {
		t.Errorf("unknown backend: err = %v, want INVALID_BACKEND", err)
	}
	if _, err := execute(t, "", "generate", "missing.json", "--backend", "memory"); err == nil {
		t.Error("missing input file should fail")
	}
}

func TestGenerate_EmptyRequest(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "generate", "--backend", "memory")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.TrimSpace(out) != "% No graphs to generate." {
		t.Errorf("output = %q", out)
	}
}

func TestPreview_DOT(t *testing.T) {
	isolate(t)

	out, err := execute(t, gridJSON, "preview", "--format", "dot", "--graph", "1", "--backend", "memory")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.HasPrefix(out, "graph G") || !strings.Contains(out, `"v1"`) {
		t.Errorf("unexpected DOT:\n%s", out)
	}
}

func TestPreview_Errors(t *testing.T) {
	isolate(t)

	if _, err := execute(t, gridJSON, "preview", "--graph", "2", "--backend", "memory"); !perrors.Is(err, perrors.ErrCodeNotFound) {
		t.Errorf("out of range graph: err = %v, want NOT_FOUND", err)
	}
	if _, err := execute(t, gridJSON, "preview", "--format", "gif", "--backend", "memory"); !perrors.Is(err, perrors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: err = %v, want INVALID_FORMAT", err)
	}
}

func TestPaletteCommands(t *testing.T) {
	dir := isolate(t)
	csvPath := filepath.Join(dir, "colors.csv")
	flags := []string{"--palette", csvPath}
	run := func(args ...string) string {
		t.Helper()
		out, err := execute(t, "", append(args, flags...)...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out
	}

	if out := run("palette", "path"); strings.TrimSpace(out) != csvPath {
		t.Errorf("palette path = %q, want %q", out, csvPath)
	}

	if out := run("palette", "list"); !strings.Contains(out, "Node Blue") || !strings.Contains(out, "NodeBlue") {
		t.Errorf("palette list should show defaults:\n%s", out)
	}

	run("palette", "add", "Ink", "0, 0, 0")
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Ink,\"0,0,0\"\n") {
		t.Errorf("colors.csv missing Ink:\n%s", data)
	}

	run("palette", "add", "Ink", "1,2,3")
	if out := run("palette", "list"); !strings.Contains(out, "1,2,3") || strings.Contains(out, "0,0,0") {
		t.Errorf("palette add should update the existing name:\n%s", out)
	}

	run("palette", "remove", "Ink")
	if out := run("palette", "list"); strings.Contains(out, "Ink") {
		t.Errorf("Ink should be removed:\n%s", out)
	}

	if _, err := execute(t, "", append([]string{"palette", "remove", "Ink"}, flags...)...); !perrors.Is(err, perrors.ErrCodeNotFound) {
		t.Errorf("removing a missing color: err = %v, want NOT_FOUND", err)
	}
	if _, err := execute(t, "", append([]string{"palette", "add", "Bad", "300,0,0"}, flags...)...); !perrors.Is(err, perrors.ErrCodeInvalidColor) {
		t.Errorf("bad rgb: err = %v, want INVALID_COLOR", err)
	}

	run("palette", "add", "Extra", "9,9,9")
	run("palette", "reset")
	if out := run("palette", "list"); strings.Contains(out, "Extra") {
		t.Errorf("reset should drop custom colors:\n%s", out)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "tikzgrid.toml")

	if _, err := execute(t, "", "config", "init", "--config", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := execute(t, "", "config", "init", "--config", path); err == nil {
		t.Error("config init should refuse to overwrite")
	}
	if _, err := execute(t, "", "config", "init", "--config", path, "--force"); err != nil {
		t.Errorf("config init --force: %v", err)
	}

	out, err := execute(t, "", "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[server]", "port = 5000", "[grid]", "columns = 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "", "config", "path", "--config", path)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}

	if _, err := execute(t, "", "config", "show", "--config", filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("an explicit missing config should fail")
	}
}

func TestCachePath(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(dir, "cache", appName, "previews")
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "tikzgrid") {
		t.Error("bash completion should mention the command name")
	}
	if _, err := execute(t, "", "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}
