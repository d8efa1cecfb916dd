package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/svgmesh/svgtree"
	"github.com/benoitkugler/svgmesh/vecasset"
)

func writeSVG(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "in.svg")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestParseConfig(t *testing.T) {
	t.Setenv("SVGMESH_MODE", "page")
	t.Setenv("SVGMESH_WORKERS", "3")
	var stderr bytes.Buffer
	cfg, err := parseConfig([]string{"-strict", "a.svg"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "page" || cfg.Workers != 3 || cfg.Input != "a.svg" {
		t.Errorf("unexpected config %+v", cfg)
	}
	opts := cfg.options()
	if opts.Normalization != vecasset.PageRelative || opts.ErrorMode != svgtree.StrictErrorMode {
		t.Errorf("unexpected options %+v", opts)
	}

	cfg, err = parseConfig([]string{"-mode", "bbox", "-workers", "1", "a.svg"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "bbox" || cfg.Workers != 1 {
		t.Errorf("flags should override the environment: %+v", cfg)
	}

	for _, args := range [][]string{{}, {"-mode", "center", "a.svg"}, {"a.svg", "b.svg"}, {"-unknown", "a.svg"}} {
		if _, err := parseConfig(args, &stderr); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestRun(t *testing.T) {
	input := writeSVG(t, `<svg width="10" height="20"><path d="M0 0 L10 0"/></svg>`)
	dir := t.TempDir()
	pngFile, pdfFile := filepath.Join(dir, "out.png"), filepath.Join(dir, "out.pdf")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-png", pngFile, "-size", "32", "-pdf", pdfFile, input}, &stdout, &stderr); code != 0 {
		t.Fatalf("unexpected exit code %d: %s", code, stderr.String())
	}
	var out jsonAsset
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Width != 10 || out.Height != 20 || len(out.Paths) != 1 || len(out.Paths[0].Points) != 2 {
		t.Errorf("unexpected output %+v", out)
	}
	for _, file := range []string{pngFile, pdfFile} {
		if st, err := os.Stat(file); err != nil || st.Size() == 0 {
			t.Errorf("expected preview %s: %v", file, err)
		}
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{filepath.Join(t.TempDir(), "missing.svg")}, &stdout, &stderr); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "kind=io") {
		t.Errorf("expected io error, got %q", stderr.String())
	}

	stderr.Reset()
	input := writeSVG(t, `<svg><path d="Z 1"/></svg>`)
	if code := run([]string{input}, &stdout, &stderr); code != 1 {
		t.Errorf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "kind=parse") {
		t.Errorf("expected parse error, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no output, got %q", stdout.String())
	}

	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Errorf("expected usage exit code 2, got %d", code)
	}
}
