package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/benoitkugler/svgmesh/svgtree"
	"github.com/benoitkugler/svgmesh/vecasset"
)

type config struct {
	Input   string
	Mode    string
	Tol     float64
	Workers int
	Strict  bool
	PNG     string
	PNGSize int
	PDF     string
	Verbose bool
}

// parseConfig reads the flags, whose defaults may be given by
// the environment.
func parseConfig(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("svgmesh", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Mode, "mode", envOr("SVGMESH_MODE", "bbox"), "point normalization: bbox or page")
	fs.Float64Var(&cfg.Tol, "tolerance", 0, "curve flattening tolerance (default 0.25)")
	fs.IntVar(&cfg.Workers, "workers", envInt("SVGMESH_WORKERS", 0), "paths flattened concurrently (default GOMAXPROCS)")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail on unsupported SVG elements")
	fs.StringVar(&cfg.PNG, "png", "", "write a PNG preview to this file")
	fs.IntVar(&cfg.PNGSize, "size", 512, "PNG preview size, in pixels")
	fs.StringVar(&cfg.PDF, "pdf", "", "write a PDF preview to this file")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging on stderr")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: svgmesh [flags] file.svg")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, fmt.Errorf("expected one input file, got %d", fs.NArg())
	}
	cfg.Input = fs.Arg(0)
	if _, ok := vecasset.ParseNormalization(cfg.Mode); !ok {
		return cfg, fmt.Errorf("invalid mode %q", cfg.Mode)
	}
	if cfg.PNGSize <= 0 {
		cfg.PNGSize = 512
	}
	return cfg, nil
}

func (cfg config) options() vecasset.Options {
	mode, _ := vecasset.ParseNormalization(cfg.Mode)
	opts := vecasset.Options{
		Normalization: mode,
		Tolerance:     cfg.Tol,
		Workers:       cfg.Workers,
		ErrorMode:     svgtree.WarnErrorMode,
	}
	if cfg.Strict {
		opts.ErrorMode = svgtree.StrictErrorMode
	}
	return opts
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
