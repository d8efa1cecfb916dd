// Command svgmesh flattens the paths of an SVG file and prints
// them as JSON.
package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/svgmesh"
	"github.com/benoitkugler/svgmesh/svgpdf"
	"github.com/benoitkugler/svgmesh/svgraster"
	"github.com/benoitkugler/svgmesh/vecasset"
)

type jsonPath struct {
	Translation [2]float64   `json:"translation"`
	Points      [][2]float64 `json:"points"`
}

type jsonAsset struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Paths  []jsonPath `json:"paths"`
}

func toJSON(asset *vecasset.Asset) jsonAsset {
	out := jsonAsset{Width: asset.Width, Height: asset.Height, Paths: make([]jsonPath, len(asset.Paths))}
	for i, p := range asset.Paths {
		jp := jsonPath{
			Translation: [2]float64{p.Translation.X, p.Translation.Y},
			Points:      make([][2]float64, len(p.Points)),
		}
		for j, pt := range p.Points {
			jp.Points[j] = [2]float64{pt.X, pt.Y}
		}
		out.Paths[i] = jp
	}
	return out
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log := slog.New(slog.NewTextHandler(stderr, nil))

	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return 2
	}
	if cfg.Verbose {
		svgmesh.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer svgmesh.SetLogger(nil)
	} else {
		svgmesh.SetLogger(log)
		defer svgmesh.SetLogger(nil)
	}

	asset, err := vecasset.Load(cfg.Input, cfg.options())
	if err != nil {
		var ioErr *vecasset.IOError
		kind := "parse"
		if errors.As(err, &ioErr) {
			kind = "io"
		}
		log.Error("loading failed", "file", cfg.Input, "kind", kind, "error", err)
		return 1
	}

	if cfg.PNG != "" {
		if err := writeFile(cfg.PNG, func(w io.Writer) error {
			img := svgraster.RasterAsset(asset, cfg.PNGSize, cfg.PNGSize, svgraster.Options{})
			return svgraster.WritePNG(w, img)
		}); err != nil {
			log.Error("writing png preview", "error", err)
			return 1
		}
	}
	if cfg.PDF != "" {
		if err := writeFile(cfg.PDF, func(w io.Writer) error {
			return svgpdf.WriteAsset(w, asset)
		}); err != nil {
			log.Error("writing pdf preview", "error", err)
			return 1
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSON(asset)); err != nil {
		log.Error("writing output", "error", err)
		return 1
	}
	return 0
}

func writeFile(name string, write func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
