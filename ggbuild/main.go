// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ggbuild builds and renders a layered plot.
//
// Usage:
//
//	ggbuild [flags] [inputs...]
//
// The plot is described by a YAML file given with -c, by flags, or
// both; flags override the file. Each -layer flag adds a layer after
// those in the file. Inputs are CSV files or Go benchmark results
// files [1] and are concatenated; with no inputs and no data in the
// description, ggbuild reads standard input.
//
// For example,
//
//	ggbuild -aes 'x=n y=ns/op colour=name' -layer point -layer 'line stat=smooth' bench.txt
//
// With -table, ggbuild prints each layer's built data instead of
// drawing the plot. Otherwise it writes an SVG, PNG, TIFF, or BMP
// image, picking the format from -format or the -o file extension.
//
// [1] https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/dataset"
	"github.com/aclements/ggbuild/layer"
	"github.com/aclements/ggbuild/plot"
	"github.com/aclements/ggbuild/render"
	"github.com/aclements/ggbuild/theme"
	"github.com/kballard/go-shellquote"
)

// layerFlags collects repeated -layer flags.
type layerFlags []LayerConfig

func (l *layerFlags) String() string { return "" }

func (l *layerFlags) Set(s string) error {
	lc, err := ParseLayer(s)
	if err != nil {
		return err
	}
	*l = append(*l, lc)
	return nil
}

func main() {
	log.SetPrefix("ggbuild: ")
	log.SetFlags(0)

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagConfig     = flag.String("c", "", "read plot description from YAML `file`")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout)")
		flagFormat     = flag.String("format", "", "output `format`: svg, png, tiff, or bmp (default: from -o, else svg)")
		flagDataFormat = flag.String("data-format", "", "input `format`: csv or bench (default: from file extension)")
		flagTable      = flag.Bool("table", false, "output the built layer data instead of a plot")
		flagParallel   = flag.Bool("parallel", false, "build layers concurrently")
		flagWidth      = flag.Int("width", 0, "image width in `pixels`")
		flagHeight     = flag.Int("height", 0, "image height in `pixels`")
		flagScale      = flag.Float64("scale", 0, "resize PNG, TIFF, and BMP output by `factor`")
		flagTitle      = flag.String("title", "", "plot `title` (default: input file names)")
		flagTheme      = flag.String("theme", "", "plot `theme`: grey, bw, or minimal")
		flagAes        = flag.String("aes", "", "default aesthetic `mapping`, as 'aes=column ...'")
		flagFacet      = flag.String("facet", "", "facet panels by `column`")
		flagLayers     layerFlags
	)
	flag.Var(&flagLayers, "layer", "add a `layer`, as 'geom aes=column key:=value ...' (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [inputs...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	// Assemble the plot description.
	cfg := new(Config)
	if *flagConfig != "" {
		f, err := os.Open(*flagConfig)
		if err != nil {
			log.Fatal(err)
		}
		cfg, err = ReadConfig(f)
		f.Close()
		if err != nil {
			log.Fatalf("%s: %v", *flagConfig, err)
		}
	}
	if err := cfg.applyFlags(flagOverrides{
		aes:        *flagAes,
		facet:      *flagFacet,
		title:      *flagTitle,
		theme:      *flagTheme,
		dataFormat: *flagDataFormat,
		width:      *flagWidth,
		height:     *flagHeight,
		layers:     flagLayers,
		inputs:     flag.Args(),
	}); err != nil {
		log.Fatal(err)
	}

	// Load data.
	paths := cfg.Data
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	data, err := dataset.LoadAll(paths, dataset.Format(cfg.Format))
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Title == "" && !(len(paths) == 1 && paths[0] == "-") {
		cfg.Title = strings.Join(paths, " ")
	}

	// Build.
	p, err := cfg.Plot(data)
	if err != nil {
		log.Fatal(err)
	}
	build, draw := plot.Build, plot.Draw
	if *flagParallel {
		build, draw = plot.BuildParallel, plot.DrawParallel
	}
	b, err := build(p)
	if err != nil {
		log.Fatal(err)
	}

	// Prepare for output.
	f := os.Stdout
	if *flagOut != "" {
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
	}

	if *flagTable {
		err = writeTables(f, b)
	} else {
		ms, derr := draw(b, nil)
		if derr != nil {
			log.Fatal(derr)
		}
		th, ok := theme.Named(cfg.Theme)
		if !ok {
			log.Fatalf("unknown theme %q", cfg.Theme)
		}
		opts := render.Options{Width: cfg.Width, Height: cfg.Height, Theme: th, Title: cfg.Title, Scale: *flagScale}
		format := outputFormat(*flagFormat, *flagOut)
		if format == "svg" {
			err = render.SVG(f, b, ms, opts)
		} else {
			err = render.Encode(f, render.Raster(b, ms, opts), format)
		}
	}
	if err == nil && f != os.Stdout {
		err = f.Close()
	}
	if err != nil {
		log.Fatal(err)
	}
}

// flagOverrides are the command-line settings that override a plot
// description.
type flagOverrides struct {
	aes, facet, title, theme, dataFormat string
	width, height                        int
	layers                               []LayerConfig
	inputs                               []string
}

func (c *Config) applyFlags(o flagOverrides) error {
	if o.aes != "" {
		words, err := shellquote.Split(o.aes)
		if err != nil {
			return fmt.Errorf("-aes: %w", err)
		}
		if c.Mapping == nil {
			c.Mapping = make(map[string]string)
		}
		for _, w := range words {
			i := strings.Index(w, "=")
			if i <= 0 {
				return fmt.Errorf("-aes: %q is not aes=column", w)
			}
			c.Mapping[w[:i]] = w[i+1:]
		}
	}
	if o.facet != "" {
		c.Facet.Wrap = o.facet
	}
	if o.title != "" {
		c.Title = o.title
	}
	if o.theme != "" {
		c.Theme = o.theme
	}
	if o.dataFormat != "" {
		c.Format = o.dataFormat
	}
	if o.width != 0 {
		c.Width = o.width
	}
	if o.height != 0 {
		c.Height = o.height
	}
	c.Layers = append(c.Layers, o.layers...)
	c.Data = append(c.Data, o.inputs...)
	if len(c.Layers) == 0 {
		return fmt.Errorf("no layers; use -layer or a plot description")
	}
	return nil
}

// outputFormat returns the image format named by flag, or else by the
// extension of the output file, or else "svg".
func outputFormat(flag, out string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(out), ".")); ext {
	case "png", "tiff", "bmp":
		return ext
	case "tif":
		return "tiff"
	}
	return "svg"
}

// writeTables prints the built data of each layer, followed by any
// build warnings.
func writeTables(w io.Writer, b *plot.Built) error {
	for i, d := range b.Data {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# layer %d: %s\n", i+1, layerName(b.Plot.Layers[i]))
		if err := table.Fprint(w, d.Table()); err != nil {
			return err
		}
	}
	for _, warning := range b.Warnings {
		if _, err := fmt.Fprintf(w, "# warning: %s\n", warning); err != nil {
			return err
		}
	}
	if n := b.Context.NumPanels(); n > 1 {
		for _, pn := range b.Context.Panels() {
			fmt.Fprintf(w, "# panel %d: %v\n", pn.ID, pn.Value)
		}
	}
	return nil
}

func layerName(l *layer.Layer) string {
	return fmt.Sprintf("geom_%s stat_%s position_%s", l.Geom.Info().Name, l.Stat.Info().Name, l.Position.Name())
}
