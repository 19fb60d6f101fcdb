// Command snaprender frames images headlessly with a saved preset.
//
// Usage:
//
//	snaprender -in shot.png -preset frame.snapframe.json -out framed.png
//	snaprender -preset frame.snapframe.json -outdir framed/ -j 4 a.png b.png c.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"snapframe/internal/app"
	"snapframe/internal/config"
	"snapframe/internal/logging"
	"snapframe/internal/preset"
	"snapframe/internal/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "snaprender:", err)
		}
		os.Exit(1)
	}
}

// job is one input rendered to one output.
type job struct {
	in, out string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("snaprender", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "input image")
	presetPath := fs.String("preset", "", "preset file to apply")
	configPath := fs.String("config", "", "TOML configuration file (default $"+config.EnvPath+")")
	out := fs.String("out", "", "output PNG for a single input")
	outDir := fs.String("outdir", "", "output directory for several inputs")
	jobs := fs.Int("j", runtime.NumCPU(), "images rendered in parallel")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	var inputs []string
	if *in != "" {
		inputs = append(inputs, *in)
	}
	inputs = append(inputs, fs.Args()...)

	plan, err := planJobs(inputs, *out, *outDir)
	if err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	app.SetupLogging(stderr, cfg)

	var state []byte
	if *presetPath != "" {
		f, err := preset.Load(*presetPath)
		if err != nil {
			return err
		}
		state = f.State
	}

	// Each job owns one slot; paths are printed in plan order once the
	// group is done.
	done := make([]bool, len(plan))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *jobs))
	for i, j := range plan {
		g.Go(func() error {
			if err := renderJob(ctx, cfg, state, j); err != nil {
				return fmt.Errorf("%s: %w", j.in, err)
			}
			done[i] = true
			return nil
		})
	}
	err = g.Wait()
	for i, j := range plan {
		if done[i] {
			fmt.Fprintln(stdout, j.out)
		}
	}
	return err
}

// planJobs pairs every input with its output path. A single input may name
// its output with out; otherwise outputs go to outDir under the input's base
// name.
func planJobs(inputs []string, out, outDir string) ([]job, error) {
	switch {
	case len(inputs) == 0:
		return nil, errors.New("no input images")
	case out != "" && len(inputs) > 1:
		return nil, errors.New("-out takes a single input; use -outdir")
	case out != "":
		return []job{{in: inputs[0], out: out}}, nil
	case outDir == "":
		return nil, errors.New("-out or -outdir is required")
	}

	plan := make([]job, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		o := filepath.Join(outDir, base+".png")
		if prev, dup := seen[o]; dup {
			return nil, fmt.Errorf("%s and %s would both write %s", prev, in, o)
		}
		seen[o] = in
		plan = append(plan, job{in: in, out: o})
	}
	return plan, nil
}

// renderJob frames one image. Each job gets its own editor; editors are not
// shared between goroutines.
func renderJob(ctx context.Context, cfg config.Config, state []byte, j job) error {
	ed, err := app.NewEditor(cfg)
	if err != nil {
		return err
	}
	if err := app.OpenImage(ctx, ed, j.in); err != nil {
		return err
	}
	if state != nil {
		if err := ed.Deserialize(state); err != nil {
			return err
		}
	}
	if err := app.ExportPNG(ed, j.out); err != nil {
		return err
	}
	w, h := ed.CanvasSize()
	logging.Logger().Debug("rendered",
		slog.String("in", j.in),
		slog.String("out", j.out),
		slog.Int("width", w),
		slog.Int("height", h))
	return nil
}
