// Package batch renders many capture files against a shared skeleton
// in one run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/motionrender/internal/config"
	"github.com/san-kum/motionrender/internal/encode"
	"github.com/san-kum/motionrender/internal/mocap"
	"github.com/san-kum/motionrender/internal/observability"
	"github.com/san-kum/motionrender/internal/render"
)

// ErrNoMatches indicates that no input pattern matched a file.
var ErrNoMatches = errors.New("batch: no capture files match")

// Request describes one batch run: which series files to render, the
// skeleton they share, and where the movies go.
type Request struct {
	GraphPath string
	Patterns  []string
	OutDir    string
	Ext       string // output movie extension, with or without dot
	Workers   int    // concurrent files, default 2
}

// Outcome is the result of rendering one capture file.
type Outcome struct {
	SeriesPath string
	OutPath    string
	Frames     int
	Elapsed    time.Duration
	Err        error
}

// Summary aggregates a finished batch.
type Summary struct {
	Outcomes []Outcome
	OK       int
	Failed   int
}

// Run expands the input patterns and renders every matching series to
// OutDir, a movie per file. Files render concurrently; one file's
// failure is recorded in its outcome and does not stop the others.
func Run(ctx context.Context, req Request, cfg *config.Config) (*Summary, error) {
	ext := strings.ToLower(strings.TrimPrefix(req.Ext, "."))
	if !encode.Supported(ext) {
		return nil, fmt.Errorf("%w: %q", encode.ErrUnsupportedFormat, req.Ext)
	}

	inputs, err := expand(req.Patterns)
	if err != nil {
		return nil, err
	}

	graph, err := mocap.LoadJointGraph(req.GraphPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(req.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("batch: create output dir: %w", err)
	}

	fileWorkers := req.Workers
	if fileWorkers < 1 {
		fileWorkers = 2
	}
	if fileWorkers > len(inputs) {
		fileWorkers = len(inputs)
	}
	frameWorkers := runtime.GOMAXPROCS(0) / fileWorkers
	if frameWorkers < 1 {
		frameWorkers = 1
	}

	outs := outputPaths(inputs, req.OutDir, ext)
	summary := &Summary{Outcomes: make([]Outcome, len(inputs))}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fileWorkers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				summary.Outcomes[i] = Outcome{SeriesPath: in, OutPath: outs[i], Err: err}
				return err
			}
			summary.Outcomes[i] = renderOne(ctx, in, outs[i], graph, cfg, frameWorkers)
			return nil
		})
	}
	err = g.Wait()

	for _, o := range summary.Outcomes {
		if o.Err != nil {
			summary.Failed++
		} else {
			summary.OK++
		}
	}
	observability.L().Info("batch finished",
		zap.Int("ok", summary.OK),
		zap.Int("failed", summary.Failed),
		zap.String("out_dir", req.OutDir))
	return summary, err
}

// renderOne loads, validates and renders a single capture file.
func renderOne(ctx context.Context, in, out string, graph *mocap.JointGraph, cfg *config.Config, workers int) Outcome {
	log := observability.L().With(zap.String("series", in), zap.String("out", out))
	start := time.Now()
	oc := Outcome{SeriesPath: in, OutPath: out}

	fail := func(err error) Outcome {
		oc.Err = err
		oc.Elapsed = time.Since(start)
		log.Error("batch file failed", zap.Error(err))
		return oc
	}

	series, err := mocap.LoadTimeSeries(in)
	if err != nil {
		return fail(err)
	}
	if err := mocap.ValidateJoints(series, graph); err != nil {
		return fail(err)
	}

	r, err := render.New(&mocap.Capture{Series: series, Graph: graph}, cfg)
	if err != nil {
		return fail(err)
	}

	w, err := encode.New(out, encode.OptionsFromConfig(cfg))
	if err != nil {
		return fail(err)
	}

	written, aerr := render.Animate(ctx, r, w, render.AnimateOptions{
		Stride:  cfg.Render.Stride,
		Workers: workers,
	})
	cerr := w.Close()
	if aerr != nil {
		os.Remove(out)
		return fail(aerr)
	}
	if cerr != nil {
		os.Remove(out)
		return fail(cerr)
	}

	oc.Frames = written
	oc.Elapsed = time.Since(start)
	log.Info("batch file done", zap.Int("frames", written), zap.Duration("elapsed", oc.Elapsed))
	return oc
}

// expand resolves glob patterns to a sorted list of unique paths. A
// pattern without wildcards must name an existing file.
func expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var inputs []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("batch: bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoMatches, pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				inputs = append(inputs, m)
			}
		}
	}
	if len(inputs) == 0 {
		return nil, ErrNoMatches
	}
	sort.Strings(inputs)
	return inputs, nil
}

// outputPaths maps every input to <outDir>/<stem>.<ext>, suffixing
// duplicate stems so files from different directories cannot clobber
// each other.
func outputPaths(inputs []string, outDir, ext string) []string {
	used := make(map[string]int)
	outs := make([]string, len(inputs))
	for i, in := range inputs {
		stem := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		used[stem]++
		if n := used[stem]; n > 1 {
			stem = fmt.Sprintf("%s-%d", stem, n)
		}
		outs[i] = filepath.Join(outDir, stem+"."+ext)
	}
	return outs
}
