package render

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/motionrender/internal/encode"
	"github.com/san-kum/motionrender/internal/observability"
)

// AnimateOptions selects the frames of a clip. End is exclusive; zero
// means the end of the series. Workers defaults to the CPU count.
type AnimateOptions struct {
	Start    int
	End      int
	Stride   int
	Workers  int
	Progress func(done, total int)
}

type frameResult struct {
	img *image.RGBA
	err error
}

type frameJob struct {
	index int
	out   chan frameResult
}

// Animate renders the selected frames and hands them to the writer in
// order. Frames render in parallel; the writer stays sequential, so
// jobs flow through a bounded queue that preserves submission order.
// Returns the number of frames written.
func Animate(ctx context.Context, r *Renderer, w encode.Writer, opts AnimateOptions) (int, error) {
	start, end, stride := opts.Start, opts.End, opts.Stride
	if start < 0 {
		start = 0
	}
	if end <= 0 || end > r.Len() {
		end = r.Len()
	}
	if stride < 1 {
		stride = 1
	}
	if start >= end {
		return 0, fmt.Errorf("render: no frames selected (start %d, end %d)", start, end)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	total := (end - start + stride - 1) / stride

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan *frameJob)
	pending := make(chan *frameJob, workers)

	g.Go(func() error {
		defer close(jobs)
		defer close(pending)
		for i := start; i < end; i += stride {
			job := &frameJob{index: i, out: make(chan frameResult, 1)}
			select {
			case pending <- job:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case jobs <- job:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for n := 0; n < workers; n++ {
		g.Go(func() error {
			for job := range jobs {
				img, err := r.renderPooled(job.index)
				job.out <- frameResult{img: img, err: err}
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	written := 0
	g.Go(func() error {
		log := observability.L()
		for job := range pending {
			var res frameResult
			select {
			case res = <-job.out:
			case <-ctx.Done():
				return ctx.Err()
			}
			if res.err != nil {
				return res.err
			}
			if written%500 == 0 {
				log.Info("rendering frames", zap.Int("frame", job.index), zap.Int("done", written), zap.Int("total", total))
			}
			err := w.AddFrame(res.img)
			r.recycle(res.img)
			if err != nil {
				return fmt.Errorf("render: write frame %d: %w", job.index, err)
			}
			written++
			if opts.Progress != nil {
				opts.Progress(written, total)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return written, err
	}
	return written, nil
}
