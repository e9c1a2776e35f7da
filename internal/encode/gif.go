package encode

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// gifWriter accumulates quantized frames and encodes the animation when
// Close is called. Frames are mapped onto the Plan 9 palette, which
// keeps the handful of skeleton colors intact.
type gifWriter struct {
	path   string
	anim   gif.GIF
	delay  int // centiseconds per frame
	closed bool
}

func newGIFWriter(path string, opts Options) (*gifWriter, error) {
	delay := (100 + opts.FPS/2) / opts.FPS
	if delay < 2 {
		delay = 2
	}
	return &gifWriter{path: path, delay: delay}, nil
}

func (w *gifWriter) AddFrame(img image.Image) error {
	if w.closed {
		return ErrClosed
	}
	bounds := img.Bounds()
	frame := image.NewPaletted(bounds, palette.Plan9)
	draw.Draw(frame, bounds, img, bounds.Min, draw.Src)
	w.anim.Image = append(w.anim.Image, frame)
	w.anim.Delay = append(w.anim.Delay, w.delay)
	return nil
}

func (w *gifWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if len(w.anim.Image) == 0 {
		return fmt.Errorf("encode: gif %s: no frames", w.path)
	}
	w.anim.LoopCount = 0
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("encode: create gif: %w", err)
	}
	if err := gif.EncodeAll(f, &w.anim); err != nil {
		f.Close()
		return fmt.Errorf("encode: write gif: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("encode: close gif: %w", err)
	}
	return nil
}
