package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"
)

// mjpegWriter emits a motion-JPEG AVI. Every frame is compressed to
// JPEG in a reused buffer and appended to the container, so the file is
// playable the moment Close returns.
type mjpegWriter struct {
	avi     mjpeg.AviWriter
	buf     bytes.Buffer
	quality int
	closed  bool
}

func newMJPEGWriter(path string, opts Options) (*mjpegWriter, error) {
	avi, err := mjpeg.New(path, int32(opts.Width), int32(opts.Height), int32(opts.FPS))
	if err != nil {
		return nil, fmt.Errorf("encode: create avi: %w", err)
	}
	quality := opts.Quality
	if quality < 1 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	return &mjpegWriter{avi: avi, quality: quality}, nil
}

func (w *mjpegWriter) AddFrame(img image.Image) error {
	if w.closed {
		return ErrClosed
	}
	w.buf.Reset()
	if err := jpeg.Encode(&w.buf, img, &jpeg.Options{Quality: w.quality}); err != nil {
		return fmt.Errorf("encode: jpeg frame: %w", err)
	}
	if err := w.avi.AddFrame(w.buf.Bytes()); err != nil {
		return fmt.Errorf("encode: avi frame: %w", err)
	}
	return nil
}

func (w *mjpegWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.avi.Close(); err != nil {
		return fmt.Errorf("encode: close avi: %w", err)
	}
	return nil
}
