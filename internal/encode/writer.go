package encode

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/san-kum/motionrender/internal/config"
)

var (
	// ErrUnsupportedFormat indicates an output extension with no encoder.
	ErrUnsupportedFormat = errors.New("encode: unsupported movie format")

	// ErrEncoderMissing indicates the ffmpeg binary is not on the PATH.
	ErrEncoderMissing = errors.New("encode: ffmpeg not found")

	// ErrClosed indicates a frame was added after Close.
	ErrClosed = errors.New("encode: writer is closed")
)

// Writer assembles frames into a movie file. Frames must arrive in
// playback order and share the size the writer was created with. Close
// finalizes the file and must be called exactly once.
type Writer interface {
	AddFrame(img image.Image) error
	Close() error
}

// Options carries the frame geometry and encoder tuning shared by every
// backend.
type Options struct {
	Width       int
	Height      int
	FPS         int
	Quality     int      // jpeg quality for the AVI backend
	FFmpegPath  string   // defaults to "ffmpeg" on the PATH
	PixelFormat string   // ffmpeg output pixel format
	ExtraArgs   []string // appended before the ffmpeg output path
}

// New selects an encoder from the output extension: .avi writes MJPEG
// directly, .gif encodes in process, and the remaining formats stream
// through ffmpeg.
func New(path string, opts Options) (Writer, error) {
	if opts.FPS < 1 {
		opts.FPS = 1
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".avi":
		return newMJPEGWriter(path, opts)
	case ".gif":
		return newGIFWriter(path, opts)
	case ".mp4", ".mov", ".m4v", ".mkv", ".webm":
		return newFFmpegWriter(path, opts)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, filepath.Ext(path), strings.Join(Formats(), " "))
	}
}

// Formats lists the supported output extensions.
func Formats() []string {
	return []string{".avi", ".gif", ".mp4", ".mov", ".m4v", ".mkv", ".webm"}
}

// Supported reports whether ext names a known movie format. The leading
// dot is optional.
func Supported(ext string) bool {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, f := range Formats() {
		if ext == f {
			return true
		}
	}
	return false
}

// OptionsFromConfig assembles encoder options from the render geometry
// and encoder sections of a config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		FPS:         cfg.Render.FPS,
		Quality:     cfg.Encode.Quality,
		FFmpegPath:  cfg.Encode.FFmpeg,
		PixelFormat: cfg.Encode.PixelFormat,
		ExtraArgs:   cfg.Encode.ExtraArgs,
	}
}
