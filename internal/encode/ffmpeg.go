package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ffmpegWriter pipes PNG frames into an ffmpeg child process. The codec
// is picked from the output extension; everything else about the
// container is left to ffmpeg.
type ffmpegWriter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	path   string
	closed bool
}

func newFFmpegWriter(path string, opts Options) (*ffmpegWriter, error) {
	bin := opts.FFmpegPath
	if bin == "" {
		bin = "ffmpeg"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrEncoderMissing, bin)
	}
	w := &ffmpegWriter{path: path}
	w.cmd = exec.Command(bin, ffmpegArgs(path, opts)...)
	w.cmd.Stderr = &w.stderr
	stdin, err := w.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encode: ffmpeg stdin: %w", err)
	}
	w.stdin = stdin
	if err := w.cmd.Start(); err != nil {
		return nil, fmt.Errorf("encode: start ffmpeg: %w", err)
	}
	return w, nil
}

// ffmpegArgs builds the argument list for an image2pipe encode of the
// given output file.
func ffmpegArgs(path string, opts Options) []string {
	codec := "libx264"
	if strings.EqualFold(filepath.Ext(path), ".webm") {
		codec = "libvpx-vp9"
	}
	fps := strconv.Itoa(opts.FPS)
	args := []string{
		"-y", "-loglevel", "error",
		"-f", "image2pipe", "-vcodec", "png", "-r", fps, "-i", "-",
		"-c:v", codec, "-r", fps,
	}
	if opts.PixelFormat != "" {
		args = append(args, "-pix_fmt", opts.PixelFormat)
	}
	args = append(args, opts.ExtraArgs...)
	return append(args, path)
}

func (w *ffmpegWriter) AddFrame(img image.Image) error {
	if w.closed {
		return ErrClosed
	}
	if err := png.Encode(w.stdin, img); err != nil {
		return fmt.Errorf("encode: ffmpeg frame: %v%s", err, stderrTail(&w.stderr))
	}
	return nil
}

func (w *ffmpegWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.stdin.Close(); err != nil {
		w.cmd.Wait()
		return fmt.Errorf("encode: close ffmpeg input: %w", err)
	}
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("encode: ffmpeg %s: %v%s", filepath.Base(w.path), err, stderrTail(&w.stderr))
	}
	return nil
}

// stderrTail formats the last chunk of ffmpeg's stderr for error
// messages, or returns an empty string when nothing was written.
func stderrTail(buf *bytes.Buffer) string {
	const max = 512
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return ""
	}
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return ": " + s
}
