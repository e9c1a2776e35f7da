package encode

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"testing"
)

func testFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestNewUnsupportedFormat(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "out.xyz"), Options{Width: 8, Height: 8, FPS: 10})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	for _, ext := range []string{".avi", "gif", "MP4", ".webm"} {
		if !Supported(ext) {
			t.Errorf("expected %q to be supported", ext)
		}
	}
	for _, ext := range []string{".png", "txt", ""} {
		if Supported(ext) {
			t.Errorf("expected %q to be unsupported", ext)
		}
	}
}

func TestMJPEGWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")
	w, err := New(path, Options{Width: 16, Height: 16, FPS: 10, Quality: 90})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := w.AddFrame(testFrame(16, 16, color.RGBA{R: uint8(40 * i), A: 255})); err != nil {
			t.Fatalf("add frame %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read avi: %v", err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Errorf("expected RIFF AVI header, got %q", data[:min(12, len(data))])
	}

	if err := w.AddFrame(testFrame(16, 16, color.RGBA{A: 255})); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}

func TestGIFWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	w, err := New(path, Options{Width: 12, Height: 12, FPS: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	colors := []color.RGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{R: 214, G: 39, B: 40, A: 255},
	}
	for _, c := range colors {
		if err := w.AddFrame(testFrame(12, 12, c)); err != nil {
			t.Fatalf("add frame: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open gif: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(anim.Image))
	}
	if anim.LoopCount != 0 {
		t.Errorf("expected loop forever, got %d", anim.LoopCount)
	}
	for i, d := range anim.Delay {
		if d != 5 {
			t.Errorf("frame %d: expected 5cs delay at 20fps, got %d", i, d)
		}
	}
}

func TestGIFWriterNoFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.gif")
	w, err := New(path, Options{Width: 8, Height: 8, FPS: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Close(); err == nil {
		t.Error("expected error closing gif with no frames")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no file written, got %v", err)
	}
}

func TestFFmpegArgs(t *testing.T) {
	opts := Options{Width: 640, Height: 480, FPS: 20, PixelFormat: "yuv420p"}
	got := ffmpegArgs("out.mp4", opts)
	want := []string{
		"-y", "-loglevel", "error",
		"-f", "image2pipe", "-vcodec", "png", "-r", "20", "-i", "-",
		"-c:v", "libx264", "-r", "20", "-pix_fmt", "yuv420p",
		"out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = ffmpegArgs("out.webm", Options{FPS: 10, ExtraArgs: []string{"-b:v", "1M"}})
	want = []string{
		"-y", "-loglevel", "error",
		"-f", "image2pipe", "-vcodec", "png", "-r", "10", "-i", "-",
		"-c:v", "libvpx-vp9", "-r", "10",
		"-b:v", "1M",
		"out.webm",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFFmpegWriterMissingBinary(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "out.mp4"), Options{
		Width: 8, Height: 8, FPS: 10,
		FFmpegPath: "motionrender-no-such-ffmpeg",
	})
	if !errors.Is(err, ErrEncoderMissing) {
		t.Fatalf("expected ErrEncoderMissing, got %v", err)
	}
}

func TestFFmpegWriterEncode(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	path := filepath.Join(t.TempDir(), "out.mp4")
	w, err := New(path, Options{Width: 64, Height: 64, FPS: 10, PixelFormat: "yuv420p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := w.AddFrame(testFrame(64, 64, color.RGBA{B: uint8(50 * i), A: 255})); err != nil {
			t.Fatalf("add frame %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty mp4")
	}
}
