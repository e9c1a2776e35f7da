package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ParseHexColor parses #rgb and #rrggbb colors.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("render: color %q must start with #", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("render: color %q must be #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("render: color %q: %v", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func fill(img *image.RGBA, c color.RGBA) {
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// drawLine draws a line with the given thickness by stepping along it
// and stroking across the perpendicular.
func drawLine(img *image.RGBA, x1, y1, x2, y2, thickness float64, c color.RGBA) {
	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	half := thickness / 2
	if dist < 1 {
		fillCircle(img, x1, y1, math.Max(half, 0.5), c)
		return
	}

	steps := math.Max(math.Abs(dx), math.Abs(dy))
	perpX, perpY := -dy/dist, dx/dist
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		px := x1 + dx*t
		py := y1 + dy*t
		for o := -half; o <= half; o += 0.5 {
			img.Set(int(px+perpX*o), int(py+perpY*o), c)
		}
	}
}

// fillCircle fills a disc by horizontal scanlines.
func fillCircle(img *image.RGBA, cx, cy, r float64, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		span := r * r
		if rem := span - dy*dy; rem >= 0 {
			extent := math.Sqrt(rem)
			for dx := -extent; dx <= extent; dx++ {
				img.Set(int(cx+dx), int(cy+dy), c)
			}
		}
	}
}

func drawText(img *image.RGBA, face font.Face, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// drawTextCentered centers text horizontally on x; y is the baseline.
func drawTextCentered(img *image.RGBA, face font.Face, x, y int, text string, c color.RGBA) {
	width := font.MeasureString(face, text).Ceil()
	drawText(img, face, x-width/2, y, text, c)
}
