package render

import (
	"image/color"

	"github.com/san-kum/motionrender/internal/config"
)

// Style is the resolved look of a rendered frame: parsed colors plus
// marker and line geometry.
type Style struct {
	Background   color.RGBA
	JointColor   color.RGBA
	BoneColor    color.RGBA
	BoxColor     color.RGBA
	TextColor    color.RGBA
	MarkerRadius float64
	LineWidth    float64
	ShowBox      bool
	ShowTitle    bool
	LabelJoints  bool
	Supersample  int
}

func StyleFromConfig(cfg config.RenderConfig) (Style, error) {
	bg, err := ParseHexColor(cfg.Background)
	if err != nil {
		return Style{}, err
	}
	joint, err := ParseHexColor(cfg.JointColor)
	if err != nil {
		return Style{}, err
	}
	bone, err := ParseHexColor(cfg.BoneColor)
	if err != nil {
		return Style{}, err
	}
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	return Style{
		Background:   bg,
		JointColor:   joint,
		BoneColor:    bone,
		BoxColor:     color.RGBA{R: 204, G: 204, B: 204, A: 255},
		TextColor:    color.RGBA{R: 51, G: 51, B: 51, A: 255},
		MarkerRadius: cfg.MarkerRadius,
		LineWidth:    cfg.LineWidth,
		ShowBox:      cfg.ShowBox,
		ShowTitle:    cfg.ShowTitle,
		LabelJoints:  cfg.LabelJoints,
		Supersample:  ss,
	}, nil
}
