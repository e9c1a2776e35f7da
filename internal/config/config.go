package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth        = 1000
	DefaultHeight       = 1000
	DefaultFPS          = 20
	DefaultMarkerRadius = 7.0
	DefaultLineWidth    = 3.0
	DefaultDistance     = 10.0
	DefaultQuality      = 90
)

type Config struct {
	Render RenderConfig `yaml:"render"`
	View   ViewConfig   `yaml:"view"`
	Encode EncodeConfig `yaml:"encode"`
	Log    LogConfig    `yaml:"log"`
}

type RenderConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FPS          int     `yaml:"fps"`
	Stride       int     `yaml:"stride"`
	Workers      int     `yaml:"workers"`
	MarkerRadius float64 `yaml:"marker_radius"`
	LineWidth    float64 `yaml:"line_width"`
	Background   string  `yaml:"background"`
	JointColor   string  `yaml:"joint_color"`
	BoneColor    string  `yaml:"bone_color"`
	ShowBox      bool    `yaml:"show_box"`
	ShowTitle    bool    `yaml:"show_title"`
	LabelJoints  bool    `yaml:"label_joints"`
	Supersample  int     `yaml:"supersample"`
}

type ViewConfig struct {
	Elevation float64 `yaml:"elevation"`
	Azimuth   float64 `yaml:"azimuth"`
	Distance  float64 `yaml:"distance"`
	Zoom      float64 `yaml:"zoom"`
	Up        string  `yaml:"up"`
	Limits    *Limits `yaml:"limits,omitempty"`
}

// Limits fixes the world box the skeleton is framed in. When absent the
// renderer fits the box to the data.
type Limits struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
	ZMin float64 `yaml:"zmin"`
	ZMax float64 `yaml:"zmax"`
}

type EncodeConfig struct {
	Quality     int      `yaml:"quality"`
	FFmpeg      string   `yaml:"ffmpeg"`
	PixelFormat string   `yaml:"pixel_format"`
	ExtraArgs   []string `yaml:"extra_args"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Width:        DefaultWidth,
			Height:       DefaultHeight,
			FPS:          DefaultFPS,
			Stride:       1,
			MarkerRadius: DefaultMarkerRadius,
			LineWidth:    DefaultLineWidth,
			Background:   "#ffffff",
			JointColor:   "#1f77b4",
			BoneColor:    "#d62728",
			ShowBox:      true,
			ShowTitle:    true,
			Supersample:  1,
		},
		View: ViewConfig{
			Distance: DefaultDistance,
			Zoom:     1.0,
			Up:       "z",
		},
		Encode: EncodeConfig{
			Quality:     DefaultQuality,
			FFmpeg:      "ffmpeg",
			PixelFormat: "yuv420p",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	r := c.Render
	if r.Width < 16 || r.Height < 16 {
		return fmt.Errorf("config: frame size %dx%d too small", r.Width, r.Height)
	}
	if r.FPS < 1 {
		return fmt.Errorf("config: fps must be at least 1, got %d", r.FPS)
	}
	if r.Stride < 1 {
		return fmt.Errorf("config: stride must be at least 1, got %d", r.Stride)
	}
	if r.Supersample < 1 || r.Supersample > 4 {
		return fmt.Errorf("config: supersample must be 1..4, got %d", r.Supersample)
	}
	if c.Encode.Quality < 1 || c.Encode.Quality > 100 {
		return fmt.Errorf("config: jpeg quality must be 1..100, got %d", c.Encode.Quality)
	}
	if c.View.Zoom <= 0 {
		return fmt.Errorf("config: zoom must be positive, got %f", c.View.Zoom)
	}
	if c.View.Distance <= 2 {
		return fmt.Errorf("config: camera distance must be above 2, got %f", c.View.Distance)
	}
	if c.View.Up != "z" && c.View.Up != "y" {
		return fmt.Errorf("config: up axis must be z or y, got %q", c.View.Up)
	}
	if l := c.View.Limits; l != nil {
		if l.XMin >= l.XMax || l.YMin >= l.YMax || l.ZMin >= l.ZMax {
			return fmt.Errorf("config: view limits must have min < max per axis")
		}
	}
	return nil
}
