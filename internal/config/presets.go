package config

import "sort"

// Preset bundles a named camera and render setup applied on top of the
// loaded config, before flag overrides.
type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"front": {
		Description: "straight-on view, subject upright",
		Apply: func(c *Config) {
			c.View.Elevation, c.View.Azimuth = 0, 0
		},
	},
	"side": {
		Description: "profile view from the subject's left",
		Apply: func(c *Config) {
			c.View.Elevation, c.View.Azimuth = 0, 90
		},
	},
	"top": {
		Description: "overhead view, floor plane filling the frame",
		Apply: func(c *Config) {
			c.View.Elevation, c.View.Azimuth = 90, 0
		},
	},
	"iso": {
		Description: "three-quarter view slightly above the subject",
		Apply: func(c *Config) {
			c.View.Elevation, c.View.Azimuth = 25, 40
		},
	},
	"sensor": {
		Description: "depth-camera view for y-up recordings",
		Apply: func(c *Config) {
			c.View.Elevation, c.View.Azimuth = 0, 0
			c.View.Up = "y"
		},
	},
	"clip-fast": {
		Description: "quick preview clips: half resolution, every 2nd frame",
		Apply: func(c *Config) {
			c.Render.Width, c.Render.Height = 500, 500
			c.Render.Stride = 2
			c.Render.MarkerRadius = 4
			c.Render.LineWidth = 2
		},
	},
	"clip-hq": {
		Description: "final clips: supersampled frames, high jpeg quality",
		Apply: func(c *Config) {
			c.Render.Supersample = 2
			c.Encode.Quality = 95
		},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
