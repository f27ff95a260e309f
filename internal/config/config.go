// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/daynight/internal/logger"
	"github.com/Faultbox/daynight/internal/render"
	"github.com/Faultbox/daynight/pkg/projection"
	"github.com/Faultbox/daynight/pkg/shading"
	"github.com/Faultbox/daynight/pkg/solar"
)

// Config holds all settings.
type Config struct {
	Render     RenderConfig     `yaml:"render"`
	Projection ProjectionConfig `yaml:"projection"`
	Shading    shading.Config   `yaml:"shading"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// RenderConfig holds frame and output settings.
type RenderConfig struct {
	Mode         string        `yaml:"mode"` // global, lights or timezone
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	Interval     time.Duration `yaml:"interval"` // time between frames
	Workers      int           `yaml:"workers"`  // 0 = one per CPU
	OutputDir    string        `yaml:"output_dir"`
	Prefix       string        `yaml:"prefix"`
	DayTexture   string        `yaml:"day_texture"`   // PNG, global mode only
	NightTexture string        `yaml:"night_texture"` // PNG, global mode only
}

// ProjectionConfig overrides the projection of the selected mode.
// Unset fields keep the mode's defaults.
type ProjectionConfig struct {
	Kind      string   `yaml:"kind,omitempty"`
	LatMin    *float64 `yaml:"lat_min,omitempty"`
	LatMax    *float64 `yaml:"lat_max,omitempty"`
	Step      *float64 `yaml:"step,omitempty"`
	LonOffset *float64 `yaml:"lon_offset,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Mode:      string(render.ModeGlobal),
			Width:     1200,
			Height:    600,
			Interval:  60 * time.Second,
			Workers:   0,
			OutputDir: ".",
			Prefix:    "daynight",
		},
		Shading: shading.DefaultConfig(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Mode returns the parsed render mode.
func (c *Config) Mode() (render.Mode, error) {
	return render.ParseMode(c.Render.Mode)
}

// ProjectionFor merges the overrides onto the mode's projection.
func (c *Config) ProjectionFor(mode render.Mode) projection.Config {
	p := mode.Projection()
	o := c.Projection
	if o.Kind != "" {
		p.Kind = projection.Kind(o.Kind)
	}
	if o.LatMin != nil {
		p.LatMin = *o.LatMin
	}
	if o.LatMax != nil {
		p.LatMax = *o.LatMax
	}
	if o.Step != nil {
		p.Step = *o.Step
	}
	if o.LonOffset != nil {
		p.LonOffset = *o.LonOffset
	}
	return p
}

// Validate checks everything that can be checked without rendering.
func (c *Config) Validate() error {
	var errs []error
	mode, err := c.Mode()
	if err != nil {
		errs = append(errs, err)
	} else if err := c.ProjectionFor(mode).Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height))
	}
	if c.Render.Interval <= 0 {
		errs = append(errs, fmt.Errorf("render interval %v must be positive", c.Render.Interval))
	}
	if err := c.Shading.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Request builds a render request for the instant. Textures are left for
// the caller to fill.
func (c *Config) Request(in solar.Instant) (render.Request, error) {
	mode, err := c.Mode()
	if err != nil {
		return render.Request{}, err
	}
	return render.Request{
		Instant:    in,
		Width:      c.Render.Width,
		Height:     c.Render.Height,
		Projection: c.ProjectionFor(mode),
		Policy:     mode.Policy(),
		Shading:    c.Shading,
	}, nil
}
