// Package shading turns a solar altitude into output pixels.
//
// Every policy is driven by a continuous function of altitude. The composite
// policy blends day and night imagery; the overlay policies emit alpha layers
// for a presenter to draw over its own base maps.
package shading

import (
	"errors"
	"fmt"
	"math"
)

const rads = math.Pi / 180

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid shading config")

// Config holds shading parameters.
type Config struct {
	BlurAngle        float64 `yaml:"blur_angle"`        // half width of the terminator band, degrees
	Phong            bool    `yaml:"phong"`             // light the day side
	DiffuseIntensity float64 `yaml:"diffuse_intensity"` // diffuse term weight
	SpecularExponent float64 `yaml:"specular_exponent"` // 0 = flat, > 50 = metallic
	ShadingDivisor   float64 `yaml:"shading_divisor"`   // higher is brighter

	NightAlpha int     `yaml:"night_alpha"` // shadow alpha on the night side
	Falloff    float64 `yaml:"falloff"`     // shadow alpha lost per degree of altitude
	Tint       RGB     `yaml:"tint"`        // shadow color

	TimezoneAlpha   int     `yaml:"timezone_alpha"`
	TimezoneFalloff float64 `yaml:"timezone_falloff"`
}

// DefaultConfig returns the stock parameters.
func DefaultConfig() Config {
	return Config{
		BlurAngle:        4,
		Phong:            true,
		DiffuseIntensity: 1,
		SpecularExponent: 4,
		ShadingDivisor:   260,
		NightAlpha:       130,
		Falloff:          150,
		Tint:             NightBlue,
		TimezoneAlpha:    128,
		TimezoneFalloff:  300,
	}
}

// Validate rejects negative, NaN or out-of-range parameters.
func (c Config) Validate() error {
	nonNeg := []struct {
		name string
		v    float64
	}{
		{"blur_angle", c.BlurAngle},
		{"diffuse_intensity", c.DiffuseIntensity},
		{"specular_exponent", c.SpecularExponent},
		{"shading_divisor", c.ShadingDivisor},
		{"falloff", c.Falloff},
		{"timezone_falloff", c.TimezoneFalloff},
	}
	for _, p := range nonNeg {
		if !(p.v >= 0) || math.IsInf(p.v, 1) {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.NightAlpha < 0 || c.NightAlpha > 255 {
		return fmt.Errorf("%w: night_alpha %d outside [0,255]", ErrInvalidConfig, c.NightAlpha)
	}
	if c.TimezoneAlpha < 0 || c.TimezoneAlpha > 255 {
		return fmt.Errorf("%w: timezone_alpha %d outside [0,255]", ErrInvalidConfig, c.TimezoneAlpha)
	}
	return nil
}

// BlendWeight maps altitude onto [0,1] across the terminator band
// [-blur, blur]: 0 is full night, 1 full day and 0.5 the horizon.
// A zero blur is a hard step at the horizon.
func BlendWeight(alt, blur float64) float64 {
	if blur <= 0 {
		if alt >= 0 {
			return 1
		}
		return 0
	}
	w := (alt + blur) / (2 * blur)
	return math.Max(0, math.Min(1, w))
}

// ShadeIntensity estimates how strongly a day pixel may be brightened.
// Bright pixels (deserts, ice) get less.
func ShadeIntensity(day RGB, cfg Config) float64 {
	s := cfg.ShadingDivisor / float64(100+day.Sum())
	s = math.Min(2, math.Max(1, s))
	s *= math.Pow(s-0.98, 0.2)
	return s
}

// Brightness returns the Phong multiplier for a day pixel.
// Altitudes below the horizon are treated as the horizon.
func Brightness(alt float64, day RGB, cfg Config) float64 {
	if !cfg.Phong {
		return 1
	}
	i := math.Sin(math.Max(alt, 0) * rads)
	return 1 + 0.5*(cfg.DiffuseIntensity*i+math.Pow(i, cfg.SpecularExponent))*ShadeIntensity(day, cfg)
}

// Composite returns the output color for one pixel of the day/night map.
//
// Inside the terminator band the night color is mixed with the lit day
// color, so the result meets both outer branches without a jump.
func Composite(alt float64, day, night RGB, cfg Config) RGB {
	switch {
	case alt > cfg.BlurAngle:
		return day.Scale(Brightness(alt, day, cfg))
	case alt < -cfg.BlurAngle:
		return night
	default:
		lit := day.Scale(Brightness(alt, day, cfg))
		return Mix(night, lit, BlendWeight(alt, cfg.BlurAngle))
	}
}

// Overlay returns the shadow and city-lights mask pixels.
// The mask is opaque by day so lights drawn underneath only show at night.
func Overlay(alt float64, cfg Config) (shadow, lights RGBA) {
	if alt >= 0 {
		return cfg.Tint.WithAlpha(fade(alt, cfg.NightAlpha, cfg.Falloff)), OpaqueBlack
	}
	return cfg.Tint.WithAlpha(uint8(cfg.NightAlpha)), Transparent
}

// Timezone returns the black shadow pixel of the timezone map.
func Timezone(alt float64, cfg Config) RGBA {
	if alt >= 0 {
		return Black.WithAlpha(fade(alt, cfg.TimezoneAlpha, cfg.TimezoneFalloff))
	}
	return Black.WithAlpha(uint8(cfg.TimezoneAlpha))
}

// fade decreases alpha linearly with altitude above the horizon.
func fade(alt float64, alpha int, falloff float64) uint8 {
	return channel(float64(alpha) - falloff*alt)
}
