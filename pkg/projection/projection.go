// Package projection maps screen pixels to geographic coordinates.
package projection

import (
	"errors"
	"fmt"

	"github.com/Faultbox/daynight/pkg/solar"
)

// ErrInvalidConfig is returned for projection settings that cannot produce a map.
var ErrInvalidConfig = errors.New("invalid projection config")

// Kind selects a projection policy.
type Kind string

const (
	Equirectangular Kind = "equirectangular"
	Miller          Kind = "miller"
)

// Config holds projection settings.
type Config struct {
	Kind      Kind    `yaml:"kind"`
	LatMin    float64 `yaml:"lat_min"`    // Miller southern bound, degrees
	LatMax    float64 `yaml:"lat_max"`    // Miller northern bound, degrees
	Step      float64 `yaml:"step"`       // Miller sampling step, degrees
	LonOffset float64 `yaml:"lon_offset"` // added to the left-edge longitude of -180
}

// DefaultConfig returns the plate carrée world map settings.
func DefaultConfig() Config {
	return Config{
		Kind:   Equirectangular,
		LatMin: -90,
		LatMax: 90,
		Step:   0.1,
	}
}

// TimezoneConfig returns the Miller settings that frame the timezone map,
// cropped to 59.5°S..85.3°N with the left edge at 167.5°W.
func TimezoneConfig() Config {
	return Config{
		Kind:      Miller,
		LatMin:    -59.5,
		LatMax:    85.3,
		Step:      0.1,
		LonOffset: 12.5,
	}
}

// Validate checks the settings for the selected kind.
func (c Config) Validate() error {
	switch c.Kind {
	case Equirectangular:
		return nil
	case Miller:
		if c.LatMin >= c.LatMax {
			return fmt.Errorf("%w: lat_min %v >= lat_max %v", ErrInvalidConfig, c.LatMin, c.LatMax)
		}
		if c.LatMin < -90 || c.LatMax > 90 {
			return fmt.Errorf("%w: latitude bounds [%v,%v] outside [-90,90]", ErrInvalidConfig, c.LatMin, c.LatMax)
		}
		if !(c.Step > 0) {
			return fmt.Errorf("%w: step %v must be positive", ErrInvalidConfig, c.Step)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidConfig, c.Kind)
	}
}

// Mapper converts pixel coordinates of a fixed resolution to geographic ones.
// Implementations are safe for concurrent use.
type Mapper interface {
	Geo(x, y int) solar.GeoCoordinate
	Size() (width, height int)
}

// New returns the mapper for cfg at the given resolution.
func New(cfg Config, width, height int) (Mapper, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, width, height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Kind == Miller {
		table, err := NewMillerTable(cfg, height)
		if err != nil {
			return nil, err
		}
		return &MillerMapper{table: table, width: width, lonOffset: cfg.LonOffset}, nil
	}
	return &EquirectangularMapper{width: width, height: height, lonOffset: cfg.LonOffset}, nil
}

// longitude is shared by both policies.
func longitude(x, width int, offset float64) float64 {
	return solar.WrapLongitude(float64(x)/float64(width)*360 - 180 + offset)
}

// EquirectangularMapper is the plate carrée projection.
type EquirectangularMapper struct {
	width     int
	height    int
	lonOffset float64
}

// Geo returns the coordinate at the pixel's top-left corner.
func (m *EquirectangularMapper) Geo(x, y int) solar.GeoCoordinate {
	return solar.GeoCoordinate{
		Lat: 90 - float64(y)/float64(m.height)*180,
		Lon: longitude(x, m.width, m.lonOffset),
	}
}

// Size returns the resolution the mapper was built for.
func (m *EquirectangularMapper) Size() (int, int) {
	return m.width, m.height
}

// MillerMapper is the Miller cylindrical projection backed by a row table.
type MillerMapper struct {
	table     *MillerTable
	width     int
	lonOffset float64
}

// Geo returns the tabulated latitude for row y.
func (m *MillerMapper) Geo(x, y int) solar.GeoCoordinate {
	return solar.GeoCoordinate{
		Lat: m.table.Row(y),
		Lon: longitude(x, m.width, m.lonOffset),
	}
}

// Size returns the resolution the mapper was built for.
func (m *MillerMapper) Size() (int, int) {
	return m.width, m.table.Height()
}

// Table returns the row table.
func (m *MillerMapper) Table() *MillerTable {
	return m.table
}
