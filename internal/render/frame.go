// Package render draws day/night illumination maps for a UTC instant.
package render

import (
	"errors"
	"time"

	"github.com/Faultbox/daynight/pkg/projection"
	"github.com/Faultbox/daynight/pkg/shading"
	"github.com/Faultbox/daynight/pkg/solar"
)

// Render errors. Returned errors wrap exactly one of these.
var (
	ErrInvalidResolution       = errors.New("invalid resolution")
	ErrInvalidProjectionConfig = errors.New("invalid projection config")
	ErrInvalidShadingConfig    = errors.New("invalid shading config")
	ErrBufferSizeMismatch      = errors.New("texture buffer size mismatch")
	ErrRenderFailure           = errors.New("render failure")
)

// maxPixels caps the frame size so buffer sizes cannot overflow.
const maxPixels = 1 << 28

// Textures are the base images the composite policy reads.
// Both are RGB, row-major, top to bottom, width*height*3 bytes.
type Textures struct {
	Day   []byte
	Night []byte
}

// Request describes one frame.
type Request struct {
	Instant    solar.Instant
	Width      int
	Height     int
	Projection projection.Config
	Policy     shading.Policy
	Shading    shading.Config
	Textures   Textures
}

// Layer is one output buffer: row-major, top to bottom, channel-interleaved
// RGB or RGBA.
type Layer struct {
	Name     string
	Channels int
	Pix      []byte
}

// Frame is a completed render. The caller owns every buffer in it.
type Frame struct {
	Instant   solar.Instant
	Ephemeris solar.Ephemeris
	Subsolar  solar.GeoCoordinate
	Width     int
	Height    int
	Policy    shading.Policy
	Layers    []Layer
	Elapsed   time.Duration
}

// Layer returns the layer with the given name.
func (f *Frame) Layer(name string) (Layer, bool) {
	for _, l := range f.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}
