package shading

// RGB is an 8-bit opaque color.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// RGBA is an 8-bit color with straight alpha.
type RGBA struct {
	R, G, B, A uint8
}

// Predefined colors.
var (
	Black       = RGB{0, 0, 0}
	NightBlue   = RGB{0, 0, 47}
	Transparent = RGBA{}
	OpaqueBlack = RGBA{A: 255}
)

// WithAlpha returns the color with the given alpha.
func (c RGB) WithAlpha(a uint8) RGBA {
	return RGBA{c.R, c.G, c.B, a}
}

// Sum returns the sum of the three channels.
func (c RGB) Sum() int {
	return int(c.R) + int(c.G) + int(c.B)
}

// Scale multiplies every channel by f, truncating and clamping to [0,255].
func (c RGB) Scale(f float64) RGB {
	return RGB{
		R: channel(f * float64(c.R)),
		G: channel(f * float64(c.G)),
		B: channel(f * float64(c.B)),
	}
}

// Mix interpolates linearly from a (x=0) to b (x=1).
func Mix(a, b RGB, x float64) RGB {
	return RGB{
		R: channel((1-x)*float64(a.R) + x*float64(b.R)),
		G: channel((1-x)*float64(a.G) + x*float64(b.G)),
		B: channel((1-x)*float64(a.B) + x*float64(b.B)),
	}
}

// channel truncates toward zero and clamps to a byte.
func channel(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
