package projection

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// maxSamples bounds the forward table so a tiny step cannot exhaust memory.
const maxSamples = 1 << 22

// Forward is the Miller cylindrical projection of a latitude in degrees.
func Forward(latDeg float64) float64 {
	return 1.25 * math.Asinh(math.Tan(0.8*latDeg*math.Pi/180))
}

// MillerTable inverts the Miller projection by lookup.
//
// Latitudes are sampled at a fixed step in ascending order; their projected
// values are therefore ascending as well and can be binary searched.
type MillerTable struct {
	latMin float64
	latMax float64
	step   float64

	lats   []float64
	ys     []float64
	top    float64 // projected value at the northern bound
	bottom float64 // projected value at the southern bound

	rows []float64 // latitude per screen row, north to south
}

// NewMillerTable samples cfg's latitude range and tabulates the latitude of
// every screen row for the given height.
func NewMillerTable(cfg Config, height int) (*MillerTable, error) {
	if height <= 0 {
		return nil, fmt.Errorf("%w: height %d", ErrInvalidConfig, height)
	}
	c := cfg
	c.Kind = Miller
	if err := c.Validate(); err != nil {
		return nil, err
	}
	span := (cfg.LatMax - cfg.LatMin) / cfg.Step
	if span+1 > maxSamples {
		return nil, fmt.Errorf("%w: step %v yields too many samples", ErrInvalidConfig, cfg.Step)
	}
	n := int(math.Floor(span+1e-9)) + 1

	t := &MillerTable{
		latMin: cfg.LatMin,
		latMax: cfg.LatMax,
		step:   cfg.Step,
		lats:   make([]float64, n),
		ys:     make([]float64, n),
		rows:   make([]float64, height),
	}
	for i := 0; i < n; i++ {
		lat := cfg.LatMin + float64(i)*cfg.Step
		if lat > cfg.LatMax {
			lat = cfg.LatMax
		}
		t.lats[i] = lat
		t.ys[i] = Forward(lat)
	}
	t.bottom = t.ys[0]
	t.top = t.ys[n-1]

	for y := 0; y < height; y++ {
		mm := t.top + float64(y)/float64(height)*(t.bottom-t.top)
		t.rows[y] = t.Inverse(mm)
	}
	return t, nil
}

// Inverse returns the sampled latitude whose projected value is closest to
// millerY. Ties go to the more southern sample.
func (t *MillerTable) Inverse(millerY float64) float64 {
	i := sort.SearchFloat64s(t.ys, millerY)
	switch {
	case i == 0:
		return t.lats[0]
	case i == len(t.ys):
		return t.lats[len(t.lats)-1]
	}
	if math.Abs(t.ys[i-1]-millerY) <= math.Abs(t.ys[i]-millerY) {
		return t.lats[i-1]
	}
	return t.lats[i]
}

// Row returns the latitude of screen row y.
func (t *MillerTable) Row(y int) float64 {
	return t.rows[y]
}

// Height returns the number of rows.
func (t *MillerTable) Height() int {
	return len(t.rows)
}

// Samples returns the number of tabulated latitudes.
func (t *MillerTable) Samples() int {
	return len(t.lats)
}

// Extremes returns the projected values at the northern and southern bounds.
func (t *MillerTable) Extremes() (top, bottom float64) {
	return t.top, t.bottom
}

func (t *MillerTable) matches(cfg Config, height int) bool {
	return t.latMin == cfg.LatMin && t.latMax == cfg.LatMax && t.step == cfg.Step && len(t.rows) == height
}

// Cache hands out mappers and keeps the last Miller table until the height
// or the table parameters change.
type Cache struct {
	mu     sync.Mutex
	table  *MillerTable
	builds int
}

// Mapper returns a mapper for cfg at the given resolution.
func (c *Cache) Mapper(cfg Config, width, height int) (Mapper, error) {
	if cfg.Kind != Miller {
		return New(cfg, width, height)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, width, height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table == nil || !c.table.matches(cfg, height) {
		table, err := NewMillerTable(cfg, height)
		if err != nil {
			return nil, err
		}
		c.table = table
		c.builds++
	}
	return &MillerMapper{table: c.table, width: width, lonOffset: cfg.LonOffset}, nil
}

// Builds returns how many Miller tables the cache has constructed.
func (c *Cache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}
