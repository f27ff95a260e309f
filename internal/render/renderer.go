package render

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/daynight/pkg/projection"
	"github.com/Faultbox/daynight/pkg/shading"
	"github.com/Faultbox/daynight/pkg/solar"
)

// Renderer draws frames. It keeps the Miller row table between calls and is
// safe for concurrent use.
type Renderer struct {
	log     *zap.Logger
	workers int
	cache   projection.Cache
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithWorkers bounds how many row bands render at once.
// Values below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		r.workers = n
	}
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// TableBuilds returns how many Miller tables have been built so far.
func (r *Renderer) TableBuilds() int {
	return r.cache.Builds()
}

// Render computes every pixel of req. It either returns a complete frame or
// an error and no buffers. Cancelling ctx stops work between rows.
func (r *Renderer) Render(ctx context.Context, req Request) (*Frame, error) {
	start := time.Now()

	if err := validate(req); err != nil {
		return nil, err
	}

	eph := solar.Compute(req.Instant)
	if !eph.Valid() || math.IsNaN(req.Instant.Hour) || math.IsInf(req.Instant.Hour, 0) {
		return nil, fmt.Errorf("%w: non-finite ephemeris %+v for instant %+v", ErrRenderFailure, eph, req.Instant)
	}

	mapper, err := r.cache.Mapper(req.Projection, req.Width, req.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProjectionConfig, err)
	}

	layers := newLayers(req)
	job := &rowJob{
		req:    req,
		eph:    eph,
		mapper: mapper,
		layers: layers,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	band := bandHeight(req.Height, r.workers)
	for y0 := 0; y0 < req.Height; y0 += band {
		y1 := min(y0+band, req.Height)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := job.row(y); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.log.Warn("render aborted",
			zap.Int("width", req.Width),
			zap.Int("height", req.Height),
			zap.String("policy", string(req.Policy)),
			zap.Error(err),
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("render cancelled: %w", ctxErr)
		}
		return nil, err
	}

	frame := &Frame{
		Instant:   req.Instant,
		Ephemeris: eph,
		Subsolar:  solar.SubsolarPoint(eph, req.Instant.Hour),
		Width:     req.Width,
		Height:    req.Height,
		Policy:    req.Policy,
		Layers:    layers,
		Elapsed:   time.Since(start),
	}

	r.log.Debug("frame rendered",
		zap.Int("width", frame.Width),
		zap.Int("height", frame.Height),
		zap.String("policy", string(frame.Policy)),
		zap.Float64("ra_hours", eph.RA),
		zap.Float64("dec_deg", eph.Dec),
		zap.Float64("subsolar_lat", frame.Subsolar.Lat),
		zap.Float64("subsolar_lon", frame.Subsolar.Lon),
		zap.Duration("elapsed", frame.Elapsed),
	)
	return frame, nil
}

// validate runs every check that must pass before any buffer is allocated.
func validate(req Request) error {
	if req.Width <= 0 || req.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, req.Width, req.Height)
	}
	if int64(req.Width)*int64(req.Height) > maxPixels {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidResolution, req.Width, req.Height, maxPixels)
	}
	if _, err := shading.ParsePolicy(string(req.Policy)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShadingConfig, err)
	}
	if err := req.Shading.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShadingConfig, err)
	}
	if err := req.Projection.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProjectionConfig, err)
	}
	if req.Policy.NeedsTextures() {
		want := req.Width * req.Height * 3
		if len(req.Textures.Day) != want {
			return fmt.Errorf("%w: day texture has %d bytes, want %d", ErrBufferSizeMismatch, len(req.Textures.Day), want)
		}
		if len(req.Textures.Night) != want {
			return fmt.Errorf("%w: night texture has %d bytes, want %d", ErrBufferSizeMismatch, len(req.Textures.Night), want)
		}
	}
	return nil
}

func newLayers(req Request) []Layer {
	names := req.Policy.Layers()
	channels := req.Policy.Channels()
	layers := make([]Layer, len(names))
	for i, name := range names {
		layers[i] = Layer{
			Name:     name,
			Channels: channels,
			Pix:      make([]byte, req.Width*req.Height*channels),
		}
	}
	return layers
}

// bandHeight splits the frame into a few bands per worker.
func bandHeight(height, workers int) int {
	bands := workers * 4
	return max(1, (height+bands-1)/bands)
}

// rowJob holds the read-only state shared by all row workers. Each row
// writes a disjoint slice of every layer.
type rowJob struct {
	req    Request
	eph    solar.Ephemeris
	mapper projection.Mapper
	layers []Layer
}

func (j *rowJob) row(y int) error {
	w := j.req.Width
	cfg := j.req.Shading
	hour := j.req.Instant.Hour

	for x := 0; x < w; x++ {
		geo := j.mapper.Geo(x, y)
		alt := solar.Altitude(j.eph, geo, hour)
		if math.IsNaN(alt) || math.IsInf(alt, 0) {
			return fmt.Errorf("%w: non-finite altitude at pixel (%d,%d)", ErrRenderFailure, x, y)
		}
		i := y*w + x

		switch j.req.Policy {
		case shading.PolicyComposite:
			day := rgbAt(j.req.Textures.Day, i)
			night := rgbAt(j.req.Textures.Night, i)
			putRGB(j.layers[0].Pix, i, shading.Composite(alt, day, night, cfg))
		case shading.PolicyOverlay:
			shadow, lights := shading.Overlay(alt, cfg)
			putRGBA(j.layers[0].Pix, i, shadow)
			putRGBA(j.layers[1].Pix, i, lights)
		case shading.PolicyTimezone:
			putRGBA(j.layers[0].Pix, i, shading.Timezone(alt, cfg))
		}
	}
	return nil
}

func rgbAt(pix []byte, i int) shading.RGB {
	o := i * 3
	return shading.RGB{R: pix[o], G: pix[o+1], B: pix[o+2]}
}

func putRGB(pix []byte, i int, c shading.RGB) {
	o := i * 3
	pix[o], pix[o+1], pix[o+2] = c.R, c.G, c.B
}

func putRGBA(pix []byte, i int, c shading.RGBA) {
	o := i * 4
	pix[o], pix[o+1], pix[o+2], pix[o+3] = c.R, c.G, c.B, c.A
}
