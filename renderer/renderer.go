package renderer

import (
	"github.com/Supremolink81/gotracer/log"
	"github.com/Supremolink81/gotracer/scene"
	"github.com/Supremolink81/gotracer/tracer"
)

// A Renderer drives one complete frame: it owns the framebuffer, runs the
// tile scheduler over an immutable scene and applies the tonemapping pass.
type Renderer struct {
	opts  Options
	sc    *scene.Scene
	stats FrameStats

	logger log.Logger
}

// Create a renderer for a compiled scene.
func New(sc *scene.Scene, opts Options) (*Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if opts.FrameW <= 0 || opts.FrameH <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Renderer{
		opts:   opts.withDefaults(),
		sc:     sc,
		logger: log.New("renderer"),
	}, nil
}

// Render traces the frame to completion and returns the tonemapped
// framebuffer. It blocks until every tile is rendered.
func (r *Renderer) Render() (*Framebuffer, error) {
	fb := NewFramebuffer(r.opts.FrameW, r.opts.FrameH)

	sch := tracer.NewScheduler()
	schStats := sch.Render(r.sc, tracer.FrameRequest{
		FrameW:          r.opts.FrameW,
		FrameH:          r.opts.FrameH,
		SamplesPerPixel: r.opts.SamplesPerPixel,
		MaxDepth:        r.opts.NumBounces,
		TileSize:        r.opts.TileSize,
		NumWorkers:      r.opts.NumWorkers,
		Seed:            r.opts.Seed,
	}, fb.Pix())

	fb.Tonemap(r.opts.Exposure, r.opts.Gamma)

	r.stats = FrameStats{
		Tiles:      schStats.Tiles,
		RenderTime: schStats.RenderTime,
		Workers:    make([]WorkerStat, len(schStats.WorkerTiles)),
	}
	for id, tiles := range schStats.WorkerTiles {
		r.stats.Workers[id] = WorkerStat{
			ID:           id,
			Tiles:        tiles,
			FramePercent: 100 * float32(tiles) / float32(schStats.Tiles),
		}
	}

	r.logger.Noticef("rendered %dx%d frame in %s",
		r.opts.FrameW, r.opts.FrameH, schStats.RenderTime)

	return fb, nil
}

// Get render statistics for the last frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}
