package tracer

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Supremolink81/gotracer/log"
	"github.com/Supremolink81/gotracer/scene"
	"github.com/Supremolink81/gotracer/types"
)

// Parameters for tracing a single frame.
type FrameRequest struct {
	// Frame dims.
	FrameW int
	FrameH int

	// The number of jittered camera rays averaged per pixel.
	SamplesPerPixel int

	// Maximum number of path bounces.
	MaxDepth int

	// Tile edge length in pixels.
	TileSize int

	// Worker pool size; <= 0 selects one worker per logical CPU.
	NumWorkers int

	// Seed for the per-pixel random generators. Identical seeds produce
	// identical frames regardless of the worker count.
	Seed uint64
}

// Per-frame scheduler statistics.
type Stats struct {
	// Total tiles processed.
	Tiles int

	// Tiles claimed by each worker.
	WorkerTiles []int

	// Wall-clock render time for the frame.
	RenderTime time.Duration
}

// The Scheduler partitions a frame into tiles and distributes them over a
// fixed pool of workers. Workers pull tiles from a shared queue; pull
// scheduling keeps the pool balanced when per-pixel cost varies with scene
// occlusion and bounce count.
type Scheduler struct {
	logger log.Logger
}

// Create a new tile scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{logger: log.New("tracer")}
}

// Render traces every pixel of the requested frame into target, a row-major
// frameW x frameH buffer of linear (pre-gamma) pixel averages. It blocks
// until the pool drains the tile queue and all workers join.
//
// Each pixel is sampled with its own deterministically seeded generator, so
// the output does not depend on tile-to-worker assignment. A worker panic is
// fatal to the whole frame; no partial-tile recovery exists.
func (s *Scheduler) Render(sc *scene.Scene, req FrameRequest, target []types.Vec3) Stats {
	numWorkers := req.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	tiles := SplitFrame(req.FrameW, req.FrameH, req.TileSize)
	stats := Stats{
		Tiles:       len(tiles),
		WorkerTiles: make([]int, numWorkers),
	}
	if len(tiles) == 0 {
		return stats
	}

	integrator := NewIntegrator(req.MaxDepth)

	s.logger.Infof("tracing %dx%d frame: %d tiles, %d workers, %d spp",
		req.FrameW, req.FrameH, len(tiles), numWorkers, req.SamplesPerPixel)

	// Shared pull-queue cursor. Claiming a tile is a single atomic add, the
	// only cross-worker synchronization during the frame.
	var cursor int64 = -1

	start := time.Now()
	var wg sync.WaitGroup
	for workerID := 0; workerID < numWorkers; workerID++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				next := atomic.AddInt64(&cursor, 1)
				if next >= int64(len(tiles)) {
					return
				}
				s.renderTile(sc, integrator, req, tiles[next], target)
				stats.WorkerTiles[workerID]++
			}
		}(workerID)
	}
	wg.Wait()

	stats.RenderTime = time.Since(start)
	s.logger.Infof("frame completed in %s", stats.RenderTime)
	return stats
}

// Render every pixel of one tile. The tile's framebuffer cells are owned
// exclusively by the calling worker, so the writes need no synchronization.
func (s *Scheduler) renderTile(sc *scene.Scene, integrator *Integrator, req FrameRequest, tile Tile, target []types.Vec3) {
	invSamples := 1.0 / float32(req.SamplesPerPixel)
	widthScale := 1.0 / float32(req.FrameW)
	heightScale := 1.0 / float32(req.FrameH)

	for y := tile.Y0; y < tile.Y1; y++ {
		for x := tile.X0; x < tile.X1; x++ {
			rng := rand.New(rand.NewSource(pixelSeed(req.Seed, x, y)))

			var accum types.Vec3
			for sample := 0; sample < req.SamplesPerPixel; sample++ {
				// Jitter inside the pixel footprint for anti-aliasing.
				u := (float32(x) + rng.Float32()) * widthScale
				v := (float32(req.FrameH-1-y) + rng.Float32()) * heightScale

				ray := sc.Camera.GenerateRay(u, v, rng)
				accum = accum.Add(integrator.Trace(ray, sc, rng))
			}

			target[y*req.FrameW+x] = accum.Mul(invSamples)
		}
	}
}

// Derive the random generator seed for a pixel by mixing the global seed with
// the pixel coordinates (splitmix-style finalizer). Sequential seeds would
// correlate adjacent pixels; the mixing step decorrelates them.
func pixelSeed(seed uint64, x, y int) int64 {
	z := seed + uint64(y)<<32 + uint64(x) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
