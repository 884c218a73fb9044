package tracer

import (
	"testing"

	"github.com/Supremolink81/gotracer/log"
	"github.com/Supremolink81/gotracer/scene"
	"github.com/Supremolink81/gotracer/types"
)

func init() {
	log.SetLevel(log.Error)
}

func renderTestFrame(sc *scene.Scene, req FrameRequest) []types.Vec3 {
	target := make([]types.Vec3, req.FrameW*req.FrameH)
	NewScheduler().Render(sc, req, target)
	return target
}

func TestRenderDeterministicAcrossWorkerCounts(t *testing.T) {
	sc := scene.New(testCamera())
	sc.Add(
		scene.NewSphere(types.XYZ(0, 0, -3), 1, scene.NewLambertian(types.XYZ(0.7, 0.3, 0.3))),
		scene.NewSphere(types.XYZ(0, -101, -3), 100, scene.NewLambertian(types.XYZ(0.8, 0.8, 0.0))),
		scene.NewSphere(types.XYZ(2, 0, -3), 1, scene.NewMetal(types.XYZ(0.8, 0.8, 0.8), 0.1)),
		scene.NewSphere(types.XYZ(-2, 0, -3), 1, scene.NewDielectric(1.5)),
	)
	sc.Compile()

	req := FrameRequest{
		FrameW:          16,
		FrameH:          16,
		SamplesPerPixel: 4,
		MaxDepth:        5,
		TileSize:        4,
		Seed:            42,
	}

	req.NumWorkers = 1
	serial := renderTestFrame(sc, req)

	req.NumWorkers = 4
	parallel := renderTestFrame(sc, req)

	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("pixel %d differs between worker counts: %v vs %v", i, serial[i], parallel[i])
		}
	}
}

func TestRenderRepeatableWithFixedSeed(t *testing.T) {
	sc := scene.New(testCamera())
	sc.Add(scene.NewSphere(types.XYZ(0, 0, -2), 1, scene.NewLambertian(types.XYZ(0.5, 0.5, 0.5))))
	sc.Compile()

	req := FrameRequest{
		FrameW:          8,
		FrameH:          8,
		SamplesPerPixel: 2,
		MaxDepth:        3,
		TileSize:        4,
		NumWorkers:      2,
		Seed:            7,
	}

	first := renderTestFrame(sc, req)
	second := renderTestFrame(sc, req)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pixel %d differs between identical renders: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRenderSingleBounceDiffuse(t *testing.T) {
	// A huge diffuse sphere fills the whole view. With one bounce the only
	// radiance source is the background seen through one attenuation, so
	// every channel stays finite and below the background maximum.
	sc := scene.New(testCamera())
	sc.Add(scene.NewSphere(types.XYZ(0, 0, -1001), 1000, scene.NewLambertian(types.XYZ(0.9, 0.1, 0.1))))
	sc.Compile()

	req := FrameRequest{
		FrameW:          2,
		FrameH:          2,
		SamplesPerPixel: 1,
		MaxDepth:        2,
		TileSize:        2,
		NumWorkers:      1,
		Seed:            3,
	}

	frame := renderTestFrame(sc, req)
	for i, px := range frame {
		for ch := 0; ch < 3; ch++ {
			v := px[ch]
			if !(v >= 0 && v <= 1) {
				t.Fatalf("pixel %d channel %d out of range or non-finite: %f", i, ch, v)
			}
		}
		// The red albedo dominates the green and blue channels.
		if px[0] < px[1] || px[0] < px[2] {
			t.Fatalf("pixel %d: expected red-dominated radiance; got %v", i, px)
		}
	}
}

// Increasing samples per pixel must reduce the variance of repeated
// pixel-average measurements.
func TestRenderVarianceDecreasesWithSamples(t *testing.T) {
	sc := scene.New(testCamera())
	sc.Add(scene.NewSphere(types.XYZ(0, 0, -1001), 1000, scene.NewLambertian(types.XYZ(1, 1, 1))))
	sc.Compile()

	variance := func(spp int) float64 {
		const runs = 40
		var sum, sumSq float64
		for seed := 0; seed < runs; seed++ {
			req := FrameRequest{
				FrameW:          1,
				FrameH:          1,
				SamplesPerPixel: spp,
				MaxDepth:        3,
				TileSize:        1,
				NumWorkers:      1,
				Seed:            uint64(seed),
			}
			v := float64(renderTestFrame(sc, req)[0][0])
			sum += v
			sumSq += v * v
		}
		mean := sum / runs
		return sumSq/runs - mean*mean
	}

	low := variance(1)
	high := variance(32)
	if high >= low {
		t.Fatalf("expected 32 spp variance below 1 spp variance; got %g >= %g", high, low)
	}
}

func TestRenderStats(t *testing.T) {
	sc := scene.New(testCamera())
	sc.Compile()

	req := FrameRequest{
		FrameW:          16,
		FrameH:          16,
		SamplesPerPixel: 1,
		MaxDepth:        1,
		TileSize:        8,
		NumWorkers:      2,
		Seed:            1,
	}

	target := make([]types.Vec3, req.FrameW*req.FrameH)
	stats := NewScheduler().Render(sc, req, target)

	if stats.Tiles != 4 {
		t.Fatalf("expected 4 tiles; got %d", stats.Tiles)
	}
	if len(stats.WorkerTiles) != 2 {
		t.Fatalf("expected stats for 2 workers; got %d", len(stats.WorkerTiles))
	}
	claimed := 0
	for _, n := range stats.WorkerTiles {
		claimed += n
	}
	if claimed != stats.Tiles {
		t.Fatalf("expected workers to claim all %d tiles; got %d", stats.Tiles, claimed)
	}
}

func TestRenderEmptyFrame(t *testing.T) {
	sc := scene.New(testCamera())
	sc.Compile()

	stats := NewScheduler().Render(sc, FrameRequest{FrameW: 0, FrameH: 0, NumWorkers: 1}, nil)
	if stats.Tiles != 0 {
		t.Fatalf("expected no tiles for empty frame; got %d", stats.Tiles)
	}
}

func TestPixelSeedDecorrelatesNeighbors(t *testing.T) {
	seen := make(map[int64]struct{})
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			seed := pixelSeed(42, x, y)
			if _, dup := seen[seed]; dup {
				t.Fatalf("duplicate seed for pixel (%d,%d)", x, y)
			}
			seen[seed] = struct{}{}
		}
	}
}
