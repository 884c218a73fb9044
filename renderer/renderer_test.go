package renderer

import (
	"math"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Supremolink81/gotracer/log"
	"github.com/Supremolink81/gotracer/scene"
	"github.com/Supremolink81/gotracer/types"
)

func init() {
	log.SetLevel(log.Error)
}

func testScene() *scene.Scene {
	camera := scene.NewCamera(scene.CameraOptions{
		LookFrom: types.XYZ(0, 0, 0),
		LookAt:   types.XYZ(0, 0, -1),
		Up:       types.XYZ(0, 1, 0),
		Vfov:     90,
		Aspect:   1,
	})
	sc := scene.New(camera)
	sc.Add(scene.NewSphere(types.XYZ(0, 0, -2), 1, scene.NewLambertian(types.XYZ(0.5, 0.5, 0.5))))
	sc.Compile()
	return sc
}

func TestNewValidation(t *testing.T) {
	opts := Options{FrameW: 8, FrameH: 8}

	if _, err := New(nil, opts); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}

	if _, err := New(scene.New(nil), opts); err != ErrCameraNotDefined {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}

	if _, err := New(testScene(), Options{FrameW: 0, FrameH: 8}); err != ErrInvalidDimensions {
		t.Fatalf("expected ErrInvalidDimensions; got %v", err)
	}
	if _, err := New(testScene(), Options{FrameW: 8, FrameH: -1}); err != ErrInvalidDimensions {
		t.Fatalf("expected ErrInvalidDimensions; got %v", err)
	}

	if _, err := New(testScene(), opts); err != nil {
		t.Fatalf("expected valid options to pass; got %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{FrameW: 8, FrameH: 8}.withDefaults()
	if opts.SamplesPerPixel != 16 || opts.NumBounces != 10 || opts.TileSize != 32 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.Exposure != 1.0 || opts.Gamma != 2.0 {
		t.Fatalf("unexpected tonemap defaults: %+v", opts)
	}
}

func TestRenderFrame(t *testing.T) {
	r, err := New(testScene(), Options{
		FrameW:          8,
		FrameH:          8,
		SamplesPerPixel: 2,
		NumBounces:      3,
		TileSize:        4,
		NumWorkers:      2,
		Seed:            11,
	})
	if err != nil {
		t.Fatal(err)
	}

	fb, err := r.Render()
	if err != nil {
		t.Fatal(err)
	}
	if fb.Width() != 8 || fb.Height() != 8 {
		t.Fatalf("expected 8x8 framebuffer; got %dx%d", fb.Width(), fb.Height())
	}

	// Every channel must come out finite and non-negative.
	for i, px := range fb.Pix() {
		for ch := 0; ch < 3; ch++ {
			v := float64(px[ch])
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				t.Fatalf("pixel %d channel %d invalid: %f", i, ch, v)
			}
		}
	}

	stats := r.Stats()
	if stats.Tiles != 4 {
		t.Fatalf("expected 4 tiles; got %d", stats.Tiles)
	}
	if len(stats.Workers) != 2 {
		t.Fatalf("expected 2 worker stats; got %d", len(stats.Workers))
	}
}

func TestTonemap(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Set(0, 0, types.XYZ(0.25, 0.5, 1.0))
	fb.Tonemap(2.0, 2.0)

	want := types.XYZ(
		math32.Sqrt(0.5),
		math32.Sqrt(1.0),
		math32.Sqrt(2.0),
	)
	if got := fb.At(0, 0); got.Sub(want).Len() > 1e-5 {
		t.Fatalf("expected tonemapped %v; got %v", want, got)
	}
}

func TestRGBAClamping(t *testing.T) {
	fb := NewFramebuffer(4, 1)
	fb.Set(0, 0, types.XYZ(0.5, 0.5, 0.5))
	fb.Set(1, 0, types.XYZ(7, 7, 7))
	fb.Set(2, 0, types.XYZ(-1, -1, -1))
	fb.Set(3, 0, types.XYZ(math32.NaN(), math32.Inf(1), math32.Inf(-1)))

	img := fb.RGBA()

	if got := img.RGBAAt(0, 0).R; got != 128 {
		t.Fatalf("expected mid-gray 128; got %d", got)
	}
	if got := img.RGBAAt(1, 0).R; got != 255 {
		t.Fatalf("expected overbright channel clamped to 255; got %d", got)
	}
	if got := img.RGBAAt(2, 0).R; got != 0 {
		t.Fatalf("expected negative channel clamped to 0; got %d", got)
	}
	px := img.RGBAAt(3, 0)
	if px.R != 0 || px.G != 255 || px.B != 0 {
		t.Fatalf("expected NaN->0, +Inf->255, -Inf->0; got %+v", px)
	}
	if px.A != 255 {
		t.Fatalf("expected opaque alpha; got %d", px.A)
	}
}
