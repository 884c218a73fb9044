package tracer

import (
	"math/rand"
	"testing"

	"github.com/Supremolink81/gotracer/scene"
	"github.com/Supremolink81/gotracer/types"
)

func testCamera() *scene.Camera {
	return scene.NewCamera(scene.CameraOptions{
		LookFrom: types.XYZ(0, 0, 0),
		LookAt:   types.XYZ(0, 0, -1),
		Up:       types.XYZ(0, 1, 0),
		Vfov:     90,
		Aspect:   1,
	})
}

func TestIntegratorMissReturnsBackground(t *testing.T) {
	sc := scene.New(testCamera())
	sc.Compile()

	r := scene.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 1, 0))
	want := sc.Background(r)

	for _, depth := range []int{1, 5, 50} {
		rng := rand.New(rand.NewSource(1))
		got := NewIntegrator(depth).Trace(r, sc, rng)
		if got != want {
			t.Fatalf("depth %d: expected background radiance %v; got %v", depth, want, got)
		}
	}
}

func TestIntegratorZeroDepthIsBlack(t *testing.T) {
	sc := scene.New(testCamera())
	sc.Compile()

	rng := rand.New(rand.NewSource(1))
	got := NewIntegrator(0).Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), sc, rng)
	if got != (types.Vec3{}) {
		t.Fatalf("expected black for zero bounce budget; got %v", got)
	}
}

func TestIntegratorAbsorption(t *testing.T) {
	// A fuzz-less mirror absorbs rays that scatter below the horizon; a ray
	// hitting the sphere dead-center reflects straight back and survives, so
	// drive absorption through a black enclosed scene instead: a diffuse
	// sphere under a black background only ever attenuates, never adds.
	sc := scene.New(testCamera())
	sc.Background = scene.BlackBackground
	sc.Add(scene.NewSphere(types.XYZ(0, 0, -2), 1, scene.NewLambertian(types.XYZ(0.5, 0.5, 0.5))))
	sc.Compile()

	rng := rand.New(rand.NewSource(7))
	got := NewIntegrator(4).Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), sc, rng)
	if got != (types.Vec3{}) {
		t.Fatalf("expected black radiance in unlit scene; got %v", got)
	}
}

func TestIntegratorEmitter(t *testing.T) {
	emission := types.XYZ(3, 2, 1)
	sc := scene.New(testCamera())
	sc.Background = scene.BlackBackground
	sc.Add(scene.NewSphere(types.XYZ(0, 0, -2), 1, scene.NewLight(emission)))
	sc.Compile()

	rng := rand.New(rand.NewSource(7))
	got := NewIntegrator(4).Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), sc, rng)
	if got != emission {
		t.Fatalf("expected emitted radiance %v; got %v", emission, got)
	}
}

func TestIntegratorThroughputAttenuation(t *testing.T) {
	// A mirror facing a light: radiance is the light's emission scaled by the
	// mirror's albedo, one bounce each.
	albedo := types.XYZ(0.8, 0.6, 0.4)
	emission := types.XYZ(2, 2, 2)

	sc := scene.New(testCamera())
	sc.Background = scene.BlackBackground
	sc.Add(
		scene.NewSphere(types.XYZ(0, 0, -3), 1, scene.NewMetal(albedo, 0)),
		scene.NewSphere(types.XYZ(0, 0, 3), 1, scene.NewLight(emission)),
	)
	sc.Compile()

	rng := rand.New(rand.NewSource(7))
	got := NewIntegrator(4).Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), sc, rng)

	want := emission.MulVec(albedo)
	if got.Sub(want).Len() > 1e-4 {
		t.Fatalf("expected attenuated emission %v; got %v", want, got)
	}
}

func TestIntegratorBoundedDepth(t *testing.T) {
	// Two parallel mirrors would bounce a ray forever; the depth budget must
	// terminate the walk.
	mirror := scene.NewMetal(types.XYZ(1, 1, 1), 0)
	sc := scene.New(testCamera())
	sc.Background = scene.BlackBackground
	sc.Add(
		scene.NewSphere(types.XYZ(0, 0, -1002), 1000, mirror),
		scene.NewSphere(types.XYZ(0, 0, 1002), 1000, mirror),
	)
	sc.Compile()

	rng := rand.New(rand.NewSource(7))
	got := NewIntegrator(64).Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), sc, rng)
	if got != (types.Vec3{}) {
		t.Fatalf("expected black radiance between unlit mirrors; got %v", got)
	}
}
