package scene

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Supremolink81/gotracer/types"
)

// A constant-density participating medium bounded by another primitive. Rays
// crossing the boundary scatter at a probabilistic depth controlled by the
// medium density, producing fog and smoke effects.
type Volume struct {
	Boundary Primitive
	Density  float32
	Material Material
}

// Create a new constant medium. The material is typically Isotropic.
func NewVolume(boundary Primitive, density float32, mat Material) *Volume {
	return &Volume{Boundary: boundary, Density: density, Material: mat}
}

// Intersect finds the span of the ray inside the boundary and samples an
// exponentially distributed scattering depth along it.
func (v *Volume) Intersect(r Ray, tMin, tMax float32, rng *rand.Rand) (HitRecord, bool) {
	if v.Density <= 0 || r.Dir.NearZero() {
		return HitRecord{}, false
	}

	// Entry and exit points of the full, unclamped ray.
	entry, ok := v.Boundary.Intersect(r, -math32.MaxFloat32, math32.MaxFloat32, rng)
	if !ok {
		return HitRecord{}, false
	}
	exit, ok := v.Boundary.Intersect(r, entry.T+1e-4, math32.MaxFloat32, rng)
	if !ok {
		return HitRecord{}, false
	}

	t0 := math32.Max(entry.T, tMin)
	t1 := math32.Min(exit.T, tMax)
	if t0 >= t1 {
		return HitRecord{}, false
	}
	t0 = math32.Max(t0, 0)

	rayLen := r.Dir.Len()
	insideDist := (t1 - t0) * rayLen
	hitDist := -math32.Log(rng.Float32()) / v.Density
	if hitDist > insideDist {
		return HitRecord{}, false
	}

	var rec HitRecord
	rec.T = t0 + hitDist/rayLen
	rec.Point = r.At(rec.T)
	rec.Material = v.Material

	// The scatter direction is isotropic, so the normal is arbitrary.
	rec.Normal = types.XYZ(1, 0, 0)
	rec.FrontFace = true
	return rec, true
}

func (v *Volume) BBox() AABB {
	return v.Boundary.BBox()
}

func (v *Volume) Center() types.Vec3 {
	return v.Boundary.Center()
}
