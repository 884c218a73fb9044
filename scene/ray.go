package scene

import (
	"github.com/Supremolink81/gotracer/types"
)

// A ray with a parametric representation: P(t) = Origin + t*Dir.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

// Create a new ray.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// Get the point along the ray at parametric distance t.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// HitRecord captures the details of a ray-primitive intersection.
type HitRecord struct {
	// Intersection point and the surface normal at that point. The normal
	// always opposes the incoming ray direction.
	Point  types.Vec3
	Normal types.Vec3

	// Parametric distance along the ray.
	T float32

	// Surface parametrization at the intersection point.
	U float32
	V float32

	// The material of the primitive that was hit.
	Material Material

	// True when the ray hit the surface from the outside.
	FrontFace bool
}

// Orient the stored normal so that it opposes the incoming ray, recording
// which side of the surface was hit.
func (rec *HitRecord) SetFaceNormal(r Ray, outwardNormal types.Vec3) {
	rec.FrontFace = r.Dir.Dot(outwardNormal) < 0
	if rec.FrontFace {
		rec.Normal = outwardNormal
	} else {
		rec.Normal = outwardNormal.Mul(-1)
	}
}
