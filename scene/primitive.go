package scene

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Supremolink81/gotracer/types"
)

// The Primitive interface is implemented by every intersectable shape. The
// random generator argument is owned by the calling worker; primitives with
// probabilistic intersections (participating media) draw from it, all other
// shapes ignore it.
type Primitive interface {
	// Find the nearest intersection with t inside (tMin, tMax).
	Intersect(r Ray, tMin, tMax float32, rng *rand.Rand) (HitRecord, bool)

	// Get the primitive bounding box.
	BBox() AABB

	// Get the primitive centroid. Used for BVH partitioning.
	Center() types.Vec3
}

// A sphere primitive.
type Sphere struct {
	Origin   types.Vec3
	Radius   float32
	Material Material
}

// Create a new sphere.
func NewSphere(origin types.Vec3, radius float32, mat Material) *Sphere {
	return &Sphere{Origin: origin, Radius: radius, Material: mat}
}

// Intersect the ray with the sphere by solving the quadratic formed by
// substituting the ray equation into the sphere equation. Degenerate spheres
// (non-positive radius) and degenerate rays are reported as misses so that no
// NaN values can leak into hit records.
func (s *Sphere) Intersect(r Ray, tMin, tMax float32, _ *rand.Rand) (HitRecord, bool) {
	if s.Radius <= 0 || r.Dir.NearZero() {
		return HitRecord{}, false
	}

	oc := r.Origin.Sub(s.Origin)
	a := r.Dir.LenSqr()
	halfB := oc.Dot(r.Dir)
	c := oc.LenSqr() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}
	sqrtD := math32.Sqrt(discriminant)

	// Select the nearest root inside (tMin, tMax).
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return HitRecord{}, false
		}
	}

	var rec HitRecord
	rec.T = root
	rec.Point = r.At(root)
	rec.Material = s.Material
	outwardNormal := rec.Point.Sub(s.Origin).Div(s.Radius)
	rec.SetFaceNormal(r, outwardNormal)
	rec.U, rec.V = sphereUV(outwardNormal)
	return rec, true
}

// Get the sphere bounding box.
func (s *Sphere) BBox() AABB {
	extent := types.XYZ(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Origin.Sub(extent), s.Origin.Add(extent))
}

// Get the sphere centroid.
func (s *Sphere) Center() types.Vec3 {
	return s.Origin
}

// Map a point on the unit sphere to spherical surface coordinates in [0,1]^2.
func sphereUV(p types.Vec3) (u, v float32) {
	theta := math32.Acos(-p[1])
	phi := math32.Atan2(-p[2], p[0]) + math32.Pi
	return phi / (2 * math32.Pi), theta / math32.Pi
}

// A triangle primitive.
type Triangle struct {
	V0, V1, V2 types.Vec3
	Material   Material
}

// Create a new triangle.
func NewTriangle(v0, v1, v2 types.Vec3, mat Material) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
}

// Intersect the ray with the triangle using the Moller-Trumbore algorithm.
func (tr *Triangle) Intersect(r Ray, tMin, tMax float32, _ *rand.Rand) (HitRecord, bool) {
	const parallelEpsilon float32 = 1e-7

	edge1 := tr.V1.Sub(tr.V0)
	edge2 := tr.V2.Sub(tr.V0)
	pVec := r.Dir.Cross(edge2)
	det := edge1.Dot(pVec)

	// Degenerate triangles have a zero-area cross product and fail here too.
	if math32.Abs(det) < parallelEpsilon {
		return HitRecord{}, false
	}

	invDet := 1.0 / det
	tVec := r.Origin.Sub(tr.V0)
	u := tVec.Dot(pVec) * invDet
	if u < 0 || u > 1 {
		return HitRecord{}, false
	}

	qVec := tVec.Cross(edge1)
	v := r.Dir.Dot(qVec) * invDet
	if v < 0 || u+v > 1 {
		return HitRecord{}, false
	}

	t := edge2.Dot(qVec) * invDet
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}

	var rec HitRecord
	rec.T = t
	rec.Point = r.At(t)
	rec.Material = tr.Material
	rec.U, rec.V = u, v
	rec.SetFaceNormal(r, edge1.Cross(edge2).Normalize())
	return rec, true
}

// Get the triangle bounding box, padded so axis-aligned triangles still have
// a non-zero extent.
func (tr *Triangle) BBox() AABB {
	const pad float32 = 1e-3
	min := types.MinVec3(types.MinVec3(tr.V0, tr.V1), tr.V2)
	max := types.MaxVec3(types.MaxVec3(tr.V0, tr.V1), tr.V2)
	return NewAABB(
		min.Sub(types.XYZ(pad, pad, pad)),
		max.Add(types.XYZ(pad, pad, pad)),
	)
}

// Get the triangle centroid.
func (tr *Triangle) Center() types.Vec3 {
	return tr.V0.Add(tr.V1).Add(tr.V2).Div(3)
}
