package scene

import (
	"math/rand"

	"github.com/Supremolink81/gotracer/types"
)

// Bounding boxes of axis-aligned rectangles get padded along their flat axis
// so the BVH never produces a zero-volume node.
const rectPadding float32 = 1e-3

// An axis-aligned rectangle in the plane z = K spanning [X0,X1] x [Y0,Y1].
type RectXY struct {
	X0, X1   float32
	Y0, Y1   float32
	K        float32
	Material Material
}

func (rc *RectXY) Intersect(r Ray, tMin, tMax float32, _ *rand.Rand) (HitRecord, bool) {
	// A ray parallel to the plane yields t = +/-Inf or NaN here and fails
	// the interval checks below.
	t := (rc.K - r.Origin[2]) / r.Dir[2]
	if !(t >= tMin && t <= tMax) {
		return HitRecord{}, false
	}
	x := r.Origin[0] + t*r.Dir[0]
	y := r.Origin[1] + t*r.Dir[1]
	if x < rc.X0 || x > rc.X1 || y < rc.Y0 || y > rc.Y1 {
		return HitRecord{}, false
	}

	var rec HitRecord
	rec.T = t
	rec.Point = r.At(t)
	rec.Material = rc.Material
	rec.U = (x - rc.X0) / (rc.X1 - rc.X0)
	rec.V = (y - rc.Y0) / (rc.Y1 - rc.Y0)
	rec.SetFaceNormal(r, types.XYZ(0, 0, 1))
	return rec, true
}

func (rc *RectXY) BBox() AABB {
	return NewAABB(
		types.XYZ(rc.X0, rc.Y0, rc.K-rectPadding),
		types.XYZ(rc.X1, rc.Y1, rc.K+rectPadding),
	)
}

func (rc *RectXY) Center() types.Vec3 {
	return rc.BBox().Center()
}

// An axis-aligned rectangle in the plane y = K spanning [X0,X1] x [Z0,Z1].
type RectXZ struct {
	X0, X1   float32
	Z0, Z1   float32
	K        float32
	Material Material
}

func (rc *RectXZ) Intersect(r Ray, tMin, tMax float32, _ *rand.Rand) (HitRecord, bool) {
	t := (rc.K - r.Origin[1]) / r.Dir[1]
	if !(t >= tMin && t <= tMax) {
		return HitRecord{}, false
	}
	x := r.Origin[0] + t*r.Dir[0]
	z := r.Origin[2] + t*r.Dir[2]
	if x < rc.X0 || x > rc.X1 || z < rc.Z0 || z > rc.Z1 {
		return HitRecord{}, false
	}

	var rec HitRecord
	rec.T = t
	rec.Point = r.At(t)
	rec.Material = rc.Material
	rec.U = (x - rc.X0) / (rc.X1 - rc.X0)
	rec.V = (z - rc.Z0) / (rc.Z1 - rc.Z0)
	rec.SetFaceNormal(r, types.XYZ(0, 1, 0))
	return rec, true
}

func (rc *RectXZ) BBox() AABB {
	return NewAABB(
		types.XYZ(rc.X0, rc.K-rectPadding, rc.Z0),
		types.XYZ(rc.X1, rc.K+rectPadding, rc.Z1),
	)
}

func (rc *RectXZ) Center() types.Vec3 {
	return rc.BBox().Center()
}

// An axis-aligned rectangle in the plane x = K spanning [Y0,Y1] x [Z0,Z1].
type RectYZ struct {
	Y0, Y1   float32
	Z0, Z1   float32
	K        float32
	Material Material
}

func (rc *RectYZ) Intersect(r Ray, tMin, tMax float32, _ *rand.Rand) (HitRecord, bool) {
	t := (rc.K - r.Origin[0]) / r.Dir[0]
	if !(t >= tMin && t <= tMax) {
		return HitRecord{}, false
	}
	y := r.Origin[1] + t*r.Dir[1]
	z := r.Origin[2] + t*r.Dir[2]
	if y < rc.Y0 || y > rc.Y1 || z < rc.Z0 || z > rc.Z1 {
		return HitRecord{}, false
	}

	var rec HitRecord
	rec.T = t
	rec.Point = r.At(t)
	rec.Material = rc.Material
	rec.U = (y - rc.Y0) / (rc.Y1 - rc.Y0)
	rec.V = (z - rc.Z0) / (rc.Z1 - rc.Z0)
	rec.SetFaceNormal(r, types.XYZ(1, 0, 0))
	return rec, true
}

func (rc *RectYZ) BBox() AABB {
	return NewAABB(
		types.XYZ(rc.K-rectPadding, rc.Y0, rc.Z0),
		types.XYZ(rc.K+rectPadding, rc.Y1, rc.Z1),
	)
}

func (rc *RectYZ) Center() types.Vec3 {
	return rc.BBox().Center()
}

// An axis-aligned box assembled from six rectangles.
type Box struct {
	Min, Max types.Vec3
	sides    [6]Primitive
}

// Create a new axis-aligned box between two corner points.
func NewBox(min, max types.Vec3, mat Material) *Box {
	b := &Box{Min: min, Max: max}
	b.sides = [6]Primitive{
		&RectXY{X0: min[0], X1: max[0], Y0: min[1], Y1: max[1], K: min[2], Material: mat},
		&RectXY{X0: min[0], X1: max[0], Y0: min[1], Y1: max[1], K: max[2], Material: mat},
		&RectXZ{X0: min[0], X1: max[0], Z0: min[2], Z1: max[2], K: min[1], Material: mat},
		&RectXZ{X0: min[0], X1: max[0], Z0: min[2], Z1: max[2], K: max[1], Material: mat},
		&RectYZ{Y0: min[1], Y1: max[1], Z0: min[2], Z1: max[2], K: min[0], Material: mat},
		&RectYZ{Y0: min[1], Y1: max[1], Z0: min[2], Z1: max[2], K: max[0], Material: mat},
	}
	return b
}

// Intersect the ray with each side, keeping the closest hit.
func (b *Box) Intersect(r Ray, tMin, tMax float32, rng *rand.Rand) (HitRecord, bool) {
	var closest HitRecord
	hitAny := false
	closestT := tMax
	for _, side := range b.sides {
		if rec, ok := side.Intersect(r, tMin, closestT, rng); ok {
			hitAny = true
			closestT = rec.T
			closest = rec
		}
	}
	return closest, hitAny
}

func (b *Box) BBox() AABB {
	return NewAABB(b.Min, b.Max)
}

func (b *Box) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}
